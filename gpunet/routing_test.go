package gpunet_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/gpunoc/gpunet"
	"github.com/sarchlab/gpunoc/noc"
)

func mustDescriptor(
	layers, sm, l2 int,
	ratio []int,
	partitioned bool,
) *gpunet.Descriptor {
	d, err := gpunet.MakeDescriptorBuilder().
		WithLayers(layers).
		WithSMNodes(sm).
		WithL2Nodes(l2).
		WithRatios(ratio...).
		WithPartitioned(partitioned).
		WithNumVCs(4).
		Build()
	Expect(err).ToNot(HaveOccurred())
	return d
}

// routeAt runs one hop decision on a copy of the flit.
func routeAt(
	route gpunet.RoutingFunc,
	f *noc.Flit,
	hops int,
) noc.PortVC {
	g := *f
	g.Hops = hops
	decision := route(gpunet.RouteRequest{Router: "test"}, &g)
	Expect(decision).To(HaveLen(1))
	return decision[0]
}

func partitionOf(d *gpunet.Descriptor, node int) int {
	if d.IsSM(node) {
		return node / d.SMPerPartition
	}
	return (node - d.NumSMs) / d.L2PerPartition
}

func pathLength(d *gpunet.Descriptor, src, dest int) int {
	total := d.NumLayers
	if partitionOf(d, src) != partitionOf(d, dest) {
		total++
	}
	return total
}

// walk applies the routing function hop by hop and returns the port
// sequence.
func walk(
	d *gpunet.Descriptor,
	route gpunet.RoutingFunc,
	src, dest int,
	typ noc.FlitType,
) []int {
	f := noc.FlitBuilder{}.
		WithSource(src).
		WithDest(dest).
		WithType(typ).
		Build()

	total := pathLength(d, src, dest)
	ports := make([]int, total)
	for h := 0; h < total; h++ {
		ports[h] = routeAt(route, f, h).Port
	}
	return ports
}

var _ = Describe("HierarchicalRouting", func() {
	Context("two layers, single partition", func() {
		var (
			d     *gpunet.Descriptor
			route gpunet.RoutingFunc
		)

		BeforeEach(func() {
			d = mustDescriptor(2, 8, 8, []int{4, 2}, false)
			route = gpunet.NewHierarchicalRouting(d)
		})

		It("should climb then eject a local read request", func() {
			f := noc.FlitBuilder{}.
				WithSource(3).
				WithDest(12).
				WithType(noc.ReadRequest).
				Build()

			hop0 := routeAt(route, f, 0)
			Expect(hop0.Port).To(Equal(0))
			Expect(hop0.VCs).To(Equal(noc.VCRange{Lo: 0, Hi: 1}))

			hop1 := routeAt(route, f, 1)
			Expect(hop1.Port).To(Equal(4))
			Expect(hop1.VCs).To(Equal(noc.VCRange{Lo: 0, Hi: 1}))
		})

		It("should descend a read reply to the source SM", func() {
			f := noc.FlitBuilder{}.
				WithSource(12).
				WithDest(3).
				WithType(noc.ReadReply).
				Build()

			hop0 := routeAt(route, f, 0)
			Expect(hop0.Port).To(Equal(0))
			Expect(hop0.VCs).To(Equal(noc.VCRange{Lo: 0, Hi: 1}))

			hop1 := routeAt(route, f, 1)
			Expect(hop1.Port).To(Equal(3))
			Expect(hop1.VCs).To(Equal(noc.VCRange{Lo: 0, Hi: 1}))
		})
	})

	Context("two layers, two partitions", func() {
		var (
			d     *gpunet.Descriptor
			route gpunet.RoutingFunc
		)

		BeforeEach(func() {
			d = mustDescriptor(2, 8, 8, []int{2, 2}, true)
			route = gpunet.NewHierarchicalRouting(d)
		})

		It("should cross the mesh on a remote write request", func() {
			f := noc.FlitBuilder{}.
				WithSource(1).
				WithDest(14).
				WithType(noc.WriteRequest).
				Build()

			hop0 := routeAt(route, f, 0)
			Expect(hop0.Port).To(Equal(0))
			Expect(hop0.VCs).To(Equal(noc.VCRange{Lo: 2, Hi: 3}))

			hop1 := routeAt(route, f, 1)
			Expect(hop1.Port).To(Equal(4))

			hop2 := routeAt(route, f, 2)
			Expect(hop2.Port).To(Equal(2))
		})

		It("should cross the mesh on the corresponding write reply", func() {
			f := noc.FlitBuilder{}.
				WithSource(14).
				WithDest(1).
				WithType(noc.WriteReply).
				Build()

			hop0 := routeAt(route, f, 0)
			Expect(hop0.Port).To(Equal(2))
			Expect(hop0.VCs).To(Equal(noc.VCRange{Lo: 2, Hi: 3}))

			hop1 := routeAt(route, f, 1)
			Expect(hop1.Port).To(Equal(0))

			hop2 := routeAt(route, f, 2)
			Expect(hop2.Port).To(Equal(1))
		})

		It("should leave the lane choice to injection arbitration", func() {
			f := noc.FlitBuilder{}.
				WithSource(0).
				WithDest(8).
				WithType(noc.WriteRequest).
				Build()

			decision := route(gpunet.RouteRequest{Inject: true}, f)

			Expect(decision).To(Equal([]noc.PortVC{
				{Port: noc.AnyPort, VCs: noc.VCRange{Lo: 2, Hi: 3}},
			}))
		})

		It("should terminate every request at its ejection port", func() {
			for src := 0; src < d.NumSMs; src++ {
				for dest := d.NumSMs; dest < d.Nodes(); dest++ {
					ports := walk(d, route, src, dest, noc.ReadRequest)

					Expect(ports).To(HaveLen(pathLength(d, src, dest)))
					Expect(ports[len(ports)-1]).
						To(Equal((dest - d.NumSMs) % d.L2PerPartition))
				}
			}
		})

		It("should take the mesh exactly once on remote requests", func() {
			for src := 0; src < d.NumSMs; src++ {
				for dest := d.NumSMs; dest < d.Nodes(); dest++ {
					srcPart := partitionOf(d, src)
					destPart := partitionOf(d, dest)
					if srcPart == destPart {
						continue
					}

					k := destPart
					if destPart > srcPart {
						k = destPart - 1
					}

					ports := walk(d, route, src, dest, noc.ReadRequest)
					Expect(ports[d.NumLayers-1]).
						To(Equal(d.L2PerPartition + k))
					Expect(ports[d.NumLayers]).
						To(Equal((dest - d.NumSMs) % d.L2PerPartition))
				}
			}
		})

		It("should retrace every reply to the destination SM", func() {
			for dest := 0; dest < d.NumSMs; dest++ {
				for src := d.NumSMs; src < d.Nodes(); src++ {
					ports := walk(d, route, src, dest, noc.ReadReply)

					Expect(ports).To(HaveLen(pathLength(d, src, dest)))
					Expect(ports[len(ports)-1]).To(Equal(dest % d.Ratio[0]))
				}
			}
		})

		It("should admit VCs by type only", func() {
			read := noc.VCRange{Lo: 0, Hi: 1}
			write := noc.VCRange{Lo: 2, Hi: 3}
			expected := map[noc.FlitType]noc.VCRange{
				noc.ReadRequest:  read,
				noc.ReadReply:    read,
				noc.WriteRequest: write,
				noc.WriteReply:   write,
			}

			for typ, want := range expected {
				src, dest := 0, d.Nodes()-1
				if typ == noc.ReadReply || typ == noc.WriteReply {
					src, dest = dest, src
				}
				f := noc.FlitBuilder{}.
					WithSource(src).
					WithDest(dest).
					WithType(typ).
					Build()

				for h := 0; h < pathLength(d, src, dest); h++ {
					Expect(routeAt(route, f, h).VCs).To(Equal(want))
				}
			}
		})

		It("should be pure", func() {
			f := noc.FlitBuilder{}.
				WithSource(1).
				WithDest(14).
				WithType(noc.WriteRequest).
				Build()

			first := routeAt(route, f, 1)
			second := routeAt(route, f, 1)

			Expect(second).To(Equal(first))
		})

		It("should panic on a VC outside the admitted range", func() {
			f := noc.FlitBuilder{}.
				WithSource(1).
				WithDest(14).
				WithType(noc.ReadRequest).
				Build()
			f.VC = 3

			Expect(func() {
				route(gpunet.RouteRequest{Router: "test"}, f)
			}).To(Panic())
		})

		It("should panic on an unknown flit type", func() {
			f := noc.FlitBuilder{}.
				WithSource(1).
				WithDest(14).
				Build()
			f.Type = noc.FlitType(7)

			Expect(func() {
				route(gpunet.RouteRequest{Router: "test"}, f)
			}).To(Panic())
		})

		It("should panic on a crossbar with unexpected width", func() {
			f := noc.FlitBuilder{}.
				WithSource(1).
				WithDest(14).
				WithType(noc.ReadRequest).
				Build()
			f.Hops = 1

			Expect(func() {
				route(gpunet.RouteRequest{Router: "test", NumOutputs: 4}, f)
			}).To(Panic())
		})

		It("should panic when both endpoints sit on the same side", func() {
			f := noc.FlitBuilder{}.
				WithSource(1).
				WithDest(2).
				WithType(noc.ReadRequest).
				Build()

			Expect(func() {
				route(gpunet.RouteRequest{Router: "test"}, f)
			}).To(Panic())
		})
	})
})

var _ = Describe("RoutingRegistry", func() {
	It("should publish the hierarchical routing function", func() {
		ctor, ok := gpunet.RoutingByName(gpunet.HierarchicalGPUNet)

		Expect(ok).To(BeTrue())
		Expect(ctor).ToNot(BeNil())
	})

	It("should not resolve unknown names", func() {
		_, ok := gpunet.RoutingByName("adaptive_gpunet")
		Expect(ok).To(BeFalse())
	})

	It("should refuse duplicate registrations", func() {
		Expect(func() {
			gpunet.RegisterRouting(gpunet.HierarchicalGPUNet,
				gpunet.NewHierarchicalRouting)
		}).To(Panic())
	})
})
