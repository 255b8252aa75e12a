package gpunet

import (
	"github.com/sarchlab/gpunoc/noc"
)

// A Network is a fully wired hierarchy: 2S routers bound to their injection,
// ejection, inter-layer, and mesh channels. Construction is all-or-nothing;
// a Network is only observable after every channel landed on its port.
type Network struct {
	name    string
	desc    *Descriptor
	routers []noc.Router
}

// Name returns the network name.
func (n *Network) Name() string {
	return n.name
}

// Descriptor returns the immutable hierarchy descriptor.
func (n *Network) Descriptor() *Descriptor {
	return n.desc
}

// Router returns the router with the given global id.
func (n *Network) Router(id int) noc.Router {
	return n.routers[id]
}

// NetworkBuilder wires a hierarchy into the routers and channel endpoints
// supplied by a fabric.
type NetworkBuilder struct {
	desc   *Descriptor
	fabric noc.Fabric
}

// MakeNetworkBuilder creates a network builder.
func MakeNetworkBuilder() NetworkBuilder {
	return NetworkBuilder{}
}

// WithDescriptor sets the hierarchy descriptor.
func (b NetworkBuilder) WithDescriptor(d *Descriptor) NetworkBuilder {
	b.desc = d
	return b
}

// WithFabric sets the fabric that supplies routers and channels.
func (b NetworkBuilder) WithFabric(f noc.Fabric) NetworkBuilder {
	b.fabric = f
	return b
}

// Build allocates every router and associates every channel endpoint with
// its producer and consumer ports. The ordinal of each attach call defines
// the port number, so the wiring order below is load-bearing: terminals
// before hierarchy edges on the bottom side, ejection before mesh on the
// top side.
func (b NetworkBuilder) Build(name string) (*Network, error) {
	if b.desc == nil {
		return nil, configErrorf("network %s built without a descriptor", name)
	}
	if b.fabric == nil {
		return nil, configErrorf("network %s built without a fabric", name)
	}

	c := &construction{
		name:   name,
		desc:   b.desc,
		pm:     NewPortMap(b.desc),
		fabric: b.fabric,
		routers: make([]noc.Router,
			b.desc.NumRouters()),
	}

	steps := []func() error{
		c.allocateRouters,
		c.wireSMTerminals,
		c.wireHierarchy,
		c.wireL2Terminals,
		c.wireMesh,
		c.validatePortWidths,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}

	return &Network{name: name, desc: b.desc, routers: c.routers}, nil
}

type construction struct {
	name    string
	desc    *Descriptor
	pm      PortMap
	fabric  noc.Fabric
	routers []noc.Router
}

func (c *construction) allocateRouters() error {
	d := c.desc
	for _, sub := range []SubNetwork{Request, Reply} {
		for l := 0; l < d.NumLayers; l++ {
			for a := 0; a < d.Units[l]; a++ {
				id, err := d.RouterID(l, a, sub)
				if err != nil {
					return err
				}
				r := c.fabric.AllocateRouter(id,
					d.RouterName(c.name, l, a, sub),
					c.pm.NumInputs(l, sub), c.pm.NumOutputs(l, sub))
				if r == nil {
					return topologyErrorf(id, -1,
						"fabric did not allocate router")
				}
				c.routers[id] = r
			}
		}
	}
	return nil
}

// wireSMTerminals binds the SM inject channels to layer-0 request routers
// and the SM eject channels to their reply twins.
func (c *construction) wireSMTerminals() error {
	d := c.desc
	for s := 0; s < d.NumSMs; s++ {
		a := c.pm.SMRouterAddr(s)
		p := c.pm.SMTerminalPort(s)

		reqID, err := d.RouterID(0, a, Request)
		if err != nil {
			return err
		}
		inj, injCred := c.fabric.Inject(s)
		c.setWire(inj, injCred, d.WireLatency(0, false), d.ChannelBandwidth(0, false))
		if err := c.attachInput(reqID, p, inj, injCred, -1); err != nil {
			return err
		}

		repID, err := d.RouterID(0, a, Reply)
		if err != nil {
			return err
		}
		ej, ejCred := c.fabric.Eject(s)
		c.setWire(ej, ejCred, d.WireLatency(0, false), d.ChannelBandwidth(0, false))
		if err := c.attachOutput(repID, p, ej, ejCred, -1); err != nil {
			return err
		}
	}
	return nil
}

// wireHierarchy binds the inter-layer edges. The channel in slot
// offset[l-1]+child climbs in the request network; its reply twin, offset by
// C, descends.
func (c *construction) wireHierarchy() error {
	d := c.desc
	cc := d.ChannelsPerSubnet()

	for l := 1; l < d.NumLayers; l++ {
		latency := d.WireLatency(l, false)
		bandwidth := d.ChannelBandwidth(l, false)

		for a := 0; a < d.Units[l]; a++ {
			for j := 0; j < d.Ratio[l]; j++ {
				child := a*d.Ratio[l] + j
				chanID := d.Offset[l-1] + child

				childReqID, err := d.RouterID(l-1, child, Request)
				if err != nil {
					return err
				}
				parentReqID, err := d.RouterID(l, a, Request)
				if err != nil {
					return err
				}
				up, upCred, err := c.chanPair(chanID)
				if err != nil {
					return err
				}
				c.setWire(up, upCred, latency, bandwidth)
				if err := c.attachOutput(childReqID, c.pm.UpPort(), up, upCred, chanID); err != nil {
					return err
				}
				if err := c.attachInput(parentReqID, j, up, upCred, chanID); err != nil {
					return err
				}

				childRepID, err := d.RouterID(l-1, child, Reply)
				if err != nil {
					return err
				}
				parentRepID, err := d.RouterID(l, a, Reply)
				if err != nil {
					return err
				}
				down, downCred, err := c.chanPair(chanID + cc)
				if err != nil {
					return err
				}
				c.setWire(down, downCred, latency, bandwidth)
				if err := c.attachOutput(parentRepID, j, down, downCred, chanID+cc); err != nil {
					return err
				}
				if err := c.attachInput(childRepID, 0, down, downCred, chanID+cc); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// wireL2Terminals binds L2 inject channels to the reply crossbars and L2
// eject channels to the request crossbars, sorted by L2 address within the
// partition.
func (c *construction) wireL2Terminals() error {
	d := c.desc
	top := d.NumLayers - 1

	for n := d.NumSMs; n < d.Nodes(); n++ {
		part := c.pm.L2Partition(n)
		p := c.pm.L2TerminalPort(n)

		repID, err := d.RouterID(top, part, Reply)
		if err != nil {
			return err
		}
		inj, injCred := c.fabric.Inject(n)
		c.setWire(inj, injCred,
			d.WireLatency(0, false), d.ChannelBandwidth(d.NumLayers, false))
		if err := c.attachInput(repID, p, inj, injCred, -1); err != nil {
			return err
		}

		reqID, err := d.RouterID(top, part, Request)
		if err != nil {
			return err
		}
		ej, ejCred := c.fabric.Eject(n)
		c.setWire(ej, ejCred,
			d.WireLatency(0, false), d.ChannelBandwidth(d.NumLayers, false))
		if err := c.attachOutput(reqID, p, ej, ejCred, -1); err != nil {
			return err
		}
	}
	return nil
}

// wireMesh binds the P(P-1) directed edges of the fully-connected partition
// mesh, on both sub-networks.
func (c *construction) wireMesh() error {
	d := c.desc
	p := d.NumPartitions
	if p <= 1 {
		return nil
	}

	top := d.NumLayers - 1
	cc := d.ChannelsPerSubnet()
	latency := d.WireLatency(top, true)
	bandwidth := d.ChannelBandwidth(top, true)

	for a := 0; a < p; a++ {
		for k := 0; k < p-1; k++ {
			other := k
			if k >= a {
				other = k + 1
			}
			chanID := d.Offset[top] + a*(p-1) + k

			srcReqID, err := d.RouterID(top, a, Request)
			if err != nil {
				return err
			}
			dstReqID, err := d.RouterID(top, other, Request)
			if err != nil {
				return err
			}
			req, reqCred, err := c.chanPair(chanID)
			if err != nil {
				return err
			}
			c.setWire(req, reqCred, latency, bandwidth)
			if err := c.attachOutput(srcReqID,
				c.pm.RequestMeshOutPort(a, other), req, reqCred, chanID); err != nil {
				return err
			}
			if err := c.attachInput(dstReqID,
				c.pm.RequestMeshInPort(other, a), req, reqCred, chanID); err != nil {
				return err
			}

			srcRepID, err := d.RouterID(top, a, Reply)
			if err != nil {
				return err
			}
			dstRepID, err := d.RouterID(top, other, Reply)
			if err != nil {
				return err
			}
			rep, repCred, err := c.chanPair(chanID + cc)
			if err != nil {
				return err
			}
			c.setWire(rep, repCred, latency, bandwidth)
			if err := c.attachOutput(srcRepID,
				c.pm.ReplyMeshOutPort(a, other), rep, repCred, chanID+cc); err != nil {
				return err
			}
			if err := c.attachInput(dstRepID,
				c.pm.ReplyMeshInPort(other, a), rep, repCred, chanID+cc); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *construction) validatePortWidths() error {
	d := c.desc
	for id, r := range c.routers {
		layer, _, sub, err := d.RouterPosition(id)
		if err != nil {
			return err
		}
		if r.NumInputChannels() != c.pm.NumInputs(layer, sub) {
			return topologyErrorf(id, -1, "router %s has %d inputs, want %d",
				r.Name(), r.NumInputChannels(), c.pm.NumInputs(layer, sub))
		}
		if r.NumOutputChannels() != c.pm.NumOutputs(layer, sub) {
			return topologyErrorf(id, -1, "router %s has %d outputs, want %d",
				r.Name(), r.NumOutputChannels(), c.pm.NumOutputs(layer, sub))
		}
	}
	return nil
}

func (c *construction) chanPair(chanID int) (flit, credit noc.Channel, err error) {
	if chanID < 0 || chanID >= c.desc.NumChannels() {
		return nil, nil, topologyErrorf(-1, chanID,
			"channel id out of range [0, %d)", c.desc.NumChannels())
	}
	flit, credit = c.fabric.Chan(chanID)
	if flit == nil || credit == nil {
		return nil, nil, topologyErrorf(-1, chanID, "fabric returned no channel")
	}
	return flit, credit, nil
}

// attachInput binds a channel pair as the next input port of a router,
// checking that the attach ordinal lands on the intended port.
func (c *construction) attachInput(
	routerID, wantPort int,
	ch, credit noc.Channel,
	chanID int,
) error {
	r := c.routers[routerID]
	if r.NumInputChannels() != wantPort {
		return topologyErrorf(routerID, chanID,
			"input attach out of order: want port %d, router %s is at %d",
			wantPort, r.Name(), r.NumInputChannels())
	}
	r.AddInputChannel(ch, credit)
	return nil
}

// attachOutput is the output-side twin of attachInput.
func (c *construction) attachOutput(
	routerID, wantPort int,
	ch, credit noc.Channel,
	chanID int,
) error {
	r := c.routers[routerID]
	if r.NumOutputChannels() != wantPort {
		return topologyErrorf(routerID, chanID,
			"output attach out of order: want port %d, router %s is at %d",
			wantPort, r.Name(), r.NumOutputChannels())
	}
	r.AddOutputChannel(ch, credit)
	return nil
}

func (c *construction) setWire(ch, credit noc.Channel, latency, bandwidth int) {
	ch.SetLatency(latency)
	ch.SetBandwidth(bandwidth)
	credit.SetLatency(latency)
	credit.SetBandwidth(bandwidth)
}
