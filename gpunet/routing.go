package gpunet

import (
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/gpunoc/noc"
)

// RouteRequest carries the per-hop context of one routing decision: where
// the flit currently sits and how it arrived. Layer and Address locate the
// router in its sub-network. NumInputs/NumOutputs, when positive, let the
// routing function cross-check the router's actual port widths; zero skips
// the check. Inject marks the decision made when the flit enters the network
// at its source terminal.
type RouteRequest struct {
	Router  string
	Time    sim.VTimeInSec
	Layer   int
	Address int
	InPort  int

	NumInputs  int
	NumOutputs int

	Inject bool
}

// A RoutingFunc maps one in-flight flit at one router to the output ports
// and VC ranges it may take. It is pure: it reads only the immutable
// descriptor and its arguments, so concurrent calls need no synchronization.
type RoutingFunc func(req RouteRequest, f *noc.Flit) []noc.PortVC

// NewHierarchicalRouting returns the deterministic hierarchical routing
// function for the given descriptor. Request flits climb to the partition
// crossbar, cross the mesh if the destination lives in another partition,
// and eject into their L2 slice; reply flits retrace the path down to the
// destination SM.
func NewHierarchicalRouting(d *Descriptor) RoutingFunc {
	pm := NewPortMap(d)

	return func(req RouteRequest, f *noc.Flit) []noc.PortVC {
		admit := admitVCs(d, req, f)

		if req.Inject {
			decision := []noc.PortVC{{Port: noc.AnyPort, VCs: admit}}
			traceDecision(req, f, decision)
			return decision
		}

		routingAssert(d.IsSM(f.Source) != d.IsSM(f.Dest), req.Router, f.ID,
			"flit endpoints %d -> %d are not one SM and one L2 slice",
			f.Source, f.Dest)

		isRequest := f.Dest > f.Source

		var srcPart, destPart int
		if isRequest {
			srcPart = f.Source / d.SMPerPartition
			destPart = (f.Dest - d.NumSMs) / d.L2PerPartition
		} else {
			srcPart = (f.Source - d.NumSMs) / d.L2PerPartition
			destPart = f.Dest / d.SMPerPartition
		}

		remote := srcPart != destPart
		totalHops := d.NumLayers
		if remote {
			totalHops++
		}

		curLayer := f.Hops
		if !isRequest {
			curLayer = totalHops - f.Hops - 1
		}
		routingAssert(curLayer >= 0 && curLayer <= d.NumLayers,
			req.Router, f.ID, "hop count %d exceeds path length %d",
			f.Hops, totalHops)

		var port int
		switch {
		case isRequest && curLayer < d.NumLayers-1:
			port = pm.UpPort()

		case isRequest:
			assertCrossbarWidth(pm, req, f, Request)
			if remote && f.Hops == totalHops-2 {
				port = pm.RequestMeshOutPort(srcPart, destPart)
			} else {
				port = pm.EjectPort(f.Dest)
			}

		case curLayer >= d.NumLayers-1:
			assertCrossbarWidth(pm, req, f, Reply)
			if remote && curLayer == d.NumLayers {
				port = pm.ReplyMeshOutPort(srcPart, destPart)
			} else {
				port = pm.DownPort(d.NumLayers-1, f.Dest)
			}

		default:
			port = pm.DownPort(curLayer, f.Dest)
		}

		decision := []noc.PortVC{{Port: port, VCs: admit}}
		traceDecision(req, f, decision)
		return decision
	}
}

// admitVCs applies the VC partitioning rule: reads own the lower half of the
// VC space, writes the upper half. Together with the separate request and
// reply sub-networks this yields four non-interfering logical channels.
func admitVCs(d *Descriptor, req RouteRequest, f *noc.Flit) noc.VCRange {
	half := d.NumVCs / 2

	var admit noc.VCRange
	switch f.Type {
	case noc.ReadRequest, noc.ReadReply:
		admit = noc.VCRange{Lo: 0, Hi: half - 1}
	case noc.WriteRequest, noc.WriteReply:
		admit = noc.VCRange{Lo: half, Hi: d.NumVCs - 1}
	default:
		routingAssert(false, req.Router, f.ID, "unknown flit type %d", f.Type)
	}

	routingAssert(f.VC < 0 || admit.Contains(f.VC), req.Router, f.ID,
		"VC %d outside admitted range [%d, %d]", f.VC, admit.Lo, admit.Hi)

	return admit
}

func assertCrossbarWidth(pm PortMap, req RouteRequest, f *noc.Flit, sub SubNetwork) {
	top := pm.d.NumLayers - 1
	if req.NumInputs > 0 {
		routingAssert(req.NumInputs == pm.NumInputs(top, sub),
			req.Router, f.ID, "crossbar has %d inputs, want %d",
			req.NumInputs, pm.NumInputs(top, sub))
	}
	if req.NumOutputs > 0 {
		routingAssert(req.NumOutputs == pm.NumOutputs(top, sub),
			req.Router, f.ID, "crossbar has %d outputs, want %d",
			req.NumOutputs, pm.NumOutputs(top, sub))
	}
}

func traceDecision(req RouteRequest, f *noc.Flit, decision []noc.PortVC) {
	if !f.Watch {
		return
	}
	noc.Trace("RouteDecision",
		"Time", float64(req.Time),
		"Router", req.Router,
		"VCLo", decision[0].VCs.Lo,
		"VCHi", decision[0].VCs.Hi,
		"OutPort", decision[0].Port,
		"Flit", f.ID,
		"InPort", req.InPort,
		"Dest", f.Dest,
	)
}
