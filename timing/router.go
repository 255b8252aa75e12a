package timing

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/gpunoc/gpunet"
	"github.com/sarchlab/gpunoc/noc"
)

// A Router is a minimal router shell: it scans its input channels, asks the
// routing function for the output port and VC range, and forwards when a
// buffer credit is available, returning a credit upstream for the consumed
// slot. The full per-cycle microarchitecture (VC allocators, arbiters,
// crossbar) is deliberately not modeled.
type Router struct {
	*sim.TickingComponent

	id      int
	layer   int
	address int
	sub     gpunet.SubNetwork
	route   gpunet.RoutingFunc

	numVCs      int
	bufferDepth int

	inputs        []*Channel
	inputCredits  []*CreditChannel
	outputs       []*Channel
	outputCredits []*CreditChannel

	credits [][]int // per output port, per VC
}

func newRouter(
	name string,
	engine sim.Engine,
	freq sim.Freq,
	id, layer, address int,
	sub gpunet.SubNetwork,
	route gpunet.RoutingFunc,
	numVCs, bufferDepth int,
) *Router {
	r := &Router{
		id:          id,
		layer:       layer,
		address:     address,
		sub:         sub,
		route:       route,
		numVCs:      numVCs,
		bufferDepth: bufferDepth,
	}
	r.TickingComponent = sim.NewTickingComponent(name, engine, freq, r)
	return r
}

// ID returns the global router id.
func (r *Router) ID() int {
	return r.id
}

// AddInputChannel binds a flit channel and its paired credit lane as the
// next input port. The router consumes flits from the flit lane and returns
// credits on the credit lane.
func (r *Router) AddInputChannel(ch, credit noc.Channel) {
	fc := mustFlitChannel(ch)
	cc := mustCreditChannel(credit)
	fc.setSink(r)
	r.inputs = append(r.inputs, fc)
	r.inputCredits = append(r.inputCredits, cc)
}

// AddOutputChannel binds a flit channel and its paired credit lane as the
// next output port. The router produces flits on the flit lane and reclaims
// credits from the credit lane.
func (r *Router) AddOutputChannel(ch, credit noc.Channel) {
	fc := mustFlitChannel(ch)
	cc := mustCreditChannel(credit)
	cc.setSink(r)
	r.outputs = append(r.outputs, fc)
	r.outputCredits = append(r.outputCredits, cc)

	vcCredits := make([]int, r.numVCs)
	for vc := range vcCredits {
		vcCredits[vc] = r.bufferDepth
	}
	r.credits = append(r.credits, vcCredits)
}

// InputChannel returns the flit lane bound at the given input port.
func (r *Router) InputChannel(port int) *Channel {
	return r.inputs[port]
}

// OutputChannel returns the flit lane bound at the given output port.
func (r *Router) OutputChannel(port int) *Channel {
	return r.outputs[port]
}

// NumInputChannels returns the number of bound input ports.
func (r *Router) NumInputChannels() int {
	return len(r.inputs)
}

// NumOutputChannels returns the number of bound output ports.
func (r *Router) NumOutputChannels() int {
	return len(r.outputs)
}

// Tick reclaims returned credits, then forwards at most one flit per input
// port.
func (r *Router) Tick() (madeProgress bool) {
	madeProgress = r.reclaimCredits()

	pending := false
	for in := range r.inputs {
		moved, blocked := r.forwardOne(in)
		madeProgress = madeProgress || moved
		pending = pending || blocked
	}

	return madeProgress || pending
}

func (r *Router) reclaimCredits() bool {
	reclaimed := false
	for port, cc := range r.outputCredits {
		for {
			c, ok := cc.Pop()
			if !ok {
				break
			}
			r.credits[port][c.VC]++
			reclaimed = true
		}
	}
	return reclaimed
}

// forwardOne moves the head flit of one input port toward its output. The
// second return reports a head flit that exists but could not move this
// cycle.
func (r *Router) forwardOne(in int) (moved, blocked bool) {
	f := r.inputs[in].Peek()
	if f == nil {
		return false, false
	}

	req := gpunet.RouteRequest{
		Router:     r.Name(),
		Time:       r.Engine.CurrentTime(),
		Layer:      r.layer,
		Address:    r.address,
		InPort:     in,
		NumInputs:  len(r.inputs),
		NumOutputs: len(r.outputs),
	}
	decision := r.route(req, f)

	port := decision[0].Port
	if port < 0 || port >= len(r.outputs) {
		panic(fmt.Sprintf("%s: routed to nonexistent port %d", r.Name(), port))
	}

	arrivalVC := f.VC
	vc := f.VC
	if vc < 0 {
		vc = r.pickVC(port, decision[0].VCs)
		if vc < 0 {
			return false, true
		}
	} else if r.credits[port][vc] == 0 {
		return false, true
	}

	if !r.outputs[port].Push(f) {
		return false, true
	}

	r.inputs[in].Pop()
	f.VC = vc
	f.Hops++
	r.credits[port][vc]--

	returnVC := arrivalVC
	if returnVC < 0 {
		returnVC = vc
	}
	r.inputCredits[in].Push(noc.Credit{VC: returnVC})

	return true, false
}

// pickVC selects the lowest admitted VC with a free downstream slot, or -1.
func (r *Router) pickVC(port int, admit noc.VCRange) int {
	for vc := admit.Lo; vc <= admit.Hi; vc++ {
		if r.credits[port][vc] > 0 {
			return vc
		}
	}
	return -1
}

func mustFlitChannel(ch noc.Channel) *Channel {
	fc, ok := ch.(*Channel)
	if !ok {
		panic("timing routers only accept timing flit channels")
	}
	return fc
}

func mustCreditChannel(ch noc.Channel) *CreditChannel {
	cc, ok := ch.(*CreditChannel)
	if !ok {
		panic("timing routers only accept timing credit channels")
	}
	return cc
}
