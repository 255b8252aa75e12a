package timing

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/gpunoc/gpunet"
	"github.com/sarchlab/gpunoc/noc"
)

// Fabric pre-allocates the channel pools of one hierarchy and creates its
// routers on demand. It implements noc.Fabric: the topology builder asks it
// for endpoints and only associates them with router ports.
type Fabric struct {
	name   string
	engine sim.Engine
	freq   sim.Freq
	desc   *gpunet.Descriptor
	route  gpunet.RoutingFunc

	bufferDepth int

	routers map[int]*Router

	chans     []*Channel
	chanCreds []*CreditChannel

	injects     []*Channel
	injectCreds []*CreditChannel
	ejects      []*Channel
	ejectCreds  []*CreditChannel
}

// FabricBuilder can build fabrics.
type FabricBuilder struct {
	engine      sim.Engine
	freq        sim.Freq
	desc        *gpunet.Descriptor
	routing     string
	bufferDepth int
}

// MakeFabricBuilder creates a fabric builder with the hierarchical routing
// function and a default buffer depth.
func MakeFabricBuilder() FabricBuilder {
	return FabricBuilder{
		freq:        1 * sim.GHz,
		routing:     gpunet.HierarchicalGPUNet,
		bufferDepth: 8,
	}
}

// WithEngine sets the engine that drives all channels and routers.
func (b FabricBuilder) WithEngine(engine sim.Engine) FabricBuilder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the fabric.
func (b FabricBuilder) WithFreq(freq sim.Freq) FabricBuilder {
	b.freq = freq
	return b
}

// WithDescriptor sets the hierarchy descriptor the fabric serves.
func (b FabricBuilder) WithDescriptor(d *gpunet.Descriptor) FabricBuilder {
	b.desc = d
	return b
}

// WithRouting selects the registered routing function by name.
func (b FabricBuilder) WithRouting(name string) FabricBuilder {
	b.routing = name
	return b
}

// WithBufferDepth sets the per-VC buffer depth of every router.
func (b FabricBuilder) WithBufferDepth(depth int) FabricBuilder {
	b.bufferDepth = depth
	return b
}

// Build pre-allocates the injection, ejection, and intra-network channel
// pools.
func (b FabricBuilder) Build(name string) (*Fabric, error) {
	if b.desc == nil {
		return nil, fmt.Errorf("fabric %s built without a descriptor", name)
	}
	ctor, ok := gpunet.RoutingByName(b.routing)
	if !ok {
		return nil, fmt.Errorf("fabric %s: unknown routing function %q",
			name, b.routing)
	}

	f := &Fabric{
		name:        name,
		engine:      b.engine,
		freq:        b.freq,
		desc:        b.desc,
		route:       ctor(b.desc),
		bufferDepth: b.bufferDepth,
		routers:     make(map[int]*Router),
	}

	numChans := b.desc.NumChannels()
	f.chans = make([]*Channel, numChans)
	f.chanCreds = make([]*CreditChannel, numChans)
	for i := 0; i < numChans; i++ {
		f.chans[i] = NewChannel(
			fmt.Sprintf("%s.Chan%d", name, i), b.engine, b.freq)
		f.chanCreds[i] = NewCreditChannel(
			fmt.Sprintf("%s.ChanCred%d", name, i), b.engine, b.freq)
	}

	nodes := b.desc.Nodes()
	f.injects = make([]*Channel, nodes)
	f.injectCreds = make([]*CreditChannel, nodes)
	f.ejects = make([]*Channel, nodes)
	f.ejectCreds = make([]*CreditChannel, nodes)
	for n := 0; n < nodes; n++ {
		f.injects[n] = NewChannel(
			fmt.Sprintf("%s.Inject%d", name, n), b.engine, b.freq)
		f.injectCreds[n] = NewCreditChannel(
			fmt.Sprintf("%s.InjectCred%d", name, n), b.engine, b.freq)
		f.ejects[n] = NewChannel(
			fmt.Sprintf("%s.Eject%d", name, n), b.engine, b.freq)
		f.ejectCreds[n] = NewCreditChannel(
			fmt.Sprintf("%s.EjectCred%d", name, n), b.engine, b.freq)
	}

	return f, nil
}

// AllocateRouter creates the router with the given global id.
func (f *Fabric) AllocateRouter(id int, name string, numInputs, numOutputs int) noc.Router {
	layer, addr, sub, err := f.desc.RouterPosition(id)
	if err != nil {
		return nil
	}
	r := newRouter(name, f.engine, f.freq,
		id, layer, addr, sub, f.route, f.desc.NumVCs, f.bufferDepth)
	f.routers[id] = r
	return r
}

// Chan returns the intra-network channel pair with the given id.
func (f *Fabric) Chan(id int) (flit, credit noc.Channel) {
	if id < 0 || id >= len(f.chans) {
		return nil, nil
	}
	return f.chans[id], f.chanCreds[id]
}

// Inject returns the injection channel pair of a terminal node.
func (f *Fabric) Inject(node int) (flit, credit noc.Channel) {
	if node < 0 || node >= len(f.injects) {
		return nil, nil
	}
	return f.injects[node], f.injectCreds[node]
}

// Eject returns the ejection channel pair of a terminal node.
func (f *Fabric) Eject(node int) (flit, credit noc.Channel) {
	if node < 0 || node >= len(f.ejects) {
		return nil, nil
	}
	return f.ejects[node], f.ejectCreds[node]
}

// Router returns the allocated router with the given global id, or nil.
func (f *Fabric) Router(id int) *Router {
	return f.routers[id]
}

// InjectChannel returns the concrete injection flit lane of a terminal, for
// traffic drivers.
func (f *Fabric) InjectChannel(node int) *Channel {
	return f.injects[node]
}

// EjectChannel returns the concrete ejection flit lane of a terminal.
func (f *Fabric) EjectChannel(node int) *Channel {
	return f.ejects[node]
}
