package gpunet

// HierarchicalGPUNet is the name under which the hierarchical routing
// function is published.
const HierarchicalGPUNet = "hierarchical_gpunet"

var routingRegistry = map[string]func(*Descriptor) RoutingFunc{}

// RegisterRouting publishes a routing-function constructor under a name.
// The registry is populated during init and never mutated afterwards.
func RegisterRouting(name string, ctor func(*Descriptor) RoutingFunc) {
	if _, dup := routingRegistry[name]; dup {
		panic("routing function " + name + " registered twice")
	}
	routingRegistry[name] = ctor
}

// RoutingByName looks up a registered routing-function constructor.
func RoutingByName(name string) (func(*Descriptor) RoutingFunc, bool) {
	ctor, ok := routingRegistry[name]
	return ctor, ok
}

func init() {
	RegisterRouting(HierarchicalGPUNet, NewHierarchicalRouting)
}
