package gpunet

import "fmt"

// SubNetwork selects one of the two logically independent networks.
type SubNetwork int

const (
	Request SubNetwork = iota
	Reply
)

// Name returns the name of the sub-network.
func (s SubNetwork) Name() string {
	switch s {
	case Request:
		return "Req"
	case Reply:
		return "Rep"
	default:
		panic("invalid sub-network")
	}
}

// RouterID flattens (layer, address, sub-network) into a global router id.
// Request routers occupy [0, S), reply routers [S, 2S).
func (d *Descriptor) RouterID(layer, addr int, sub SubNetwork) (int, error) {
	if layer < 0 || layer >= d.NumLayers {
		return 0, topologyErrorf(-1, -1, "layer %d out of range [0, %d)",
			layer, d.NumLayers)
	}
	if addr < 0 || addr >= d.Units[layer] {
		return 0, topologyErrorf(-1, -1,
			"address %d out of range [0, %d) in layer %d",
			addr, d.Units[layer], layer)
	}
	id := d.Offset[layer] + addr
	if sub == Reply {
		id += d.RoutersPerSubnet()
	}
	return id, nil
}

// RouterPosition is the inverse of RouterID.
func (d *Descriptor) RouterPosition(id int) (layer, addr int, sub SubNetwork, err error) {
	s := d.RoutersPerSubnet()
	if id < 0 || id >= 2*s {
		return 0, 0, 0, topologyErrorf(id, -1,
			"router id out of range [0, %d)", 2*s)
	}
	sub = Request
	if id >= s {
		sub = Reply
		id -= s
	}
	for l := d.NumLayers - 1; l >= 0; l-- {
		if id >= d.Offset[l] {
			return l, id - d.Offset[l], sub, nil
		}
	}
	panic("unreachable")
}

// RouterName composes the full hierarchical name of a router.
func (d *Descriptor) RouterName(prefix string, layer, addr int, sub SubNetwork) string {
	if layer == d.NumLayers-1 {
		return fmt.Sprintf("%s.%s.Xbar%d", prefix, sub.Name(), addr)
	}
	return fmt.Sprintf("%s.%s.L%d.R%d", prefix, sub.Name(), layer, addr)
}
