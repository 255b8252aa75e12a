package gpunet

// PortMap encodes the port layout of every router in the hierarchy. The
// topology builder and the routing function both consume it, so the layout
// is expressed exactly once.
//
// Non-top routers: on the request side, ratio[l] bottom inputs and one top
// output; mirrored on the reply side. Partition crossbars (layer L-1): the
// request side takes ratio[L-1] bottom inputs plus P-1 mesh inputs, and
// drives l2PerPartition ejection outputs followed by P-1 mesh outputs; the
// reply side mirrors with L2 injection inputs and bottom outputs. Mesh ports
// are indexed by other-partition ordinal, skipping self.
type PortMap struct {
	d *Descriptor
}

// NewPortMap creates the port map of a hierarchy.
func NewPortMap(d *Descriptor) PortMap {
	return PortMap{d: d}
}

func (m PortMap) meshDegree() int {
	if m.d.NumPartitions > 1 {
		return m.d.NumPartitions - 1
	}
	return 0
}

// NumInputs returns the input port count of the router at (layer, sub).
func (m PortMap) NumInputs(layer int, sub SubNetwork) int {
	top := layer == m.d.NumLayers-1
	switch {
	case sub == Request && !top:
		return m.d.Ratio[layer]
	case sub == Request && top:
		return m.d.Ratio[layer] + m.meshDegree()
	case sub == Reply && !top:
		return 1
	default: // reply top
		return m.d.L2PerPartition + m.meshDegree()
	}
}

// NumOutputs returns the output port count of the router at (layer, sub).
func (m PortMap) NumOutputs(layer int, sub SubNetwork) int {
	top := layer == m.d.NumLayers-1
	switch {
	case sub == Request && !top:
		return 1
	case sub == Request && top:
		return m.d.L2PerPartition + m.meshDegree()
	case sub == Reply && !top:
		return m.d.Ratio[layer]
	default: // reply top
		return m.d.Ratio[layer] + m.meshDegree()
	}
}

// UpPort is the sole climbing output of a non-top request router.
func (m PortMap) UpPort() int {
	return 0
}

// EjectPort returns the crossbar output that ejects into the L2 slice dest.
func (m PortMap) EjectPort(dest int) int {
	return (dest - m.d.NumSMs) % m.d.L2PerPartition
}

// MeshOrdinal numbers partition `to` from the viewpoint of partition `from`,
// skipping `from` itself.
func (m PortMap) MeshOrdinal(from, to int) int {
	if to < from {
		return to
	}
	return to - 1
}

// RequestMeshOutPort returns the crossbar output carrying request traffic
// from partition `from` to partition `to`.
func (m PortMap) RequestMeshOutPort(from, to int) int {
	return m.d.L2PerPartition + m.MeshOrdinal(from, to)
}

// RequestMeshInPort returns the input port at partition `at` fed by the
// request mesh edge from partition `from`.
func (m PortMap) RequestMeshInPort(at, from int) int {
	return m.d.Ratio[m.d.NumLayers-1] + m.MeshOrdinal(at, from)
}

// ReplyMeshOutPort returns the crossbar output carrying reply traffic from
// partition `from` to partition `to`.
func (m PortMap) ReplyMeshOutPort(from, to int) int {
	return m.d.Ratio[m.d.NumLayers-1] + m.MeshOrdinal(from, to)
}

// ReplyMeshInPort returns the input port at partition `at` fed by the reply
// mesh edge from partition `from`.
func (m PortMap) ReplyMeshInPort(at, from int) int {
	return m.d.L2PerPartition + m.MeshOrdinal(at, from)
}

// DownPort returns the reply output that descends toward the SM dest from a
// router in the given layer. At the crossbar it selects the child sub-tree
// containing the SM; below, it reads the base-ratio digit of the SM index at
// position layer.
func (m PortMap) DownPort(layer, dest int) int {
	if layer == m.d.NumLayers-1 {
		childSpan := m.d.SMPerPartition / m.d.Ratio[layer]
		return (dest % m.d.SMPerPartition) / childSpan
	}
	group := 1
	for i := 0; i < layer; i++ {
		group *= m.d.Ratio[i]
	}
	return (dest % (group * m.d.Ratio[layer])) / group
}

// SMRouterAddr returns the layer-0 router address serving SM node s.
func (m PortMap) SMRouterAddr(s int) int {
	return s / m.d.Ratio[0]
}

// SMTerminalPort returns the bottom port of SM node s at its layer-0 router.
func (m PortMap) SMTerminalPort(s int) int {
	return s % m.d.Ratio[0]
}

// L2Partition returns the partition owning L2 slice node n.
func (m PortMap) L2Partition(n int) int {
	return (n - m.d.NumSMs) / m.d.L2PerPartition
}

// L2TerminalPort returns the top port of L2 slice node n at its crossbar.
func (m PortMap) L2TerminalPort(n int) int {
	return (n - m.d.NumSMs) % m.d.L2PerPartition
}
