package gpunet

// WireLatency returns the cycle latency of a wire at the given layer. The
// policy is monotone in depth: edges widen physically as the hierarchy fans
// out, so an edge into layer l costs 1+l cycles, and crossing the partition
// mesh costs one more. Terminal inject/eject channels are layer 0.
func (d *Descriptor) WireLatency(layer int, interPartition bool) int {
	latency := 1 + layer
	if interPartition {
		latency++
	}
	return latency
}

// ChannelBandwidth returns the flits-per-cycle bandwidth of an edge into the
// given layer. Mesh edges use the inter-partition speedup; layer L covers
// the crossbar-to-L2 ejection edges.
func (d *Descriptor) ChannelBandwidth(layer int, interPartition bool) int {
	if interPartition {
		return d.InterPartitionSpeedup
	}
	return d.Speedup[layer]
}
