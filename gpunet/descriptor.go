// Package gpunet builds hierarchical GPU on-chip networks and provides the
// deterministic routing function that drives flits through them. The
// hierarchy runs from SM terminals through per-layer aggregation routers up
// to partition crossbars, which eject into L2 slices and, when partitioning
// is enabled, exchange traffic over a fully-connected inter-partition mesh.
// Request and reply traffic travel on two structurally identical but
// independent sub-networks.
package gpunet

// A Descriptor normalizes the configuration into per-layer counts, offsets,
// and port widths. It is immutable after Build and shared read-only by the
// topology builder and the routing function.
type Descriptor struct {
	NumLayers   int // L; layer 0 sits just above the SMs, layer L-1 is the crossbar
	NumSMs      int
	NumL2Slices int

	Ratio  []int // fan-in per layer
	Units  []int // routers per layer in one sub-network
	Offset []int // cumulative router id offset per layer

	// Speedup[l] is the bandwidth of edges between layer l-1 and layer l;
	// Speedup[L] covers the crossbar-to-L2 ejection edges. Speedup[0] is
	// fixed to 1 for SM inject/eject.
	Speedup               []int
	InterPartitionSpeedup int
	Partitioned           bool

	NumVCs int

	NumPartitions  int
	SMPerPartition int
	L2PerPartition int
}

// Nodes returns the total terminal count. SMs occupy [0, NumSMs), L2 slices
// [NumSMs, Nodes).
func (d *Descriptor) Nodes() int {
	return d.NumSMs + d.NumL2Slices
}

// RoutersPerSubnet returns S, the router count of one sub-network.
func (d *Descriptor) RoutersPerSubnet() int {
	return d.Offset[d.NumLayers-1] + d.Units[d.NumLayers-1]
}

// NumRouters returns the total router count across both sub-networks.
func (d *Descriptor) NumRouters() int {
	return 2 * d.RoutersPerSubnet()
}

// ChannelsPerSubnet returns C: one inter-layer channel per non-top router
// plus the P(P-1) directed mesh edges.
func (d *Descriptor) ChannelsPerSubnet() int {
	return d.Offset[d.NumLayers-1] +
		d.NumPartitions*(d.NumPartitions-1)
}

// NumChannels returns the total channel count across both sub-networks.
func (d *Descriptor) NumChannels() int {
	return 2 * d.ChannelsPerSubnet()
}

// IsSM reports whether node is a compute terminal.
func (d *Descriptor) IsSM(node int) bool {
	return node >= 0 && node < d.NumSMs
}

// DescriptorBuilder can build hierarchy descriptors.
type DescriptorBuilder struct {
	numLayers             int
	numSMs                int
	numL2Slices           int
	ratio                 []int
	speedup               []int
	interPartitionSpeedup int
	partitioned           bool
	numVCs                int
}

// MakeDescriptorBuilder creates a builder with default wire properties.
func MakeDescriptorBuilder() DescriptorBuilder {
	return DescriptorBuilder{
		interPartitionSpeedup: 1,
		numVCs:                4,
	}
}

// WithLayers sets L, the number of hierarchy layers between an SM and its
// partition crossbar.
func (b DescriptorBuilder) WithLayers(l int) DescriptorBuilder {
	b.numLayers = l
	return b
}

// WithSMNodes sets the number of compute terminals.
func (b DescriptorBuilder) WithSMNodes(n int) DescriptorBuilder {
	b.numSMs = n
	return b
}

// WithL2Nodes sets the number of memory-slice terminals.
func (b DescriptorBuilder) WithL2Nodes(n int) DescriptorBuilder {
	b.numL2Slices = n
	return b
}

// WithRatios sets the fan-in of each layer.
func (b DescriptorBuilder) WithRatios(ratio ...int) DescriptorBuilder {
	b.ratio = append([]int(nil), ratio...)
	return b
}

// WithSpeedups sets the per-layer channel bandwidth multipliers. A vector
// shorter than L+1 is right-padded with 1.
func (b DescriptorBuilder) WithSpeedups(speedup ...int) DescriptorBuilder {
	b.speedup = append([]int(nil), speedup...)
	return b
}

// WithInterPartitionSpeedup sets the bandwidth of mesh edges.
func (b DescriptorBuilder) WithInterPartitionSpeedup(s int) DescriptorBuilder {
	b.interPartitionSpeedup = s
	return b
}

// WithPartitioned enables the top-layer partition mesh.
func (b DescriptorBuilder) WithPartitioned(p bool) DescriptorBuilder {
	b.partitioned = p
	return b
}

// WithNumVCs sets the virtual-channel count. It must be even: read traffic
// owns the lower half, write traffic the upper half.
func (b DescriptorBuilder) WithNumVCs(n int) DescriptorBuilder {
	b.numVCs = n
	return b
}

// Build validates the configuration and derives the descriptor. Every
// division in the hierarchy must be exact; validation is centralized here so
// downstream index computations can presume it.
func (b DescriptorBuilder) Build() (*Descriptor, error) {
	if b.numLayers < 1 {
		return nil, configErrorf("need at least one layer, got %d", b.numLayers)
	}
	if b.numSMs < 1 || b.numL2Slices < 1 {
		return nil, configErrorf("need sm and l2slice terminals, got %d and %d",
			b.numSMs, b.numL2Slices)
	}
	if len(b.ratio) != b.numLayers {
		return nil, configErrorf("ratio vector has %d entries, want %d",
			len(b.ratio), b.numLayers)
	}
	for l, r := range b.ratio {
		if r <= 0 {
			return nil, configErrorf("ratio[%d] = %d is not positive", l, r)
		}
	}
	if b.interPartitionSpeedup <= 0 {
		return nil, configErrorf("inter-partition speedup %d is not positive",
			b.interPartitionSpeedup)
	}
	if b.numVCs < 2 || b.numVCs%2 != 0 {
		return nil, configErrorf("num VCs must be even and at least 2, got %d",
			b.numVCs)
	}

	d := &Descriptor{
		NumLayers:             b.numLayers,
		NumSMs:                b.numSMs,
		NumL2Slices:           b.numL2Slices,
		Ratio:                 append([]int(nil), b.ratio...),
		Units:                 make([]int, b.numLayers),
		Offset:                make([]int, b.numLayers),
		InterPartitionSpeedup: b.interPartitionSpeedup,
		Partitioned:           b.partitioned,
		NumVCs:                b.numVCs,
	}

	prev := b.numSMs
	for l := 0; l < b.numLayers; l++ {
		if prev%b.ratio[l] != 0 {
			return nil, configErrorf(
				"layer %d: %d units do not divide by ratio %d",
				l, prev, b.ratio[l])
		}
		d.Units[l] = prev / b.ratio[l]
		if l > 0 {
			d.Offset[l] = d.Offset[l-1] + d.Units[l-1]
		}
		prev = d.Units[l]
	}

	d.NumPartitions = d.Units[b.numLayers-1]
	if !b.partitioned && d.NumPartitions != 1 {
		return nil, configErrorf(
			"partitioning disabled but the top layer has %d routers",
			d.NumPartitions)
	}
	if b.numL2Slices%d.NumPartitions != 0 {
		return nil, configErrorf("%d L2 slices do not divide across %d partitions",
			b.numL2Slices, d.NumPartitions)
	}
	d.SMPerPartition = b.numSMs / d.NumPartitions
	d.L2PerPartition = b.numL2Slices / d.NumPartitions

	d.Speedup = make([]int, b.numLayers+1)
	for l := range d.Speedup {
		d.Speedup[l] = 1
		if l < len(b.speedup) {
			d.Speedup[l] = b.speedup[l]
		}
		if d.Speedup[l] <= 0 {
			return nil, configErrorf("speedup[%d] = %d is not positive",
				l, d.Speedup[l])
		}
	}
	// SM inject/eject always runs at unit bandwidth.
	d.Speedup[0] = 1

	return d, nil
}
