// Package noc defines the commonly used data structures for flit/credit
// based on-chip networks.
package noc

import (
	"github.com/sarchlab/akita/v4/sim"
)

// FlitType tags the protocol class of a flit.
type FlitType int

const (
	ReadRequest FlitType = iota
	ReadReply
	WriteRequest
	WriteReply
)

// Name returns the name of the flit type.
func (t FlitType) Name() string {
	switch t {
	case ReadRequest:
		return "ReadRequest"
	case ReadReply:
		return "ReadReply"
	case WriteRequest:
		return "WriteRequest"
	case WriteReply:
		return "WriteReply"
	default:
		panic("invalid flit type")
	}
}

// IsRead reports whether the flit belongs to the read class. Read flits use
// the lower half of the VC space, write flits the upper half.
func (t FlitType) IsRead() bool {
	return t == ReadRequest || t == ReadReply
}

// A Flit is the granularity of a routing decision. Source and Dest are
// terminal node indices: SM nodes first, then L2 slices.
type Flit struct {
	sim.MsgMeta

	Source int
	Dest   int
	Type   FlitType
	Hops   int
	VC     int
	Watch  bool
}

// Meta returns the meta data of the flit.
func (f *Flit) Meta() *sim.MsgMeta {
	return &f.MsgMeta
}

// Clone creates a copy of the flit with a fresh ID.
func (f *Flit) Clone() sim.Msg {
	clone := *f
	clone.ID = sim.GetIDGenerator().Generate()
	return &clone
}

// FlitBuilder is a factory for Flit.
type FlitBuilder struct {
	src, dest int
	typ       FlitType
	watch     bool
}

// WithSource sets the source terminal node of the flit.
func (b FlitBuilder) WithSource(src int) FlitBuilder {
	b.src = src
	return b
}

// WithDest sets the destination terminal node of the flit.
func (b FlitBuilder) WithDest(dest int) FlitBuilder {
	b.dest = dest
	return b
}

// WithType sets the protocol class of the flit.
func (b FlitBuilder) WithType(t FlitType) FlitBuilder {
	b.typ = t
	return b
}

// WithWatch marks the flit so that every routing decision on it is traced.
func (b FlitBuilder) WithWatch() FlitBuilder {
	b.watch = true
	return b
}

// Build creates a Flit. The VC is unassigned until the first router admits
// the flit into a lane.
func (b FlitBuilder) Build() *Flit {
	return &Flit{
		MsgMeta: sim.MsgMeta{
			ID: sim.GetIDGenerator().Generate(),
		},
		Source: b.src,
		Dest:   b.dest,
		Type:   b.typ,
		VC:     -1,
		Watch:  b.watch,
	}
}

// A Credit travels on the credit lane paired with a flit channel, returning
// one buffer slot for the given VC to the upstream router.
type Credit struct {
	VC int
}
