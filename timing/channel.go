// Package timing supplies the cycle-level collaborators that the topology
// builder wires: flit and credit channels with configurable wire latency and
// bandwidth, a router shell that consumes the routing function, and the
// fabric that pre-allocates all of them.
package timing

import (
	"sync"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/gpunoc/noc"
)

// wakeable receives a tick when a channel has something ready for it.
type wakeable interface {
	TickNow()
}

// A Channel is one directional flit lane. Flits entering it mature after the
// wire latency; at most bandwidth flits may enter per cycle.
type Channel struct {
	*sim.TickingComponent

	lock      sync.Mutex
	latency   int
	bandwidth int

	cycle        int64
	enteredCycle int64
	entered      int

	inFlight []flitInFlight
	ready    []*noc.Flit
	sink     wakeable
}

type flitInFlight struct {
	flit    *noc.Flit
	readyAt int64
}

// NewChannel creates a flit channel with unit latency and bandwidth.
func NewChannel(name string, engine sim.Engine, freq sim.Freq) *Channel {
	ch := &Channel{
		latency:   1,
		bandwidth: 1,
	}
	ch.TickingComponent = sim.NewTickingComponent(name, engine, freq, ch)
	return ch
}

// SetLatency sets the wire latency in cycles.
func (ch *Channel) SetLatency(cycles int) {
	if cycles <= 0 {
		panic("channel latency must be positive")
	}
	ch.lock.Lock()
	defer ch.lock.Unlock()
	ch.latency = cycles
}

// SetBandwidth sets the number of flits that may enter per cycle.
func (ch *Channel) SetBandwidth(flitsPerCycle int) {
	if flitsPerCycle <= 0 {
		panic("channel bandwidth must be positive")
	}
	ch.lock.Lock()
	defer ch.lock.Unlock()
	ch.bandwidth = flitsPerCycle
}

// Latency returns the configured wire latency.
func (ch *Channel) Latency() int {
	ch.lock.Lock()
	defer ch.lock.Unlock()
	return ch.latency
}

// Bandwidth returns the configured bandwidth.
func (ch *Channel) Bandwidth() int {
	ch.lock.Lock()
	defer ch.lock.Unlock()
	return ch.bandwidth
}

// Push enters a flit into the wire. It fails when the per-cycle bandwidth is
// exhausted; the producer retries on its next tick.
func (ch *Channel) Push(f *noc.Flit) bool {
	ch.lock.Lock()

	if ch.enteredCycle == ch.cycle && ch.entered >= ch.bandwidth {
		ch.lock.Unlock()
		return false
	}
	if ch.enteredCycle != ch.cycle {
		ch.enteredCycle = ch.cycle
		ch.entered = 0
	}
	ch.entered++
	ch.inFlight = append(ch.inFlight, flitInFlight{
		flit:    f,
		readyAt: ch.cycle + int64(ch.latency),
	})
	ch.lock.Unlock()

	ch.TickNow()
	return true
}

// Pop removes the oldest matured flit, or nil.
func (ch *Channel) Pop() *noc.Flit {
	ch.lock.Lock()
	defer ch.lock.Unlock()

	if len(ch.ready) == 0 {
		return nil
	}
	f := ch.ready[0]
	ch.ready = ch.ready[1:]
	return f
}

// Peek returns the oldest matured flit without removing it, or nil.
func (ch *Channel) Peek() *noc.Flit {
	ch.lock.Lock()
	defer ch.lock.Unlock()

	if len(ch.ready) == 0 {
		return nil
	}
	return ch.ready[0]
}

// Tick advances the wire by one cycle, maturing flits that completed their
// latency.
func (ch *Channel) Tick() (madeProgress bool) {
	ch.lock.Lock()

	ch.cycle++
	matured := false
	for len(ch.inFlight) > 0 && ch.inFlight[0].readyAt <= ch.cycle {
		ch.ready = append(ch.ready, ch.inFlight[0].flit)
		ch.inFlight = ch.inFlight[1:]
		matured = true
	}
	pending := len(ch.inFlight) > 0
	sink := ch.sink
	ch.lock.Unlock()

	if matured && sink != nil {
		sink.TickNow()
	}

	return matured || pending
}

func (ch *Channel) setSink(s wakeable) {
	ch.lock.Lock()
	defer ch.lock.Unlock()
	ch.sink = s
}

// A CreditChannel is the lane paired with a flit channel, carrying buffer
// credits in the opposite direction with the same wire latency. Its
// bandwidth is recorded but not enforced: credits enter without a per-cycle
// cap.
type CreditChannel struct {
	*sim.TickingComponent

	lock      sync.Mutex
	latency   int
	bandwidth int

	cycle    int64
	inFlight []creditInFlight
	ready    []noc.Credit
	sink     wakeable
}

type creditInFlight struct {
	credit  noc.Credit
	readyAt int64
}

// NewCreditChannel creates a credit channel with unit latency and bandwidth.
func NewCreditChannel(name string, engine sim.Engine, freq sim.Freq) *CreditChannel {
	ch := &CreditChannel{
		latency:   1,
		bandwidth: 1,
	}
	ch.TickingComponent = sim.NewTickingComponent(name, engine, freq, ch)
	return ch
}

// SetLatency sets the wire latency in cycles.
func (ch *CreditChannel) SetLatency(cycles int) {
	if cycles <= 0 {
		panic("credit channel latency must be positive")
	}
	ch.lock.Lock()
	defer ch.lock.Unlock()
	ch.latency = cycles
}

// SetBandwidth records the per-cycle credit bandwidth; Push does not cap
// credits by it.
func (ch *CreditChannel) SetBandwidth(flitsPerCycle int) {
	if flitsPerCycle <= 0 {
		panic("credit channel bandwidth must be positive")
	}
	ch.lock.Lock()
	defer ch.lock.Unlock()
	ch.bandwidth = flitsPerCycle
}

// Push enters a credit into the wire.
func (ch *CreditChannel) Push(c noc.Credit) {
	ch.lock.Lock()
	ch.inFlight = append(ch.inFlight, creditInFlight{
		credit:  c,
		readyAt: ch.cycle + int64(ch.latency),
	})
	ch.lock.Unlock()

	ch.TickNow()
}

// Pop removes the oldest matured credit. The second return is false when
// none is ready.
func (ch *CreditChannel) Pop() (noc.Credit, bool) {
	ch.lock.Lock()
	defer ch.lock.Unlock()

	if len(ch.ready) == 0 {
		return noc.Credit{}, false
	}
	c := ch.ready[0]
	ch.ready = ch.ready[1:]
	return c, true
}

// Tick advances the wire by one cycle.
func (ch *CreditChannel) Tick() (madeProgress bool) {
	ch.lock.Lock()

	ch.cycle++
	matured := false
	for len(ch.inFlight) > 0 && ch.inFlight[0].readyAt <= ch.cycle {
		ch.ready = append(ch.ready, ch.inFlight[0].credit)
		ch.inFlight = ch.inFlight[1:]
		matured = true
	}
	pending := len(ch.inFlight) > 0
	sink := ch.sink
	ch.lock.Unlock()

	if matured && sink != nil {
		sink.TickNow()
	}

	return matured || pending
}

func (ch *CreditChannel) setSink(s wakeable) {
	ch.lock.Lock()
	defer ch.lock.Unlock()
	ch.sink = s
}
