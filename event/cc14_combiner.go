package event

import "github.com/PKsong/MIDIKit/value"

// CC14Combiner coalesces an MSB CC (0-31) and its paired LSB CC (32-63)
// into one logical 14-bit CC event. It is disabled by default at the call
// site — constructing one is opting in. Only one outstanding MSB per
// controller number is tracked; a fresh MSB simply overwrites any previous
// one still waiting for its LSB. There is no time-window enforcement here:
// explicit, simple state beats a configurable timer, and a caller wanting
// a window simply stops feeding stale MSBs into the combiner.
type CC14Combiner struct {
	pending [32]value.U7
	have    [32]bool
}

// NewCC14Combiner returns a ready combiner.
func NewCC14Combiner() *CC14Combiner { return &CC14Combiner{} }

// Feed processes one CC event. It returns (event, true) with Kind KindCC
// and a Width16 Value (the 14-bit pair up-scaled via Min-Center-Max, the
// same convention the codecs use for every 14-bit wire quantity) when cc
// completed an MSB/LSB pair, or (zero, false) otherwise (including for
// every CC outside 0-63, which is passed through unmodified by the
// caller).
func (c *CC14Combiner) Feed(cc Event) (Event, bool) {
	if cc.Kind != KindCC {
		return Event{}, false
	}
	n := cc.Controller.Number()
	switch {
	case n <= 31:
		c.pending[n] = cc.Value.AsU7()
		c.have[n] = true
		return Event{}, false
	case n >= 32 && n <= 63:
		msbIdx := n - 32
		if !c.have[msbIdx] {
			return Event{}, false
		}
		v14 := value.FromPair14(c.pending[msbIdx], cc.Value.AsU7())
		c.have[msbIdx] = false
		out := CC(cc.Group, cc.Channel, Controller(msbIdx), NewValue16(value.ScaleU14ToU16(v14)))
		return out, true
	default:
		return Event{}, false
	}
}

// Reset clears all pending MSB state.
func (c *CC14Combiner) Reset() { *c = CC14Combiner{} }
