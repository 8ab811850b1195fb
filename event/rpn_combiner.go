package event

import "github.com/PKsong/MIDIKit/value"

// ParamCombiner coalesces a stream of raw Control Change events into RPN/
// NRPN transactions. RPN and NRPN share the same Data Entry MSB/LSB (CC 6,
// CC 38) and Data Increment/Decrement (CC 96, CC 97) controllers; which
// parameter family is "active" is whichever of the RPN (CC 101/100) or
// NRPN (CC 99/98) select pair was most recently sent.
//
// A ParamCombiner is single-writer: exactly one goroutine should call Feed
// for a given channel.
type ParamCombiner struct {
	haveParam bool
	nrpn      bool
	param     value.Pair7

	haveMSB bool
	msb     value.U7
}

// NewRPNCombiner and NewNRPNCombiner both return a ready ParamCombiner: the
// two parameter families share one state machine (see type doc), so a
// single combiner instance serves a channel's entire (N)RPN traffic.
func NewRPNCombiner() *ParamCombiner  { return &ParamCombiner{} }
func NewNRPNCombiner() *ParamCombiner { return &ParamCombiner{} }

// Feed processes one raw CC event. It returns (event, true) when the CC
// completed an RPN or NRPN transaction, or (zero, false) when the CC was
// absorbed into combiner state without yet producing a value.
func (c *ParamCombiner) Feed(cc Event) (Event, bool) {
	if cc.Kind != KindCC {
		return Event{}, false
	}
	switch cc.Controller {
	case ControllerRPNMSB:
		c.param.MSB = cc.Value.AsU7()
		c.nrpn = false
		c.haveParam = true
		c.haveMSB = false
		return Event{}, false
	case ControllerRPNLSB:
		c.param.LSB = cc.Value.AsU7()
		c.nrpn = false
		c.haveParam = true
		c.haveMSB = false
		return Event{}, false
	case ControllerNRPNMSB:
		c.param.MSB = cc.Value.AsU7()
		c.nrpn = true
		c.haveParam = true
		c.haveMSB = false
		return Event{}, false
	case ControllerNRPNLSB:
		c.param.LSB = cc.Value.AsU7()
		c.nrpn = true
		c.haveParam = true
		c.haveMSB = false
		return Event{}, false
	case ControllerDataEntryMSB:
		c.msb = cc.Value.AsU7()
		c.haveMSB = true
		return Event{}, false
	case ControllerDataEntryLSB:
		if !c.haveParam || !c.haveMSB {
			return Event{}, false
		}
		lsb := cc.Value.AsU7()
		v14 := value.FromPair14(c.msb, lsb)
		// Carried at 16-bit width via Min-Center-Max scaling, the same
		// convention the codecs use for every 14-bit wire quantity, so
		// combining the transaction midi1.Encode produced for an RPN/NRPN
		// event reconstructs that event's ParamValue exactly.
		v := NewValue16(value.ScaleU14ToU16(v14))
		return c.emit(cc.Group, cc.Channel, v, ChangeAbsolute), true
	case ControllerDataIncrement:
		if !c.haveParam {
			return Event{}, false
		}
		return c.emit(cc.Group, cc.Channel, NewValue7(cc.Value.AsU7()), ChangeRelative), true
	case ControllerDataDecrement:
		if !c.haveParam {
			return Event{}, false
		}
		return c.emit(cc.Group, cc.Channel, NewValue7(cc.Value.AsU7()), ChangeRelative), true
	}
	return Event{}, false
}

func (c *ParamCombiner) emit(group, channel value.U4, v Value, change Change) Event {
	if c.nrpn {
		return NRPN(group, channel, c.param, v, change)
	}
	return RPN(group, channel, c.param, v, change)
}

// Reset clears all combiner state.
func (c *ParamCombiner) Reset() { *c = ParamCombiner{} }
