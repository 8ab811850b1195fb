// Package mtc decodes MIDI Time Code: both the quarter-frame stream
// carried by timecode quarter-frame events and the full-frame form
// carried by a Universal Realtime System Exclusive message.
package mtc

// Rate is the SMPTE frame rate carried by the two rate bits of quarter-
// frame piece 7 and by a full-frame message's rate field.
type Rate uint8

const (
	Rate24 Rate = iota
	Rate25
	Rate29Drop // 29.97 fps drop-frame
	Rate30
)

// maxFrame is the carried frame count's exclusive upper bound for r.
func (r Rate) maxFrame() int {
	switch r {
	case Rate24:
		return 24
	case Rate25:
		return 25
	default:
		return 30
	}
}

func (r Rate) String() string {
	switch r {
	case Rate24:
		return "24"
	case Rate25:
		return "25"
	case Rate29Drop:
		return "29.97d"
	case Rate30:
		return "30"
	default:
		return "?"
	}
}

// compatible reports whether a and b share the same nominal frame count:
// 29.97 drop-frame and 30 fps both carry 30 frames/second and so are
// direct equivalents, but 24 and 25 are not interchangeable with
// anything else.
func compatible(a, b Rate) bool { return a.maxFrame() == b.maxFrame() }

// Direction is the inferred travel direction of a quarter-frame stream.
type Direction uint8

const (
	Ambiguous Direction = iota
	Forwards
	Backwards
)

func (d Direction) String() string {
	switch d {
	case Forwards:
		return "Forwards"
	case Backwards:
		return "Backwards"
	default:
		return "Ambiguous"
	}
}

// EmissionSource distinguishes a quarter-frame-derived emission from a
// full-frame snap.
type EmissionSource uint8

const (
	SourceQuarterFrame EmissionSource = iota
	SourceFullFrame
)

func (s EmissionSource) String() string {
	if s == SourceFullFrame {
		return "FullFrame"
	}
	return "QuarterFrame"
}

// Timecode is a fully-resolved SMPTE time position.
type Timecode struct {
	Hours, Minutes, Seconds, Frames uint8
	// Subframes is expressed on a 1/100-of-a-frame base regardless of
	// Rate.
	Subframes uint8
	Rate      Rate
}

// Emission is what the decoder produces each time it updates the
// current timecode.
type Emission struct {
	Timecode     Timecode
	Source       EmissionSource
	Direction    Direction
	FrameChanged bool
}
