package mtc

import (
	"sync"

	"github.com/PKsong/MIDIKit/event"
	"github.com/PKsong/MIDIKit/value"
)

// Option configures a Decoder at construction time.
type Option func(*Decoder)

// WithTargetRate configures a local display rate. When it is compatible
// with the incoming MTC rate, emitted timecodes are expressed in it
// instead of the wire rate.
func WithTargetRate(r Rate) Option {
	return func(d *Decoder) { d.targetRate, d.hasTargetRate = r, true }
}

// Decoder is a single-writer, multi-reader MIDI Time Code state machine.
// Exactly one producer goroutine should call Feed*; any number of reader
// goroutines may call Snapshot concurrently.
type Decoder struct {
	mu sync.RWMutex

	// Quarter-frame register bank: one nibble + received flag per piece.
	registers [8]uint8
	received  [8]bool
	lastPiece int // -1 until the first QF arrives

	direction Direction

	haveSnapshot      bool
	snapshot          Timecode
	snapshotDirection Direction
	deltaQFs          int

	current      Timecode
	haveCurrent  bool
	lastEmission Emission
	haveEmitted  bool

	targetRate    Rate
	hasTargetRate bool
}

// NewDecoder constructs an idle decoder.
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{lastPiece: -1}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// FeedEvent accepts a TimecodeQuarterFrame event or a MIDI Time Code
// full-frame Universal Realtime SysEx7 event (any device ID, sub-IDs
// 01 01); any other Kind is a no-op (ok=false, err=nil) so callers can feed
// an unfiltered event stream directly.
func (d *Decoder) FeedEvent(e event.Event) (Emission, bool, error) {
	switch e.Kind {
	case event.KindTimecodeQuarterFrame:
		return d.FeedQuarterFrame(e.DataByte)
	case event.KindUniversalSysEx7:
		if e.Realm != event.RealmRealtime || e.SubID1 != 0x01 || e.SubID2 != 0x01 {
			return Emission{}, false, nil
		}
		if len(e.Data) < 4 {
			return Emission{}, false, event.NewMalformed(0, "truncated MTC full-frame message")
		}
		return d.FeedFullFrame(e.Data[0], e.Data[1], e.Data[2], e.Data[3]), true, nil
	default:
		return Emission{}, false, nil
	}
}

// FeedQuarterFrame processes one quarter-frame data byte: bits 6-4 are
// the piece index (0-7), bits 3-0 the nibble value.
//
// The eight pieces carry, in order: frames LS nibble, frames MS bit,
// seconds LS nibble, seconds MS 2 bits, minutes LS nibble, minutes MS 2
// bits, hours LS nibble, (rate<<1)|hours MS bit.
func (d *Decoder) FeedQuarterFrame(dataByte value.U7) (Emission, bool, error) {
	piece := int(dataByte>>4) & 0x7
	nibble := uint8(dataByte & 0xF)

	d.mu.Lock()
	defer d.mu.Unlock()

	d.registers[piece] = nibble
	d.received[piece] = true
	d.updateDirection(piece)
	d.lastPiece = piece

	complete := true
	for _, r := range d.received {
		if !r {
			complete = false
			break
		}
	}

	if piece == 0 && complete {
		d.snapshot = decodeRegisters(d.registers)
		d.snapshotDirection = d.direction
		d.deltaQFs = 0
		d.haveSnapshot = true
	} else if d.haveSnapshot {
		switch d.direction {
		case Forwards:
			d.deltaQFs++
		case Backwards:
			d.deltaQFs--
		}
	}

	if !d.haveSnapshot {
		return Emission{}, false, nil
	}

	tc := d.resolveEmittedTimecode(piece)
	emission := Emission{
		Timecode:     tc,
		Source:       SourceQuarterFrame,
		Direction:    d.direction,
		FrameChanged: !d.haveEmitted || !sameFrame(tc, d.current),
	}
	d.current, d.haveCurrent = tc, true
	d.lastEmission, d.haveEmitted = emission, true
	return emission, true, nil
}

// updateDirection infers travel direction from successive piece
// indices modulo 8.
func (d *Decoder) updateDirection(piece int) {
	if d.lastPiece < 0 {
		return
	}
	switch {
	case piece == (d.lastPiece+1)%8:
		d.direction = Forwards
	case piece == (d.lastPiece+7)%8:
		d.direction = Backwards
	default:
		d.direction = Ambiguous
	}
}

// resolveEmittedTimecode applies the ±2-frame offset and the target-rate
// scaling/interpolation rules to the captured snapshot.
func (d *Decoder) resolveEmittedTimecode(piece int) Timecode {
	offset := 0
	switch {
	case d.snapshotDirection == Forwards && d.deltaQFs >= 0:
		offset = 2
	case d.snapshotDirection == Backwards:
		offset = -2
	}
	// Each half-window of four quarter-frames spans one whole frame, so
	// the accumulated delta advances (or retreats) the emitted frame as
	// the stream crosses each half-window boundary. Without this the
	// subframe interpolation below would run 0..75 twice per window and
	// emission would not be monotonic on a forwards stream.
	offset += d.deltaQFs / 4

	outRate := d.snapshot.Rate
	if d.hasTargetRate && compatible(d.targetRate, d.snapshot.Rate) {
		outRate = d.targetRate
	}

	hh, mm, ss, ff := addFrames(d.snapshot.Hours, d.snapshot.Minutes, d.snapshot.Seconds, d.snapshot.Frames, offset, outRate)
	subframes := uint8((piece % 4) * 100 / 4)

	return Timecode{Hours: hh, Minutes: mm, Seconds: ss, Frames: ff, Subframes: subframes, Rate: outRate}
}

// FeedFullFrame snaps the decoder directly to a carried timecode. The QF
// buffer is left untouched so a subsequent QF stream can resume once it
// completes another cycle.
func (d *Decoder) FeedFullFrame(hourByte, mm, ss, ff byte) Emission {
	rr := (hourByte >> 5) & 0x3
	var rate Rate
	switch rr {
	case 0x00:
		rate = Rate24
	case 0x01:
		rate = Rate25
	case 0x02:
		rate = Rate29Drop
	default:
		rate = Rate30
	}
	hh := hourByte & 0x1F

	d.mu.Lock()
	defer d.mu.Unlock()

	tc := Timecode{Hours: hh, Minutes: mm, Seconds: ss, Frames: ff, Rate: rate}
	emission := Emission{
		Timecode:     tc,
		Source:       SourceFullFrame,
		Direction:    d.direction,
		FrameChanged: !d.haveEmitted || !sameFrame(tc, d.current),
	}
	d.current, d.haveCurrent = tc, true
	d.lastEmission, d.haveEmitted = emission, true
	return emission
}

// sameFrame reports whether a and b name the same whole frame,
// disregarding subframe interpolation.
func sameFrame(a, b Timecode) bool {
	return a.Hours == b.Hours && a.Minutes == b.Minutes &&
		a.Seconds == b.Seconds && a.Frames == b.Frames
}

// LastEmission returns the most recent Emission and whether one has been
// produced yet. Like Snapshot, safe for any number of reader goroutines.
func (d *Decoder) LastEmission() (Emission, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lastEmission, d.haveEmitted
}

// Snapshot returns the most recently emitted timecode and whether the
// decoder has emitted anything yet. Safe to call concurrently with Feed*
// from any number of reader goroutines.
func (d *Decoder) Snapshot() (Timecode, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.current, d.haveCurrent
}

// ResetQFBuffer clears the eight nibble registers and received flags
// without touching the resolved current timecode.
func (d *Decoder) ResetQFBuffer() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.registers = [8]uint8{}
	d.received = [8]bool{}
	d.lastPiece = -1
	d.direction = Ambiguous
	d.haveSnapshot = false
	d.deltaQFs = 0
}

// ResetTimecodeValues zeros the current timecode's position fields
// without clearing the last-known rate.
func (d *Decoder) ResetTimecodeValues() {
	d.mu.Lock()
	defer d.mu.Unlock()
	rate := d.current.Rate
	d.current = Timecode{Rate: rate}
	d.haveCurrent = false
	d.haveEmitted = false
}

func decodeRegisters(r [8]uint8) Timecode {
	frames := r[0] | ((r[1] & 0x1) << 4)
	seconds := r[2] | ((r[3] & 0x3) << 4)
	minutes := r[4] | ((r[5] & 0x3) << 4)
	hours := r[6] | ((r[7] & 0x1) << 4)
	rr := (r[7] >> 1) & 0x3
	var rate Rate
	switch rr {
	case 0x00:
		rate = Rate24
	case 0x01:
		rate = Rate25
	case 0x02:
		rate = Rate29Drop
	default:
		rate = Rate30
	}
	return Timecode{Hours: hours, Minutes: minutes, Seconds: seconds, Frames: frames, Rate: rate}
}

// addFrames adds (possibly negative) offset frames to hh:mm:ss:ff,
// carrying into seconds/minutes/hours using rate's frame count and
// wrapping hours at 24.
func addFrames(hh, mm, ss, ff uint8, offset int, rate Rate) (uint8, uint8, uint8, uint8) {
	max := rate.maxFrame()
	total := int(hh)*3600*max + int(mm)*60*max + int(ss)*max + int(ff) + offset
	for total < 0 {
		total += 24 * 3600 * max
	}
	total %= 24 * 3600 * max

	f := total % max
	total /= max
	s := total % 60
	total /= 60
	m := total % 60
	total /= 60
	h := total % 24
	return uint8(h), uint8(m), uint8(s), uint8(f)
}
