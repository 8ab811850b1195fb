package mtc

import (
	"testing"

	"github.com/PKsong/MIDIKit/event"
	"github.com/PKsong/MIDIKit/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quarterFrames builds the 8 data bytes for one MTC cycle at
// hh:mm:ss:ff under rate, piece 0 first.
func quarterFrames(hh, mm, ss, ff uint8, rate Rate) []value.U7 {
	var rr uint8
	switch rate {
	case Rate24:
		rr = 0
	case Rate25:
		rr = 1
	case Rate29Drop:
		rr = 2
	default:
		rr = 3
	}
	pieces := [8]uint8{
		ff & 0xF,
		(ff >> 4) & 0x1,
		ss & 0xF,
		(ss >> 4) & 0x3,
		mm & 0xF,
		(mm >> 4) & 0x3,
		hh & 0xF,
		(rr << 1) | ((hh >> 4) & 0x1),
	}
	out := make([]value.U7, 8)
	for i, nibble := range pieces {
		out[i] = value.U7(uint8(i)<<4 | nibble)
	}
	return out
}

func TestNoEmissionBeforeBufferComplete(t *testing.T) {
	d := NewDecoder()
	frames := quarterFrames(1, 2, 3, 4, Rate30)
	for _, b := range frames[:7] {
		_, ok, err := d.FeedQuarterFrame(b)
		require.NoError(t, err)
		assert.False(t, ok)
	}
}

func TestEmitsOnceBufferCompletesAtNextPieceZero(t *testing.T) {
	d := NewDecoder()
	frames := quarterFrames(1, 2, 3, 4, Rate30)
	for _, b := range frames {
		_, ok, err := d.FeedQuarterFrame(b)
		require.NoError(t, err)
		assert.False(t, ok)
	}
	// Buffer is now complete; the *next* piece-0 QF captures the snapshot.
	next := quarterFrames(1, 2, 3, 5, Rate30)
	emission, ok, err := d.FeedQuarterFrame(next[0])
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint8(1), emission.Timecode.Hours)
	assert.Equal(t, uint8(2), emission.Timecode.Minutes)
	assert.Equal(t, uint8(3), emission.Timecode.Seconds)
}

func TestDirectionForwards(t *testing.T) {
	d := NewDecoder()
	for _, b := range quarterFrames(0, 0, 0, 0, Rate25) {
		_, _, err := d.FeedQuarterFrame(b)
		require.NoError(t, err)
	}
	// Second cycle, pieces fed in increasing order.
	second := quarterFrames(0, 0, 0, 1, Rate25)
	var last Emission
	for _, b := range second {
		e, ok, err := d.FeedQuarterFrame(b)
		require.NoError(t, err)
		if ok {
			last = e
		}
	}
	assert.Equal(t, Forwards, last.Direction)
}

func TestDirectionBackwards(t *testing.T) {
	d := NewDecoder()
	frames := quarterFrames(0, 0, 0, 5, Rate25)
	// Feed pieces in strictly descending order (7,6,...,0) to simulate rewind.
	for i := len(frames) - 1; i >= 0; i-- {
		_, _, err := d.FeedQuarterFrame(frames[i])
		require.NoError(t, err)
	}
	assert.Equal(t, Backwards, d.direction)
}

// qfOrdinal flattens a timecode (at 30 fps, subframes included) onto a
// single comparable scale for the monotonicity assertion below.
func qfOrdinal(tc Timecode) int {
	frames := ((int(tc.Hours)*60+int(tc.Minutes))*60+int(tc.Seconds))*30 + int(tc.Frames)
	return frames*100 + int(tc.Subframes)
}

func TestForwardStreamEmitsNonDecreasingTimecodes(t *testing.T) {
	d := NewDecoder()
	last := -1
	for ff := uint8(0); ff < 8; ff += 2 {
		for _, b := range quarterFrames(1, 0, 0, ff, Rate30) {
			e, ok, err := d.FeedQuarterFrame(b)
			require.NoError(t, err)
			if !ok {
				continue
			}
			ord := qfOrdinal(e.Timecode)
			assert.GreaterOrEqual(t, ord, last, "emitted %+v went backwards", e.Timecode)
			last = ord
		}
	}
	require.NotEqual(t, -1, last, "stream should have emitted")
}

func TestFullFrameSnapsImmediatelyAndDoesNotFlushQFBuffer(t *testing.T) {
	d := NewDecoder()
	// Partially fill the QF buffer.
	partial := quarterFrames(2, 3, 4, 5, Rate30)
	for _, b := range partial[:4] {
		_, _, err := d.FeedQuarterFrame(b)
		require.NoError(t, err)
	}

	hourByte := uint8(0x03<<5) | 10 // rate 30, hour 10
	emission := d.FeedFullFrame(hourByte, 20, 30, 15)
	assert.Equal(t, SourceFullFrame, emission.Source)
	assert.Equal(t, uint8(10), emission.Timecode.Hours)
	assert.Equal(t, uint8(20), emission.Timecode.Minutes)
	assert.Equal(t, uint8(30), emission.Timecode.Seconds)
	assert.Equal(t, uint8(15), emission.Timecode.Frames)

	snap, ok := d.Snapshot()
	require.True(t, ok)
	assert.Equal(t, emission.Timecode, snap)

	// QF buffer wasn't cleared: feeding the remaining 4 pieces (4,5,6,7)
	// completes it, but completion alone doesn't emit — only the next
	// piece-0 QF captures a snapshot.
	for _, b := range partial[4:] {
		_, ok, err := d.FeedQuarterFrame(b)
		require.NoError(t, err)
		assert.False(t, ok)
	}
}

func TestResetQFBufferClearsRegistersNotCurrent(t *testing.T) {
	d := NewDecoder()
	d.FeedFullFrame(10, 0, 0, 0)
	for _, b := range quarterFrames(1, 1, 1, 1, Rate30)[:3] {
		_, _, _ = d.FeedQuarterFrame(b)
	}
	d.ResetQFBuffer()
	assert.Equal(t, -1, d.lastPiece)
	snap, ok := d.Snapshot()
	require.True(t, ok)
	assert.Equal(t, uint8(10), snap.Hours)
}

func TestResetTimecodeValuesKeepsRate(t *testing.T) {
	d := NewDecoder()
	d.FeedFullFrame(uint8(0x01<<5)|5, 0, 0, 0)
	d.ResetTimecodeValues()
	_, ok := d.Snapshot()
	assert.False(t, ok)
	assert.Equal(t, Rate25, d.current.Rate)
}

func TestFeedEventDispatchesQuarterFrameAndIgnoresOthers(t *testing.T) {
	d := NewDecoder()
	_, ok, err := d.FeedEvent(event.TimingClock(0))
	require.NoError(t, err)
	assert.False(t, ok)

	qf := event.TimecodeQuarterFrame(0, value.U7(0x00))
	_, ok, err = d.FeedEvent(qf)
	require.NoError(t, err)
	assert.False(t, ok) // buffer not complete yet
}

func TestFeedEventFullFrameSysEx(t *testing.T) {
	d := NewDecoder()
	hourByte := value.U7(uint8(0x03<<5) | 12)
	e := event.UniversalSysEx7(0, event.RealmRealtime, 0x00, 0x01, 0x01, []byte{uint8(hourByte), 30, 0, 0})
	emission, ok, err := d.FeedEvent(e)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, SourceFullFrame, emission.Source)
	assert.Equal(t, uint8(12), emission.Timecode.Hours)
	assert.Equal(t, uint8(30), emission.Timecode.Minutes)
}

func TestCompatibleRateTargetIsUsedForOutput(t *testing.T) {
	d := NewDecoder(WithTargetRate(Rate30))
	for _, b := range quarterFrames(0, 0, 0, 0, Rate29Drop) {
		_, _, err := d.FeedQuarterFrame(b)
		require.NoError(t, err)
	}
	next := quarterFrames(0, 0, 0, 1, Rate29Drop)
	emission, ok, err := d.FeedQuarterFrame(next[0])
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Rate30, emission.Timecode.Rate)
}
