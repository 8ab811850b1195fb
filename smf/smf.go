// Package smf implements the Standard MIDI File codec: MThd/MTrk chunk
// framing, variable-length quantities, delta-times and the meta-event
// catalogue. The package is agnostic to wall time; a consumer builds a
// tempo map by scanning Tempo meta-events itself.
package smf

import "github.com/PKsong/MIDIKit/event"

// Format is the SMF header's format field.
type Format uint16

const (
	// Format0 is a single track containing every event.
	Format0 Format = 0
	// Format1 is one or more tracks played simultaneously, the first
	// carrying only tempo/time-signature/meta events by convention.
	Format1 Format = 1
	// Format2 is one or more independent, sequentially played tracks.
	Format2 Format = 2
)

// FPS is an SMPTE frame rate, as carried by the header division field and
// by SMPTEOffset/full-frame MTC messages.
type FPS uint8

const (
	FPS24 FPS = iota
	FPS25
	FPS29Drop // 29.97 fps drop-frame
	FPS30
)

// maxFrame reports the maximum carried-frame count (exclusive) for fps,
// used to clamp SMPTEOffset.Frames on decode: some writers emit frames
// up to 30 regardless of the carried rate, so the decoder clamps and
// flags rather than silently trusting the byte.
func (f FPS) maxFrame() uint8 {
	switch f {
	case FPS24:
		return 24
	case FPS25:
		return 25
	default:
		return 30
	}
}

func (f FPS) String() string {
	switch f {
	case FPS24:
		return "24"
	case FPS25:
		return "25"
	case FPS29Drop:
		return "29.97d"
	case FPS30:
		return "30"
	default:
		return "?"
	}
}

// TimeBaseKind discriminates MidiFile's two division interpretations.
type TimeBaseKind uint8

const (
	TimeBaseMusical TimeBaseKind = iota
	TimeBaseTimecode
)

// TimeBase is the header division field, either ticks-per-quarter-note or
// an SMPTE frame rate plus ticks-per-frame.
type TimeBase struct {
	Kind TimeBaseKind

	// Musical
	TicksPerQuarter uint16 // low 15 bits

	// Timecode
	FPS           FPS
	TicksPerFrame uint8
}

// MidiFile is the parsed/to-be-encoded contents of a Standard MIDI File.
type MidiFile struct {
	Format   Format
	TimeBase TimeBase
	Chunks   []Chunk
}

// NTracks counts this file's Track chunks (the header's ntrks field on
// encode; Unrecognized chunks are not counted, matching how real SMF
// writers never report a foreign chunk as a track).
func (f *MidiFile) NTracks() int {
	n := 0
	for _, c := range f.Chunks {
		if c.Kind == ChunkTrack {
			n++
		}
	}
	return n
}

// Equal reports whether f and g parse/encode to the same MidiFile, the
// notion of equality the SMF round-trip guarantee relies on.
func (f *MidiFile) Equal(g *MidiFile) bool {
	if f.Format != g.Format || f.TimeBase != g.TimeBase || len(f.Chunks) != len(g.Chunks) {
		return false
	}
	for i := range f.Chunks {
		if !f.Chunks[i].Equal(g.Chunks[i]) {
			return false
		}
	}
	return true
}

func divisionBytes(tb TimeBase) uint16 {
	if tb.Kind == TimeBaseMusical {
		return tb.TicksPerQuarter & 0x7FFF
	}
	var fpsByte byte
	switch tb.FPS {
	case FPS24:
		fpsByte = 0xE8 // -24
	case FPS25:
		fpsByte = 0xE7 // -25
	case FPS29Drop:
		fpsByte = 0xE3 // -29
	default:
		fpsByte = 0xE2 // -30
	}
	return uint16(fpsByte)<<8 | uint16(tb.TicksPerFrame)
}

func decodeDivision(raw uint16) (TimeBase, error) {
	if raw&0x8000 == 0 {
		return TimeBase{Kind: TimeBaseMusical, TicksPerQuarter: raw & 0x7FFF}, nil
	}
	fpsByte := int8(raw >> 8)
	ticksPerFrame := uint8(raw)
	var fps FPS
	switch fpsByte {
	case -24:
		fps = FPS24
	case -25:
		fps = FPS25
	case -29:
		fps = FPS29Drop
	case -30:
		fps = FPS30
	default:
		return TimeBase{}, event.NewMalformed(0, "unrecognized SMPTE division frame rate")
	}
	return TimeBase{Kind: TimeBaseTimecode, FPS: fps, TicksPerFrame: ticksPerFrame}, nil
}
