package smf

import (
	"bytes"

	"github.com/PKsong/MIDIKit/event"
)

// ChunkKind discriminates Chunk's two shapes: a track of events, or a
// foreign chunk this library doesn't interpret but preserves verbatim.
type ChunkKind uint8

const (
	ChunkTrack ChunkKind = iota
	ChunkUnrecognized
)

// Chunk is one top-level SMF chunk: "MTrk" or any other 4-byte ID.
type Chunk struct {
	Kind ChunkKind

	// Track
	Events []TrackEvent

	// Unrecognized
	ID   [4]byte
	Data []byte
}

// Track constructs a Track chunk.
func Track(events []TrackEvent) Chunk {
	return Chunk{Kind: ChunkTrack, Events: events}
}

// Unrecognized constructs a pass-through chunk for a foreign 4-byte chunk
// ID this library doesn't interpret, preserved for faithful round-tripping.
func Unrecognized(id [4]byte, data []byte) Chunk {
	return Chunk{Kind: ChunkUnrecognized, ID: id, Data: data}
}

// Equal reports whether c and d are the same chunk.
func (c Chunk) Equal(d Chunk) bool {
	if c.Kind != d.Kind {
		return false
	}
	if c.Kind == ChunkUnrecognized {
		return c.ID == d.ID && bytes.Equal(c.Data, d.Data)
	}
	if len(c.Events) != len(d.Events) {
		return false
	}
	for i := range c.Events {
		if !c.Events[i].Equal(d.Events[i]) {
			return false
		}
	}
	return true
}

// TrackEventKind discriminates a TrackEvent's payload: a channel-voice
// event (as in package event) or a meta-event.
type TrackEventKind uint8

const (
	TrackEventChannel TrackEventKind = iota
	TrackEventMeta
	// TrackEventEscape is the 0xF7-prefixed "escape" sysex form: arbitrary
	// bytes with no manufacturer/universal framing implied, preserved
	// verbatim rather than forced through the event.SysEx7 model.
	TrackEventEscape
)

// TrackEvent is one delta-timed event inside an MTrk chunk.
type TrackEvent struct {
	Delta uint32
	Kind  TrackEventKind

	Channel event.Event
	Meta    MetaEvent
	Escape  []byte
}

// ChannelEvent constructs a TrackEvent carrying a channel-voice event.
func ChannelEvent(delta uint32, e event.Event) TrackEvent {
	return TrackEvent{Delta: delta, Kind: TrackEventChannel, Channel: e}
}

// MetaTrackEvent constructs a TrackEvent carrying a meta-event.
func MetaTrackEvent(delta uint32, m MetaEvent) TrackEvent {
	return TrackEvent{Delta: delta, Kind: TrackEventMeta, Meta: m}
}

// EscapeTrackEvent constructs a TrackEvent carrying an 0xF7-prefixed raw
// escape sysex payload.
func EscapeTrackEvent(delta uint32, data []byte) TrackEvent {
	return TrackEvent{Delta: delta, Kind: TrackEventEscape, Escape: data}
}

// Equal reports whether t and u are the same track event.
func (t TrackEvent) Equal(u TrackEvent) bool {
	if t.Delta != u.Delta || t.Kind != u.Kind {
		return false
	}
	switch t.Kind {
	case TrackEventChannel:
		return t.Channel.Equal(u.Channel)
	case TrackEventEscape:
		return bytes.Equal(t.Escape, u.Escape)
	default:
		return metaEqual(t.Meta, u.Meta)
	}
}
