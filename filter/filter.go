// Package filter implements the event filter algebra: predicate
// combinators over an event stream, composed as ordinary function
// composition rather than a class hierarchy, in the module's overall
// style of small value types and free functions.
package filter

import (
	"github.com/PKsong/MIDIKit/event"
	"github.com/PKsong/MIDIKit/value"
)

// Predicate reports whether an event belongs to some family. Predicates
// are pure and hold no state; two calls with the same event always
// agree.
type Predicate func(event.Event) bool

// All matches every event.
func All() Predicate {
	return func(event.Event) bool { return true }
}

// ByType matches events whose Kind is one of kinds.
func ByType(kinds ...event.Kind) Predicate {
	set := make(map[event.Kind]bool, len(kinds))
	for _, k := range kinds {
		set[k] = true
	}
	return func(e event.Event) bool { return set[e.Kind] }
}

// ByChannel matches channel-voice events addressed to one of channels.
// Non-channel-voice events never match.
func ByChannel(channels ...value.U4) Predicate {
	set := make(map[value.U4]bool, len(channels))
	for _, c := range channels {
		set[c] = true
	}
	return func(e event.Event) bool {
		return e.Kind.IsChannelVoice() && set[e.Channel]
	}
}

// ByCCNumber matches Control Change events carrying one of controllers.
func ByCCNumber(controllers ...event.Controller) Predicate {
	set := make(map[event.Controller]bool, len(controllers))
	for _, c := range controllers {
		set[c] = true
	}
	return func(e event.Event) bool {
		return e.Kind == event.KindCC && set[e.Controller]
	}
}

// NoteRange is an inclusive note-number range, as used by ByNoteRange.
type NoteRange struct {
	Low, High value.U7
}

// Contains reports whether n falls within r.
func (r NoteRange) Contains(n value.U7) bool {
	return n >= r.Low && n <= r.High
}

// noteKinds are the event kinds ByNoteRange considers: every variant
// that carries a Note field.
var noteKinds = map[event.Kind]bool{
	event.KindNoteOn:         true,
	event.KindNoteOff:        true,
	event.KindNoteCC:         true,
	event.KindNotePitchBend:  true,
	event.KindNotePressure:   true,
	event.KindNoteManagement: true,
}

// ByNoteRange matches note-bearing events (Note On/Off, per-note
// controller/pitch-bend/pressure/management) whose Note falls within any
// of ranges.
func ByNoteRange(ranges ...NoteRange) Predicate {
	return func(e event.Event) bool {
		if !noteKinds[e.Kind] {
			return false
		}
		for _, r := range ranges {
			if r.Contains(e.Note) {
				return true
			}
		}
		return false
	}
}

// ByGroup matches events carried on one of groups (UMP group number;
// always 0 on a MIDI 1.0 byte stream).
func ByGroup(groups ...value.U4) Predicate {
	set := make(map[value.U4]bool, len(groups))
	for _, g := range groups {
		set[g] = true
	}
	return func(e event.Event) bool { return set[e.Group] }
}

// Only keeps events p matches, dropping the rest. Only(All()) is the
// identity filter.
func Only(p Predicate) Predicate { return p }

// Keep is a synonym for Only.
func Keep(p Predicate) Predicate { return p }

// Drop removes events p matches, keeping the rest. Drop never matching
// anything (an empty set predicate) is the identity filter.
func Drop(p Predicate) Predicate {
	return func(e event.Event) bool { return !p(e) }
}

// Apply runs pred over events in order, returning the matching events in
// the same relative order. Apply never reorders, merges or splits
// events.
func Apply(events []event.Event, pred Predicate) []event.Event {
	out := make([]event.Event, 0, len(events))
	for _, e := range events {
		if pred(e) {
			out = append(out, e)
		}
	}
	return out
}
