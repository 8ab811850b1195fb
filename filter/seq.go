package filter

import (
	"iter"

	"github.com/PKsong/MIDIKit/event"
)

// ApplySeq is Apply's streaming counterpart: it filters a push/pull
// iterator without buffering the whole stream, for callers already
// working with iter.Seq (e.g. a live decoder's output).
func ApplySeq(events iter.Seq[event.Event], pred Predicate) iter.Seq[event.Event] {
	return func(yield func(event.Event) bool) {
		for e := range events {
			if pred(e) {
				if !yield(e) {
					return
				}
			}
		}
	}
}
