package midi1

import (
	"github.com/PKsong/MIDIKit/event"
	"github.com/PKsong/MIDIKit/value"
)

// DecodeBytes decodes every complete event found in data using a fresh
// Decoder tagged with the given UMP group, returning them in wire order.
// It stops and returns the error from the first malformed byte sequence,
// along with the events decoded up to that point. Callers streaming live
// input should keep reusing one Decoder and call Feed byte by byte
// instead of re-slicing buffers through DecodeBytes.
func DecodeBytes(group value.U4, data []byte, opts ...DecoderOption) ([]event.Event, error) {
	d := NewDecoder(group, opts...)
	var out []event.Event
	for _, b := range data {
		e, ok, err := d.Feed(b)
		if err != nil {
			return out, err
		}
		if ok {
			out = append(out, e)
		}
	}
	return out, nil
}

// EncodeAll renders events in order, concatenating their wire bytes.
func EncodeAll(events []event.Event) ([]byte, error) {
	var out []byte
	for _, e := range events {
		b, err := Encode(e)
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return out, nil
}
