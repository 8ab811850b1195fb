package event

import "fmt"

// Malformed reports that input violated a wire format: bad magic, a
// truncated chunk, a VLQ that ran past its maximum length, an unknown
// mandatory meta-event length, or a numeric field out of its declared
// range. Where is a byte offset or UMP word index, for diagnostics only —
// codecs never log, they only return this to the caller.
type Malformed struct {
	Where int
	Why   string
}

func (e *Malformed) Error() string {
	return fmt.Sprintf("malformed input at %d: %s", e.Where, e.Why)
}

// NewMalformed constructs a Malformed error.
func NewMalformed(where int, why string) error {
	return &Malformed{Where: where, Why: why}
}

// Unsupported reports well-formed input that lies outside what the decoder
// was configured to handle, e.g. a UMP message type reserved for a
// capability the caller disabled.
type Unsupported struct {
	What string
}

func (e *Unsupported) Error() string {
	return fmt.Sprintf("unsupported: %s", e.What)
}

// NewUnsupported constructs an Unsupported error.
func NewUnsupported(what string) error {
	return &Unsupported{What: what}
}

// OutOfRange reports that a numeric constructor rejected a value outside
// its declared bound.
type OutOfRange struct {
	Field string
	Value int64
	Bound int64
}

func (e *OutOfRange) Error() string {
	return fmt.Sprintf("%s: value %d out of range [0, %d]", e.Field, e.Value, e.Bound)
}

// NewOutOfRange constructs an OutOfRange error.
func NewOutOfRange(field string, value, bound int64) error {
	return &OutOfRange{Field: field, Value: value, Bound: bound}
}
