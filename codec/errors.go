package codec

import "fmt"

// DecodeError indicates the AVP body could not be decoded against the
// dictionary: a sub-field declares a length that exceeds the remaining
// buffer, or a value does not fit its declared type.
type DecodeError struct {
	Offset int
	Reason string
}

func (e DecodeError) Error() string {
	return fmt.Sprintf("avp decode error at offset %d: %s", e.Offset, e.Reason)
}
