package connection

import "fmt"

// ErrMalformedHeader indicates the fixed header could not be parsed:
// fewer bytes than the header size, or a declared length smaller than
// the header itself.
type ErrMalformedHeader struct {
	Reason string
}

func (e ErrMalformedHeader) Error() string {
	return fmt.Sprintf("malformed header: %s", e.Reason)
}

// ErrTruncatedMessage indicates the stream ended in the middle of a frame.
type ErrTruncatedMessage struct {
	Expected int
	Read     int
}

func (e ErrTruncatedMessage) Error() string {
	return fmt.Sprintf("truncated message: expected %d bytes, read %d", e.Expected, e.Read)
}
