package codec

import (
	"fmt"
	"strings"

	"github.com/hsdfat8/diam-peer/pkg/connection"
)

// Message is a decoded Diameter message: a fixed header plus the ordered
// sequence of attribute entries. A request Message is transient; it is
// built when a frame is decoded and discarded once its answer is sent.
// An answer Message is always a fresh instance with its own header.
type Message struct {
	Header *connection.Header
	AVPs   []*AVP
}

// FindAVP returns the first attribute entry with the given code, or nil.
func (m *Message) FindAVP(code uint32) *AVP {
	for _, a := range m.AVPs {
		if a.Code == code {
			return a
		}
	}
	return nil
}

// FindAVPs returns every attribute entry with the given code, in wire
// order. Repeated attributes are legal and must all be visible.
func (m *Message) FindAVPs(code uint32) []*AVP {
	var out []*AVP
	for _, a := range m.AVPs {
		if a.Code == code {
			out = append(out, a)
		}
	}
	return out
}

// AppendAVP appends an attribute entry, preserving insertion order.
func (m *Message) AppendAVP(a *AVP) {
	m.AVPs = append(m.AVPs, a)
}

func (m *Message) String() string {
	parts := make([]string, 0, len(m.AVPs))
	for _, a := range m.AVPs {
		parts = append(parts, a.String())
	}
	return fmt.Sprintf("%s AVPs=[%s]", m.Header, strings.Join(parts, " "))
}
