package server

import "github.com/hsdfat8/diam-peer/codec"

// Handler builds the answer for one decoded request. Handlers are pure:
// they never touch the transport and never mutate the request.
type Handler func(req *codec.Message) (*codec.Message, error)

// MessageCodec is the boundary to the dictionary-backed AVP codec. The
// server depends only on this contract; name resolution is used for
// observability, never for dispatch.
type MessageCodec interface {
	DecodeAVPs(body []byte) ([]*codec.AVP, error)
	EncodeAVPs(avps []*codec.AVP) ([]byte, error)
	CommandName(code uint32) string
	CommandCode(name string) (uint32, bool)
}

// Mux routes a request to its handler by command code. The routing table
// is populated once at startup and read-only afterwards, so it is shared
// by reference into every connection worker without synchronization.
// Lookup is total: codes without a registration resolve to the fallback,
// so no request can go unanswered.
type Mux struct {
	handlers map[uint32]Handler
	fallback Handler
}

// NewMux creates a mux with the given fallback handler for unrecognized
// command codes.
func NewMux(fallback Handler) *Mux {
	return &Mux{
		handlers: make(map[uint32]Handler),
		fallback: fallback,
	}
}

// Handle registers a handler for a command code. Must only be called
// during startup, before the mux is shared with workers.
func (m *Mux) Handle(commandCode uint32, h Handler) {
	m.handlers[commandCode] = h
}

// Handler returns the handler for a command code, or the fallback.
func (m *Mux) Handler(commandCode uint32) Handler {
	if h, ok := m.handlers[commandCode]; ok {
		return h
	}
	return m.fallback
}

// Fallback returns the fallback handler.
func (m *Mux) Fallback() Handler {
	return m.fallback
}

// Use wraps every registered handler and the fallback with the given
// middleware, innermost first. Like Handle, startup-only.
func (m *Mux) Use(middlewares ...Middleware) {
	chain := ChainMiddleware(middlewares...)
	for code, h := range m.handlers {
		m.handlers[code] = chain(h)
	}
	m.fallback = chain(m.fallback)
}
