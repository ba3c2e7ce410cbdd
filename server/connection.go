package server

import (
	"errors"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hsdfat8/diam-peer/codec"
	"github.com/hsdfat8/diam-peer/pkg/metrics"
	"github.com/hsdfat8/diam-peer/pkg/connection"
	"github.com/hsdfat8/diam-peer/pkg/logger"
)

// ConnState is the worker's position in its per-message cycle. The loop
// is strictly sequential: the next frame is not read until the answer to
// the current one has been written out.
type ConnState int32

const (
	StateAwaitingFrame ConnState = iota
	StateDecoding
	StateDispatching
	StateEncoding
	StateSending
	StateClosed
)

func (s ConnState) String() string {
	switch s {
	case StateAwaitingFrame:
		return "AWAITING_FRAME"
	case StateDecoding:
		return "DECODING"
	case StateDispatching:
		return "DISPATCHING"
	case StateEncoding:
		return "ENCODING"
	case StateSending:
		return "SENDING"
	case StateClosed:
		return "CLOSED"
	default:
		return "UNKNOWN"
	}
}

// ConnectionConfig holds per-connection transport settings.
type ConnectionConfig struct {
	// ReadTimeout bounds the wait for the next frame. Zero means wait
	// forever, matching a peer that only speaks when it has traffic.
	ReadTimeout time.Duration
	// WriteTimeout bounds writing one answer.
	WriteTimeout time.Duration
	// MaxMessageSize rejects frames whose declared length exceeds it.
	// Zero disables the bound.
	MaxMessageSize uint32
}

// DefaultConnectionConfig returns the stock transport settings.
func DefaultConnectionConfig() *ConnectionConfig {
	return &ConnectionConfig{
		ReadTimeout:    0,
		WriteTimeout:   10 * time.Second,
		MaxMessageSize: 65535,
	}
}

// ConnectionStats counts per-connection traffic.
type ConnectionStats struct {
	RequestsReceived atomic.Uint64
	AnswersSent      atomic.Uint64
	HandlerFailures  atomic.Uint64
	BytesRead        atomic.Uint64
	BytesWritten     atomic.Uint64
}

// Connection is one accepted peer connection, served by a single
// goroutine running Serve.
type Connection struct {
	conn   net.Conn
	config *ConnectionConfig
	codec  MessageCodec
	mux    *Mux
	log    logger.Logger

	state atomic.Int32
	stats ConnectionStats

	received *metrics.MessageTypeMetrics
	answered *metrics.MessageTypeMetrics

	closeOnce sync.Once
}

// NewConnection wraps an accepted net.Conn. received and answered
// counters are optional and may be shared across connections.
func NewConnection(conn net.Conn, config *ConnectionConfig, mc MessageCodec, mux *Mux, log logger.Logger) *Connection {
	if config == nil {
		config = DefaultConnectionConfig()
	}
	return &Connection{
		conn:   conn,
		config: config,
		codec:  mc,
		mux:    mux,
		log:    log.With("remote", conn.RemoteAddr().String()),
	}
}

// SetMetrics attaches shared traffic counters. Must be called before
// Serve.
func (c *Connection) SetMetrics(received, answered *metrics.MessageTypeMetrics) {
	c.received = received
	c.answered = answered
}

// State returns the worker's current cycle position.
func (c *Connection) State() ConnState {
	return ConnState(c.state.Load())
}

// Stats returns the connection's traffic counters.
func (c *Connection) Stats() *ConnectionStats {
	return &c.stats
}

func (c *Connection) setState(s ConnState) {
	c.state.Store(int32(s))
}

// Serve runs the request/answer loop until the peer disconnects, a
// Disconnect-Peer exchange completes, or a transport error occurs. It
// blocks; callers run it on a dedicated goroutine.
func (c *Connection) Serve() {
	defer c.Close()

	c.log.Debugw("Peer connected")

	for {
		c.setState(StateAwaitingFrame)
		if c.config.ReadTimeout > 0 {
			c.conn.SetReadDeadline(time.Now().Add(c.config.ReadTimeout))
		}

		frame, err := connection.ReadMessageLimit(c.conn, c.config.MaxMessageSize)
		if err != nil {
			c.logReadError(err)
			return
		}
		c.stats.RequestsReceived.Add(1)
		c.stats.BytesRead.Add(uint64(frame.Header.MessageLength))
		if c.received != nil {
			c.received.Increment(frame.Header.CommandCode)
		}

		c.setState(StateDecoding)
		req := &codec.Message{Header: frame.Header}
		req.AVPs, err = c.codec.DecodeAVPs(frame.Body)
		if err != nil {
			// Undecodable body, but the header is intact. Answer the
			// generic failure so the correlation IDs still come back.
			c.log.Warnw("Failed to decode request body",
				"code", frame.Header.CommandCode,
				"error", err)
			req.AVPs = nil
		}

		c.setState(StateDispatching)
		answer, herr := c.mux.Handler(req.Header.CommandCode)(req)
		if herr != nil || answer == nil || err != nil {
			if herr != nil {
				c.log.Warnw("Handler failed, answering unable to comply",
					"code", req.Header.CommandCode,
					"error", herr)
			}
			c.stats.HandlerFailures.Add(1)
			answer, _ = c.mux.Fallback()(req)
			if answer == nil {
				answer, _ = UnableToComplyAnswer(req)
			}
		}

		if err := c.sendAnswer(answer); err != nil {
			c.log.Warnw("Failed to send answer",
				"code", answer.Header.CommandCode,
				"error", err)
			return
		}

		if req.Header.CommandCode == CommandDisconnectPeer {
			c.log.Infow("Disconnect requested by peer, closing")
			return
		}
	}
}

func (c *Connection) sendAnswer(answer *codec.Message) error {
	c.setState(StateEncoding)
	body, err := c.codec.EncodeAVPs(answer.AVPs)
	if err != nil {
		return err
	}
	answer.Header.MessageLength = uint32(connection.HeaderLength + len(body))

	wire := make([]byte, 0, answer.Header.MessageLength)
	wire = append(wire, answer.Header.Serialize()...)
	wire = append(wire, body...)

	c.setState(StateSending)
	if c.config.WriteTimeout > 0 {
		c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteTimeout))
	}
	if err := connection.WriteMessage(c.conn, wire); err != nil {
		return err
	}

	c.stats.AnswersSent.Add(1)
	c.stats.BytesWritten.Add(uint64(len(wire)))
	if c.answered != nil {
		c.answered.Increment(answer.Header.CommandCode)
	}
	c.log.Debugw("Answer sent",
		"command", c.codec.CommandName(answer.Header.CommandCode),
		"code", answer.Header.CommandCode,
		"h2h", answer.Header.HopByHopID,
		"e2e", answer.Header.EndToEndID,
		"length", answer.Header.MessageLength,
		"answer", answer.String())
	return nil
}

func (c *Connection) logReadError(err error) {
	switch {
	case err == io.EOF:
		c.log.Debugw("Peer disconnected")
	case errors.Is(err, net.ErrClosed):
		c.log.Debugw("Connection closed locally")
	default:
		var truncated connection.ErrTruncatedMessage
		var malformed connection.ErrMalformedHeader
		if errors.As(err, &truncated) || errors.As(err, &malformed) {
			c.log.Warnw("Dropping connection on unrecoverable frame error", "error", err)
		} else {
			c.log.Warnw("Read error", "error", err)
		}
	}
}

// Close shuts the transport down. Safe to call from any goroutine and
// more than once; Serve returns once its blocking read observes the
// closed socket.
func (c *Connection) Close() {
	c.closeOnce.Do(func() {
		c.setState(StateClosed)
		c.conn.Close()
	})
}
