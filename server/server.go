package server

import (
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hsdfat8/diam-peer/pkg/logger"
	"github.com/hsdfat8/diam-peer/pkg/metrics"
)

// ServerConfig holds listener-level settings.
type ServerConfig struct {
	// ListenAddress is the TCP address to bind.
	ListenAddress string
	// MaxConnections caps concurrently served peers. Connections past
	// the cap are closed immediately on accept. Zero means unlimited.
	MaxConnections int
	// Connection carries the per-connection transport settings.
	Connection *ConnectionConfig
	// StatsInterval is the period for logging traffic counters. Zero
	// disables periodic stats.
	StatsInterval time.Duration
}

// DefaultServerConfig returns the stock server settings.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		ListenAddress:  "127.0.0.1:3868",
		MaxConnections: 0,
		Connection:     DefaultConnectionConfig(),
		StatsInterval:  30 * time.Second,
	}
}

// ServerStats aggregates traffic counters across all connections, past
// and present.
type ServerStats struct {
	ConnectionsAccepted atomic.Uint64
	ConnectionsRejected atomic.Uint64
	ConnectionsActive   atomic.Int64
	RequestsReceived    atomic.Uint64
	AnswersSent         atomic.Uint64
	HandlerFailures     atomic.Uint64
}

// Server accepts peer connections and runs one worker goroutine per
// connection. The mux and codec are shared read-only across workers.
type Server struct {
	config *ServerConfig
	codec  MessageCodec
	mux    *Mux
	log    logger.Logger

	listener net.Listener
	stats    ServerStats

	received *metrics.MessageTypeMetrics
	answered *metrics.MessageTypeMetrics

	mu    sync.Mutex
	conns map[*Connection]struct{}

	wg       sync.WaitGroup
	stopOnce sync.Once
	done     chan struct{}
}

// NewServer creates a server serving the given mux through the given
// codec. Nil config selects the defaults.
func NewServer(config *ServerConfig, mc MessageCodec, mux *Mux, log logger.Logger) *Server {
	if config == nil {
		config = DefaultServerConfig()
	}
	if config.Connection == nil {
		config.Connection = DefaultConnectionConfig()
	}
	return &Server{
		config:   config,
		codec:    mc,
		mux:      mux,
		log:      log,
		received: metrics.NewMessageTypeMetrics(),
		answered: metrics.NewMessageTypeMetrics(),
		conns:    make(map[*Connection]struct{}),
		done:     make(chan struct{}),
	}
}

// Start binds the listener and launches the accept loop. It returns once
// the listener is bound; serving continues in the background until Stop.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.config.ListenAddress)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.config.ListenAddress, err)
	}
	s.listener = ln
	s.log.Infow("Server listening", "addr", ln.Addr().String())

	s.wg.Add(1)
	go s.acceptLoop()

	if s.config.StatsInterval > 0 {
		s.wg.Add(1)
		go s.statsLoop()
	}
	return nil
}

// Addr returns the bound listener address, useful when the configured
// port is 0.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Stats returns the server's aggregated counters.
func (s *Server) Stats() *ServerStats {
	return &s.stats
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			s.log.Warnw("Accept failed", "error", err)
			continue
		}

		if s.config.MaxConnections > 0 &&
			s.stats.ConnectionsActive.Load() >= int64(s.config.MaxConnections) {
			s.stats.ConnectionsRejected.Add(1)
			s.log.Warnw("Connection limit reached, rejecting peer",
				"remote", conn.RemoteAddr().String(),
				"limit", s.config.MaxConnections)
			conn.Close()
			continue
		}

		c := NewConnection(conn, s.config.Connection, s.codec, s.mux, s.log)
		c.SetMetrics(s.received, s.answered)

		s.mu.Lock()
		s.conns[c] = struct{}{}
		s.mu.Unlock()

		s.stats.ConnectionsAccepted.Add(1)
		s.stats.ConnectionsActive.Add(1)

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			c.Serve()

			s.mu.Lock()
			delete(s.conns, c)
			s.mu.Unlock()

			st := c.Stats()
			s.stats.ConnectionsActive.Add(-1)
			s.stats.RequestsReceived.Add(st.RequestsReceived.Load())
			s.stats.AnswersSent.Add(st.AnswersSent.Load())
			s.stats.HandlerFailures.Add(st.HandlerFailures.Load())
		}()
	}
}

func (s *Server) statsLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.StatsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.log.Infow("Traffic",
				"active", s.stats.ConnectionsActive.Load(),
				"received", metrics.CompactMetrics("RX", s.received, s.codec.CommandName),
				"answered", metrics.CompactMetrics("TX", s.answered, s.codec.CommandName))
		case <-s.done:
			return
		}
	}
}

// Stop closes the listener and all active connections, then waits for
// every worker to return.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
		if s.listener != nil {
			s.listener.Close()
		}

		s.mu.Lock()
		for c := range s.conns {
			c.Close()
		}
		s.mu.Unlock()

		s.wg.Wait()
		s.log.Infow("Server stopped",
			"accepted", s.stats.ConnectionsAccepted.Load(),
			"requests", s.stats.RequestsReceived.Load(),
			"answers", s.stats.AnswersSent.Load())
	})
}
