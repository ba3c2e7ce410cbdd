package metrics

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// CommandNamer resolves a command code to a display name. The dictionary
// codec provides this; it is used for rendering only, never for routing.
type CommandNamer func(commandCode uint32) string

// MessageTypeMetrics tracks the count of messages per command code.
type MessageTypeMetrics struct {
	counters map[uint32]*atomic.Uint64
	mu       sync.RWMutex
}

// NewMessageTypeMetrics creates a new MessageTypeMetrics instance
func NewMessageTypeMetrics() *MessageTypeMetrics {
	return &MessageTypeMetrics{
		counters: make(map[uint32]*atomic.Uint64),
	}
}

// Increment increments the counter for a specific command code
func (m *MessageTypeMetrics) Increment(commandCode uint32) {
	m.mu.Lock()
	counter, exists := m.counters[commandCode]
	if !exists {
		counter = &atomic.Uint64{}
		m.counters[commandCode] = counter
	}
	m.mu.Unlock()
	counter.Add(1)
}

// Get returns the count for a specific command code
func (m *MessageTypeMetrics) Get(commandCode uint32) uint64 {
	m.mu.RLock()
	counter, exists := m.counters[commandCode]
	m.mu.RUnlock()

	if !exists {
		return 0
	}
	return counter.Load()
}

// GetAll returns a snapshot of all command code counters
func (m *MessageTypeMetrics) GetAll() map[uint32]uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[uint32]uint64)
	for code, counter := range m.counters {
		result[code] = counter.Load()
	}
	return result
}

// Reset clears all counters
func (m *MessageTypeMetrics) Reset() {
	m.mu.Lock()
	m.counters = make(map[uint32]*atomic.Uint64)
	m.mu.Unlock()
}

func displayName(name CommandNamer, code uint32) string {
	if name != nil {
		if n := name(code); n != "" {
			return n
		}
	}
	return fmt.Sprintf("CMD_%d", code)
}

// FormatMetrics formats the metrics for display
func FormatMetrics(direction string, metrics *MessageTypeMetrics, name CommandNamer) string {
	counters := metrics.GetAll()

	output := fmt.Sprintf("\n%s Metrics by Message Type:\n", direction)
	output += "┌─────────────────────────────────┬───────────┐\n"
	output += "│ Message Type                    │ Count     │\n"
	output += "├─────────────────────────────────┼───────────┤\n"

	total := uint64(0)
	for code, count := range counters {
		output += fmt.Sprintf("│ %-31s │ %9d │\n", displayName(name, code), count)
		total += count
	}

	output += "├─────────────────────────────────┼───────────┤\n"
	output += fmt.Sprintf("│ %-31s │ %9d │\n", "TOTAL", total)
	output += "└─────────────────────────────────┴───────────┘\n"

	return output
}

// CompactMetrics formats the metrics in a compact format (single line)
func CompactMetrics(direction string, metrics *MessageTypeMetrics, name CommandNamer) string {
	output := fmt.Sprintf("%s: ", direction)
	counters := metrics.GetAll()
	total := uint64(0)

	for code, count := range counters {
		if count > 0 {
			output += fmt.Sprintf("[%s=%d] ", displayName(name, code), count)
			total += count
		}
	}

	output += fmt.Sprintf("(Total=%d)", total)
	return output
}
