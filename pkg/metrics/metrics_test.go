package metrics

import (
	"strings"
	"sync"
	"testing"
)

func TestIncrementAndGet(t *testing.T) {
	m := NewMessageTypeMetrics()
	m.Increment(257)
	m.Increment(257)
	m.Increment(9999)

	if got := m.Get(257); got != 2 {
		t.Errorf("Get(257) = %d, want 2", got)
	}
	if got := m.Get(9999); got != 1 {
		t.Errorf("Get(9999) = %d, want 1", got)
	}
	if got := m.Get(280); got != 0 {
		t.Errorf("Get(280) = %d, want 0", got)
	}

	all := m.GetAll()
	if len(all) != 2 {
		t.Errorf("GetAll returned %d entries, want 2", len(all))
	}

	m.Reset()
	if got := m.Get(257); got != 0 {
		t.Errorf("Get(257) after Reset = %d, want 0", got)
	}
}

func TestConcurrentIncrement(t *testing.T) {
	m := NewMessageTypeMetrics()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.Increment(257)
			}
		}()
	}
	wg.Wait()

	if got := m.Get(257); got != 1000 {
		t.Errorf("Get(257) = %d, want 1000", got)
	}
}

func TestCompactMetricsUsesNamer(t *testing.T) {
	m := NewMessageTypeMetrics()
	m.Increment(257)
	m.Increment(9999)

	namer := func(code uint32) string {
		if code == 257 {
			return "Capabilities-Exchange"
		}
		return ""
	}

	out := CompactMetrics("Received", m, namer)
	if !strings.Contains(out, "Capabilities-Exchange=1") {
		t.Errorf("Missing named counter: %s", out)
	}
	if !strings.Contains(out, "CMD_9999=1") {
		t.Errorf("Missing fallback name: %s", out)
	}
	if !strings.Contains(out, "(Total=2)") {
		t.Errorf("Missing total: %s", out)
	}
}

func TestFormatMetricsTotal(t *testing.T) {
	m := NewMessageTypeMetrics()
	m.Increment(280)
	m.Increment(280)
	m.Increment(280)

	out := FormatMetrics("Answered", m, nil)
	if !strings.Contains(out, "CMD_280") {
		t.Errorf("Missing command row: %s", out)
	}
	if !strings.Contains(out, "TOTAL") {
		t.Errorf("Missing total row: %s", out)
	}
}
