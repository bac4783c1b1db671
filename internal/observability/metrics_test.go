package observability

import (
	"strings"
	"sync"
	"testing"
)

func TestMetrics_IncAndGet(t *testing.T) {
	m := NewMetrics()
	if m.Get(SubmissionsReceived) != 0 {
		t.Fatalf("fresh counter should be zero")
	}
	m.Inc(SubmissionsReceived)
	m.Inc(SubmissionsReceived)
	m.Inc(HoneypotCatches)
	if m.Get(SubmissionsReceived) != 2 || m.Get(HoneypotCatches) != 1 {
		t.Fatalf("unexpected counts: %d %d", m.Get(SubmissionsReceived), m.Get(HoneypotCatches))
	}
}

func TestMetrics_NilReceiverIsSafe(t *testing.T) {
	var m *Metrics
	m.Inc(SubmissionsReceived)
	if m.Get(SubmissionsReceived) != 0 {
		t.Fatalf("nil metrics must read zero")
	}
}

func TestMetrics_RenderExpositionFormat(t *testing.T) {
	m := NewMetrics()
	m.Inc(SubmissionsAccepted)
	out := m.Render()
	if !strings.Contains(out, "# TYPE lead_submissions_accepted_total counter") {
		t.Fatalf("missing TYPE line: %s", out)
	}
	if !strings.Contains(out, "lead_submissions_accepted_total 1") {
		t.Fatalf("missing sample line: %s", out)
	}
}

func TestMetrics_ConcurrentInc(t *testing.T) {
	m := NewMetrics()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.Inc(SubmissionsReceived)
			}
		}()
	}
	wg.Wait()
	if got := m.Get(SubmissionsReceived); got != 800 {
		t.Fatalf("expected 800, got %d", got)
	}
}
