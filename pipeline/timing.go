package pipeline

import (
	"fmt"
	"sync"
	"time"
)

// StepTiming summarizes how long one step took across Apply calls.
type StepTiming struct {
	// Step describes the step, e.g. "resize 64x64 lanczos3".
	Step  string        `json:"step" yaml:"step"`
	Count int64         `json:"count" yaml:"count"`
	Total time.Duration `json:"total" yaml:"total"`
	Min   time.Duration `json:"min" yaml:"min"`
	Max   time.Duration `json:"max" yaml:"max"`
}

// Average returns the mean duration, or 0 before the first run.
func (s StepTiming) Average() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Count)
}

func (s StepTiming) String() string {
	return fmt.Sprintf("%s: %d runs, avg %v, min %v, max %v", s.Step, s.Count, s.Average(), s.Min, s.Max)
}

// timeTracker accumulates per-step durations; it is safe for concurrent use.
type timeTracker struct {
	mu    sync.Mutex
	steps []StepTiming
}

func newTimeTracker(stages []stage) *timeTracker {
	t := &timeTracker{steps: make([]StepTiming, len(stages))}
	for i, st := range stages {
		t.steps[i].Step = st.desc
	}
	return t
}

func (t *timeTracker) record(idx int, d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := &t.steps[idx]
	if s.Count == 0 || d < s.Min {
		s.Min = d
	}
	if d > s.Max {
		s.Max = d
	}
	s.Total += d
	s.Count++
}

func (t *timeTracker) snapshot() []StepTiming {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]StepTiming, len(t.steps))
	copy(out, t.steps)
	return out
}

// Timings returns per-step timings accumulated since the last Validate, in
// step order.
func (p *Pipeline) Timings() []StepTiming {
	if p.timings == nil {
		return nil
	}
	return p.timings.snapshot()
}
