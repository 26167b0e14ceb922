// Package observ tracks wall-clock timings of the load pipeline for
// the --timings flag.
package observ

import (
	"fmt"
	"strings"
	"time"
)

// Phase is one timed span with an optional note ("3 files", "cache hit").
type Phase struct {
	Name string
	Dur  time.Duration
	Note string
}

// Timer collects completed phases in the order they finished. Not safe
// for concurrent use; a session times its pipeline from one goroutine.
type Timer struct {
	phases []Phase
}

// NewTimer returns an empty timer.
func NewTimer() *Timer { return &Timer{} }

// Track runs fn as a named phase and records its duration, even when
// fn fails.
func (t *Timer) Track(name string, fn func() (note string, err error)) error {
	start := time.Now()
	note, err := fn()
	t.phases = append(t.phases, Phase{Name: name, Dur: time.Since(start), Note: note})
	return err
}

// PhaseReport is the serialisable form of one phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report aggregates all phases with a total, in milliseconds.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report returns the aggregated phase data.
func (t *Timer) Report() Report {
	if len(t.phases) == 0 {
		return Report{}
	}
	r := Report{Phases: make([]PhaseReport, len(t.phases))}
	var total time.Duration
	for i, p := range t.phases {
		total += p.Dur
		r.Phases[i] = PhaseReport{Name: p.Name, DurationMS: toMillis(p.Dur), Note: p.Note}
	}
	r.TotalMS = toMillis(total)
	return r
}

// Summary renders the report as indented text for stderr.
func (t *Timer) Summary() string {
	r := t.Report()
	var b strings.Builder
	b.WriteString("timings:\n")
	for _, p := range r.Phases {
		fmt.Fprintf(&b, "  %-12s %7.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			b.WriteString("  // " + p.Note)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "  %-12s %7.2f ms\n", "total", r.TotalMS)
	return b.String()
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
