package observ

import (
	"errors"
	"strings"
	"testing"
)

func TestTrackRecordsPhases(t *testing.T) {
	tm := NewTimer()
	if err := tm.Track("scan", func() (string, error) { return "3 files", nil }); err != nil {
		t.Fatalf("Track: %v", err)
	}
	wantErr := errors.New("boom")
	if err := tm.Track("decode", func() (string, error) { return "", wantErr }); !errors.Is(err, wantErr) {
		t.Fatalf("Track error = %v, want %v", err, wantErr)
	}

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("phases = %d, want 2 (failed phases are still recorded)", len(r.Phases))
	}
	if r.Phases[0].Name != "scan" || r.Phases[0].Note != "3 files" {
		t.Fatalf("first phase = %+v", r.Phases[0])
	}
}

func TestEmptyReport(t *testing.T) {
	r := NewTimer().Report()
	if r.TotalMS != 0 || len(r.Phases) != 0 {
		t.Fatalf("empty timer report = %+v", r)
	}
}

func TestSummaryShape(t *testing.T) {
	tm := NewTimer()
	_ = tm.Track("register", func() (string, error) { return "", nil })
	s := tm.Summary()
	if !strings.HasPrefix(s, "timings:\n") {
		t.Fatalf("summary = %q", s)
	}
	if !strings.Contains(s, "register") || !strings.Contains(s, "total") {
		t.Fatalf("summary missing lines: %q", s)
	}
}
