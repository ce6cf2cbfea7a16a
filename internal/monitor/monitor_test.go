package monitor

import (
	"errors"
	"testing"
	"time"
)

func TestParseResolution(t *testing.T) {
	tests := []struct {
		in      string
		want    Resolution
		wantErr bool
	}{
		{in: "2560x1440", want: Resolution{2560, 1440}},
		{in: " 1920x1080 ", want: Resolution{1920, 1080}},
		{in: "1920", wantErr: true},
		{in: "1920x", wantErr: true},
		{in: "axb", wantErr: true},
		{in: "0x1080", wantErr: true},
		{in: "-1x1080", wantErr: true},
		{in: "1x2x3", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseResolution(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidResolution) {
					t.Fatalf("expected ErrInvalidResolution, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSetProposedResolution_KeepsPreviousOnError(t *testing.T) {
	m := &Monitor{ID: "DP-1", Resolution: Resolution{1920, 1080}}
	if err := m.SetProposedResolution("2560x1440"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.SetProposedResolution("garbage"); err == nil {
		t.Fatalf("expected error")
	}
	if got := m.EffectiveResolution(); got != (Resolution{2560, 1440}) {
		t.Fatalf("expected previous proposal to survive, got %v", got)
	}
}

func TestEffectiveResolution_FallsBackToCommitted(t *testing.T) {
	m := &Monitor{Resolution: Resolution{1280, 1024}}
	if got := m.EffectiveResolution(); got != m.Resolution {
		t.Fatalf("expected committed resolution, got %v", got)
	}
}

func TestCaptureDue(t *testing.T) {
	now := time.Now()
	m := &Monitor{}
	if !m.CaptureDue(now, 5*time.Second) {
		t.Fatalf("never-captured monitor should be due")
	}
	m.LastCapture = now.Add(-2 * time.Second)
	if m.CaptureDue(now, 5*time.Second) {
		t.Fatalf("recently captured monitor should not be due")
	}
	m.LastCapture = now.Add(-6 * time.Second)
	if !m.CaptureDue(now, 5*time.Second) {
		t.Fatalf("stale capture should be due")
	}
}

func TestLabel(t *testing.T) {
	if got := (&Monitor{}).Label(); got != "(unnamed)" {
		t.Fatalf("unexpected label %q", got)
	}
	if got := (&Monitor{ID: "HDMI-1"}).Label(); got != "HDMI-1" {
		t.Fatalf("unexpected label %q", got)
	}
}
