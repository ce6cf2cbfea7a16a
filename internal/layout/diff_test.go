package layout

import (
	"reflect"
	"testing"

	"github.com/1broseidon/monitile/internal/geom"
	"github.com/1broseidon/monitile/internal/monitor"
)

func TestChanges_CleanAfterLayout(t *testing.T) {
	reg, _ := placedPair(t)
	if Dirty(reg) {
		t.Fatalf("fresh layout should be clean, got %v", Changes(reg))
	}
}

func TestChanges_Reasons(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(reg *monitor.Registry)
		want   []Reason
	}{
		{
			name: "moved",
			mutate: func(reg *monitor.Registry) {
				Translate(reg.Monitors[0], geom.Point{X: 3}, testBox)
			},
			want: []Reason{ReasonMoved},
		},
		{
			name: "resolution",
			mutate: func(reg *monitor.Registry) {
				if err := reg.Monitors[0].SetProposedResolution("1280x720"); err != nil {
					panic(err)
				}
			},
			want: []Reason{ReasonResolution},
		},
		{
			name: "status",
			mutate: func(reg *monitor.Registry) {
				reg.Monitors[0].ProposedStatus = false
			},
			want: []Reason{ReasonStatus},
		},
		{
			name: "disabled",
			mutate: func(reg *monitor.Registry) {
				reg.Monitors[0].Enabled = false
				reg.Monitors[0].ProposedStatus = false
			},
			want: []Reason{ReasonDisabled},
		},
		{
			name: "moved and resized",
			mutate: func(reg *monitor.Registry) {
				Translate(reg.Monitors[0], geom.Point{X: -2, Y: 2}, testBox)
				if err := reg.Monitors[0].SetProposedResolution("2560x1440"); err != nil {
					panic(err)
				}
			},
			want: []Reason{ReasonMoved, ReasonResolution},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, _ := placedPair(t)
			tt.mutate(reg)

			if !Dirty(reg) {
				t.Fatalf("expected dirty registry")
			}
			changes := Changes(reg)
			if len(changes) != 1 {
				t.Fatalf("expected one change, got %v", changes)
			}
			if changes[0].Monitor != reg.Monitors[0] {
				t.Fatalf("change attributed to wrong monitor: %s", changes[0].Monitor.ID)
			}
			if !reflect.DeepEqual(changes[0].Reasons, tt.want) {
				t.Fatalf("expected reasons %v, got %v", tt.want, changes[0].Reasons)
			}
		})
	}
}

func TestChanges_PlaceholderIsDirty(t *testing.T) {
	reg := monitor.NewRegistryFromMonitors(
		enabledMonitor("A", 1920, 1080),
		placeholder("B"),
	)
	if err := NewEngine(testBox, DefaultFillRatio).Place(reg); err != nil {
		t.Fatalf("place: %v", err)
	}
	changes := Changes(reg)
	if len(changes) != 1 || changes[0].Monitor.ID != "B" {
		t.Fatalf("expected only placeholder B pending, got %v", changes)
	}
	if got := changes[0].String(); got != "B: disabled" {
		t.Fatalf("unexpected change string %q", got)
	}
}

func TestChanges_SubEpsilonMoveIsClean(t *testing.T) {
	reg, _ := placedPair(t)
	a := reg.Monitors[0]
	a.Position.X += 1e-6
	if Moved(a) {
		t.Fatalf("sub-epsilon nudge should not count as moved")
	}
}
