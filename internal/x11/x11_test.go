package x11

import (
	"testing"

	"github.com/BurntSushi/xgb/randr"

	"github.com/1broseidon/monitile/internal/monitor"
)

func TestDescribeOutput(t *testing.T) {
	tests := []struct {
		name       string
		connection byte
		crtc       *randr.GetCrtcInfoReply
		wantConn   bool
		wantGeom   *monitor.Geometry
	}{
		{
			name:       "active",
			connection: randr.ConnectionConnected,
			crtc:       &randr.GetCrtcInfoReply{X: 1920, Y: 0, Width: 2560, Height: 1440},
			wantConn:   true,
			wantGeom:   &monitor.Geometry{Width: 2560, Height: 1440, X: 1920},
		},
		{
			name:       "connected without crtc",
			connection: randr.ConnectionConnected,
			wantConn:   true,
		},
		{
			name:       "zero area crtc",
			connection: randr.ConnectionConnected,
			crtc:       &randr.GetCrtcInfoReply{},
			wantConn:   true,
		},
		{
			name:       "disconnected",
			connection: randr.ConnectionDisconnected,
			crtc:       &randr.GetCrtcInfoReply{Width: 10, Height: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := describeOutput("OUT", tt.connection, tt.crtc)
			if d.ID != "OUT" || d.Connected != tt.wantConn {
				t.Fatalf("unexpected descriptor %+v", d)
			}
			if (d.Geometry == nil) != (tt.wantGeom == nil) {
				t.Fatalf("geometry presence mismatch: got %+v", d.Geometry)
			}
			if tt.wantGeom != nil && *d.Geometry != *tt.wantGeom {
				t.Fatalf("expected %+v, got %+v", *tt.wantGeom, *d.Geometry)
			}
		})
	}
}

func TestBGRAToRGBA(t *testing.T) {
	data := []byte{
		0x10, 0x20, 0x30, 0x00,
		0xaa, 0xbb, 0xcc, 0x00,
	}
	img, err := bgraToRGBA(data, 2, 1)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	want := []byte{0x30, 0x20, 0x10, 0xff, 0xcc, 0xbb, 0xaa, 0xff}
	for i, b := range want {
		if img.Pix[i] != b {
			t.Fatalf("pix[%d]: expected %#x, got %#x", i, b, img.Pix[i])
		}
	}

	if _, err := bgraToRGBA(data, 2, 2); err == nil {
		t.Fatalf("expected error for short buffer")
	}
}
