package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"

	"github.com/1broseidon/monitile/internal/monitor"
)

// Outputs enumerates every RandR output in server order. Connected outputs
// that are not driving a CRTC come back without geometry.
func (c *Connection) Outputs() ([]monitor.Descriptor, error) {
	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	descs := make([]monitor.Descriptor, 0, len(resources.Outputs))
	for _, output := range resources.Outputs {
		info, err := randr.GetOutputInfo(c.XUtil.Conn(), output, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}

		var crtc *randr.GetCrtcInfoReply
		if info.Crtc != 0 {
			if ci, err := randr.GetCrtcInfo(c.XUtil.Conn(), info.Crtc, resources.ConfigTimestamp).Reply(); err == nil {
				crtc = ci
			}
		}
		descs = append(descs, describeOutput(string(info.Name), info.Connection, crtc))
	}
	return descs, nil
}

// describeOutput converts RandR replies into a descriptor. A CRTC with no
// area counts as no geometry.
func describeOutput(name string, connection byte, crtc *randr.GetCrtcInfoReply) monitor.Descriptor {
	d := monitor.Descriptor{
		ID:        name,
		Connected: connection == randr.ConnectionConnected,
	}
	if !d.Connected || crtc == nil || crtc.Width == 0 || crtc.Height == 0 {
		return d
	}
	d.Geometry = &monitor.Geometry{
		Width:  int(crtc.Width),
		Height: int(crtc.Height),
		X:      int(crtc.X),
		Y:      int(crtc.Y),
	}
	return d
}
