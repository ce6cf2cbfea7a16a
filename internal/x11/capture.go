package x11

import (
	"context"
	"fmt"
	"image"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/monitile/internal/geom"
)

// Capture grabs the root-window pixels inside r. The X request itself cannot
// be cancelled; a done context abandons the reply.
func (c *Connection) Capture(ctx context.Context, r geom.Rect) (*image.RGBA, error) {
	x, y := int16(r.Min.X), int16(r.Min.Y)
	w, h := uint16(r.Width()), uint16(r.Height())
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("capture: empty rect %+v", r)
	}

	type result struct {
		reply *xproto.GetImageReply
		err   error
	}
	done := make(chan result, 1)
	go func() {
		reply, err := xproto.GetImage(
			c.XUtil.Conn(),
			xproto.ImageFormatZPixmap,
			xproto.Drawable(c.Root),
			x, y, w, h,
			0xffffffff,
		).Reply()
		done <- result{reply: reply, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-done:
		if res.err != nil {
			return nil, fmt.Errorf("get image: %w", res.err)
		}
		return bgraToRGBA(res.reply.Data, int(w), int(h))
	}
}

// bgraToRGBA converts a 32bpp ZPixmap buffer into an opaque RGBA image.
func bgraToRGBA(data []byte, w, h int) (*image.RGBA, error) {
	if len(data) < w*h*4 {
		return nil, fmt.Errorf("capture: short image data: %d bytes for %dx%d", len(data), w, h)
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < w*h*4; i += 4 {
		img.Pix[i] = data[i+2]
		img.Pix[i+1] = data[i+1]
		img.Pix[i+2] = data[i]
		img.Pix[i+3] = 0xff
	}
	return img, nil
}
