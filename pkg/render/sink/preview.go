package sink

import (
	"bytes"
	"encoding/base64"
	"strings"

	"github.com/gogpu/gg"

	"github.com/la-jarre-a-son/tilejar/pkg/errors"
	"github.com/la-jarre-a-son/tilejar/pkg/layout"
)

// Preview sizes used for preset list thumbnails.
const (
	PreviewWidth  = 160
	PreviewHeight = 90
)

// RenderPreview draws a width x height PNG thumbnail of l.
//
// The render area is fitted to the thumbnail keeping the render aspect
// ratio and centred on a transparent background. Each instance is drawn as a
// rectangle the size of the tile, filled with its variant's hex fill at the
// variant opacity. Variants without a hex fill are skipped.
func RenderPreview(l *layout.Layout, width, height int) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "preview size must be positive, got %dx%d", width, height)
	}

	dc := gg.NewContext(width, height)
	defer dc.Close()
	dc.ClearWithColor(gg.Transparent)

	x, y, w, h := fit(float64(width), float64(height), l.Render.Width, l.Render.Height)
	if l.Width > 0 && l.Height > 0 && w > 0 && h > 0 {
		scale := min(w/l.Width, h/l.Height)
		dc.Push()
		dc.Translate(x+(w-l.Width*scale)/2, y+(h-l.Height*scale)/2)
		dc.Scale(scale, scale)
		if err := drawInstances(dc, l); err != nil {
			dc.Pop()
			return nil, err
		}
		dc.Pop()
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode preview")
	}
	return buf.Bytes(), nil
}

// PreviewDataURL renders a preview and returns it as a data URL.
func PreviewDataURL(l *layout.Layout, width, height int) (string, error) {
	data, err := RenderPreview(l, width, height)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data), nil
}

func drawInstances(dc *gg.Context, l *layout.Layout) error {
	for _, inst := range l.Instances {
		if inst.VariantIndex < 0 || inst.VariantIndex >= len(l.Variants) {
			continue
		}
		v := l.Variants[inst.VariantIndex]
		if v.Fill == nil || !strings.HasPrefix(*v.Fill, "#") || v.Opacity <= 0 {
			continue
		}
		c := gg.Hex(*v.Fill)
		dc.SetRGBA(c.R, c.G, c.B, c.A*min(v.Opacity, 1))
		dc.DrawRectangle(inst.X, inst.Y, l.TileWidth, l.TileHeight)
		if err := dc.Fill(); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "draw preview")
		}
	}
	return nil
}

// fit returns the rectangle a render of rw x rh occupies when fitted to a
// w x h canvas.
func fit(w, h, rw, rh float64) (x, y, fw, fh float64) {
	fw, fh = w, h
	switch {
	case rw <= 0 || rh <= 0:
	case rw > rh:
		fh = h * (rh / rw)
	default:
		fw = w * (rw / rh)
	}
	return (w - fw) / 2, (h - fh) / 2, fw, fh
}
