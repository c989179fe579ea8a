package sink

import (
	"bytes"
	"image/png"
	"strings"
	"testing"
)

func TestRenderPreview(t *testing.T) {
	l := smallLayout(t)

	data, err := RenderPreview(l, 32, 16)
	if err != nil {
		t.Fatalf("RenderPreview() error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 16 {
		t.Errorf("size = %dx%d, want 32x16", b.Dx(), b.Dy())
	}
	if _, _, _, a := img.At(0, 8).RGBA(); a != 0 {
		t.Errorf("letterbox alpha = %d, want 0", a)
	}
	if _, _, _, a := img.At(16, 8).RGBA(); a == 0 {
		t.Error("centre pixel not drawn")
	}
}

func TestRenderPreviewInvalidSize(t *testing.T) {
	l := smallLayout(t)
	if _, err := RenderPreview(l, 0, 10); err == nil {
		t.Error("RenderPreview(0, 10) should fail")
	}
}

func TestPreviewDataURL(t *testing.T) {
	l := smallLayout(t)
	url, err := PreviewDataURL(l, PreviewWidth, PreviewHeight)
	if err != nil {
		t.Fatalf("PreviewDataURL() error: %v", err)
	}
	if !strings.HasPrefix(url, "data:image/png;base64,") {
		t.Errorf("PreviewDataURL() = %.40q...", url)
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		name         string
		w, h, rw, rh float64
		x, y, fw, fh float64
	}{
		{"landscape", 160, 90, 1920, 1080, 0, 0, 160, 90},
		{"wide", 100, 100, 200, 100, 0, 25, 100, 50},
		{"tall", 100, 100, 100, 200, 25, 0, 50, 100},
		{"square", 100, 50, 10, 10, 0, 0, 100, 50},
		{"empty render", 100, 50, 0, 0, 0, 0, 100, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, fw, fh := fit(tt.w, tt.h, tt.rw, tt.rh)
			if x != tt.x || y != tt.y || fw != tt.fw || fh != tt.fh {
				t.Errorf("fit() = (%v,%v,%v,%v), want (%v,%v,%v,%v)", x, y, fw, fh, tt.x, tt.y, tt.fw, tt.fh)
			}
		})
	}
}
