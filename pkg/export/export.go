// Package export writes animation frames produced by a [playback.Player].
//
// Frames are numbered from 1 and named with a four digit zero-padded frame
// number ("0001.png", "0002.png", ...), so the files of one export sort in
// playback order. [Capture] adapts a frame renderer and a [Writer] into the
// capture callback that [playback.Player.Export] drives.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/la-jarre-a-son/tilejar/pkg/errors"
	"github.com/la-jarre-a-son/tilejar/pkg/playback"
)

// FrameName returns the file name of frame with extension ext ("png" or ".png").
func FrameName(frame int, ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		return fmt.Sprintf("%04d", frame)
	}
	return fmt.Sprintf("%04d.%s", frame, ext)
}

// Writer stores encoded frames.
type Writer interface {
	WriteFrame(ctx context.Context, frame int, data []byte) error
}

// WriterFunc adapts a function to a [Writer].
type WriterFunc func(ctx context.Context, frame int, data []byte) error

// WriteFrame calls f.
func (f WriterFunc) WriteFrame(ctx context.Context, frame int, data []byte) error {
	return f(ctx, frame, data)
}

// DirWriter writes each frame to its own file in Dir.
type DirWriter struct {
	Dir string
	Ext string
}

// NewDirWriter returns a writer for dir, creating it if needed.
func NewDirWriter(dir, ext string) (*DirWriter, error) {
	if err := errors.ValidatePath(FrameName(1, ext)); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create export directory %s", dir)
	}
	return &DirWriter{Dir: dir, Ext: ext}, nil
}

// Path returns the file path of frame.
func (w *DirWriter) Path(frame int) string {
	return filepath.Join(w.Dir, FrameName(frame, w.Ext))
}

// WriteFrame writes data to the frame's file, replacing any previous export.
func (w *DirWriter) WriteFrame(ctx context.Context, frame int, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := w.Path(frame)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderFunc encodes one frame.
type RenderFunc func(ctx context.Context, frame int) ([]byte, error)

// Capture returns a capture callback that renders each frame and stores it
// with w. Errors from render or w are returned unchanged.
func Capture(render RenderFunc, w Writer) playback.CaptureFunc {
	return func(ctx context.Context, frame int) error {
		data, err := render(ctx, frame)
		if err != nil {
			return err
		}
		return w.WriteFrame(ctx, frame, data)
	}
}
