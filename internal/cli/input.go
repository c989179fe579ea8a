package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/la-jarre-a-son/tilejar/pkg/errors"
	"github.com/la-jarre-a-son/tilejar/pkg/pipeline"
	"github.com/la-jarre-a-son/tilejar/pkg/preset"
)

// source is a resolved preset argument.
type source struct {
	Name   string // display and output name
	Path   string // file path, empty for stored presets
	Preset *preset.Preset
}

// loadPreset resolves arg to a preset. An existing file is read from disk
// ("-" reads JSON from stdin), any other argument is looked up in the
// preset store, and an empty argument selects the current stored preset.
func (c *CLI) loadPreset(ctx context.Context, arg string) (*source, error) {
	if arg == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		p, err := pipeline.Parse(data, preset.FormatJSON)
		if err != nil {
			return nil, err
		}
		return &source{Name: "stdin", Preset: p}, nil
	}

	if arg != "" {
		if info, err := os.Stat(arg); err == nil && !info.IsDir() {
			p, err := pipeline.Load(arg)
			if err != nil {
				return nil, err
			}
			return &source{Name: nameFromPath(arg), Path: arg, Preset: p}, nil
		}
	}

	st, err := c.openStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("open preset store: %w", err)
	}
	defer st.Close()

	name := arg
	if name == "" {
		if name, err = st.Current(ctx); err != nil {
			return nil, err
		}
	}
	e, err := st.Get(ctx, name)
	if err != nil {
		if errors.Is(err, errors.ErrCodeNotFound) || errors.Is(err, errors.ErrCodeInvalidName) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "%q is neither a preset file nor a saved preset", arg)
		}
		return nil, err
	}
	if err := preset.Validate(e.Preset); err != nil {
		return nil, fmt.Errorf("saved preset %q: %w", name, err)
	}
	return &source{Name: e.Name, Preset: e.Preset}, nil
}

// nameFromPath strips the directory, the export suffix and the extension
// from a preset file path.
func nameFromPath(path string) string {
	base := filepath.Base(path)
	if strings.HasSuffix(base, preset.ExportSuffix) {
		return strings.TrimSuffix(base, preset.ExportSuffix)
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// basePath derives the base output path from the output flag and the
// source name. Known format extensions are stripped from output.
func basePath(output, name string) string {
	if output == "" {
		return name
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// openOutput opens path for writing, or stdout when path is "-".
func openOutput(path string, stdout io.Writer) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{stdout}, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// writeOutput writes data to path, or to stdout when path is "-".
func writeOutput(path string, data []byte, stdout io.Writer) error {
	out, err := openOutput(path, stdout)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return out.Close()
}
