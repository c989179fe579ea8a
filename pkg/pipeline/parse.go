package pipeline

import (
	"bytes"
	"fmt"
	"os"

	"github.com/la-jarre-a-son/tilejar/pkg/errors"
	"github.com/la-jarre-a-son/tilejar/pkg/preset"
)

// Parse decodes and validates a preset.
func Parse(data []byte, format preset.Format) (*preset.Preset, error) {
	p, err := preset.Read(bytes.NewReader(data), format)
	if err != nil {
		return nil, err
	}
	if err := preset.Validate(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Load reads, decodes and validates the preset file at path.
// The format is inferred from the extension.
func Load(path string) (*preset.Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "preset file %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read preset %s", path)
	}
	p, err := Parse(data, preset.FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}
