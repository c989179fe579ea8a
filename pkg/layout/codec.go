package layout

import (
	"github.com/vmihailenco/msgpack/v5"

	"github.com/la-jarre-a-son/tilejar/pkg/errors"
)

// Marshal encodes l with msgpack for caching.
func Marshal(l *Layout) ([]byte, error) {
	data, err := msgpack.Marshal(l)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode layout")
	}
	return data, nil
}

// Unmarshal decodes a layout encoded by [Marshal].
func Unmarshal(data []byte) (*Layout, error) {
	var l Layout
	if err := msgpack.Unmarshal(data, &l); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode layout")
	}
	return &l, nil
}
