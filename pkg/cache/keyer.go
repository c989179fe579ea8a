package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
)

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey addresses the computed layout of a preset.
	LayoutKey(presetHash string) string

	// ArtifactKey addresses one rendered output of a preset.
	ArtifactKey(presetHash string, opts ArtifactKeyOpts) string

	// PreviewKey addresses a preset thumbnail.
	PreviewKey(presetHash string, width, height int) string
}

// ArtifactKeyOpts are the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Frame  int     `json:"frame"`
	Scale  float64 `json:"scale,omitempty"`
	State  string  `json:"state,omitempty"`
	Name   string  `json:"name,omitempty"`
}

// DefaultKeyer builds unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey returns "layout:<hash>".
func (DefaultKeyer) LayoutKey(presetHash string) string {
	return "layout:" + presetHash
}

// ArtifactKey returns "artifact:<hash of preset hash and options>".
func (DefaultKeyer) ArtifactKey(presetHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", presetHash, opts)
}

// PreviewKey returns "preview:<hash>:<width>x<height>".
func (DefaultKeyer) PreviewKey(presetHash string, width, height int) string {
	return "preview:" + presetHash + ":" + strconv.Itoa(width) + "x" + strconv.Itoa(height)
}

var _ Keyer = DefaultKeyer{}

// hashKey returns prefix:sha256(json(parts)).
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
