// Package store persists the user's preset list.
//
// Each saved preset is an [Entry]: a stable ID, a unique name, a thumbnail
// data URL and the preset itself. Two backends implement [Store]:
//
//   - file: JSON files under the user config directory (CLI)
//   - mongo: a MongoDB collection (server)
//
// # Usage
//
//	st, err := store.NewFileStore("") // ~/.config/tilejar/presets
//	if err != nil {
//	    return err
//	}
//	defer st.Close()
//
//	entry, err := st.Save(ctx, store.NewEntry("waves", preview, p))
//	list, err := st.List(ctx)
//
// Saving under an existing name replaces the preview and the preset and
// keeps the entry's ID and creation time.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/la-jarre-a-son/tilejar/pkg/errors"
	"github.com/la-jarre-a-son/tilejar/pkg/preset"
)

// DefaultName is the preset selected when nothing else has been chosen.
// Getting it always succeeds: an unsaved default resolves to
// [preset.Default].
const DefaultName = "default"

// ErrNotFound is returned for names that are not in the store.
var ErrNotFound = &errors.Error{Code: errors.ErrCodeNotFound, Message: "preset not found"}

// Summary is one row of the preset list.
type Summary struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Preview   string    `json:"preview,omitempty" bson:"preview,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Entry is a saved preset.
type Entry struct {
	Summary `bson:",inline"`
	Preset  *preset.Preset `json:"preset" bson:"preset"`
}

// NewEntry returns an unsaved entry with a fresh ID.
func NewEntry(name, preview string, p *preset.Preset) *Entry {
	return &Entry{
		Summary: Summary{ID: uuid.NewString(), Name: name, Preview: preview},
		Preset:  p,
	}
}

// Store is the interface for preset storage backends.
type Store interface {
	// List returns the saved presets in creation order.
	List(ctx context.Context) ([]Summary, error)

	// Get returns the entry named name, or [ErrNotFound].
	Get(ctx context.Context, name string) (*Entry, error)

	// Save inserts e or replaces the entry with the same name and returns
	// the stored entry.
	Save(ctx context.Context, e *Entry) (*Entry, error)

	// Delete removes the entry named name, or returns [ErrNotFound].
	Delete(ctx context.Context, name string) error

	// Current returns the name of the selected preset, [DefaultName] when
	// none was selected.
	Current(ctx context.Context) (string, error)

	// SetCurrent selects a preset by name.
	SetCurrent(ctx context.Context, name string) error

	Close() error
}

// notFound returns ErrNotFound for name.
func notFound(name string) error {
	return errors.Wrap(errors.ErrCodeNotFound, ErrNotFound, "preset %q not found", name)
}

// defaultEntry resolves an unsaved [DefaultName].
func defaultEntry() *Entry {
	return &Entry{Summary: Summary{Name: DefaultName}, Preset: preset.Default()}
}

// prepare validates e and merges it over the stored entry, if any.
func prepare(e *Entry, existing *Entry, now time.Time) (*Entry, error) {
	if e == nil || e.Preset == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "entry has no preset")
	}
	if err := errors.ValidatePresetName(e.Name); err != nil {
		return nil, err
	}
	out := *e
	out.UpdatedAt = now
	switch {
	case existing != nil:
		out.ID = existing.ID
		out.CreatedAt = existing.CreatedAt
	default:
		if out.ID == "" {
			out.ID = uuid.NewString()
		}
		out.CreatedAt = now
	}
	return &out, nil
}
