package store

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/la-jarre-a-son/tilejar/pkg/errors"
	"github.com/la-jarre-a-son/tilejar/pkg/preset"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}
	tick := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}
	return s
}

func TestFileStoreSaveGet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	p := preset.Default()
	p.Grid.CountX = 3
	saved, err := s.Save(ctx, NewEntry("waves", "data:image/png;base64,AA", p))
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if saved.ID == "" || saved.CreatedAt.IsZero() {
		t.Errorf("saved entry missing ID or CreatedAt: %+v", saved.Summary)
	}

	got, err := s.Get(ctx, "waves")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.ID != saved.ID || got.Preview != "data:image/png;base64,AA" {
		t.Errorf("Get = %+v, want %+v", got.Summary, saved.Summary)
	}
	if got.Preset.Grid.CountX != 3 {
		t.Errorf("Preset.Grid.CountX = %d, want 3", got.Preset.Grid.CountX)
	}
}

func TestFileStoreSaveReplaces(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	first, err := s.Save(ctx, NewEntry("waves", "a", preset.Default()))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Save(ctx, NewEntry("dots", "b", preset.Default())); err != nil {
		t.Fatal(err)
	}
	second, err := s.Save(ctx, NewEntry("waves", "c", preset.Default()))
	if err != nil {
		t.Fatal(err)
	}

	if second.ID != first.ID {
		t.Errorf("ID changed on replace: %s -> %s", first.ID, second.ID)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("CreatedAt changed on replace")
	}
	if !second.UpdatedAt.After(first.UpdatedAt) {
		t.Errorf("UpdatedAt not advanced")
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("List len = %d, want 2", len(list))
	}
	if list[0].Name != "waves" || list[0].Preview != "c" || list[1].Name != "dots" {
		t.Errorf("List = %+v", list)
	}
}

func TestFileStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if _, err := s.Save(ctx, NewEntry("waves", "", preset.Default())); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, "waves"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(s.Path(), "preset-waves.json")); !os.IsNotExist(err) {
		t.Errorf("preset file still exists: %v", err)
	}
	list, _ := s.List(ctx)
	if len(list) != 0 {
		t.Errorf("List len = %d, want 0", len(list))
	}

	err := s.Delete(ctx, "waves")
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("second Delete error = %v, want NOT_FOUND", err)
	}
}

func TestFileStoreGetMissing(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.Get(ctx, "missing")
	if !stderrors.Is(err, ErrNotFound) {
		t.Errorf("Get error = %v, want ErrNotFound", err)
	}

	e, err := s.Get(ctx, DefaultName)
	if err != nil {
		t.Fatalf("Get(default) error: %v", err)
	}
	if e.Preset.Hash() != preset.Default().Hash() {
		t.Errorf("unsaved default does not resolve to preset.Default")
	}
}

func TestFileStoreCurrent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	name, err := s.Current(ctx)
	if err != nil || name != DefaultName {
		t.Errorf("Current = %q, %v; want %q", name, err, DefaultName)
	}
	if err := s.SetCurrent(ctx, "waves"); err != nil {
		t.Fatal(err)
	}
	if name, _ := s.Current(ctx); name != "waves" {
		t.Errorf("Current = %q, want waves", name)
	}
}

func TestFileStoreValidation(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	tests := []struct {
		name  string
		entry *Entry
		code  errors.Code
	}{
		{"nil entry", nil, errors.ErrCodeInvalidInput},
		{"empty name", NewEntry("", "", preset.Default()), errors.ErrCodeInvalidName},
		{"traversal", NewEntry("../x", "", preset.Default()), errors.ErrCodeInvalidName},
		{"nil preset", NewEntry("ok", "", nil), errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Save(ctx, tt.entry)
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("Save error code = %q, want %q (err %v)", got, tt.code, err)
			}
		})
	}
}

func TestFileStoreCorruptIndex(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if err := os.WriteFile(filepath.Join(s.Path(), "presets.json"), []byte("{"), 0600); err != nil {
		t.Fatal(err)
	}
	list, err := s.List(ctx)
	if err != nil || len(list) != 0 {
		t.Errorf("List = %v, %v; want empty", list, err)
	}
}
