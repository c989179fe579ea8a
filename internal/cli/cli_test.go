package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/la-jarre-a-son/tilejar/pkg/preset"
	"github.com/la-jarre-a-son/tilejar/pkg/store"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "png", []string{"png"}},
		{"multiple formats", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"spaces and case", "SVG, json", []string{"svg", "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNameFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"waves.json", "waves"},
		{"dir/waves.toml", "waves"},
		{"waves" + preset.ExportSuffix, "waves"},
		{"/tmp/a.b.yaml", "a.b"},
	}
	for _, tt := range tests {
		if got := nameFromPath(tt.path); got != tt.want {
			t.Errorf("nameFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		formats []string
		multi   bool
		want    map[string]string
	}{
		{"default", "", []string{"svg"}, false, map[string]string{"svg": "waves.svg"}},
		{"explicit single", "out/frame.svg", []string{"svg"}, false, map[string]string{"svg": "out/frame.svg"}},
		{"base path strips format", "out/frame.svg", []string{"svg", "png"}, false,
			map[string]string{"svg": "out/frame.svg", "png": "out/frame.png"}},
		{"several presets", "out", []string{"png"}, true, map[string]string{"png": filepath.Join("out", "waves.png")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPaths(tt.output, "waves", tt.formats, tt.multi)
			for f, want := range tt.want {
				if got[f] != want {
					t.Errorf("paths[%s] = %q, want %q", f, got[f], want)
				}
			}
		})
	}
}

func TestFormatRelativeTime(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		t    time.Time
		want string
	}{
		{time.Time{}, "—"},
		{now.Add(-10 * time.Second), "just now"},
		{now.Add(-5 * time.Minute), "5m ago"},
		{now.Add(-3 * time.Hour), "3h ago"},
		{now.Add(-48 * time.Hour), "2d ago"},
		{time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), "Jan 2, 2024"},
	}
	for _, tt := range tests {
		if got := formatRelativeTime(tt.t, now); got != tt.want {
			t.Errorf("formatRelativeTime(%v) = %q, want %q", tt.t, got, tt.want)
		}
	}
}

func TestPresetTable(t *testing.T) {
	now := time.Now()
	out := presetTable([]store.Summary{
		{ID: "0123456789", Name: "waves", UpdatedAt: now},
		{ID: "abc", Name: "dots", UpdatedAt: now},
	}, "dots", now)
	for _, want := range []string{"Name", "waves", "dots", "01234567", "▸"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

// =============================================================================
// Command tests
// =============================================================================

func testPreset() *preset.Preset {
	p := preset.Default()
	p.Width, p.Height, p.SafeAreaSize = 20, 20, 100
	p.Render.Width, p.Render.Height = 20, 20
	p.Render.Duration, p.Render.FrameRate = 1, 3
	p.Tile = preset.Tile{Path: "M0 0h10v10H0z", Width: 10, Height: 10, ColumnDeltaX: 10, LineDeltaY: 10}
	p.Grid = preset.Grid{CountX: 2, CountY: 2, Lines: 1, Columns: 1, Order: preset.OrderDownRight}
	return p
}

// testEnv isolates the config and cache directories and writes a preset
// file named waves.json.
func testEnv(t *testing.T) (dir, presetFile string) {
	t.Helper()
	dir = t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	t.Setenv(envRedisURL, "")
	t.Setenv(envMongoURI, "")
	t.Chdir(dir)

	presetFile = filepath.Join(dir, "waves.json")
	if err := preset.Save(presetFile, testPreset()); err != nil {
		t.Fatal(err)
	}
	return dir, presetFile
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	var out bytes.Buffer
	c.Out = &out
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRenderCommand(t *testing.T) {
	dir, file := testEnv(t)
	out := filepath.Join(dir, "frame.svg")

	if _, err := execute(t, "render", file, "-o", out, "--frame", "2"); err != nil {
		t.Fatalf("render error: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "--animation-current-time: -0.3333333333333333s") {
		t.Errorf("frame 2 offset missing from %s", data)
	}
}

func TestRenderCommandInvalidFormat(t *testing.T) {
	_, file := testEnv(t)
	if _, err := execute(t, "render", file, "-f", "gif"); err == nil {
		t.Error("render -f gif should fail")
	}
}

func TestExportCommand(t *testing.T) {
	dir, file := testEnv(t)
	frames := filepath.Join(dir, "frames")

	if _, err := execute(t, "export", file, "-o", frames); err != nil {
		t.Fatalf("export error: %v", err)
	}
	for _, name := range []string{"0001.svg", "0002.svg", "0003.svg"} {
		if _, err := os.Stat(filepath.Join(frames, name)); err != nil {
			t.Errorf("missing frame %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(frames, "0004.svg")); !os.IsNotExist(err) {
		t.Errorf("unexpected frame 0004.svg")
	}
}

func TestExportCommandHelp(t *testing.T) {
	cmd := New(io.Discard, log.InfoLevel).exportCommand()
	if got := cmd.Flags().Lookup("format").DefValue; got != "svg" {
		t.Errorf("default export format = %q, want svg", got)
	}
	if !strings.Contains(cmd.Long, "rsvg-convert") {
		t.Error("export help should note that converted frames are static")
	}
}

func TestPresetCommands(t *testing.T) {
	dir, file := testEnv(t)

	if _, err := execute(t, "preset", "import", file); err != nil {
		t.Fatalf("import error: %v", err)
	}
	if _, err := execute(t, "preset", "use", "waves"); err != nil {
		t.Fatalf("use error: %v", err)
	}

	out, err := execute(t, "preset", "list")
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if !strings.Contains(out, "waves") {
		t.Errorf("list output missing waves:\n%s", out)
	}

	out, err = execute(t, "preset", "show", "-f", "yaml")
	if err != nil {
		t.Fatalf("show error: %v", err)
	}
	if !strings.Contains(out, "countX: 2") {
		t.Errorf("show output:\n%s", out)
	}

	// Without arguments render uses the current preset and names the
	// output after it.
	if _, err := execute(t, "render"); err != nil {
		t.Fatalf("render current error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "waves.svg")); err != nil {
		t.Errorf("render of current preset: %v", err)
	}

	if _, err := execute(t, "preset", "export", "waves"); err != nil {
		t.Fatalf("export error: %v", err)
	}
	if _, err := preset.Load(filepath.Join(dir, preset.ExportFileName("waves"))); err != nil {
		t.Errorf("exported preset: %v", err)
	}

	out, err = execute(t, "preset", "delete", "waves")
	if err != nil {
		t.Fatalf("delete error: %v", err)
	}
	if !strings.Contains(out, "Deleted waves") {
		t.Errorf("delete output = %q", out)
	}
	if _, err := execute(t, "preset", "show", "waves"); err == nil {
		t.Error("show after delete should fail")
	}
}

func TestLayoutCommand(t *testing.T) {
	dir, file := testEnv(t)
	out := filepath.Join(dir, "waves.layout.json")

	status, err := execute(t, "layout", file, "-o", out)
	if err != nil {
		t.Fatalf("layout error: %v", err)
	}
	if !strings.Contains(status, "Layout complete") || !strings.Contains(status, "4 tiles") {
		t.Errorf("layout status = %q", status)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"instances"`) {
		t.Errorf("layout json missing instances")
	}
}

func TestCacheCommands(t *testing.T) {
	dir, file := testEnv(t)

	out, err := execute(t, "cache", "path")
	if err != nil {
		t.Fatalf("cache path error: %v", err)
	}
	if want := filepath.Join(dir, "cache", appName); strings.TrimSpace(out) != want {
		t.Errorf("cache path = %q, want %q", out, want)
	}

	if _, err := execute(t, "render", file, "-o", filepath.Join(dir, "out.svg")); err != nil {
		t.Fatalf("render error: %v", err)
	}
	out, err = execute(t, "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear error: %v", err)
	}
	if !strings.Contains(out, "Cleared") || strings.Contains(out, "Cleared 0 ") {
		t.Errorf("cache clear output = %q, want entries removed", out)
	}
}
