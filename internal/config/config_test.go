package config

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultsMatchReferenceBoard(t *testing.T) {
	c := New()
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}
	s := c.Layout().GridSize()
	if s.W != 32 || s.H != 12 {
		t.Fatalf("grid %dx%d, want 32x12", s.W, s.H)
	}
	if c.PollInterval != 100*time.Millisecond || c.Debounce != 200*time.Millisecond {
		t.Fatalf("unexpected timing %v / %v", c.PollInterval, c.Debounce)
	}
}

func TestFileUnderExplicitFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.toml")
	body := `
cell_size = 8
toggle_pin = "GPIO17"
frame_interval = "250ms"
pot_channels = [2, 3]
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	c.Bind(fs)
	if err := fs.Parse([]string{"-config", path, "-toggle", "GPIO5"}); err != nil {
		t.Fatal(err)
	}
	if err := c.Resolve(fs); err != nil {
		t.Fatal(err)
	}

	if c.CellSize != 8 || c.FrameInterval != 250*time.Millisecond {
		t.Fatalf("file values not applied: cell %d frame %v", c.CellSize, c.FrameInterval)
	}
	if c.PotChannels != [2]int{2, 3} {
		t.Fatalf("pot channels %v", c.PotChannels)
	}
	if c.TogglePin != "GPIO5" {
		t.Fatalf("explicit flag lost to file: %q", c.TogglePin)
	}
	if c.ButtonPin != "GPIO11" {
		t.Fatalf("default overwritten: %q", c.ButtonPin)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.toml")
	if err := os.WriteFile(path, []byte("wraparound = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	err := New().Load(path)
	if err == nil || !strings.Contains(err.Error(), "wraparound") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestValidateRejectsEmptyGrid(t *testing.T) {
	c := New()
	c.CellSize = 200
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for oversized cells")
	}

	c = New()
	c.HeaderHeight = 64
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for a header covering the panel")
	}
}
