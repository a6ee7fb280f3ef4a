package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"go.uber.org/multierr"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test terrain defaults
	if cfg.Terrain.Size != 800 {
		t.Errorf("expected terrain size 800, got %v", cfg.Terrain.Size)
	}
	if cfg.Terrain.MaxHeight != 40 {
		t.Errorf("expected max height 40, got %v", cfg.Terrain.MaxHeight)
	}
	if len(cfg.Terrain.Tiles) != 1 || cfg.Terrain.Tiles[0] != (TileConfig{X: -1, Z: -1}) {
		t.Errorf("expected a single tile at (-1,-1), got %v", cfg.Terrain.Tiles)
	}

	// Test physics defaults
	if cfg.Physics.Speed != 15 || cfg.Physics.JumpSpeed != 30 || cfg.Physics.Gravity != -75 || cfg.Physics.MaxSlope != 1 {
		t.Errorf("unexpected physics defaults %+v", cfg.Physics)
	}

	// Test graphics defaults
	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
terrain:
  heightmap: "maps/island.png"
  size: 400
  max_height: 25
  tiles:
    - grid_x: 0
      grid_z: 0
    - grid_x: 1
      grid_z: 0

models:
  - path: "models/pine.obj"
    tangents: true
    scatter:
      count: 80
      scale: 3
  - path: "models/fern.obj"
    scatter:
      count: 500
      variants: 4
      y_offset: -0.5

scatter:
  seed: 1234
  area:
    min_x: 0
    min_z: 0
    max_x: 800
    max_z: 400

graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  fps_limit: 144

logging:
  level: "debug"
  log_file: "viewer.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if cfg.Terrain.Heightmap != "maps/island.png" {
		t.Errorf("expected heightmap maps/island.png, got %s", cfg.Terrain.Heightmap)
	}
	if cfg.Terrain.Size != 400 || cfg.Terrain.MaxHeight != 25 {
		t.Errorf("expected size 400 / max height 25, got %v / %v", cfg.Terrain.Size, cfg.Terrain.MaxHeight)
	}
	if len(cfg.Terrain.Tiles) != 2 || cfg.Terrain.Tiles[1] != (TileConfig{X: 1, Z: 0}) {
		t.Errorf("expected tiles replaced by file, got %v", cfg.Terrain.Tiles)
	}

	if len(cfg.Models) != 2 {
		t.Fatalf("expected 2 models, got %d", len(cfg.Models))
	}
	if !cfg.Models[0].Tangents || cfg.Models[0].Scatter.Scale != 3 {
		t.Errorf("unexpected first model %+v", cfg.Models[0])
	}
	if cfg.Models[1].Scatter.Variants != 4 || cfg.Models[1].Scatter.YOffset != -0.5 {
		t.Errorf("unexpected second model %+v", cfg.Models[1])
	}

	if cfg.Scatter.Seed != 1234 {
		t.Errorf("expected seed 1234, got %d", cfg.Scatter.Seed)
	}
	if cfg.Scatter.Area.MaxX != 800 || cfg.Scatter.Area.MaxZ != 400 {
		t.Errorf("unexpected area %+v", cfg.Scatter.Area)
	}

	// Physics absent from file keeps defaults
	if cfg.Physics.Gravity != -75 {
		t.Errorf("expected default gravity -75, got %v", cfg.Physics.Gravity)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.FPSLimit != 144 {
		t.Errorf("expected fps limit 144, got %d", cfg.Graphics.FPSLimit)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "viewer.log" {
		t.Errorf("expected log file 'viewer.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	// Create temporary config file with invalid YAML
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Try to load - should error
	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestLoadFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("terrain:\n  size: 200\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.Terrain.Size != 200 || cfg.Terrain.MaxHeight != 40 {
		t.Errorf("expected size 200 with default max height, got %v / %v", cfg.Terrain.Size, cfg.Terrain.MaxHeight)
	}

	cfg, err = LoadFile("")
	if err != nil || cfg.Terrain.Size != 800 {
		t.Errorf("LoadFile(\"\") = %v, %v; want defaults", cfg, err)
	}

	badPath := filepath.Join(tmpDir, "bad.yaml")
	if err := os.WriteFile(badPath, []byte("terrain:\n  size: -1\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	if _, err := LoadFile(badPath); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"empty heightmap", func(c *Config) { c.Terrain.Heightmap = "" }, "terrain.heightmap"},
		{"zero size", func(c *Config) { c.Terrain.Size = 0 }, "terrain.size"},
		{"no tiles", func(c *Config) { c.Terrain.Tiles = nil }, "terrain.tiles is empty"},
		{"duplicate tiles", func(c *Config) { c.Terrain.Tiles = []TileConfig{{1, 1}, {1, 1}} }, "duplicate tile (1, 1)"},
		{"model without path", func(c *Config) { c.Models = []ModelConfig{{}} }, "models[0].path"},
		{"negative count", func(c *Config) { c.Models = []ModelConfig{{Path: "a.obj", Scatter: ModelScatterConfig{Count: -1}}} }, "models[0].scatter.count"},
		{"inverted area", func(c *Config) { c.Scatter.Area = AreaConfig{MinX: 10, MaxX: 0} }, "scatter.area"},
		{"upward gravity", func(c *Config) { c.Physics.Gravity = 9.8 }, "physics.gravity"},
		{"flat max slope", func(c *Config) { c.Physics.MaxSlope = 0 }, "physics.max_slope"},
		{"sun below horizon", func(c *Config) { c.Graphics.Sun.Elevation = -10 }, "graphics.sun.elevation"},
		{"zero width", func(c *Config) { c.Graphics.Width = 0 }, "graphics size"},
		{"bad level", func(c *Config) { c.Logging.Level = "verbose" }, "logging.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Terrain.Size = -1
	cfg.Graphics.Height = 0
	cfg.Logging.Level = "loud"

	errs := multierr.Errors(cfg.Validate())
	if len(errs) != 3 {
		t.Errorf("expected 3 errors, got %d: %v", len(errs), errs)
	}
}

func TestConversions(t *testing.T) {
	cfg := Default()
	cfg.Terrain.Tiles = []TileConfig{{X: 2, Z: -3}}

	opts := cfg.Terrain.GridOptions()
	if opts.Size != 800 || opts.MaxHeight != 40 || opts.OriginX != 0 {
		t.Errorf("unexpected grid options %+v", opts)
	}
	coords := cfg.Terrain.TileCoords()
	if len(coords) != 1 || coords[0].X != 2 || coords[0].Z != -3 {
		t.Errorf("unexpected tile coords %v", coords)
	}

	area := cfg.Scatter.Area.Area()
	if !area.Contains(-400, -400) || area.Contains(1, 1) {
		t.Errorf("unexpected area %+v", area)
	}

	so := ModelScatterConfig{Count: 5, Variants: 4, YOffset: 1, Scale: 2}.Options()
	if so.Count != 5 || so.Variants != 4 || so.YOffset != 1 || so.Scale != 2 {
		t.Errorf("unexpected scatter options %+v", so)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Just verify it returns a non-empty path
	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	// Verify path is absolute
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	// Save current directory
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	// Create temp directory and change to it
	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// Create config.yaml in current directory
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Should find it now
	path = findConfigFile()
	if path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "heightmap flag",
			setup: func() {
				*flagHeightmap = "other.png"
			},
			verify: func(cfg *Config) {
				if cfg.Terrain.Heightmap != "other.png" {
					t.Errorf("expected heightmap other.png, got %s", cfg.Terrain.Heightmap)
				}
			},
			teardown: func() {
				*flagHeightmap = ""
			},
		},
		{
			name: "seed flag",
			setup: func() {
				seed := int64(0)
				flagSeed = &seed
			},
			verify: func(cfg *Config) {
				if cfg.Scatter.Seed != 0 {
					t.Errorf("expected explicit seed 0, got %d", cfg.Scatter.Seed)
				}
			},
			teardown: func() {
				flagSeed = nil
			},
		},
		{
			name: "model flags",
			setup: func() {
				flagModels = []string{"a.obj", "b.obj"}
			},
			verify: func(cfg *Config) {
				if len(cfg.Models) != 2 || cfg.Models[1].Path != "b.obj" || !cfg.Models[1].Tangents {
					t.Errorf("expected two models with tangents, got %+v", cfg.Models)
				}
			},
			teardown: func() {
				flagModels = nil
			},
		},
		{
			name: "windowed flag",
			setup: func() {
				*flagWindowed = true
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() {
				*flagWindowed = false
			},
		},
		{
			name: "fullscreen flag",
			setup: func() {
				*flagFullscreen = true
			},
			verify: func(cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() {
				*flagFullscreen = false
			},
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Graphics.Width)
				}
				if cfg.Graphics.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			tt.setup()
			defer tt.teardown()

			// Apply flags to default config
			cfg := Default()
			applyFlags(cfg)

			// Verify
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	// Load config
	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}

	// Height should be from file (900) since no flag override
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Models = []ModelConfig{{Path: "tree.obj", Scatter: ModelScatterConfig{Count: 3}}}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload: %v", err)
	}
	if len(loaded.Models) != 1 || loaded.Models[0].Path != "tree.obj" || loaded.Models[0].Scatter.Count != 3 {
		t.Errorf("round trip lost models: %+v", loaded.Models)
	}
}

func TestSaveTo_RejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := Default()
	cfg.Terrain.Size = 0
	if err := cfg.SaveTo(path); !errors.Is(err, ErrInvalid) {
		t.Fatalf("SaveTo() error = %v, want %v", err, ErrInvalid)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("invalid config was written: stat error = %v", err)
	}
}

func TestSave(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("config dir only follows XDG_CONFIG_HOME on linux")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := Default()
	cfg.Scatter.Seed = 99
	path, err := cfg.Save()
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if want := filepath.Join(ConfigDir(), "config.yaml"); path != want {
		t.Errorf("Save() path = %q, want %q", path, want)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if loaded.Scatter.Seed != 99 {
		t.Errorf("reloaded seed = %d, want 99", loaded.Scatter.Seed)
	}

	entries, _ := os.ReadDir(ConfigDir())
	if len(entries) != 1 {
		t.Errorf("config dir holds %d entries, want only config.yaml", len(entries))
	}
}

func TestEncode(t *testing.T) {
	var buf strings.Builder
	if err := Default().Encode(&buf); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	for _, want := range []string{"terrain:\n  heightmap: heightmap.png", "max_slope: 1", "grid_x: -1"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("Encode() output lacks %q:\n%s", want, buf.String())
		}
	}
}
