package terrain

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/groundwork/internal/engine/texture"
)

// peakImage returns a 3x3 mid-grey image with a brighter centre pixel.
func peakImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 3, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			img.SetRGBA(x, y, color.RGBA{0x80, 0, 0, 255})
		}
	}
	img.SetRGBA(1, 1, color.RGBA{0xC0, 0, 0, 255})
	return img
}

func writePNG(t *testing.T, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "heightmap.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return path
}

func TestRasterFromImage_PacksRGB(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{0x12, 0x34, 0x56, 255})
	img.SetRGBA(1, 0, color.RGBA{0xFF, 0xFF, 0xFF, 255})
	img.SetRGBA(0, 1, color.RGBA{0, 0, 1, 255})
	img.SetRGBA(1, 1, color.RGBA{0x80, 0, 0, 0})

	r := RasterFromImage(img)
	if r.Size != 2 {
		t.Fatalf("Size = %d, want 2", r.Size)
	}

	want := []uint32{0x123456, 0xFFFFFF, 0x000001, 0x800000}
	for i, w := range want {
		if r.Samples[i] != w {
			t.Errorf("Samples[%d] = %#x, want %#x", i, r.Samples[i], w)
		}
	}
	if r.At(1, 0) != 0x000001 {
		t.Errorf("At(1,0) = %#x, want 0x1", r.At(1, 0))
	}
}

func TestRasterFromImage_ResamplesNonSquare(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, color.RGBA{0x80, 0x10, 0x20, 255})
		}
	}

	r := RasterFromImage(img)
	if r.Size != 4 || len(r.Samples) != 16 {
		t.Fatalf("got size %d with %d samples, want 4 with 16", r.Size, len(r.Samples))
	}
	// A uniform image stays uniform after resampling, up to rounding.
	want := SampleHeight(0x801020, 1)
	for i, s := range r.Samples {
		if d := SampleHeight(s, 1) - want; d > 0.01 || d < -0.01 {
			t.Errorf("Samples[%d] = %#x, want about 0x801020", i, s)
		}
	}
}

func TestLoadHeightmap(t *testing.T) {
	path := writePNG(t, peakImage())

	g, err := LoadHeightmap(path, GridOptions{MaxHeight: 2, Size: 2})
	if err != nil {
		t.Fatalf("LoadHeightmap failed: %v", err)
	}
	if g.Resolution() != 3 {
		t.Errorf("Resolution() = %d, want 3", g.Resolution())
	}
	if got := g.HeightAt(1, 1); !approxEqual(got, 1) {
		t.Errorf("HeightAt(1, 1) = %v, want 1", got)
	}
	if got := g.At(0, 0); got != 0 {
		t.Errorf("At(0,0) = %v, want 0", got)
	}
}

func TestLoadHeightmap_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadHeightmap(filepath.Join(dir, "missing.png"), DefaultGridOptions()); err == nil {
		t.Error("expected error for missing file")
	}

	garbage := filepath.Join(dir, "garbage.png")
	if err := os.WriteFile(garbage, []byte("definitely not a png"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadHeightmap(garbage, DefaultGridOptions()); err == nil {
		t.Error("expected decode error")
	} else if !errors.Is(err, texture.ErrUnsupportedFormat) {
		t.Errorf("error = %v, want %v", err, texture.ErrUnsupportedFormat)
	}

	tiny := writePNG(t, image.NewRGBA(image.Rect(0, 0, 1, 1)))
	if _, err := LoadHeightmap(tiny, DefaultGridOptions()); !errors.Is(err, ErrRasterTooSmall) {
		t.Errorf("error = %v, want %v", err, ErrRasterTooSmall)
	}
}
