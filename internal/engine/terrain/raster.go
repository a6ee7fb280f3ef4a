package terrain

import (
	"fmt"
	"image"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	xdraw "golang.org/x/image/draw"

	"github.com/Faultbox/groundwork/internal/engine/texture"
)

// RasterFromImage packs the RGB channels of img into a square raster.
// Non-square images are resampled to max(width, height) on each side.
func RasterFromImage(img image.Image) Raster {
	rgba := texture.ImageToRGBA(img)
	w, h := rgba.Rect.Dx(), rgba.Rect.Dy()

	side := max(w, h)
	if w != h {
		dst := image.NewRGBA(image.Rect(0, 0, side, side))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), rgba, rgba.Bounds(), xdraw.Src, nil)
		rgba = dst
	}

	samples := make([]uint32, side*side)
	for y := range side {
		for x := range side {
			i := rgba.PixOffset(x, y)
			samples[y*side+x] = uint32(rgba.Pix[i])<<16 | uint32(rgba.Pix[i+1])<<8 | uint32(rgba.Pix[i+2])
		}
	}

	return Raster{Size: side, Samples: samples}
}

// LoadRaster decodes a heightmap image file into a raster.
func LoadRaster(path string) (Raster, error) {
	img, err := texture.Load(path)
	if err != nil {
		return Raster{}, fmt.Errorf("loading heightmap %s: %w", path, err)
	}

	b := img.Bounds()
	if b.Dx() != b.Dy() {
		log().Warn("heightmap is not square, resampling",
			zap.String("file", filepath.Base(path)),
			zap.Int("width", b.Dx()),
			zap.Int("height", b.Dy()),
		)
	}
	return RasterFromImage(img), nil
}

// LoadHeightmap decodes a heightmap image and builds its height grid.
func LoadHeightmap(path string, opts GridOptions) (*HeightGrid, error) {
	start := time.Now()

	r, err := LoadRaster(path)
	if err != nil {
		return nil, err
	}

	g, err := BuildHeightGrid(r, opts)
	if err != nil {
		return nil, fmt.Errorf("heightmap %s: %w", filepath.Base(path), err)
	}

	log().Info("loaded heightmap",
		zap.String("file", filepath.Base(path)),
		zap.String("path", path),
		zap.Int("resolution", r.Size),
		zap.Float32("size", opts.Size),
		zap.Float32("max_height", opts.MaxHeight),
		zap.Duration("took", time.Since(start)),
	)
	return g, nil
}
