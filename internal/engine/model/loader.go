package model

import (
	"context"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/groundwork/internal/logger"
	"github.com/Faultbox/groundwork/pkg/formats"
)

func log() *zap.Logger {
	return logger.Named("model")
}

// LoadFile reads an OBJ file and builds its mesh data.
func LoadFile(path string, opts BuildOptions) (*MeshData, error) {
	start := time.Now()

	obj, err := formats.LoadOBJ(path)
	if err != nil {
		log().Error("failed to parse OBJ", zap.String("path", path), zap.Error(err))
		return nil, err
	}

	md, err := Build(obj, opts)
	if err != nil {
		log().Error("failed to build mesh", zap.String("path", path), zap.Error(err))
		return nil, err
	}

	log().Info("loaded OBJ",
		zap.String("file", obj.Name),
		zap.Int("positions", len(obj.Positions)),
		zap.Int("vertices", md.VertexCount()),
		zap.Int("triangles", md.TriangleCount()),
		zap.Bool("tangents", md.HasTangents()),
		zap.Float32("furthest", md.FurthestPoint),
		zap.Duration("took", time.Since(start)),
	)
	return md, nil
}

// LoadAll loads several models concurrently. Results are in path order.
// Each build owns its arena, so no state is shared between goroutines.
func LoadAll(ctx context.Context, paths []string, opts BuildOptions) ([]*MeshData, error) {
	meshes := make([]*MeshData, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			md, err := LoadFile(path, opts)
			if err != nil {
				return err
			}
			meshes[i] = md
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return meshes, nil
}
