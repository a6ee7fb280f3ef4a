package model

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/groundwork/pkg/formats"
)

func writeOBJ(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeOBJ(t, t.TempDir(), "quad.obj", quadSource)

	md, err := LoadFile(path, BuildOptions{Tangents: true})
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if md.Name != "quad.obj" {
		t.Errorf("Name = %q, want %q", md.Name, "quad.obj")
	}
	if md.VertexCount() != 4 || !md.HasTangents() {
		t.Errorf("got %d vertices (tangents %v), want 4 with tangents", md.VertexCount(), md.HasTangents())
	}
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadFile(filepath.Join(dir, "missing.obj"), BuildOptions{}); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v, want os.ErrNotExist", err)
	}

	bad := writeOBJ(t, dir, "bad.obj", "v 0 0 0\nvt 0 0\nvn 0 1 0\nf 1/1/1 1/1/1 9/1/1\n")
	_, err := LoadFile(bad, BuildOptions{})
	var cErr *CornerError
	if !errors.As(err, &cErr) {
		t.Fatalf("expected *CornerError, got %v", err)
	}
	if cErr.Line != 4 || !errors.Is(err, ErrPositionOutOfRange) {
		t.Errorf("error = %v, want position out of range on line 4", err)
	}

	syntax := writeOBJ(t, dir, "syntax.obj", "v 0 0\n")
	if _, err := LoadFile(syntax, BuildOptions{}); !errors.Is(err, formats.ErrInvalidOBJVertex) {
		t.Errorf("syntax error = %v, want %v", err, formats.ErrInvalidOBJVertex)
	}
}

func TestLoadAll(t *testing.T) {
	dir := t.TempDir()
	tri := "v 0 0 0\nv 1 0 0\nv 0 0 1\nvt 0 0\nvn 0 1 0\nf 1/1/1 2/1/1 3/1/1\n"
	paths := []string{
		writeOBJ(t, dir, "a.obj", quadSource),
		writeOBJ(t, dir, "b.obj", tri),
		writeOBJ(t, dir, "c.obj", quadSource),
	}

	meshes, err := LoadAll(context.Background(), paths, BuildOptions{})
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(meshes) != len(paths) {
		t.Fatalf("got %d meshes, want %d", len(meshes), len(paths))
	}

	wantNames := []string{"a.obj", "b.obj", "c.obj"}
	wantTris := []int{2, 1, 2}
	for i, md := range meshes {
		if md.Name != wantNames[i] || md.TriangleCount() != wantTris[i] {
			t.Errorf("meshes[%d] = %s (%d triangles), want %s (%d)",
				i, md.Name, md.TriangleCount(), wantNames[i], wantTris[i])
		}
	}
}

func TestLoadAll_FailsOnFirstError(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeOBJ(t, dir, "good.obj", quadSource),
		filepath.Join(dir, "missing.obj"),
	}

	meshes, err := LoadAll(context.Background(), paths, BuildOptions{})
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if meshes != nil {
		t.Error("expected nil result on error")
	}
}

func TestLoadAll_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := writeOBJ(t, t.TempDir(), "quad.obj", quadSource)
	if _, err := LoadAll(ctx, []string{path}, BuildOptions{}); !errors.Is(err, context.Canceled) {
		t.Errorf("LoadAll() error = %v, want context.Canceled", err)
	}
}
