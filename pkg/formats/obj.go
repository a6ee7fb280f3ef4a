// Package formats parses mesh file formats.
package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// OBJ format errors.
var (
	ErrInvalidOBJVertex = errors.New("invalid OBJ vertex statement")
	ErrInvalidOBJFace   = errors.New("invalid OBJ face statement")
)

// OBJError reports a malformed statement with its source location.
type OBJError struct {
	File string
	Line int
	Err  error
}

func (e *OBJError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
}

func (e *OBJError) Unwrap() error {
	return e.Err
}

// OBJCorner is one corner of a triangulated face. Indices are 0-based and
// refer to OBJ.Positions, OBJ.TexCoords and OBJ.Normals. They are resolved
// but not range-checked; the mesh builder owns that check.
type OBJCorner struct {
	Position int
	TexCoord int
	Normal   int
	Line     int // source line the face was declared on
}

// OBJ represents a parsed Wavefront OBJ file.
type OBJ struct {
	Name      string
	Positions []mgl32.Vec3
	TexCoords []mgl32.Vec2
	Normals   []mgl32.Vec3
	// Corners holds three entries per triangle; polygons are fan-triangulated.
	Corners []OBJCorner
}

// TriangleCount returns the number of triangles described by Corners.
func (o *OBJ) TriangleCount() int {
	return len(o.Corners) / 3
}

// LoadOBJ reads and parses an OBJ file from disk.
func LoadOBJ(path string) (*OBJ, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseOBJ(data, filepath.Base(path))
}

// ParseOBJ parses OBJ text. name is used for error messages and OBJ.Name.
// Statements other than v, vt, vn and f are ignored.
func ParseOBJ(data []byte, name string) (*OBJ, error) {
	obj := &OBJ{Name: name}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}

		fields := strings.Fields(line)
		var err error
		switch fields[0] {
		case "v":
			var v mgl32.Vec3
			v, err = parseVec3(fields[1:])
			obj.Positions = append(obj.Positions, v)
		case "vt":
			var uv mgl32.Vec2
			uv, err = parseTexCoord(fields[1:])
			obj.TexCoords = append(obj.TexCoords, uv)
		case "vn":
			var n mgl32.Vec3
			n, err = parseVec3(fields[1:])
			obj.Normals = append(obj.Normals, n)
		case "f":
			err = obj.parseFace(fields[1:], lineNo)
		}
		if err != nil {
			return nil, &OBJError{File: name, Line: lineNo, Err: err}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	return obj, nil
}

func (o *OBJ) parseFace(tokens []string, lineNo int) error {
	if len(tokens) < 3 {
		return fmt.Errorf("%w: need at least 3 corners, got %d", ErrInvalidOBJFace, len(tokens))
	}

	corners := make([]OBJCorner, len(tokens))
	for i, tok := range tokens {
		c, err := o.parseCorner(tok)
		if err != nil {
			return err
		}
		c.Line = lineNo
		corners[i] = c
	}

	for i := 1; i+1 < len(corners); i++ {
		o.Corners = append(o.Corners, corners[0], corners[i], corners[i+1])
	}
	return nil
}

// parseCorner parses "p/t/n". Both t and n are required.
func (o *OBJ) parseCorner(tok string) (OBJCorner, error) {
	parts := strings.Split(tok, "/")
	if len(parts) != 3 || parts[1] == "" || parts[2] == "" {
		return OBJCorner{}, fmt.Errorf("%w: corner %q must be position/texcoord/normal", ErrInvalidOBJFace, tok)
	}

	p, err := resolveIndex(parts[0], len(o.Positions))
	if err != nil {
		return OBJCorner{}, fmt.Errorf("%w: position in %q: %v", ErrInvalidOBJFace, tok, err)
	}
	t, err := resolveIndex(parts[1], len(o.TexCoords))
	if err != nil {
		return OBJCorner{}, fmt.Errorf("%w: texcoord in %q: %v", ErrInvalidOBJFace, tok, err)
	}
	n, err := resolveIndex(parts[2], len(o.Normals))
	if err != nil {
		return OBJCorner{}, fmt.Errorf("%w: normal in %q: %v", ErrInvalidOBJFace, tok, err)
	}

	return OBJCorner{Position: p, TexCoord: t, Normal: n}, nil
}

// resolveIndex converts a 1-based (or negative, relative) OBJ index to 0-based.
func resolveIndex(s string, count int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	switch {
	case i > 0:
		return i - 1, nil
	case i < 0:
		return count + i, nil
	default:
		return 0, errors.New("index 0 is not valid")
	}
}

func parseVec3(fields []string) (mgl32.Vec3, error) {
	if len(fields) < 3 {
		return mgl32.Vec3{}, fmt.Errorf("%w: need 3 components, got %d", ErrInvalidOBJVertex, len(fields))
	}
	var v mgl32.Vec3
	for i := range 3 {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return mgl32.Vec3{}, fmt.Errorf("%w: %v", ErrInvalidOBJVertex, err)
		}
		v[i] = float32(f)
	}
	return v, nil
}

func parseTexCoord(fields []string) (mgl32.Vec2, error) {
	if len(fields) < 1 {
		return mgl32.Vec2{}, fmt.Errorf("%w: texture coordinate without components", ErrInvalidOBJVertex)
	}
	var uv mgl32.Vec2
	for i := 0; i < 2 && i < len(fields); i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return mgl32.Vec2{}, fmt.Errorf("%w: %v", ErrInvalidOBJVertex, err)
		}
		uv[i] = float32(f)
	}
	return uv, nil
}
