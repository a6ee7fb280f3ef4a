package placement

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/groundwork/internal/engine/terrain"
)

type flatGround float32

func (g flatGround) HeightAt(_, _ float32) float32 { return float32(g) }

func TestScatter_Deterministic(t *testing.T) {
	area := Area{MinX: -800, MinZ: -800, MaxX: 0, MaxZ: 0}
	opts := Options{Count: 50, Variants: 4}

	a := Scatter(rand.New(rand.NewSource(42)), flatGround(0), area, opts)
	b := Scatter(rand.New(rand.NewSource(42)), flatGround(0), area, opts)
	c := Scatter(rand.New(rand.NewSource(43)), flatGround(0), area, opts)

	if len(a) != 50 || len(b) != 50 {
		t.Fatalf("got %d and %d placements, want 50", len(a), len(b))
	}
	same := true
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("placement %d differs for equal seeds: %v vs %v", i, a[i], b[i])
		}
		if a[i] != c[i] {
			same = false
		}
	}
	if same {
		t.Error("different seeds produced identical placements")
	}
}

func TestScatter_StaysInAreaOnGround(t *testing.T) {
	area := Area{MinX: 10, MinZ: -20, MaxX: 30, MaxZ: -5}
	got := Scatter(rand.New(rand.NewSource(1)), flatGround(7), area, Options{Count: 200, YOffset: -0.5, Scale: 3})

	variantsSeen := map[int]bool{}
	for i, p := range got {
		if !area.Contains(p.Position.X(), p.Position.Z()) {
			t.Errorf("placement %d at %v is outside %+v", i, p.Position, area)
		}
		if p.Position.Y() != 6.5 {
			t.Errorf("placement %d Y = %v, want 6.5", i, p.Position.Y())
		}
		if p.Scale != 3 {
			t.Errorf("placement %d Scale = %v, want 3", i, p.Scale)
		}
		variantsSeen[p.Variant] = true
	}
	if len(variantsSeen) != 1 || !variantsSeen[0] {
		t.Errorf("variants = %v, want only 0 without Variants", variantsSeen)
	}
}

// topSource makes Float32 return its largest value, 1-2^-24.
type topSource struct{}

func (topSource) Int63() int64 { return math.MaxInt64 - 1<<39 + 1 }
func (topSource) Seed(int64)   {}

func TestScatter_RoundingStaysInArea(t *testing.T) {
	rng := rand.New(topSource{})
	if f := rng.Float32(); f != math.Nextafter32(1, 0) {
		t.Fatalf("Float32() = %v, want the largest float32 below 1", f)
	}

	// 1000 + (1-2^-24) rounds to 1001 in float32.
	area := Area{MinX: 1000, MinZ: 1000, MaxX: 1001, MaxZ: 1001}
	for i, p := range Scatter(rng, flatGround(0), area, Options{Count: 3}) {
		if !area.Contains(p.Position.X(), p.Position.Z()) {
			t.Errorf("placement %d at %v is outside %+v", i, p.Position, area)
		}
	}
}

func TestArea_Contains(t *testing.T) {
	a := Area{MinX: -1, MinZ: 0, MaxX: 1, MaxZ: 2}
	tests := []struct {
		x, z float32
		want bool
	}{
		{0, 1, true},
		{-1, 0, true},
		{1, 1, false},
		{0, 2, false},
		{-1.5, 1, false},
	}
	for _, tt := range tests {
		if got := a.Contains(tt.x, tt.z); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.z, got, tt.want)
		}
	}
}

func TestScatter_Variants(t *testing.T) {
	got := Scatter(rand.New(rand.NewSource(9)), flatGround(0), Area{MaxX: 1, MaxZ: 1}, Options{Count: 400, Variants: 4})

	seen := make([]int, 4)
	for _, p := range got {
		if p.Variant < 0 || p.Variant >= 4 {
			t.Fatalf("Variant = %d, want [0,4)", p.Variant)
		}
		seen[p.Variant]++
	}
	for v, n := range seen {
		if n == 0 {
			t.Errorf("variant %d never chosen in 400 draws", v)
		}
	}
}

func TestScatter_FollowsTerrain(t *testing.T) {
	g, err := terrain.NewHeightGrid([][]float32{{0, 0, 0}, {0, 1, 0}, {0, 0, 0}}, terrain.GridOptions{Size: 2})
	if err != nil {
		t.Fatalf("NewHeightGrid failed: %v", err)
	}

	got := Scatter(rand.New(rand.NewSource(5)), g, Area{MaxX: 2, MaxZ: 2}, Options{Count: 100})
	for i, p := range got {
		want := g.HeightAt(p.Position.X(), p.Position.Z())
		if p.Position.Y() != want {
			t.Errorf("placement %d Y = %v, want terrain height %v", i, p.Position.Y(), want)
		}
		if p.Scale != 1 {
			t.Errorf("placement %d Scale = %v, want default 1", i, p.Scale)
		}
	}
}

func TestScatter_NoCount(t *testing.T) {
	if got := Scatter(rand.New(rand.NewSource(1)), flatGround(0), Area{MaxX: 1, MaxZ: 1}, Options{}); got != nil {
		t.Errorf("Scatter() = %v, want nil", got)
	}
}

func TestPlacement_Transform(t *testing.T) {
	p := Placement{Position: mgl32.Vec3{1, 2, 3}, Scale: 2}
	got := p.Transform().Mul4x1(mgl32.Vec4{1, 1, 1, 1})
	want := mgl32.Vec4{3, 4, 5, 1}
	if got.Sub(want).Len() > 1e-5 {
		t.Errorf("Transform() * (1,1,1,1) = %v, want %v", got, want)
	}
}
