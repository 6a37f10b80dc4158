package heightmap

import (
	"math"
	"testing"

	"github.com/Faultbox/worldexport/internal/geom"
)

// recordingSource captures every queried coordinate.
type recordingSource struct {
	xs, zs []float64
}

func (r *recordingSource) HeightAt(x, z float64) float64 {
	r.xs = append(r.xs, x)
	r.zs = append(r.zs, z)
	return 1
}

// funcSource adapts a plain function to the Source interface.
type funcSource func(x, z float64) float64

func (f funcSource) HeightAt(x, z float64) float64 {
	return f(x, z)
}

func TestSampleBufferSize(t *testing.T) {
	b := geom.Bounds{MinX: 0, MaxX: 100, MinZ: 0, MaxZ: 100}
	src := funcSource(func(x, z float64) float64 { return 0 })

	for _, res := range []int{1, 4, 16, 257, 513} {
		a := Sample(src, b, res)
		if len(a.Samples) != res*res {
			t.Errorf("resolution %d: buffer length %d, want %d", res, len(a.Samples), res*res)
		}
	}
}

func TestSampleCellCenters(t *testing.T) {
	// Tiles at (0,0) and (1,0) under region size 256 give these bounds;
	// sampling at resolution 4 must hit the documented cell centers.
	b := geom.Bounds{MinX: 0, MaxX: 512, MinZ: 0, MaxZ: 256}

	src := &recordingSource{}
	Sample(src, b, 4)

	wantX := []float64{64, 192, 320, 448}
	wantZ := []float64{32, 96, 160, 224}

	seenX := map[float64]bool{}
	seenZ := map[float64]bool{}
	for i := range src.xs {
		seenX[src.xs[i]] = true
		seenZ[src.zs[i]] = true
	}

	for _, x := range wantX {
		if !seenX[x] {
			t.Errorf("expected sample at x=%v", x)
		}
	}
	for _, z := range wantZ {
		if !seenZ[z] {
			t.Errorf("expected sample at z=%v", z)
		}
	}
	if len(seenX) != 4 || len(seenZ) != 4 {
		t.Errorf("expected 4 distinct centers per axis, got %d x / %d z", len(seenX), len(seenZ))
	}
}

func TestSampleRowMajorOrder(t *testing.T) {
	// Height encodes the coordinate so buffer layout is verifiable.
	b := geom.Bounds{MinX: 0, MaxX: 4, MinZ: 0, MaxZ: 4}
	src := funcSource(func(x, z float64) float64 { return z*100 + x })

	a := Sample(src, b, 4)

	// Cell (ix=2, iz=1) is at world (2.5, 1.5) and index iz*res+ix.
	want := float32(1.5*100 + 2.5)
	if got := a.Samples[1*4+2]; got != want {
		t.Errorf("sample (2,1) = %v, want %v", got, want)
	}
}

func TestSampleNaNCoercion(t *testing.T) {
	b := geom.Bounds{MinX: 0, MaxX: 10, MinZ: 0, MaxZ: 10}
	src := funcSource(func(x, z float64) float64 {
		if x > 5 {
			return math.NaN()
		}
		return 2
	})

	a := Sample(src, b, 4)

	// Columns at x=6.25 and x=8.75 are NaN: 2 columns × 4 rows.
	if a.NaNCount != 8 {
		t.Errorf("expected 8 coerced samples, got %d", a.NaNCount)
	}
	for i, h := range a.Samples {
		if math.IsNaN(float64(h)) {
			t.Fatalf("sample %d still NaN after coercion", i)
		}
	}
	if a.Samples[3] != 0 {
		t.Errorf("expected coerced sample to be 0, got %v", a.Samples[3])
	}
}

func TestChooseResolution(t *testing.T) {
	tests := []struct {
		name string
		b    geom.Bounds
		want int
	}{
		{"small square", geom.Bounds{MinX: 0, MaxX: 512, MinZ: 0, MaxZ: 512}, BaseResolution},
		{"at threshold", geom.Bounds{MinX: 0, MaxX: 2048, MinZ: 0, MaxZ: 256}, BaseResolution},
		{"wide zone", geom.Bounds{MinX: 0, MaxX: 4096, MinZ: 0, MaxZ: 256}, LargeResolution},
		{"deep zone", geom.Bounds{MinX: 0, MaxX: 256, MinZ: -3000, MaxZ: 0}, LargeResolution},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChooseResolution(tt.b); got != tt.want {
				t.Errorf("ChooseResolution(%+v) = %d, want %d", tt.b, got, tt.want)
			}
		})
	}
}
