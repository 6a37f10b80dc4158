package geom

import "testing"

func TestBounds(t *testing.T) {
	b := Bounds{MinX: -64, MaxX: 192, MinZ: 0, MaxZ: 128}

	if b.Width() != 256 {
		t.Errorf("Width = %v, want 256", b.Width())
	}
	if b.Depth() != 128 {
		t.Errorf("Depth = %v, want 128", b.Depth())
	}
	if b.LongestAxis() != 256 {
		t.Errorf("LongestAxis = %v, want 256", b.LongestAxis())
	}

	if got := b.NormX(-64); got != 0 {
		t.Errorf("NormX(-64) = %v, want 0", got)
	}
	if got := b.NormX(192); got != 1 {
		t.Errorf("NormX(192) = %v, want 1", got)
	}
	if got := b.NormX(64); got != 0.5 {
		t.Errorf("NormX(64) = %v, want 0.5", got)
	}
	// Out-of-bounds coordinates clamp.
	if got := b.NormZ(-100); got != 0 {
		t.Errorf("NormZ(-100) = %v, want 0", got)
	}

	if !b.Contains(0, 0) {
		t.Error("Contains(0,0) = false")
	}
	if b.Contains(192, 0) {
		t.Error("Contains(192,0) = true, max edge is exclusive")
	}
}

func TestSmoothstep(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-1, 0},
		{0, 0},
		{0.5, 0.5},
		{1, 1},
		{2, 1},
	}
	for _, tt := range tests {
		if got := Smoothstep(tt.in); got != tt.want {
			t.Errorf("Smoothstep(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
	// Monotonic across the ramp.
	prev := -1.0
	for t10 := 0; t10 <= 10; t10++ {
		v := Smoothstep(float64(t10) / 10)
		if v < prev {
			t.Fatalf("Smoothstep not monotonic at %v", float64(t10)/10)
		}
		prev = v
	}
}
