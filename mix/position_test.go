package mix

import (
	"math"
	"testing"
)

func TestPan_Center(t *testing.T) {
	t.Parallel()

	l, r := pan(0, 0)
	if l != 1 || r != 1 {
		t.Errorf("pan(0,0) = (%v, %v), want (1, 1)", l, r)
	}
}

func TestPan_OutOfRangeSilent(t *testing.T) {
	t.Parallel()

	tests := []struct{ x, y float32 }{
		{1, 0}, {-1, 0}, {0, 1}, {0.8, 0.8}, {-2, 3},
	}
	for _, tt := range tests {
		l, r := pan(tt.x, tt.y)
		if l != 0 || r != 0 {
			t.Errorf("pan(%v,%v) = (%v, %v), want (0, 0)", tt.x, tt.y, l, r)
		}
	}
}

func TestPan_LeftSourceFavorsLeft(t *testing.T) {
	t.Parallel()

	l, r := pan(-0.5, 0)
	if l <= r {
		t.Errorf("pan(-0.5,0) = (%v, %v), want left > right", l, r)
	}

	base := 0.5 / (1 + maxPanSkew)
	wantL := base * (1 + maxPanSkew)
	wantR := base * (1 - maxPanSkew)
	if math.Abs(l-wantL) > 1e-9 || math.Abs(r-wantR) > 1e-9 {
		t.Errorf("pan(-0.5,0) = (%v, %v), want (%v, %v)", l, r, wantL, wantR)
	}
}

func TestPan_MirrorSymmetry(t *testing.T) {
	t.Parallel()

	tests := []struct{ x, y float32 }{
		{0.3, 0.4}, {0.5, -0.2}, {0.1, 0.1},
	}
	for _, tt := range tests {
		l1, r1 := pan(tt.x, tt.y)
		l2, r2 := pan(-tt.x, tt.y)
		if math.Abs(l1-r2) > 1e-9 || math.Abs(r1-l2) > 1e-9 {
			t.Errorf("pan(%v,%v)=(%v,%v) not mirrored by pan(%v,%v)=(%v,%v)",
				tt.x, tt.y, l1, r1, -tt.x, tt.y, l2, r2)
		}
	}
}

func TestPan_YAxisNoSkew(t *testing.T) {
	t.Parallel()

	// Directly in front or behind: both channels equal at the base
	// attenuation.
	for _, y := range []float32{0.5, -0.5} {
		l, r := pan(0, y)
		want := (1 - 0.5) / (1 + maxPanSkew)
		if math.Abs(l-want) > 1e-9 || l != r {
			t.Errorf("pan(0,%v) = (%v, %v), want both %v", y, l, r, want)
		}
	}
}

func TestPan_AttenuationGrowsWithDistance(t *testing.T) {
	t.Parallel()

	lNear, _ := pan(0, 0.2)
	lFar, _ := pan(0, 0.8)
	if lFar >= lNear {
		t.Errorf("far gain %v not below near gain %v", lFar, lNear)
	}
}
