package geo

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

func TestFromPolarUnit(t *testing.T) {
	p := FromPolar(0, 1)
	if !approxEqual(p.X, 0, tolerance) || !approxEqual(p.Y, 1, tolerance) {
		t.Errorf("expected (0,1), got (%f,%f)", p.X, p.Y)
	}
	q := FromPolar(math.Pi/2, 1)
	if !approxEqual(q.X, 1, tolerance) || !approxEqual(q.Y, 0, tolerance) {
		t.Errorf("expected (1,0), got (%f,%f)", q.X, q.Y)
	}
}

func TestFromPolarScalesWithRadius(t *testing.T) {
	p := FromPolar(Radians(190), 133)
	if !approxEqual(p.Length(), 133, 1e-9) {
		t.Errorf("expected length 133, got %f", p.Length())
	}
	if p.X >= 0 || p.Y >= 0 {
		t.Errorf("expected third-quadrant point for 190deg, got (%f,%f)", p.X, p.Y)
	}
}

func TestRadians(t *testing.T) {
	if !approxEqual(Radians(180), math.Pi, tolerance) {
		t.Errorf("expected pi, got %f", Radians(180))
	}
	if !approxEqual(Radians(90), math.Pi/2, tolerance) {
		t.Errorf("expected pi/2, got %f", Radians(90))
	}
}

func TestRadius(t *testing.T) {
	if !approxEqual(Radius(3, 4), 5, tolerance) {
		t.Errorf("expected radius 5, got %f", Radius(3, 4))
	}
	if Radius(0, 0) != 0 {
		t.Errorf("expected radius 0 at the centerline, got %f", Radius(0, 0))
	}
}
