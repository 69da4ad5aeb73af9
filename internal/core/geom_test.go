package core

import (
	"math"
	"testing"
)

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestVecCell(t *testing.T) {
	tests := []struct {
		name         string
		v            Vec
		wantX, wantY int
	}{
		{"integral", Vec{X: 3, Y: 4}, 3, 4},
		{"fractional", Vec{X: 3.9, Y: 4.2}, 3, 4},
		{"just below next cell", Vec{X: 0.999, Y: 26.875}, 0, 26},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x, y := tc.v.Cell()
			if x != tc.wantX || y != tc.wantY {
				t.Errorf("Cell() = (%d, %d), expected (%d, %d)", x, y, tc.wantX, tc.wantY)
			}
		})
	}
}

func TestVecDist(t *testing.T) {
	a := Vec{X: 0, Y: 0}
	b := Vec{X: 3, Y: 4}
	if d := a.Dist(b); math.Abs(d-5) > 1e-9 {
		t.Errorf("Dist() = %f, expected 5", d)
	}
	if d := b.Add(-3, -4).Dist(a); d != 0 {
		t.Errorf("Add then Dist = %f, expected 0", d)
	}
}

func TestWrapInt(t *testing.T) {
	tests := []struct {
		i, n, expected int
	}{
		{0, 28, 0},
		{-1, 28, 27},
		{28, 28, 0},
		{29, 28, 1},
		{-29, 28, 27},
	}

	for _, tc := range tests {
		if got := WrapInt(tc.i, tc.n); got != tc.expected {
			t.Errorf("WrapInt(%d, %d) = %d, expected %d", tc.i, tc.n, got, tc.expected)
		}
	}
}

func TestWrapFloat(t *testing.T) {
	tests := []struct {
		f        float64
		n        int
		expected float64
	}{
		{0.5, 28, 0.5},
		{-0.125, 28, 27.875},
		{28.0, 28, 0},
		{28.25, 28, 0.25},
	}

	for _, tc := range tests {
		if got := WrapFloat(tc.f, tc.n); got != tc.expected {
			t.Errorf("WrapFloat(%f, %d) = %f, expected %f", tc.f, tc.n, got, tc.expected)
		}
	}
}
