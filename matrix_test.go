package visual

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func assertPointNear(t *testing.T, want, got Point) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, eps, "X")
	assert.InDelta(t, want.Y, got.Y, eps, "Y")
}

func TestMatrixInvertRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
	}{
		{"identity", Identity()},
		{"translation", Translate(10, -20)},
		{"scale", Scale(2, 0.5)},
		{"rotation", Rotate(math.Pi / 3)},
		{"skew", Skew(0.3, 0.1)},
		{"composite", Translate(5, 5).Multiply(Rotate(0.7)).Multiply(Scale(3, 2))},
		{"tiny scale", Scale(1e-7, 1e-7)},
	}
	points := []Point{{0, 0}, {1, 1}, {-7.5, 12}, {100, -3}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, ok := tt.m.Invert()
			require.True(t, ok)
			for _, p := range points {
				assertPointNear(t, p, inv.TransformPoint(tt.m.TransformPoint(p)))
			}
		})
	}
}

func TestMatrixInvertSingular(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
	}{
		{"zero", Matrix{}},
		{"zero scale x", Scale(0, 1)},
		{"collapsed", Matrix{A: 1, B: 2, D: 2, E: 4}},
		{"nearly collapsed", Matrix{A: 1, B: 2, D: 1, E: 2 + 1e-15}},
		{"nan", Matrix{A: math.NaN(), E: 1}},
		{"inf translation", Translate(math.Inf(1), 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, tt.m.HasInverse())
			inv, ok := tt.m.Invert()
			assert.False(t, ok)
			assert.Equal(t, Identity(), inv)
		})
	}
}

func TestMatrixMultiplyOrder(t *testing.T) {
	// Scale first, then translate.
	m := Translate(10, 0).Multiply(Scale(2, 2))
	assertPointNear(t, Pt(12, 2), m.TransformPoint(Pt(1, 1)))
}

func TestMatrixTransformRect(t *testing.T) {
	r := R(0, 0, 10, 20)

	assert.Equal(t, r, Identity().TransformRect(r))
	assert.Equal(t, R(5, 5, 10, 20), Translate(5, 5).TransformRect(r))

	got := Rotate(math.Pi / 2).TransformRect(r)
	assert.InDelta(t, -20, got.X, eps)
	assert.InDelta(t, 0, got.Y, eps)
	assert.InDelta(t, 20, got.Width, eps)
	assert.InDelta(t, 10, got.Height, eps)
}

func TestMatrixPredicates(t *testing.T) {
	assert.True(t, Identity().IsIdentity())
	assert.True(t, Translate(3, 4).IsTranslation())
	assert.False(t, Scale(2, 2).IsTranslation())
	assert.True(t, Rotate(1).IsFinite())
	assert.False(t, Matrix{C: math.Inf(-1)}.IsFinite())
	assert.Equal(t, Translate(1, 2), Translate(1, 2))
}

func TestMatrixAff3(t *testing.T) {
	m := Matrix{A: 1, B: 2, C: 3, D: 4, E: 5, F: 6}
	a := m.Aff3()
	assert.Equal(t, [6]float64{1, 2, 3, 4, 5, 6}, [6]float64(a))
}
