package math

import (
	gomath "math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, Clamp(-3, 0, 10))
	assert.Equal(t, 10, Clamp(11, 0, 10))
	assert.Equal(t, float32(0.5), Clamp(float32(0.5), 0, 1))
}

func TestRangeConvert(t *testing.T) {
	assert.InDelta(t, 0.0, RangeConvert(50.0, 0, 100, -1, 1), 1e-9)
	assert.InDelta(t, -1.0, RangeConvert(0.0, 0, 100, -1, 1), 1e-9)
	assert.InDelta(t, 3.0, RangeConvert(5.0, 5, 5, 3, 9), 1e-9)
}

func TestMix(t *testing.T) {
	assert.InDelta(t, float32(2.5), Mix(float32(0), 10, 0.25), 1e-6)
}

func TestSincos(t *testing.T) {
	s, c := Sincos(3 * gomath.Pi / 2)
	assert.InDelta(t, float32(-1), s, 1e-6)
	assert.InDelta(t, float32(0), c, 1e-6)
}

func TestTransformPostMultiplies(t *testing.T) {
	tr := NewTransform().Scale(2, 2, 2).Translate(1, 0, 0)
	p := TransformPoint(tr.Matrix(), mgl32.Vec3{0, 0, 0})
	assert.InDelta(t, 2, p.X(), 1e-6, "translation happens in the scaled frame")

	tr.SetIdentity().Rotate(90, mgl32.Vec3{0, 1, 0})
	p = TransformPoint(tr.Matrix(), mgl32.Vec3{1, 0, 0})
	assert.InDelta(t, 0, p.X(), 1e-6)
	assert.InDelta(t, -1, p.Z(), 1e-6)

	before := tr.Matrix()
	tr.Rotate(45, mgl32.Vec3{})
	assert.Equal(t, before, tr.Matrix())
}
