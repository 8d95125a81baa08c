package geometry

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/blitz/engine/renderer/metadata"
)

const (
	tiltDegrees       = 30.0
	spinDegreesPerSec = 45.0
)

var tiltedLight = metadata.LightParams{
	Ambient: mgl32.Vec3{0.25, 0.25, 0.25},
}

// TiltedCube is a randomly colored cube leaning on its Z axis and spinning
// around Y. It is always drawn from the first-person view.
type TiltedCube struct {
	base
	center mgl32.Vec3
	angle  float32
}

func NewTiltedCube(size float32, center mgl32.Vec3) *TiltedCube {
	tc := &TiltedCube{
		base:   newBase(metadata.ShaderLit, metadata.ViewFPS, tiltedLight),
		center: center,
	}
	tc.vertices = cubeVertices(size, center, mgl32.Vec3{1, 1, 1})
	tc.finalize()
	tc.updateTransform()
	return tc
}

func (tc *TiltedCube) Angle() float32 {
	return tc.angle
}

func (tc *TiltedCube) Animate(delta float64) {
	tc.angle = wrapDegrees(tc.angle + float32(spinDegreesPerSec*delta))
	tc.updateTransform()
}

// The cube spins in place: move the center to the origin, tilt, spin, move back.
func (tc *TiltedCube) updateTransform() {
	c := tc.center
	tc.transform.SetIdentity().
		Translate(c.X(), c.Y(), c.Z()).
		Rotate(tc.angle, mgl32.Vec3{0, 1, 0}).
		Rotate(tiltDegrees, mgl32.Vec3{0, 0, 1}).
		Translate(-c.X(), -c.Y(), -c.Z())
}

// wrapDegrees folds an angle into [0, 360).
func wrapDegrees(deg float32) float32 {
	r := float32(gomath.Mod(float64(deg), 360))
	if r < 0 {
		r += 360
	}
	return r
}
