package math

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Transform is a retained model matrix. Every operation post-multiplies, so
// a translation applied after a scale happens in the scaled frame.
type Transform struct {
	matrix mgl32.Mat4
}

func NewTransform() *Transform {
	return &Transform{matrix: mgl32.Ident4()}
}

func NewTransformFromMatrix(m mgl32.Mat4) *Transform {
	return &Transform{matrix: m}
}

func (t *Transform) SetIdentity() *Transform {
	t.matrix = mgl32.Ident4()
	return t
}

func (t *Transform) Set(m mgl32.Mat4) *Transform {
	t.matrix = m
	return t
}

func (t *Transform) Translate(x, y, z float32) *Transform {
	t.matrix = t.matrix.Mul4(mgl32.Translate3D(x, y, z))
	return t
}

func (t *Transform) Scale(x, y, z float32) *Transform {
	t.matrix = t.matrix.Mul4(mgl32.Scale3D(x, y, z))
	return t
}

// Rotate turns by angle degrees around axis. A zero axis leaves the matrix untouched.
func (t *Transform) Rotate(degrees float32, axis mgl32.Vec3) *Transform {
	if axis.Len() == 0 {
		return t
	}
	t.matrix = t.matrix.Mul4(mgl32.HomogRotate3D(mgl32.DegToRad(degrees), axis.Normalize()))
	return t
}

func (t *Transform) Matrix() mgl32.Mat4 {
	return t.matrix
}

// TransformPoint applies the matrix to a position (w = 1).
func TransformPoint(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}
