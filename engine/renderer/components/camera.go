package components

import (
	"github.com/go-gl/mathgl/mgl32"
)

type ViewMode int

const (
	// First-person view driven by SetLookAt.
	ViewModeFPS ViewMode = iota
	// Overhead view following MoveFixedCamera.
	ViewModeFixed
)

func (m ViewMode) String() string {
	if m == ViewModeFixed {
		return "fixed"
	}
	return "fps"
}

type ProjectionMode int

const (
	ProjectionPerspective ProjectionMode = iota
	ProjectionOrthographic
)

func (m ProjectionMode) String() string {
	if m == ProjectionOrthographic {
		return "ortho"
	}
	return "persp"
}

const (
	DefaultFov  float32 = 60
	DefaultNear float32 = 0.01
	DefaultFar  float32 = 100

	// Height of the fixed eye and of the point it looks at.
	fixedEyeHeight    float32 = 10
	fixedTargetHeight float32 = 3
	// How far ahead (towards -Z) the fixed camera looks.
	fixedLookAhead float32 = 6
)

var (
	DefaultFPSEye    = mgl32.Vec3{0.04, 2.2, 15}
	DefaultFPSTarget = mgl32.Vec3{5, 2.2, 15}
	DefaultFixedEye  = mgl32.Vec2{16, 30}
	Up               = mgl32.Vec3{0, 1, 0}
)

/**
 * @brief Holds the first-person and fixed view matrices and the projection.
 * The camera does not compute movement: callers track eye positions and push
 * them through SetLookAt and MoveFixedCamera.
 */
type Camera struct {
	fpsView   mgl32.Mat4
	fixedView mgl32.Mat4
	fixedEye  mgl32.Vec2

	projection mgl32.Mat4
	/** @brief Internal flag used to determine when the projection needs to be rebuilt. */
	isDirty bool

	viewMode       ViewMode
	projectionMode ProjectionMode

	fov    float32
	aspect float32
	near   float32
	far    float32
}

func NewCamera(aspect float32) *Camera {
	c := &Camera{}
	c.Reset(aspect)
	return c
}

func (c *Camera) Reset(aspect float32) {
	c.viewMode = ViewModeFPS
	c.projectionMode = ProjectionPerspective
	c.fov = DefaultFov
	c.near = DefaultNear
	c.far = DefaultFar
	c.aspect = aspect
	if c.aspect <= 0 {
		c.aspect = 1
	}
	c.SetLookAt(DefaultFPSEye, DefaultFPSTarget, Up)
	c.MoveFixedCamera(DefaultFixedEye.X(), DefaultFixedEye.Y())
	c.isDirty = true
}

// SetLookAt replaces the first-person view.
func (c *Camera) SetLookAt(eye, target, up mgl32.Vec3) {
	c.fpsView = mgl32.LookAtV(eye, target, up)
}

// MoveFixedCamera places the overhead eye at (x, 10, z) looking down towards (x, 3, z-6).
func (c *Camera) MoveFixedCamera(eyeX, eyeZ float32) {
	c.fixedEye = mgl32.Vec2{eyeX, eyeZ}
	c.fixedView = mgl32.LookAtV(
		mgl32.Vec3{eyeX, fixedEyeHeight, eyeZ},
		mgl32.Vec3{eyeX, fixedTargetHeight, eyeZ - fixedLookAhead},
		Up,
	)
}

func (c *Camera) FixedEye() mgl32.Vec2 {
	return c.fixedEye
}

func (c *Camera) FPSView() mgl32.Mat4 {
	return c.fpsView
}

func (c *Camera) FixedView() mgl32.Mat4 {
	return c.fixedView
}

// CurrentView is the matrix lit geometry is drawn with.
func (c *Camera) CurrentView() mgl32.Mat4 {
	if c.viewMode == ViewModeFixed {
		return c.fixedView
	}
	return c.fpsView
}

func (c *Camera) ViewMode() ViewMode {
	return c.viewMode
}

func (c *Camera) SetViewMode(m ViewMode) {
	c.viewMode = m
}

// ToggleView flips between the first-person and the fixed view.
func (c *Camera) ToggleView() ViewMode {
	if c.viewMode == ViewModeFixed {
		c.viewMode = ViewModeFPS
	} else {
		c.viewMode = ViewModeFixed
	}
	return c.viewMode
}

func (c *Camera) ProjectionMode() ProjectionMode {
	return c.projectionMode
}

// ToggleProjection flips between perspective and orthographic. It is
// independent of the view mode.
func (c *Camera) ToggleProjection() ProjectionMode {
	if c.projectionMode == ProjectionOrthographic {
		c.projectionMode = ProjectionPerspective
	} else {
		c.projectionMode = ProjectionOrthographic
	}
	c.isDirty = true
	return c.projectionMode
}

func (c *Camera) Fov() float32 {
	return c.fov
}

func (c *Camera) SetFov(fov float32) {
	c.fov = fov
	c.isDirty = true
}

func (c *Camera) SetAspect(aspect float32) {
	if aspect <= 0 {
		return
	}
	c.aspect = aspect
	c.isDirty = true
}

func (c *Camera) Planes() (float32, float32) {
	return c.near, c.far
}

func (c *Camera) SetPlanes(near, far float32) {
	c.near = near
	c.far = far
	c.isDirty = true
}

func (c *Camera) Projection() mgl32.Mat4 {
	if c.isDirty {
		if c.projectionMode == ProjectionOrthographic {
			c.projection = mgl32.Ortho(-1, 1, -1, 1, c.near, c.far)
		} else {
			c.projection = mgl32.Perspective(mgl32.DegToRad(c.fov), c.aspect, c.near, c.far)
		}
		c.isDirty = false
	}
	return c.projection
}
