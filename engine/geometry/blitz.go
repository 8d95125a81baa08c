package geometry

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/blitz/engine/core"
	"github.com/spaghettifunk/blitz/engine/renderer/metadata"
)

// Blitz is the player character: a set of cubes placed relative to a base
// point that move together and collide against an occupancy grid.
type Blitz struct {
	id       string
	base     mgl32.Vec3
	position mgl32.Vec3
	parts    []*Cube
}

func NewBlitz(base mgl32.Vec3) *Blitz {
	return &Blitz{
		id:       core.NewIdentifier(),
		base:     base,
		position: base,
	}
}

func (b *Blitz) ID() string {
	return b.id
}

func (b *Blitz) Shader() metadata.ShaderKind {
	return metadata.ShaderLit
}

func (b *Blitz) Animate(float64) {}

func (b *Blitz) sealed() {}

// AddCube adds a body part. center is relative to the base point.
func (b *Blitz) AddCube(size float32, center mgl32.Vec3, color mgl32.Vec3, scale mgl32.Vec3) *Cube {
	c := NewCube(size, b.base.Add(center), color, scale)
	b.parts = append(b.parts, c)
	return c
}

func (b *Blitz) Parts() []*Cube {
	return b.parts
}

func (b *Blitz) Position() mgl32.Vec3 {
	return b.position
}

func (b *Blitz) RenderData() []*metadata.GeometryRenderData {
	out := make([]*metadata.GeometryRenderData, 0, len(b.parts))
	for _, p := range b.parts {
		out = append(out, p.RenderData()...)
	}
	return out
}

// TranslateForward moves along X when the destination cell is free. Only the
// destination is checked, so a fast move may cross a thin wall.
func (b *Blitz) TranslateForward(units float32, grid Occupancy) (bool, error) {
	if grid == nil {
		return false, ErrGridNotReady
	}
	if !grid.CanOccupy(b.position.X()+units, b.position.Z()) {
		return false, nil
	}
	for _, p := range b.parts {
		p.TranslateForward(units)
	}
	b.position[0] += units
	return true, nil
}

// TranslateRight moves along Z when the destination cell is free.
func (b *Blitz) TranslateRight(units float32, grid Occupancy) (bool, error) {
	if grid == nil {
		return false, ErrGridNotReady
	}
	if !grid.CanOccupy(b.position.X(), b.position.Z()+units) {
		return false, nil
	}
	for _, p := range b.parts {
		p.TranslateRight(units)
	}
	b.position[2] += units
	return true, nil
}
