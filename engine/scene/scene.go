package scene

import (
	"github.com/spaghettifunk/blitz/engine/core"
	"github.com/spaghettifunk/blitz/engine/geometry"
	"github.com/spaghettifunk/blitz/engine/renderer"
	"github.com/spaghettifunk/blitz/engine/renderer/metadata"
)

// Scene holds the drawable objects split by pipeline. Lit geometries are
// always drawn before textured ones, each group in insertion order.
type Scene struct {
	lit      []geometry.Geometry
	textured []geometry.Geometry
	elapsed  float64
}

func New() *Scene {
	return &Scene{
		lit:      []geometry.Geometry{},
		textured: []geometry.Geometry{},
	}
}

// AddGeometry routes g to the collection of its pipeline.
func (s *Scene) AddGeometry(g geometry.Geometry) {
	if g.Shader() == metadata.ShaderTextured {
		s.textured = append(s.textured, g)
	} else {
		s.lit = append(s.lit, g)
	}
	core.LogDebug("geometry %s added to the %s collection", core.ShortIdentifier(g.ID()), g.Shader())
}

// RemoveGeometry drops the geometry with the given id and reports whether it
// was found.
func (s *Scene) RemoveGeometry(id string) bool {
	for _, list := range []*[]geometry.Geometry{&s.lit, &s.textured} {
		for i, g := range *list {
			if g.ID() == id {
				*list = append((*list)[:i], (*list)[i+1:]...)
				return true
			}
		}
	}
	return false
}

// ClearGeometry empties both collections and renders the empty frame.
func (s *Scene) ClearGeometry(r *renderer.Renderer, frame *metadata.FrameUniforms) error {
	s.lit = s.lit[:0]
	s.textured = s.textured[:0]
	core.LogInfo("scene cleared")
	return s.Render(r, frame)
}

// UpdateAnimation advances every geometry by delta seconds.
func (s *Scene) UpdateAnimation(delta float64) {
	s.elapsed = delta
	for _, g := range s.lit {
		g.Animate(delta)
	}
	for _, g := range s.textured {
		g.Animate(delta)
	}
}

// BuildPacket computes the draw data of the whole scene.
func (s *Scene) BuildPacket() *metadata.RenderPacket {
	packet := &metadata.RenderPacket{
		DeltaTime: s.elapsed,
		Lit:       make([]*metadata.GeometryRenderData, 0, len(s.lit)),
		Textured:  make([]*metadata.GeometryRenderData, 0, len(s.textured)),
	}
	for _, g := range s.lit {
		packet.Lit = append(packet.Lit, g.RenderData()...)
	}
	for _, g := range s.textured {
		packet.Textured = append(packet.Textured, g.RenderData()...)
	}
	return packet
}

// Render draws one frame of the scene.
func (s *Scene) Render(r *renderer.Renderer, frame *metadata.FrameUniforms) error {
	return r.DrawFrame(s.BuildPacket(), frame)
}

func (s *Scene) Lit() []geometry.Geometry {
	return s.lit
}

func (s *Scene) Textured() []geometry.Geometry {
	return s.textured
}

func (s *Scene) Len() int {
	return len(s.lit) + len(s.textured)
}
