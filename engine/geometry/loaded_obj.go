package geometry

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/blitz/engine/renderer/metadata"
)

// LoadedOBJ is a normalized, textured mesh spinning around Y. Its texture
// may still be pending when it is first drawn.
type LoadedOBJ struct {
	base
	name       string
	rest       mgl32.Mat4
	texture    *metadata.Texture
	scaleTweak float32
	angle      float32
}

func NewLoadedOBJ(name string, mesh *NormalizedMesh, texture *metadata.Texture, scaleTweak float32) *LoadedOBJ {
	o := &LoadedOBJ{
		base:       newBase(metadata.ShaderTextured, metadata.ViewFPS, metadata.LightParams{}),
		name:       name,
		rest:       mesh.ModelMatrix(scaleTweak),
		texture:    texture,
		scaleTweak: scaleTweak,
	}
	o.vertices = mesh.Vertices
	o.transform.Set(o.rest)
	o.finalize()
	return o
}

func (o *LoadedOBJ) Name() string {
	return o.name
}

func (o *LoadedOBJ) Texture() *metadata.Texture {
	return o.texture
}

// SetTexture swaps the texture, e.g. once a user picks a new image.
func (o *LoadedOBJ) SetTexture(t *metadata.Texture) {
	o.texture = t
}

func (o *LoadedOBJ) Angle() float32 {
	return o.angle
}

// Animate spins the mesh at 45 degrees per second.
func (o *LoadedOBJ) Animate(delta float64) {
	o.angle = wrapDegrees(o.angle + float32(spinDegreesPerSec*delta))
	o.transform.Set(o.rest).Rotate(o.angle, mgl32.Vec3{0, 1, 0})
}

func (o *LoadedOBJ) RenderData() []*metadata.GeometryRenderData {
	data := o.base.RenderData()
	for _, d := range data {
		d.Texture = o.texture
	}
	return data
}
