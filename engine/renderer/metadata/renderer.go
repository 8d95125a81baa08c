package metadata

import (
	"github.com/go-gl/mathgl/mgl32"
)

type RendererBackendType int

const (
	RendererBackendTypeSoftware RendererBackendType = iota
)

/**
 * @brief Values shared by every draw of a frame.
 */
type FrameUniforms struct {
	// The camera's current view (fps or fixed).
	View mgl32.Mat4
	// The first-person view, used by ViewFPS geometries.
	FPSView    mgl32.Mat4
	Projection mgl32.Mat4
	Eye        mgl32.Vec3

	ClearColor mgl32.Vec4
	FogColor   mgl32.Vec3
	// Distance at which fog starts and at which it fully covers the geometry.
	FogNear float32
	FogFar  float32

	LightColor mgl32.Vec3
	DiffuseY   float32
	DiffuseZ   float32
	// When false the lit pipeline outputs normals instead of shaded colors.
	Phong bool
}

/**
 * @brief The geometries of one frame, lit first then textured.
 */
type RenderPacket struct {
	DeltaTime float64
	Lit       []*GeometryRenderData
	Textured  []*GeometryRenderData
}

func (p *RenderPacket) Len() int {
	return len(p.Lit) + len(p.Textured)
}

/**
 * @brief A fully resolved draw handed to the backend: matrices chosen,
 * texture resolved, lighting direction computed.
 */
type DrawCall struct {
	Shader     ShaderKind
	Model      mgl32.Mat4
	View       mgl32.Mat4
	Projection mgl32.Mat4
	Eye        mgl32.Vec3
	Buffers    *VertexBuffers

	Ambient          mgl32.Vec3
	DiffuseDirection mgl32.Vec3
	LightColor       mgl32.Vec3
	FogColor         mgl32.Vec3
	FogNear          float32
	FogFar           float32
	Phong            bool

	Texture *Texture
}
