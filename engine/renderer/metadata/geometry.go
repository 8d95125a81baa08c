package metadata

import (
	"github.com/go-gl/mathgl/mgl32"
)

/**
 * @brief Selects the pipeline a geometry is drawn with.
 */
type ShaderKind int

const (
	/** @brief Per-vertex colors, diffuse + ambient lighting and distance fog. */
	ShaderLit ShaderKind = iota
	/** @brief Unlit texture sampling. */
	ShaderTextured
)

func (s ShaderKind) String() string {
	switch s {
	case ShaderLit:
		return "lit"
	case ShaderTextured:
		return "textured"
	}
	return "unknown"
}

/**
 * @brief Which camera view a geometry is drawn from.
 */
type ViewSource int

const (
	/** @brief The view currently selected on the camera (fps or fixed). */
	ViewCurrent ViewSource = iota
	/** @brief Always the first-person view, whatever the camera mode. */
	ViewFPS
)

// Component counts of the flattened vertex streams.
const (
	PositionComponents = 3
	NormalComponents   = 3
	ColorComponents    = 4
	UVComponents       = 2
)

/**
 * @brief Flattened per-vertex streams handed to the rasterizer.
 * Normals, Colors and UVs may be empty when a geometry does not carry them.
 */
type VertexBuffers struct {
	Positions []float32
	Normals   []float32
	Colors    []float32
	UVs       []float32
	Count     int
}

func (vb *VertexBuffers) HasNormals() bool {
	return len(vb.Normals) >= vb.Count*NormalComponents && vb.Count > 0
}

func (vb *VertexBuffers) HasColors() bool {
	return len(vb.Colors) >= vb.Count*ColorComponents && vb.Count > 0
}

func (vb *VertexBuffers) HasUVs() bool {
	return len(vb.UVs) >= vb.Count*UVComponents && vb.Count > 0
}

func (vb *VertexBuffers) Position(i int) mgl32.Vec3 {
	return mgl32.Vec3{vb.Positions[i*3], vb.Positions[i*3+1], vb.Positions[i*3+2]}
}

func (vb *VertexBuffers) Normal(i int) mgl32.Vec3 {
	if !vb.HasNormals() {
		return mgl32.Vec3{}
	}
	return mgl32.Vec3{vb.Normals[i*3], vb.Normals[i*3+1], vb.Normals[i*3+2]}
}

// Color returns opaque white when the geometry carries no colors.
func (vb *VertexBuffers) Color(i int) mgl32.Vec4 {
	if !vb.HasColors() {
		return mgl32.Vec4{1, 1, 1, 1}
	}
	return mgl32.Vec4{vb.Colors[i*4], vb.Colors[i*4+1], vb.Colors[i*4+2], vb.Colors[i*4+3]}
}

func (vb *VertexBuffers) UV(i int) mgl32.Vec2 {
	if !vb.HasUVs() {
		return mgl32.Vec2{}
	}
	return mgl32.Vec2{vb.UVs[i*2], vb.UVs[i*2+1]}
}

/**
 * @brief Per-geometry lighting inputs of the lit pipeline. The diffuse
 * direction is the frame's (diffuse z, diffuse y, 0) plus DirectionOffset.
 */
type LightParams struct {
	Ambient         mgl32.Vec3
	DirectionOffset mgl32.Vec3
}

/**
 * @brief Everything the renderer needs to draw one geometry, computed
 * without touching the backend.
 */
type GeometryRenderData struct {
	ID      string
	Shader  ShaderKind
	View    ViewSource
	Model   mgl32.Mat4
	Buffers *VertexBuffers
	Light   LightParams
	// Only read by the textured pipeline. nil is drawn with the placeholder.
	Texture *Texture
}
