package renderer

import (
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/blitz/engine/renderer/metadata"
)

type RendererBackend interface {
	Initialize(width, height int) error
	Shutdown() error
	Resized(width, height int) error
	// BeginFrame clears the color and depth buffers.
	BeginFrame(clear mgl32.Vec4) error
	UseShader(kind metadata.ShaderKind) error
	DrawGeometry(call *metadata.DrawCall) error
	EndFrame() error
	// ReadPixel reads the last frame at canvas coordinates: origin bottom-left.
	ReadPixel(x, y int) (color.RGBA, error)
	// Snapshot returns the last finished frame, origin top-left.
	Snapshot() *image.RGBA
	Size() (int, int)
}
