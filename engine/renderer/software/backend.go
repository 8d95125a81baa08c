package software

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/blitz/engine/core"
	"github.com/spaghettifunk/blitz/engine/renderer/metadata"
)

var (
	ErrInvalidSize    = errors.New("framebuffer size must be positive")
	ErrOutOfBounds    = errors.New("pixel outside of the framebuffer")
	ErrUnknownShader  = errors.New("unknown shader")
	ErrMissingTexture = errors.New("textured draw without a texture")
)

// Backend is a CPU rasterizer. Draws land in the back buffer, EndFrame
// publishes it to the front buffer that read-back and presentation use.
type Backend struct {
	back        *Framebuffer
	front       *Framebuffer
	shader      metadata.ShaderKind
	initialized bool
}

func New() *Backend {
	return &Backend{}
}

func (b *Backend) Initialize(width, height int) error {
	if err := b.allocate(width, height); err != nil {
		return err
	}
	b.initialized = true
	core.LogDebug("software backend ready (%dx%d)", width, height)
	return nil
}

func (b *Backend) allocate(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	b.back = NewFramebuffer(width, height)
	b.front = NewFramebuffer(width, height)
	return nil
}

func (b *Backend) Shutdown() error {
	b.back, b.front = nil, nil
	b.initialized = false
	return nil
}

func (b *Backend) Resized(width, height int) error {
	if !b.initialized {
		return core.ErrNotInitialized
	}
	if b.back.Width == width && b.back.Height == height {
		return nil
	}
	core.LogDebug("software backend resized to %dx%d", width, height)
	return b.allocate(width, height)
}

func (b *Backend) BeginFrame(clear mgl32.Vec4) error {
	if !b.initialized {
		return core.ErrNotInitialized
	}
	b.back.Clear(toRGBA(clear))
	return nil
}

func (b *Backend) UseShader(kind metadata.ShaderKind) error {
	switch kind {
	case metadata.ShaderLit, metadata.ShaderTextured:
		b.shader = kind
		return nil
	}
	return fmt.Errorf("%w: %d", ErrUnknownShader, kind)
}

func (b *Backend) DrawGeometry(call *metadata.DrawCall) error {
	if !b.initialized {
		return core.ErrNotInitialized
	}
	if call.Buffers == nil || call.Buffers.Count == 0 {
		return nil
	}
	switch b.shader {
	case metadata.ShaderLit:
		b.drawTriangles(call, shadeLit)
	case metadata.ShaderTextured:
		if !call.Texture.Ready() {
			return ErrMissingTexture
		}
		b.drawTriangles(call, shadeTextured)
	}
	return nil
}

func (b *Backend) EndFrame() error {
	if !b.initialized {
		return core.ErrNotInitialized
	}
	b.front.copyFrom(b.back)
	return nil
}

// ReadPixel reads the front buffer with the origin at the bottom-left corner.
func (b *Backend) ReadPixel(x, y int) (color.RGBA, error) {
	if !b.initialized {
		return color.RGBA{}, core.ErrNotInitialized
	}
	if x < 0 || y < 0 || x >= b.front.Width || y >= b.front.Height {
		return color.RGBA{}, fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, x, y)
	}
	return b.front.At(x, b.front.Height-1-y), nil
}

// Snapshot returns a copy of the front buffer.
func (b *Backend) Snapshot() *image.RGBA {
	if !b.initialized {
		return nil
	}
	img := image.NewRGBA(b.front.Color.Rect)
	copy(img.Pix, b.front.Color.Pix)
	return img
}

func (b *Backend) Size() (int, int) {
	if b.back == nil {
		return 0, 0
	}
	return b.back.Width, b.back.Height
}
