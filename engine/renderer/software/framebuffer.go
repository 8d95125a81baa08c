package software

import (
	"image"
	"image/color"
)

// Framebuffer is a color target plus its depth buffer. Color row 0 is the
// top of the screen.
type Framebuffer struct {
	Width  int
	Height int
	Color  *image.RGBA
	Depth  []float32
}

func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Color:  image.NewRGBA(image.Rect(0, 0, width, height)),
		Depth:  make([]float32, width*height),
	}
}

// Clear fills the color buffer with c and resets depth to the far plane.
func (fb *Framebuffer) Clear(c color.RGBA) {
	pix := fb.Color.Pix
	if len(pix) == 0 {
		return
	}
	pix[0], pix[1], pix[2], pix[3] = c.R, c.G, c.B, c.A
	// copy-doubling, the same trick works for both buffers
	for i := 4; i < len(pix); i *= 2 {
		copy(pix[i:], pix[:i])
	}
	fb.Depth[0] = 1
	for i := 1; i < len(fb.Depth); i *= 2 {
		copy(fb.Depth[i:], fb.Depth[:i])
	}
}

func (fb *Framebuffer) depthAt(x, y int) float32 {
	return fb.Depth[y*fb.Width+x]
}

func (fb *Framebuffer) setPixel(x, y int, depth float32, c color.RGBA) {
	fb.Depth[y*fb.Width+x] = depth
	off := fb.Color.PixOffset(x, y)
	fb.Color.Pix[off] = c.R
	fb.Color.Pix[off+1] = c.G
	fb.Color.Pix[off+2] = c.B
	fb.Color.Pix[off+3] = c.A
}

// At reads the color at top-left based (x, y).
func (fb *Framebuffer) At(x, y int) color.RGBA {
	return fb.Color.RGBAAt(x, y)
}

func (fb *Framebuffer) copyFrom(src *Framebuffer) {
	copy(fb.Color.Pix, src.Color.Pix)
	copy(fb.Depth, src.Depth)
}
