package metadata

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestTextureLifecycle(t *testing.T) {
	tex := NewPendingTexture("crate.png")
	assert.Equal(t, TextureStatePending, tex.State)
	assert.False(t, tex.Ready())
	assert.True(t, tex.FlipY)
	assert.Equal(t, TextureRepeatClampToEdge, tex.RepeatU)

	tex.SetReady(image.NewNRGBA(image.Rect(0, 0, 4, 2)))
	assert.True(t, tex.Ready())
	assert.Equal(t, uint32(1), tex.Generation)
	w, h := tex.Size()
	assert.Equal(t, 4, w)
	assert.Equal(t, 2, h)

	boom := errors.New("boom")
	tex.SetFailed(boom)
	assert.False(t, tex.Ready())
	assert.ErrorIs(t, tex.Err, boom)
	assert.Equal(t, "failed", tex.State.String())
}

func TestPlaceholderTexture(t *testing.T) {
	tex := NewPlaceholderTexture(color.NRGBA{R: 255, A: 255})
	assert.True(t, tex.Ready())
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, tex.Image.NRGBAAt(0, 0))
}

func TestVertexBuffersOptionalStreams(t *testing.T) {
	vb := &VertexBuffers{
		Positions: []float32{1, 2, 3},
		Count:     1,
	}
	assert.False(t, vb.HasNormals())
	assert.False(t, vb.HasUVs())
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, vb.Position(0))
	assert.Equal(t, mgl32.Vec4{1, 1, 1, 1}, vb.Color(0))
	assert.Equal(t, mgl32.Vec2{}, vb.UV(0))

	vb.Colors = []float32{0.1, 0.2, 0.3, 1}
	assert.Equal(t, mgl32.Vec4{0.1, 0.2, 0.3, 1}, vb.Color(0))
}
