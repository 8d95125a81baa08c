package metadata

import (
	"image"
	"image/color"
)

/** @brief The name of the placeholder texture drawn while a texture is not ready. */
const DEFAULT_TEXTURE_NAME string = "default"

/**
 * @brief Lifecycle of an asynchronously loaded texture.
 */
type TextureState int

const (
	TextureStatePending TextureState = iota
	TextureStateReady
	TextureStateFailed
)

func (s TextureState) String() string {
	switch s {
	case TextureStatePending:
		return "pending"
	case TextureStateReady:
		return "ready"
	case TextureStateFailed:
		return "failed"
	}
	return "unknown"
}

type TextureFilter int

const (
	/** @brief Nearest-neighbor filtering. */
	TextureFilterModeNearest TextureFilter = 0x0
	/** @brief Linear (i.e. bilinear) filtering.*/
	TextureFilterModeLinear TextureFilter = 0x1
)

type TextureRepeat int

const (
	TextureRepeatRepeat      TextureRepeat = 0x1
	TextureRepeatClampToEdge TextureRepeat = 0x3
)

/**
 * @brief Represents a texture. Only the main loop moves it between states.
 */
type Texture struct {
	/** @brief The texture Name, usually the path it was loaded from. */
	Name string
	/** @brief The texture state. */
	State TextureState
	/** @brief The texture Generation. Incremented every time the data is reloaded. */
	Generation uint32
	/** @brief Decoded pixels, nil until ready. */
	Image *image.NRGBA
	/** @brief Why loading failed, if it did. */
	Err error

	Filter  TextureFilter
	RepeatU TextureRepeat
	RepeatV TextureRepeat
	// Row 0 of Image is sampled at v = 1, like an upload with FLIP_Y.
	FlipY bool
}

// NewPendingTexture creates a texture configured for linear filtering,
// edge clamping and a flipped Y axis, waiting for its pixels.
func NewPendingTexture(name string) *Texture {
	return &Texture{
		Name:    name,
		State:   TextureStatePending,
		Filter:  TextureFilterModeLinear,
		RepeatU: TextureRepeatClampToEdge,
		RepeatV: TextureRepeatClampToEdge,
		FlipY:   true,
	}
}

// NewPlaceholderTexture returns a ready 1x1 texture of the given color.
func NewPlaceholderTexture(c color.NRGBA) *Texture {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, c)
	t := NewPendingTexture(DEFAULT_TEXTURE_NAME)
	t.Filter = TextureFilterModeNearest
	t.SetReady(img)
	return t
}

func (t *Texture) Ready() bool {
	return t != nil && t.State == TextureStateReady && t.Image != nil
}

// SetReady stores decoded pixels and bumps the generation.
func (t *Texture) SetReady(img *image.NRGBA) {
	t.Image = img
	t.Err = nil
	t.State = TextureStateReady
	t.Generation++
}

func (t *Texture) SetFailed(err error) {
	t.Err = err
	t.State = TextureStateFailed
}

func (t *Texture) Size() (int, int) {
	if t.Image == nil {
		return 0, 0
	}
	b := t.Image.Bounds()
	return b.Dx(), b.Dy()
}
