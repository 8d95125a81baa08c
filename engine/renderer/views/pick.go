package views

import (
	"image/color"

	"github.com/spaghettifunk/blitz/engine/core"
	"github.com/spaghettifunk/blitz/engine/renderer"
	"github.com/spaghettifunk/blitz/engine/renderer/metadata"
	"github.com/spaghettifunk/blitz/engine/scene"
)

// PickResult identifies which treasure, if any, a pixel belongs to.
type PickResult int

const (
	PickNone PickResult = iota
	PickPurpleHeart
	PickBloodBox
	PickDarkSoul
)

func (p PickResult) String() string {
	switch p {
	case PickPurpleHeart:
		return "purple heart"
	case PickBloodBox:
		return "blood box"
	case PickDarkSoul:
		return "dark soul"
	}
	return "none"
}

// Message is the text shown to the player, empty for PickNone.
func (p PickResult) Message() string {
	if p == PickNone {
		return ""
	}
	return "You found the " + p.String() + "!"
}

// Classify maps a rendered color to a treasure using fixed color ranges.
func Classify(c color.RGBA) PickResult {
	r, g, b := int(c.R), int(c.G), int(c.B)
	// Dark soul ignores blue.
	switch {
	case r > 130 && r < 200 && g > 95 && g < 150 && b > 190:
		return PickPurpleHeart
	case r > 195 && g > 30 && g < 95 && b > 5 && b < 65:
		return PickBloodBox
	case r > 0 && r < 20 && g < 20:
		return PickDarkSoul
	}
	return PickNone
}

// Picker hit-tests the scene by reading back the color under the cursor.
type Picker struct {
	last PickResult
}

func NewPicker() *Picker {
	return &Picker{}
}

// Pick re-renders the scene and classifies the pixel at canvas coordinates
// (x, y), origin bottom-left. Coordinates outside the canvas yield PickNone.
func (p *Picker) Pick(r *renderer.Renderer, s *scene.Scene, frame *metadata.FrameUniforms, x, y int) (PickResult, error) {
	w, h := r.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return PickNone, nil
	}
	if err := s.Render(r, frame); err != nil {
		return PickNone, err
	}
	c, err := r.ReadPixel(x, y)
	if err != nil {
		return PickNone, err
	}

	result := Classify(c)
	core.LogDebug("picked (%d, %d) -> rgb(%d, %d, %d) %s", x, y, c.R, c.G, c.B, result)
	if result != PickNone {
		p.last = result
	}
	return result, nil
}

// Last returns the most recent treasure found.
func (p *Picker) Last() PickResult {
	return p.last
}

// CanvasCoordinates converts a top-left based window position into the
// bottom-left based canvas space that Pick expects.
func CanvasCoordinates(x, y, height int) (int, int) {
	return x, height - 1 - y
}
