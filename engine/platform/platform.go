package platform

import (
	"fmt"
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/spaghettifunk/blitz/engine"
	"github.com/spaghettifunk/blitz/engine/core"
)

var letterKeys = []ebiten.Key{
	ebiten.KeyA, ebiten.KeyB, ebiten.KeyC, ebiten.KeyD, ebiten.KeyE, ebiten.KeyF,
	ebiten.KeyG, ebiten.KeyH, ebiten.KeyI, ebiten.KeyJ, ebiten.KeyK, ebiten.KeyL,
	ebiten.KeyM, ebiten.KeyN, ebiten.KeyO, ebiten.KeyP, ebiten.KeyQ, ebiten.KeyR,
	ebiten.KeyS, ebiten.KeyT, ebiten.KeyU, ebiten.KeyV, ebiten.KeyW, ebiten.KeyX,
	ebiten.KeyY, ebiten.KeyZ,
}

var keyMap = map[ebiten.Key]core.KeyCode{
	ebiten.KeyBackspace:  core.KEY_BACKSPACE,
	ebiten.KeyTab:        core.KEY_TAB,
	ebiten.KeyEnter:      core.KEY_ENTER,
	ebiten.KeyShiftLeft:  core.KEY_SHIFT,
	ebiten.KeyShiftRight: core.KEY_SHIFT,
	ebiten.KeyEscape:     core.KEY_ESCAPE,
	ebiten.KeySpace:      core.KEY_SPACE,
	ebiten.KeyArrowLeft:  core.KEY_LEFT,
	ebiten.KeyArrowUp:    core.KEY_UP,
	ebiten.KeyArrowRight: core.KEY_RIGHT,
	ebiten.KeyArrowDown:  core.KEY_DOWN,
	ebiten.KeyEqual:      core.KEY_PLUS,
	ebiten.KeyMinus:      core.KEY_MINUS,
}

func init() {
	for i, k := range letterKeys {
		keyMap[k] = core.KEY_A + core.KeyCode(i)
	}
}

var buttonMap = map[ebiten.MouseButton]core.Button{
	ebiten.MouseButtonLeft:   core.BUTTON_LEFT,
	ebiten.MouseButtonRight:  core.BUTTON_RIGHT,
	ebiten.MouseButtonMiddle: core.BUTTON_MIDDLE,
}

/**
 * @brief Hosts an engine in a desktop window. Input is translated into the
 * engine's events, the last rendered frame is copied to the screen.
 */
type Platform struct {
	engine *engine.Engine
	frame  *ebiten.Image
	keys   []ebiten.Key
	width  int
	height int
	// Extra HUD lines under the frame metrics.
	status func() string
}

func New(e *engine.Engine) *Platform {
	w, h := e.GetFramebufferSize()
	return &Platform{
		engine: e,
		width:  int(w),
		height: int(h),
	}
}

// SetStatus adds the returned text to the HUD every frame.
func (p *Platform) SetStatus(status func() string) {
	p.status = status
}

// Run opens the window and blocks until it closes or the engine stops.
func (p *Platform) Run() error {
	cfg := p.engine.Context().Config
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(p.width, p.height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Window.TPS)
	if err := ebiten.RunGame(p); err != nil && err != ebiten.Termination {
		return err
	}
	return nil
}

func (p *Platform) Update() error {
	in := p.engine.Context().Input

	p.keys = inpututil.AppendJustPressedKeys(p.keys[:0])
	for _, k := range p.keys {
		if code, ok := keyMap[k]; ok {
			in.ProcessKey(code, true)
		}
	}
	p.keys = inpututil.AppendJustReleasedKeys(p.keys[:0])
	for _, k := range p.keys {
		if code, ok := keyMap[k]; ok {
			in.ProcessKey(code, false)
		}
	}

	in.ProcessMouseMove(ebiten.CursorPosition())
	for mb, b := range buttonMap {
		if inpututil.IsMouseButtonJustPressed(mb) {
			in.ProcessButton(b, true)
		} else if inpututil.IsMouseButtonJustReleased(mb) {
			in.ProcessButton(b, false)
		}
	}

	if dropped := ebiten.DroppedFiles(); dropped != nil {
		p.fireDropped(dropped)
	}

	if !p.engine.IsRunning() {
		return ebiten.Termination
	}
	if err := p.engine.Tick(); err != nil {
		return err
	}
	if !p.engine.IsRunning() {
		return ebiten.Termination
	}
	return nil
}

func (p *Platform) fireDropped(files fs.FS) {
	bus := p.engine.Context().Events
	err := fs.WalkDir(files, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(files, path)
		if err != nil {
			core.LogError("failed to read dropped file '%s': %s", path, err)
			return nil
		}
		bus.Fire(core.EventContext{
			Type: core.EVENT_CODE_FILE_DROPPED,
			Data: &core.FileDropEvent{Name: d.Name(), Data: data},
		})
		return nil
	})
	if err != nil {
		core.LogError("failed to walk dropped files: %s", err)
	}
}

func (p *Platform) Draw(screen *ebiten.Image) {
	ctx := p.engine.Context()
	snapshot := ctx.Renderer.Snapshot()
	if snapshot == nil {
		return
	}
	b := snapshot.Bounds()
	if p.frame == nil || p.frame.Bounds().Dx() != b.Dx() || p.frame.Bounds().Dy() != b.Dy() {
		if p.frame != nil {
			p.frame.Deallocate()
		}
		p.frame = ebiten.NewImage(b.Dx(), b.Dy())
	}
	p.frame.WritePixels(snapshot.Pix)
	screen.DrawImage(p.frame, nil)

	fps, ms := ctx.Metrics.Frame()
	hud := fmt.Sprintf("FPS: %.0f (%.2f ms)", fps, ms)
	if p.status != nil {
		hud += "\n" + p.status()
	}
	ebitenutil.DebugPrint(screen, hud)
}

func (p *Platform) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != p.width || outsideHeight != p.height {
		p.width, p.height = outsideWidth, outsideHeight
		p.engine.OnResize(uint32(outsideWidth), uint32(outsideHeight))
	}
	// A minimized window still needs a non-empty screen.
	return max(p.width, 1), max(p.height, 1)
}
