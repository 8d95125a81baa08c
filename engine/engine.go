package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/spaghettifunk/blitz/engine/assets"
	"github.com/spaghettifunk/blitz/engine/core"
	"github.com/spaghettifunk/blitz/engine/renderer"
	"github.com/spaghettifunk/blitz/engine/renderer/components"
)

var ErrIncompleteGame = errors.New("game is missing a configuration or a callback")

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently booting up
	EngineStageBooting
	// Engine completed boot process and is ready to be initialized
	EngineStageBootComplete
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

func (s Stage) String() string {
	switch s {
	case EngineStageBooting:
		return "booting"
	case EngineStageBootComplete:
		return "boot complete"
	case EngineStageInitializing:
		return "initializing"
	case EngineStageInitialized:
		return "initialized"
	case EngineStageRunning:
		return "running"
	case EngineStageShuttingDown:
		return "shutting down"
	}
	return "uninitialized"
}

type Engine struct {
	currentStage Stage
	gameInstance *Game
	ctx          *Context
	isRunning    bool
	isSuspended  bool
	width        uint32
	height       uint32
	clock        *core.Clock
	lastTime     float64
}

// New boots an engine drawing through backend. Nothing touches the backend
// before Initialize.
func New(g *Game, backend renderer.RendererBackend) (*Engine, error) {
	if g == nil || g.ApplicationConfig == nil || g.ApplicationConfig.Config == nil ||
		g.FnInitialize == nil || g.FnUpdate == nil || g.FnRender == nil {
		return nil, ErrIncompleteGame
	}
	e := &Engine{
		currentStage: EngineStageBooting,
		gameInstance: g,
		clock:        core.NewClock(),
		width:        g.ApplicationConfig.StartWidth,
		height:       g.ApplicationConfig.StartHeight,
	}
	core.SetLogLevel(g.ApplicationConfig.LogLevel)

	cfg := g.ApplicationConfig.Config
	bus := core.NewEventBus()
	options := renderer.DefaultOptions()
	options.UnifyTexturedView = cfg.Render.UnifyTexturedView
	options.Placeholder = cfg.Render.PlaceholderColor()

	e.ctx = &Context{
		Config:   cfg,
		Renderer: renderer.New(backend, options),
		Events:   bus,
		Input:    core.NewInput(bus),
		Metrics:  core.NewMetrics(),
		Eye:      cfg.Camera.FPSEyeVec(),
		Phong:    cfg.Lighting.Phong,
		FogRange: cfg.Fog.Range,
	}
	e.currentStage = EngineStageBootComplete
	return e, nil
}

func (e *Engine) Initialize() error {
	if e.currentStage != EngineStageBootComplete {
		return fmt.Errorf("cannot initialize engine while %s", e.currentStage)
	}
	e.currentStage = EngineStageInitializing
	cfg := e.ctx.Config

	// register some events
	e.ctx.Events.Register(core.EVENT_CODE_APPLICATION_QUIT, e.onEvent)
	e.ctx.Events.Register(core.EVENT_CODE_KEY_PRESSED, e.onKey)
	e.ctx.Events.Register(core.EVENT_CODE_KEY_RELEASED, e.onKey)
	e.ctx.Events.Register(core.EVENT_CODE_RESIZED, e.onResized)

	if err := e.ctx.Renderer.Initialize(int(e.width), int(e.height)); err != nil {
		return err
	}

	cam := components.NewCamera(float32(e.width) / float32(e.height))
	cam.SetFov(cfg.Camera.Fov)
	cam.SetPlanes(cfg.Camera.Near, cfg.Camera.Far)
	cam.SetLookAt(cfg.Camera.FPSEyeVec(), cfg.Camera.FPSTargetVec(), components.Up)
	cam.MoveFixedCamera(cfg.Camera.FixedEye[0], cfg.Camera.FixedEye[1])
	e.ctx.Camera = cam

	am, err := assets.NewAssetManager(assets.AssetManagerConfig{
		BaseDir:         cfg.Assets.Dir,
		Workers:         cfg.Assets.Workers,
		QueueSize:       cfg.Assets.QueueSize,
		MaxTextureCount: cfg.Assets.MaxTextures,
		MaxTextureSize:  cfg.Assets.MaxTextureSize,
		Placeholder:     cfg.Render.PlaceholderColor(),
	})
	if err != nil {
		return err
	}
	e.ctx.Assets = am
	if cfg.Assets.HotReload {
		if err := am.Watch(cfg.Assets.Dir); err != nil {
			core.LogWarn("hot reload disabled: %s", err)
		}
	}

	if err := e.gameInstance.FnInitialize(e.ctx); err != nil {
		return err
	}
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(e.ctx, e.width, e.height); err != nil {
			return err
		}
	}

	e.isRunning = true
	e.currentStage = EngineStageInitialized
	core.LogInfo("engine initialized at %dx%d", e.width, e.height)
	return nil
}

// Tick advances the engine by the wall time since the previous Tick.
func (e *Engine) Tick() error {
	if e.currentStage == EngineStageInitialized {
		e.clock.Start()
		e.lastTime = 0
	}
	e.clock.Update()
	currentTime := e.clock.Elapsed()
	delta := currentTime - e.lastTime
	e.lastTime = currentTime
	return e.Frame(delta)
}

// Frame runs one iteration of the main loop: asset callbacks, game update,
// game render, metrics and input.
func (e *Engine) Frame(delta float64) error {
	switch e.currentStage {
	case EngineStageInitialized:
		e.currentStage = EngineStageRunning
	case EngineStageRunning:
	default:
		return fmt.Errorf("cannot run a frame while %s: %w", e.currentStage, core.ErrNotInitialized)
	}
	if !e.isRunning || e.isSuspended {
		return nil
	}
	frameStart := time.Now()

	e.ctx.Assets.Update()

	if err := e.gameInstance.FnUpdate(e.ctx, delta); err != nil {
		core.LogError("game update failed, shutting down: %s", err)
		e.isRunning = false
		return err
	}

	// Call the game's render routine.
	if err := e.gameInstance.FnRender(e.ctx, e.ctx.FrameUniforms(), delta); err != nil {
		core.LogError("game render failed, shutting down: %s", err)
		e.isRunning = false
		return err
	}

	e.ctx.Metrics.Update(time.Since(frameStart).Seconds())

	// NOTE: Input update/state copying should always be handled
	// after any input should be recorded; I.E. before this line.
	// As a safety, input is the last thing to be updated before
	// this frame ends.
	e.ctx.Input.Update()
	return nil
}

// OnResize reports a new framebuffer size; zero in either dimension suspends the engine.
func (e *Engine) OnResize(width, height uint32) {
	e.ctx.Events.Fire(core.EventContext{
		Type: core.EVENT_CODE_RESIZED,
		Data: &core.SystemEvent{WindowWidth: width, WindowHeight: height},
	})
}

func (e *Engine) Shutdown() error {
	if e.currentStage == EngineStageShuttingDown {
		return nil
	}
	e.currentStage = EngineStageShuttingDown
	e.isRunning = false

	var errs []error
	if e.gameInstance.FnShutdown != nil {
		errs = append(errs, e.gameInstance.FnShutdown(e.ctx))
	}
	if e.ctx.Assets != nil {
		errs = append(errs, e.ctx.Assets.Shutdown())
	}
	if err := e.ctx.Renderer.Shutdown(); err != nil && !errors.Is(err, core.ErrNotInitialized) {
		errs = append(errs, err)
	}
	e.ctx.Events.Shutdown()
	return errors.Join(errs...)
}

func (e *Engine) Context() *Context {
	return e.ctx
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

func (e *Engine) IsRunning() bool {
	return e.isRunning
}

func (e *Engine) IsSuspended() bool {
	return e.isSuspended
}

// GetFramebufferSize returns the width and height (in this order)
// of the application framebuffer.
func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

func (e *Engine) onEvent(context core.EventContext) bool {
	switch context.Type {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.isRunning = false
		return true
	}
	return false
}

func (e *Engine) onKey(context core.EventContext) bool {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}

	if context.Type == core.EVENT_CODE_KEY_PRESSED && ke.KeyCode == core.KEY_ESCAPE {
		// NOTE: Technically firing an event to itself, but there may be other listeners.
		e.ctx.Events.Fire(core.EventContext{
			Type: core.EVENT_CODE_APPLICATION_QUIT,
		})
		// Block anything else from processing this.
		return true
	}
	return false
}

func (e *Engine) onResized(context core.EventContext) bool {
	se, ok := context.Data.(*core.SystemEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}

	width := se.WindowWidth
	height := se.WindowHeight

	// Check if different. If so, trigger a resize event.
	if width == e.width && height == e.height {
		return false
	}
	e.width = width
	e.height = height
	core.LogDebug("Window resize: %d, %d", width, height)

	// Handle minimization
	if width == 0 || height == 0 {
		core.LogInfo("Window minimized, suspending application.")
		e.isSuspended = true
		return true
	}
	if e.isSuspended {
		core.LogInfo("Window restored, resuming application.")
		e.isSuspended = false
	}
	if err := e.ctx.Renderer.OnResize(int(width), int(height)); err != nil {
		core.LogError(err.Error())
	}
	if e.ctx.Camera != nil {
		e.ctx.Camera.SetAspect(float32(width) / float32(height))
	}
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(e.ctx, width, height); err != nil {
			core.LogError(err.Error())
		}
	}
	// Other listeners may want the new size too.
	return false
}
