package testbed

import (
	"errors"
	"fmt"
	gomath "math"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/blitz/engine"
	"github.com/spaghettifunk/blitz/engine/assets"
	"github.com/spaghettifunk/blitz/engine/assets/loaders"
	"github.com/spaghettifunk/blitz/engine/config"
	"github.com/spaghettifunk/blitz/engine/core"
	"github.com/spaghettifunk/blitz/engine/geometry"
	"github.com/spaghettifunk/blitz/engine/math"
	"github.com/spaghettifunk/blitz/engine/renderer/components"
	"github.com/spaghettifunk/blitz/engine/renderer/metadata"
	"github.com/spaghettifunk/blitz/engine/renderer/views"
	"github.com/spaghettifunk/blitz/engine/scene"
	"github.com/spaghettifunk/blitz/engine/world"
)

// The player looks down -X.
const initialLookAngle = 3 * gomath.Pi / 2

var (
	blitzBase  = mgl32.Vec3{1, 0.5, 15}
	blitzColor = mgl32.Vec3{244.0 / 255, 217.0 / 255, 66.0 / 255}

	tiltedCubeCenter = mgl32.Vec3{4, 2.5, 13}
)

type treasure struct {
	size   float32
	center mgl32.Vec3
	color  mgl32.Vec3
}

// Each treasure color falls in one of the pick ranges.
var treasures = []treasure{
	{0.6, mgl32.Vec3{6, 0.8, 2}, mgl32.Vec3{150.0 / 255, 100.0 / 255, 200.0 / 255}},
	{0.5, mgl32.Vec3{23, 0.8, 2}, mgl32.Vec3{200.0 / 255, 60.0 / 255, 30.0 / 255}},
	{0.5, mgl32.Vec3{26, 0.8, 4}, mgl32.Vec3{5.0 / 255, 5.0 / 255, 5.0 / 255}},
}

type TestGame struct {
	*engine.Game
	state *gameState
}

type gameState struct {
	scene  *scene.Scene
	blitz  *geometry.Blitz
	picker *views.Picker

	// nil until the map image is decoded
	grid     geometry.Occupancy
	worldMap *geometry.StaticMap

	models map[string]*geometry.LoadedOBJ
	// last dropped image, used by meshes dropped after it
	texture *metadata.Texture

	eye       mgl32.Vec3
	lookAngle float32
	fixedEye  mgl32.Vec2

	width   uint32
	height  uint32
	message string
}

func NewTestGame(cfg *config.Config) (*TestGame, error) {
	appConfig, err := engine.NewApplicationConfig(cfg)
	if err != nil {
		return nil, err
	}
	state := &gameState{
		scene:     scene.New(),
		picker:    views.NewPicker(),
		models:    make(map[string]*geometry.LoadedOBJ),
		eye:       cfg.Camera.FPSEyeVec(),
		lookAngle: initialLookAngle,
		fixedEye:  mgl32.Vec2(cfg.Camera.FixedEye),
	}
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: appConfig,
			State:             state,
		},
		state: state,
	}

	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnRender = tg.Render
	tg.FnOnResize = tg.OnResize
	tg.FnShutdown = tg.Shutdown

	return tg, nil
}

func (g *TestGame) Initialize(ctx *engine.Context) error {
	core.LogInfo("initializing testbed...")
	cfg := ctx.Config

	g.state.blitz = newBlitz()
	g.state.scene.AddGeometry(g.state.blitz)
	for _, t := range treasures {
		g.state.scene.AddGeometry(geometry.NewCube(t.size, t.center, t.color, mgl32.Vec3{1, 1, 1}))
	}
	if cfg.Scene.TiltedCube {
		g.state.scene.AddGeometry(geometry.NewTiltedCube(cfg.Assets.CubeSize/2, tiltedCubeCenter))
	}

	ctx.Events.Register(core.EVENT_CODE_KEY_PRESSED, func(ec core.EventContext) bool {
		ke, ok := ec.Data.(*core.KeyEvent)
		if !ok {
			return false
		}
		return g.HandleKey(ctx, ke.KeyCode)
	})
	ctx.Events.Register(core.EVENT_CODE_BUTTON_PRESSED, func(ec core.EventContext) bool {
		me, ok := ec.Data.(*core.MouseEvent)
		if !ok || me.Button != core.BUTTON_LEFT {
			return false
		}
		_, err := g.PickAt(ctx, me.PosX, me.PosY)
		if err != nil {
			core.LogError("pick failed: %s", err)
		}
		return true
	})
	ctx.Events.Register(core.EVENT_CODE_FILE_DROPPED, func(ec core.EventContext) bool {
		fe, ok := ec.Data.(*core.FileDropEvent)
		if !ok {
			return false
		}
		if err := g.HandleDrop(ctx, fe.Name, fe.Data); err != nil {
			core.LogError("dropped file '%s': %s", fe.Name, err)
		}
		return true
	})

	if cfg.Assets.Map != "" {
		err := ctx.Assets.LoadMap(cfg.Assets.Map, func(path string, pixels *loaders.PixelData) {
			if err := g.SetMap(pixels, cfg.Assets.CubeSize); err != nil {
				core.LogError("failed to build map from '%s': %s", path, err)
			}
		}, nil)
		if err != nil {
			return err
		}
	}

	for _, m := range cfg.Models {
		if err := g.loadModel(ctx, m); err != nil {
			return fmt.Errorf("model '%s': %w", m.Path, err)
		}
	}

	g.lookAt(ctx)
	return nil
}

// newBlitz assembles the player character from six cubes.
func newBlitz() *geometry.Blitz {
	b := geometry.NewBlitz(blitzBase)
	one := mgl32.Vec3{1, 1, 1}
	br, bg, bb := blitzColor.Elem()
	b.AddCube(0.8, mgl32.Vec3{0, 0.6, 0}, mgl32.Vec3{br, bg, bb}, one)
	b.AddCube(0.2, mgl32.Vec3{0.1, 0.1, 0.2}, mgl32.Vec3{br, bg, bb}, one)
	b.AddCube(0.2, mgl32.Vec3{0.1, 0.1, -0.2}, mgl32.Vec3{br, bg, bb}, one)
	b.AddCube(0.4, mgl32.Vec3{0, 1.2, 0}, mgl32.Vec3{br - 0.1, bg - 0.1, bb}, one)
	b.AddCube(0.3, mgl32.Vec3{0, 0.6, 0.55}, mgl32.Vec3{br, bg, bb + 1}, one)
	b.AddCube(0.3, mgl32.Vec3{0, 0.6, -0.55}, mgl32.Vec3{br, bg, bb + 1}, one)
	return b
}

func (g *TestGame) loadModel(ctx *engine.Context, m config.ModelConfig) error {
	var texture *metadata.Texture
	if m.Texture != "" {
		t, err := ctx.Assets.LoadTexture(m.Texture)
		if err != nil {
			return err
		}
		texture = t
	}
	return ctx.Assets.LoadMesh(m.Path, func(name string, mesh *geometry.NormalizedMesh) {
		g.placeModel(name, mesh, texture, m.ScaleTweak)
	}, func(name string, err error) {
		core.LogError("failed to load model '%s': %s", name, err)
	})
}

// placeModel adds a mesh to the scene, replacing an earlier one of the same name.
func (g *TestGame) placeModel(name string, mesh *geometry.NormalizedMesh, texture *metadata.Texture, scaleTweak float32) *geometry.LoadedOBJ {
	if old, ok := g.state.models[name]; ok {
		g.state.scene.RemoveGeometry(old.ID())
	}
	obj := geometry.NewLoadedOBJ(name, mesh, texture, scaleTweak)
	g.state.models[name] = obj
	g.state.scene.AddGeometry(obj)
	core.LogInfo("model '%s' placed with %d vertices", name, obj.VertexCount())
	return obj
}

// SetMap rebuilds the map geometry and the collision grid from pixels.
func (g *TestGame) SetMap(pixels *loaders.PixelData, cubeSize float32) error {
	sm, grid, err := world.BuildMap(pixels.Pix, pixels.Width, pixels.Height, cubeSize)
	if err != nil {
		return err
	}
	if g.state.worldMap != nil {
		g.state.scene.RemoveGeometry(g.state.worldMap.ID())
	}
	g.state.worldMap = sm
	g.state.grid = grid
	g.state.scene.AddGeometry(sm)
	w, h := sm.Dimensions()
	core.LogInfo("map %dx%d loaded with %d cubes", w, h, sm.CubeCount())
	return nil
}

func (g *TestGame) Update(ctx *engine.Context, deltaTime float64) error {
	g.state.scene.UpdateAnimation(deltaTime)
	return nil
}

func (g *TestGame) Render(ctx *engine.Context, frame *metadata.FrameUniforms, deltaTime float64) error {
	return g.state.scene.Render(ctx.Renderer, frame)
}

func (g *TestGame) OnResize(ctx *engine.Context, width uint32, height uint32) error {
	g.state.width = width
	g.state.height = height
	return nil
}

func (g *TestGame) Shutdown(ctx *engine.Context) error {
	core.LogInfo("shutting down testbed with %d geometries in the scene", g.state.scene.Len())
	return nil
}

// HandleKey applies one key press. It reports false for keys the game ignores.
func (g *TestGame) HandleKey(ctx *engine.Context, key core.KeyCode) bool {
	cfg := ctx.Config
	step := cfg.Movement.Step
	sin, cos := math.Sincos(g.state.lookAngle)
	fps := ctx.Camera.ViewMode() == components.ViewModeFPS
	fixed := !fps

	switch key {
	case core.KEY_D:
		if fps && g.move(g.state.blitz.TranslateRight, step) {
			g.state.eye[0] += cos * step
			g.state.eye[2] -= sin * step
		}
	case core.KEY_A:
		if fps && g.move(g.state.blitz.TranslateRight, -step) {
			g.state.eye[0] -= cos * step
			g.state.eye[2] += sin * step
		}
	case core.KEY_W:
		if fps && g.move(g.state.blitz.TranslateForward, step) {
			g.state.eye[0] -= sin * step
			g.state.eye[2] -= cos * step
		}
	case core.KEY_S:
		if fps && g.move(g.state.blitz.TranslateForward, -step) {
			g.state.eye[0] += sin * step
			g.state.eye[2] += cos * step
		}
	case core.KEY_I:
		if fixed {
			g.moveFixed(ctx, 0, -cfg.Movement.FixedCameraStep)
		}
	case core.KEY_J:
		if fixed {
			g.moveFixed(ctx, -cfg.Movement.FixedCameraStep, 0)
		}
	case core.KEY_K:
		if fixed {
			g.moveFixed(ctx, 0, cfg.Movement.FixedCameraStep)
		}
	case core.KEY_L:
		if fixed {
			g.moveFixed(ctx, cfg.Movement.FixedCameraStep, 0)
		}
	case core.KEY_UP:
		core.LogDebug("camera switched to %s view", ctx.Camera.ToggleView())
	case core.KEY_LEFT, core.KEY_RIGHT, core.KEY_DOWN:
	case core.KEY_P:
		core.LogDebug("projection switched to %s", ctx.Camera.ToggleProjection())
	case core.KEY_F:
		ctx.Phong = !ctx.Phong
	case core.KEY_MINUS:
		g.setFogRange(ctx, ctx.FogRange-cfg.Movement.FogStep)
	case core.KEY_PLUS:
		g.setFogRange(ctx, ctx.FogRange+cfg.Movement.FogStep)
	case core.KEY_C:
		if err := g.state.scene.ClearGeometry(ctx.Renderer, ctx.FrameUniforms()); err != nil {
			core.LogError("failed to clear scene: %s", err)
		}
		g.state.worldMap = nil
		g.state.models = make(map[string]*geometry.LoadedOBJ)
	default:
		return false
	}

	g.lookAt(ctx)
	return true
}

// move runs a Blitz translation and reports whether it happened.
func (g *TestGame) move(translate func(float32, geometry.Occupancy) (bool, error), units float32) bool {
	moved, err := translate(units, g.state.grid)
	if errors.Is(err, geometry.ErrGridNotReady) {
		core.LogDebug("map not loaded yet, movement ignored")
		return false
	}
	return moved
}

func (g *TestGame) moveFixed(ctx *engine.Context, dx, dz float32) {
	g.state.fixedEye = g.state.fixedEye.Add(mgl32.Vec2{dx, dz})
	ctx.Camera.MoveFixedCamera(g.state.fixedEye.X(), g.state.fixedEye.Y())
}

// setFogRange keeps the fog range past the fog near distance and inside the far plane.
func (g *TestGame) setFogRange(ctx *engine.Context, r float32) {
	_, far := ctx.Camera.Planes()
	low := min(ctx.Config.Fog.Near+ctx.Config.Movement.FogStep, far)
	ctx.FogRange = math.Clamp(r, low, far)
	core.LogDebug("fog range set to %.1f", ctx.FogRange)
}

// lookAt points the first-person view along the look angle at eye height.
func (g *TestGame) lookAt(ctx *engine.Context) {
	sin, cos := math.Sincos(g.state.lookAngle)
	eye := g.state.eye
	target := mgl32.Vec3{eye.X() - sin, eye.Y(), eye.Z() - cos}
	ctx.Camera.SetLookAt(eye, target, components.Up)
	ctx.Eye = eye
}

// PickAt hit-tests the window position (x, y), origin top-left.
func (g *TestGame) PickAt(ctx *engine.Context, x, y int) (views.PickResult, error) {
	_, h := ctx.Renderer.Size()
	cx, cy := views.CanvasCoordinates(x, y, h)
	result, err := g.state.picker.Pick(ctx.Renderer, g.state.scene, ctx.FrameUniforms(), cx, cy)
	if err != nil {
		return views.PickNone, err
	}
	if result != views.PickNone {
		g.state.message = result.Message()
		core.LogInfo(g.state.message)
		ctx.Events.Fire(core.EventContext{
			Type: core.EVENT_CODE_OBJECT_PICKED,
			Data: int(result),
		})
	}
	return result, nil
}

// HandleDrop loads a dropped OBJ as a model or a dropped image as the
// texture of the models dropped after it.
func (g *TestGame) HandleDrop(ctx *engine.Context, name string, data []byte) error {
	switch {
	case assets.IsMesh(name):
		texture := g.state.texture
		return ctx.Assets.LoadMeshFromBytes(name, data, func(name string, mesh *geometry.NormalizedMesh) {
			g.placeModel(name, mesh, texture, 1)
		}, func(name string, err error) {
			core.LogError("failed to load dropped model '%s': %s", name, err)
		})
	case assets.IsImage(name):
		t, err := ctx.Assets.LoadTextureFromBytes(name, data)
		if err != nil {
			return err
		}
		g.state.texture = t
		for _, obj := range g.state.models {
			obj.SetTexture(t)
		}
		core.LogInfo("texture '%s' applied to %d models and selected for the next one", name, len(g.state.models))
		return nil
	}
	return fmt.Errorf("%w: %s", core.ErrUnsupportedAsset, filepath.Ext(name))
}

// Status is the HUD line of the game.
func (g *TestGame) Status(ctx *engine.Context) string {
	s := fmt.Sprintf("view: %s  projection: %s  fog: %.0f", ctx.Camera.ViewMode(), ctx.Camera.ProjectionMode(), ctx.FogRange)
	if g.state.message != "" {
		s += "\n" + g.state.message
	}
	return s
}

func (g *TestGame) Scene() *scene.Scene {
	return g.state.scene
}

func (g *TestGame) Blitz() *geometry.Blitz {
	return g.state.blitz
}

func (g *TestGame) Eye() mgl32.Vec3 {
	return g.state.eye
}

func (g *TestGame) FixedEye() mgl32.Vec2 {
	return g.state.fixedEye
}
