package testbed

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/blitz/engine"
	"github.com/spaghettifunk/blitz/engine/config"
	"github.com/spaghettifunk/blitz/engine/core"
	"github.com/spaghettifunk/blitz/engine/renderer/components"
	"github.com/spaghettifunk/blitz/engine/renderer/views"
	"github.com/spaghettifunk/blitz/engine/renderer/software"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quadOBJ = `v -1 -1 0
v 1 -1 0
v 1 1 0
v -1 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
f 1/1 2/2 3/3 4/4
`

// A walkable floor of one cube per cell with a single wall next to Blitz.
func mapPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 30, 20))
	for z := 0; z < 20; z++ {
		for x := 0; x < 30; x++ {
			img.SetNRGBA(x, z, color.NRGBA{R: 1, G: 120, B: 60, A: 255})
		}
	}
	img.SetNRGBA(1, 16, color.NRGBA{R: 2, G: 120, B: 60, A: 255})
	return encodePNG(t, img)
}

func texturePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	return encodePNG(t, img)
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

type fixture struct {
	game   *TestGame
	engine *engine.Engine
	ctx    *engine.Context
}

func newFixture(t *testing.T, mutate func(cfg *config.Config, dir string)) *fixture {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "maps"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "maps", "test.png"), mapPNG(t), 0o644))

	cfg := config.Default()
	cfg.Window.Width = 64
	cfg.Window.Height = 32
	cfg.Assets.Dir = dir
	cfg.Assets.Map = "maps/test.png"
	cfg.Assets.HotReload = false
	if mutate != nil {
		mutate(cfg, dir)
	}

	tg, err := NewTestGame(cfg)
	require.NoError(t, err)
	e, err := engine.New(tg.Game, software.New())
	require.NoError(t, err)
	require.NoError(t, e.Initialize())
	t.Cleanup(func() { _ = e.Shutdown() })

	return &fixture{game: tg, engine: e, ctx: e.Context()}
}

func TestInitializeBuildsScene(t *testing.T) {
	f := newFixture(t, nil)
	// Blitz and three treasures.
	assert.Equal(t, 4, f.game.Scene().Len())
	assert.Len(t, f.game.Blitz().Parts(), 6)

	f.ctx.Assets.Wait()
	assert.Equal(t, 5, f.game.Scene().Len(), "map added once decoded")
	require.NotNil(t, f.game.state.grid)
	assert.Equal(t, 30*20+1, f.game.state.worldMap.CubeCount())
	w, h := f.game.state.grid.Dimensions()
	assert.Equal(t, []int{30, 20}, []int{w, h})
	w, h = f.game.state.worldMap.Dimensions()
	assert.Equal(t, []int{30, 20}, []int{w, h})
}

func TestTiltedCubeFromConfig(t *testing.T) {
	f := newFixture(t, func(cfg *config.Config, _ string) {
		cfg.Scene.TiltedCube = true
		cfg.Assets.Map = ""
	})
	assert.Equal(t, 5, f.game.Scene().Len())
}

func TestMovementWaitsForTheMap(t *testing.T) {
	f := newFixture(t, nil)
	eye := f.game.Eye()

	assert.True(t, f.game.HandleKey(f.ctx, core.KEY_W))
	assert.Equal(t, eye, f.game.Eye())
	assert.Equal(t, blitzBase, f.game.Blitz().Position())
}

func TestForwardMovesBlitzAndEye(t *testing.T) {
	f := newFixture(t, nil)
	f.ctx.Assets.Wait()

	require.True(t, f.game.HandleKey(f.ctx, core.KEY_W))
	assert.InDelta(t, 1.13, f.game.Blitz().Position().X(), 1e-5)
	assert.InDelta(t, 0.17, f.game.Eye().X(), 1e-5)
	assert.InDelta(t, 15, f.game.Eye().Z(), 1e-5)
	assert.Equal(t, f.game.Eye(), f.ctx.Eye)

	require.True(t, f.game.HandleKey(f.ctx, core.KEY_S))
	assert.InDelta(t, 1, f.game.Blitz().Position().X(), 1e-5)
	assert.InDelta(t, 0.04, f.game.Eye().X(), 1e-5)

	want := mgl32.LookAtV(f.game.Eye(), f.game.Eye().Add(mgl32.Vec3{1, 0, 0}), components.Up)
	assert.True(t, f.ctx.Camera.FPSView().ApproxEqualThreshold(want, 1e-5))
}

func TestStrafeCollidesWithWall(t *testing.T) {
	f := newFixture(t, nil)
	f.ctx.Assets.Wait()
	eye := f.game.Eye()

	// (1, 15.13) lands in the blocked cell (1, 16).
	require.True(t, f.game.HandleKey(f.ctx, core.KEY_D))
	assert.Equal(t, blitzBase, f.game.Blitz().Position())
	assert.Equal(t, eye, f.game.Eye())

	require.True(t, f.game.HandleKey(f.ctx, core.KEY_A))
	assert.InDelta(t, 14.87, f.game.Blitz().Position().Z(), 1e-5)
	assert.InDelta(t, 14.87, f.game.Eye().Z(), 1e-5)
}

func TestFixedCameraKeys(t *testing.T) {
	f := newFixture(t, nil)
	f.ctx.Assets.Wait()

	// Fixed camera keys do nothing in fps mode.
	require.True(t, f.game.HandleKey(f.ctx, core.KEY_I))
	assert.Equal(t, mgl32.Vec2{16, 30}, f.game.FixedEye())

	require.True(t, f.game.HandleKey(f.ctx, core.KEY_UP))
	assert.Equal(t, components.ViewModeFixed, f.ctx.Camera.ViewMode())

	// Movement keys do nothing in fixed mode.
	require.True(t, f.game.HandleKey(f.ctx, core.KEY_W))
	assert.Equal(t, blitzBase, f.game.Blitz().Position())

	f.game.HandleKey(f.ctx, core.KEY_I)
	f.game.HandleKey(f.ctx, core.KEY_J)
	assert.InDelta(t, 15.9, f.game.FixedEye().X(), 1e-5)
	assert.InDelta(t, 29.9, f.game.FixedEye().Y(), 1e-5)
	f.game.HandleKey(f.ctx, core.KEY_K)
	f.game.HandleKey(f.ctx, core.KEY_L)
	assert.InDelta(t, 16, f.ctx.Camera.FixedEye().X(), 1e-5)
	assert.InDelta(t, 30, f.ctx.Camera.FixedEye().Y(), 1e-5)

	f.game.HandleKey(f.ctx, core.KEY_UP)
	assert.Equal(t, components.ViewModeFPS, f.ctx.Camera.ViewMode())
}

func TestRenderToggles(t *testing.T) {
	f := newFixture(t, nil)

	require.True(t, f.game.HandleKey(f.ctx, core.KEY_F))
	assert.False(t, f.ctx.Phong)
	require.True(t, f.game.HandleKey(f.ctx, core.KEY_P))
	assert.Equal(t, components.ProjectionOrthographic, f.ctx.Camera.ProjectionMode())

	f.game.HandleKey(f.ctx, core.KEY_PLUS)
	assert.InDelta(t, 11, f.ctx.FogRange, 1e-6)
	for i := 0; i < 20; i++ {
		f.game.HandleKey(f.ctx, core.KEY_MINUS)
	}
	// Stops one step past fog near, never at or below it.
	assert.InDelta(t, 2, f.ctx.FogRange, 1e-6)
	assert.Greater(t, f.ctx.FogRange, f.ctx.Config.Fog.Near)
	assert.InDelta(t, 2, f.ctx.FrameUniforms().FogFar, 1e-6)

	for i := 0; i < 500; i++ {
		f.game.HandleKey(f.ctx, core.KEY_PLUS)
	}
	_, far := f.ctx.Camera.Planes()
	assert.InDelta(t, far, f.ctx.FogRange, 1e-6)

	assert.False(t, f.game.HandleKey(f.ctx, core.KEY_Q))
}

func TestKeysArriveThroughInput(t *testing.T) {
	f := newFixture(t, nil)
	f.ctx.Input.ProcessKey(core.KEY_UP, true)
	assert.Equal(t, components.ViewModeFixed, f.ctx.Camera.ViewMode())

	f.ctx.Input.ProcessKey(core.KEY_ESCAPE, true)
	assert.False(t, f.engine.IsRunning())
}

func TestClearEmptiesScene(t *testing.T) {
	f := newFixture(t, nil)
	f.ctx.Assets.Wait()
	require.True(t, f.game.HandleKey(f.ctx, core.KEY_C))
	assert.Equal(t, 0, f.game.Scene().Len())

	snapshot := f.ctx.Renderer.Snapshot()
	require.NotNil(t, snapshot)
	assert.Equal(t, color.RGBA{A: 255}, snapshot.RGBAAt(32, 16))
}

func TestPickOnEmptyScreen(t *testing.T) {
	f := newFixture(t, func(cfg *config.Config, _ string) { cfg.Assets.Map = "" })
	picked := 0
	f.ctx.Events.Register(core.EVENT_CODE_OBJECT_PICKED, func(core.EventContext) bool {
		picked++
		return true
	})

	result, err := f.game.PickAt(f.ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, views.PickNone, result)

	result, err = f.game.PickAt(f.ctx, 500, 500)
	require.NoError(t, err)
	assert.Equal(t, views.PickNone, result)
	assert.Zero(t, picked)
}

func TestDroppedFiles(t *testing.T) {
	f := newFixture(t, func(cfg *config.Config, _ string) { cfg.Assets.Map = "" })

	require.NoError(t, f.game.HandleDrop(f.ctx, "white.png", texturePNG(t)))
	require.NotNil(t, f.game.state.texture)
	require.NoError(t, f.game.HandleDrop(f.ctx, "quad.obj", []byte(quadOBJ)))
	f.ctx.Assets.Wait()

	require.Len(t, f.game.Scene().Textured(), 1)
	obj := f.game.state.models["quad.obj"]
	require.NotNil(t, obj)
	assert.True(t, obj.Texture().Ready())

	// Dropping the same mesh again replaces it.
	require.NoError(t, f.game.HandleDrop(f.ctx, "quad.obj", []byte(quadOBJ)))
	f.ctx.Assets.Wait()
	assert.Len(t, f.game.Scene().Textured(), 1)

	assert.ErrorIs(t, f.game.HandleDrop(f.ctx, "notes.txt", []byte("hi")), core.ErrUnsupportedAsset)
}

func TestDroppedImageRetexturesModels(t *testing.T) {
	f := newFixture(t, func(cfg *config.Config, _ string) { cfg.Assets.Map = "" })

	require.NoError(t, f.game.HandleDrop(f.ctx, "quad.obj", []byte(quadOBJ)))
	f.ctx.Assets.Wait()
	obj := f.game.state.models["quad.obj"]
	require.NotNil(t, obj)
	before := obj.Texture()

	require.NoError(t, f.game.HandleDrop(f.ctx, "white.png", texturePNG(t)))
	f.ctx.Assets.Wait()

	assert.NotSame(t, before, obj.Texture())
	assert.Same(t, f.game.state.texture, obj.Texture())
	assert.True(t, obj.Texture().Ready())
}

func TestConfiguredModels(t *testing.T) {
	f := newFixture(t, func(cfg *config.Config, dir string) {
		cfg.Assets.Map = ""
		require.NoError(t, os.WriteFile(filepath.Join(dir, "quad.obj"), []byte(quadOBJ), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "quad.png"), texturePNG(t), 0o644))
		cfg.Models = []config.ModelConfig{{Path: "quad.obj", Texture: "quad.png", ScaleTweak: 0.5}}
	})
	f.ctx.Assets.Wait()

	require.Len(t, f.game.Scene().Textured(), 1)
	for _, obj := range f.game.state.models {
		assert.True(t, obj.Texture().Ready())
	}
}

func TestFramesRender(t *testing.T) {
	f := newFixture(t, nil)
	f.ctx.Assets.Wait()
	for i := 0; i < 3; i++ {
		require.NoError(t, f.engine.Frame(1.0/60))
	}
	assert.Equal(t, uint64(3), f.ctx.Renderer.FrameCount())
	assert.Contains(t, f.game.Status(f.ctx), "view: fps")
}
