package engine

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/blitz/engine/assets"
	"github.com/spaghettifunk/blitz/engine/config"
	"github.com/spaghettifunk/blitz/engine/core"
	"github.com/spaghettifunk/blitz/engine/renderer"
	"github.com/spaghettifunk/blitz/engine/renderer/components"
	"github.com/spaghettifunk/blitz/engine/renderer/metadata"
)

type ApplicationConfig struct {
	// Window starting width, if applicable.
	StartWidth uint32
	// Window starting height, if applicable.
	StartHeight uint32
	// The application name used in windowing, if applicable.
	Name     string
	LogLevel core.LogLevel
	Config   *config.Config
}

// NewApplicationConfig derives the window settings from cfg.
func NewApplicationConfig(cfg *config.Config) (*ApplicationConfig, error) {
	level, err := core.ParseLogLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	return &ApplicationConfig{
		StartWidth:  uint32(cfg.Window.Width),
		StartHeight: uint32(cfg.Window.Height),
		Name:        cfg.Window.Title,
		LogLevel:    level,
		Config:      cfg,
	}, nil
}

/**
 * @brief Everything a game reaches during its callbacks. One Context exists
 * per Engine and is handed to the game explicitly.
 */
type Context struct {
	Config   *config.Config
	Renderer *renderer.Renderer
	Camera   *components.Camera
	Assets   *assets.AssetManager
	Events   *core.EventBus
	Input    *core.Input
	Metrics  *core.Metrics

	// Position the lit pipeline measures fog distance from.
	Eye      mgl32.Vec3
	Phong    bool
	// Distance at which fog fully covers geometry.
	FogRange float32
}

// FrameUniforms collects the per-frame values shared by every draw.
func (c *Context) FrameUniforms() *metadata.FrameUniforms {
	cfg := c.Config
	return &metadata.FrameUniforms{
		View:       c.Camera.CurrentView(),
		FPSView:    c.Camera.FPSView(),
		Projection: c.Camera.Projection(),
		Eye:        c.Eye,
		ClearColor: cfg.Render.ClearColorVec(),
		FogColor:   mgl32.Vec3(cfg.Fog.Color),
		FogNear:    cfg.Fog.Near,
		FogFar:     c.FogRange,
		LightColor: mgl32.Vec3(cfg.Lighting.LightColor),
		DiffuseY:   cfg.Lighting.DiffuseY,
		DiffuseZ:   cfg.Lighting.DiffuseZ,
		Phong:      c.Phong,
	}
}
