package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is read when no configuration file is given. It may be absent.
const DefaultPath = "config.toml"

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Window   WindowConfig   `toml:"window"`
	Log      LogConfig      `toml:"log"`
	Camera   CameraConfig   `toml:"camera"`
	Fog      FogConfig      `toml:"fog"`
	Lighting LightingConfig `toml:"lighting"`
	Render   RenderConfig   `toml:"render"`
	Movement MovementConfig `toml:"movement"`
	Assets   AssetsConfig   `toml:"assets"`
	Models   []ModelConfig  `toml:"models"`
	Scene    SceneConfig    `toml:"scene"`
}

type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	// Updates per second of the main loop.
	TPS int `toml:"tps"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type CameraConfig struct {
	Fov       float32    `toml:"fov"`
	Near      float32    `toml:"near"`
	Far       float32    `toml:"far"`
	FPSEye    [3]float32 `toml:"fps_eye"`
	FPSTarget [3]float32 `toml:"fps_target"`
	// x and z of the fixed camera eye.
	FixedEye [2]float32 `toml:"fixed_eye"`
}

type FogConfig struct {
	Color [3]float32 `toml:"color"`
	Near  float32    `toml:"near"`
	// Distance at which fog fully covers geometry, beyond Near.
	Range float32 `toml:"range"`
}

type LightingConfig struct {
	Phong      bool       `toml:"phong"`
	LightColor [3]float32 `toml:"light_color"`
	DiffuseY   float32    `toml:"diffuse_y"`
	DiffuseZ   float32    `toml:"diffuse_z"`
}

type RenderConfig struct {
	ClearColor        [4]float32 `toml:"clear_color"`
	UnifyTexturedView bool       `toml:"unify_textured_view"`
	Placeholder       [4]uint8   `toml:"placeholder"`
}

type MovementConfig struct {
	Step            float32 `toml:"step"`
	FixedCameraStep float32 `toml:"fixed_camera_step"`
	FogStep         float32 `toml:"fog_step"`
}

type AssetsConfig struct {
	Dir            string  `toml:"dir"`
	Map            string  `toml:"map"`
	CubeSize       float32 `toml:"cube_size"`
	HotReload      bool    `toml:"hot_reload"`
	Workers        int     `toml:"workers"`
	QueueSize      int     `toml:"queue_size"`
	MaxTextures    uint32  `toml:"max_textures"`
	MaxTextureSize int     `toml:"max_texture_size"`
}

type ModelConfig struct {
	Path       string  `toml:"path"`
	Texture    string  `toml:"texture"`
	ScaleTweak float32 `toml:"scale_tweak"`
}

type SceneConfig struct {
	TiltedCube bool `toml:"tilted_cube"`
}

func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "Blitz",
			Width:  960,
			Height: 640,
			TPS:    60,
		},
		Log: LogConfig{Level: "info"},
		Camera: CameraConfig{
			Fov:       60,
			Near:      0.01,
			Far:       100,
			FPSEye:    [3]float32{0.04, 2.2, 15},
			FPSTarget: [3]float32{5, 2.2, 15},
			FixedEye:  [2]float32{16, 30},
		},
		Fog: FogConfig{
			Color: [3]float32{0.137, 0.231, 0.423},
			Near:  1,
			Range: 10,
		},
		Lighting: LightingConfig{
			Phong:      true,
			LightColor: [3]float32{1, 1, 1},
			DiffuseY:   1,
			DiffuseZ:   0,
		},
		Render: RenderConfig{
			ClearColor:  [4]float32{0, 0, 0, 1},
			Placeholder: [4]uint8{255, 0, 255, 255},
		},
		Movement: MovementConfig{
			Step:            0.13,
			FixedCameraStep: 0.1,
			FogStep:         1,
		},
		Assets: AssetsConfig{
			Dir:            "assets",
			Map:            "maps/complex1.png",
			CubeSize:       1,
			HotReload:      true,
			Workers:        2,
			QueueSize:      32,
			MaxTextures:    64,
			MaxTextureSize: 1024,
		},
		Scene: SceneConfig{TiltedCube: false},
	}
}

// Load overlays the TOML file at path on the defaults. A missing file at
// DefaultPath yields the defaults; any other missing file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && path == DefaultPath {
			return cfg, nil
		}
		return nil, err
	}
	if err := Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode overlays TOML data on cfg and validates the result.
func Decode(data []byte, cfg *Config) error {
	if err := toml.Unmarshal(data, cfg); err != nil {
		return err
	}
	return cfg.Validate()
}

func (c *Config) Validate() error {
	invalid := func(format string, args ...interface{}) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return invalid("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	case c.Window.TPS <= 0:
		return invalid("window.tps must be positive")
	case c.Camera.Near <= 0 || c.Camera.Near >= c.Camera.Far:
		return invalid("camera planes need 0 < near < far, got %g and %g", c.Camera.Near, c.Camera.Far)
	case c.Camera.Fov <= 0 || c.Camera.Fov >= 180:
		return invalid("camera.fov %g out of (0, 180)", c.Camera.Fov)
	case c.Fog.Near < 0:
		return invalid("fog.near must not be negative")
	case c.Fog.Range <= c.Fog.Near:
		return invalid("fog.range %g must be greater than fog.near %g", c.Fog.Range, c.Fog.Near)
	case c.Assets.Workers < 1:
		return invalid("assets.workers must be at least 1")
	case c.Assets.QueueSize < 0:
		return invalid("assets.queue_size must not be negative")
	case c.Assets.MaxTextures == 0:
		return invalid("assets.max_textures must be positive")
	case c.Assets.CubeSize <= 0:
		return invalid("assets.cube_size must be positive")
	}
	for i, m := range c.Models {
		if m.Path == "" {
			return invalid("models[%d].path is empty", i)
		}
		if m.ScaleTweak <= 0 {
			return invalid("models[%d].scale_tweak must be positive", i)
		}
	}
	return nil
}

// Encode writes cfg as TOML.
func (c *Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}

func (c *CameraConfig) FPSEyeVec() mgl32.Vec3 {
	return mgl32.Vec3(c.FPSEye)
}

func (c *CameraConfig) FPSTargetVec() mgl32.Vec3 {
	return mgl32.Vec3(c.FPSTarget)
}

func (r *RenderConfig) ClearColorVec() mgl32.Vec4 {
	return mgl32.Vec4(r.ClearColor)
}

func (r *RenderConfig) PlaceholderColor() color.NRGBA {
	return color.NRGBA{R: r.Placeholder[0], G: r.Placeholder[1], B: r.Placeholder[2], A: r.Placeholder[3]}
}
