package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, mgl32.Vec3{0.04, 2.2, 15}, cfg.Camera.FPSEyeVec())
	assert.Equal(t, mgl32.Vec3{5, 2.2, 15}, cfg.Camera.FPSTargetVec())
	assert.Greater(t, cfg.Fog.Range, cfg.Fog.Near)
	assert.Equal(t, mgl32.Vec4{0, 0, 0, 1}, cfg.Render.ClearColorVec())
	assert.Equal(t, uint8(255), cfg.Render.PlaceholderColor().B)
	assert.True(t, cfg.Lighting.Phong)
	assert.Equal(t, float32(0.13), cfg.Movement.Step)
}

func TestDecodeOverlaysDefaults(t *testing.T) {
	cfg := Default()
	err := Decode([]byte(`
[window]
width = 320

[fog]
range = 20

[render]
unify_textured_view = true

[[models]]
path = "models/cat.obj"
texture = "textures/cat.png"
scale_tweak = 2.5
`), cfg)
	require.NoError(t, err)

	assert.Equal(t, 320, cfg.Window.Width)
	assert.Equal(t, 640, cfg.Window.Height, "untouched keys keep their default")
	assert.Equal(t, float32(20), cfg.Fog.Range)
	assert.True(t, cfg.Render.UnifyTexturedView)
	require.Len(t, cfg.Models, 1)
	assert.Equal(t, float32(2.5), cfg.Models[0].ScaleTweak)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"zero tps", func(c *Config) { c.Window.TPS = 0 }},
		{"near after far", func(c *Config) { c.Camera.Near = 200 }},
		{"zero near", func(c *Config) { c.Camera.Near = 0 }},
		{"fov too wide", func(c *Config) { c.Camera.Fov = 180 }},
		{"no fog range", func(c *Config) { c.Fog.Range = 0 }},
		{"fog range at near", func(c *Config) { c.Fog.Near, c.Fog.Range = 5, 5 }},
		{"fog range before near", func(c *Config) { c.Fog.Near, c.Fog.Range = 5, 3 }},
		{"negative fog near", func(c *Config) { c.Fog.Near = -1 }},
		{"no workers", func(c *Config) { c.Assets.Workers = 0 }},
		{"negative queue", func(c *Config) { c.Assets.QueueSize = -1 }},
		{"no textures", func(c *Config) { c.Assets.MaxTextures = 0 }},
		{"no cube size", func(c *Config) { c.Assets.CubeSize = 0 }},
		{"model without path", func(c *Config) { c.Models = []ModelConfig{{ScaleTweak: 1}} }},
		{"model without scale", func(c *Config) { c.Models = []ModelConfig{{Path: "a.obj"}} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[camera]\nfov = 0\n"), 0o644))
	_, err = Load(bad)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	broken := filepath.Join(dir, "broken.toml")
	require.NoError(t, os.WriteFile(broken, []byte("[window\n"), 0o644))
	_, err = Load(broken)
	assert.Error(t, err)

	good := filepath.Join(dir, "good.toml")
	data, err := Default().Encode()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(good, data, 0o644))
	cfg, err := Load(good)
	require.NoError(t, err)
	assert.Equal(t, Default().Window, cfg.Window)
	assert.Equal(t, Default().Camera, cfg.Camera)
	assert.Equal(t, Default().Assets, cfg.Assets)
}

func TestLoadDefaultPathMayBeMissing(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(wd) })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
