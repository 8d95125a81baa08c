package engine

import (
	"github.com/spaghettifunk/blitz/engine/renderer/metadata"
)

type Game struct {
	ApplicationConfig *ApplicationConfig
	State             interface{}
	FnInitialize      Initialize
	FnUpdate          Update
	FnRender          Render
	FnOnResize        OnResize
	FnShutdown        Shutdown
}

type Initialize func(ctx *Context) error
type Update func(ctx *Context, deltaTime float64) error
type Render func(ctx *Context, frame *metadata.FrameUniforms, deltaTime float64) error
type OnResize func(ctx *Context, width uint32, height uint32) error
type Shutdown func(ctx *Context) error
