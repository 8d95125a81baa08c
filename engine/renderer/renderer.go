package renderer

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/blitz/engine/core"
	"github.com/spaghettifunk/blitz/engine/renderer/metadata"
)

var (
	ErrFrameNotBegun  = errors.New("draw issued outside of a frame")
	ErrFrameInFlight  = errors.New("frame already begun")
	ErrNoVertexBuffer = errors.New("geometry has no vertex buffers")
)

type Options struct {
	// Draw textured geometry with the current view instead of the fps view.
	UnifyTexturedView bool
	// Color of the texture drawn while a texture is pending or failed.
	Placeholder color.NRGBA
}

func DefaultOptions() Options {
	return Options{
		Placeholder: color.NRGBA{R: 255, G: 0, B: 255, A: 255},
	}
}

// Renderer turns per-geometry draw data into resolved draw calls and hands
// them to the backend.
type Renderer struct {
	backend     RendererBackend
	options     Options
	placeholder *metadata.Texture
	inFrame     bool
	shader      metadata.ShaderKind
	frameCount  uint64
}

func New(backend RendererBackend, options Options) *Renderer {
	return &Renderer{
		backend:     backend,
		options:     options,
		placeholder: metadata.NewPlaceholderTexture(options.Placeholder),
	}
}

func (r *Renderer) Initialize(width, height int) error {
	if err := r.backend.Initialize(width, height); err != nil {
		core.LogError("failed to initialize renderer backend: %s", err)
		return err
	}
	core.LogInfo("renderer initialized at %dx%d", width, height)
	return nil
}

func (r *Renderer) Shutdown() error {
	return r.backend.Shutdown()
}

func (r *Renderer) OnResize(width, height int) error {
	return r.backend.Resized(width, height)
}

func (r *Renderer) Size() (int, int) {
	return r.backend.Size()
}

func (r *Renderer) FrameCount() uint64 {
	return r.frameCount
}

func (r *Renderer) Placeholder() *metadata.Texture {
	return r.placeholder
}

func (r *Renderer) SetUnifyTexturedView(unify bool) {
	r.options.UnifyTexturedView = unify
}

func (r *Renderer) BeginFrame(frame *metadata.FrameUniforms) error {
	if r.inFrame {
		return ErrFrameInFlight
	}
	if err := r.backend.BeginFrame(frame.ClearColor); err != nil {
		return err
	}
	r.inFrame = true
	return nil
}

// UseShader selects the pipeline for the following draws.
func (r *Renderer) UseShader(kind metadata.ShaderKind) error {
	if !r.inFrame {
		return ErrFrameNotBegun
	}
	if err := r.backend.UseShader(kind); err != nil {
		return err
	}
	r.shader = kind
	return nil
}

// PrepareDraw resolves the view matrix, texture and lighting of one draw
// without touching the backend.
func (r *Renderer) PrepareDraw(data *metadata.GeometryRenderData, frame *metadata.FrameUniforms) *metadata.DrawCall {
	view := frame.View
	if data.View == metadata.ViewFPS && !(r.options.UnifyTexturedView && data.Shader == metadata.ShaderTextured) {
		view = frame.FPSView
	}

	call := &metadata.DrawCall{
		Shader:     data.Shader,
		Model:      data.Model,
		View:       view,
		Projection: frame.Projection,
		Eye:        frame.Eye,
		Buffers:    data.Buffers,
		Ambient:    data.Light.Ambient,
		DiffuseDirection: mgl32.Vec3{
			frame.DiffuseZ + data.Light.DirectionOffset.X(),
			frame.DiffuseY + data.Light.DirectionOffset.Y(),
			data.Light.DirectionOffset.Z(),
		},
		LightColor: frame.LightColor,
		FogColor:   frame.FogColor,
		FogNear:    frame.FogNear,
		FogFar:     frame.FogFar,
		Phong:      frame.Phong,
	}

	if data.Shader == metadata.ShaderTextured {
		call.Texture = data.Texture
		if !call.Texture.Ready() {
			call.Texture = r.placeholder
		}
	}
	return call
}

// DrawGeometry draws one geometry. Textured draws switch the pipeline themselves.
func (r *Renderer) DrawGeometry(data *metadata.GeometryRenderData, frame *metadata.FrameUniforms) error {
	if !r.inFrame {
		return ErrFrameNotBegun
	}
	if data.Buffers == nil {
		return fmt.Errorf("%w: %s", ErrNoVertexBuffer, core.ShortIdentifier(data.ID))
	}
	if data.Shader != r.shader {
		if err := r.UseShader(data.Shader); err != nil {
			return err
		}
	}
	return r.backend.DrawGeometry(r.PrepareDraw(data, frame))
}

func (r *Renderer) EndFrame() error {
	if !r.inFrame {
		return ErrFrameNotBegun
	}
	r.inFrame = false
	r.frameCount++
	return r.backend.EndFrame()
}

// DrawFrame clears, draws the lit geometries then the textured ones.
func (r *Renderer) DrawFrame(packet *metadata.RenderPacket, frame *metadata.FrameUniforms) error {
	if err := r.BeginFrame(frame); err != nil {
		core.LogError(err.Error())
		return err
	}
	if err := r.UseShader(metadata.ShaderLit); err != nil {
		r.inFrame = false
		return err
	}
	for _, list := range [][]*metadata.GeometryRenderData{packet.Lit, packet.Textured} {
		for _, data := range list {
			if err := r.DrawGeometry(data, frame); err != nil {
				core.LogError("failed to draw geometry: %s", err)
				r.inFrame = false
				return err
			}
		}
	}
	if err := r.EndFrame(); err != nil {
		core.LogError("RendererEndFrame failed: %s", err)
		return err
	}
	return nil
}

// ReadPixel reads the last frame at canvas coordinates (origin bottom-left).
func (r *Renderer) ReadPixel(x, y int) (color.RGBA, error) {
	return r.backend.ReadPixel(x, y)
}

func (r *Renderer) Snapshot() *image.RGBA {
	return r.backend.Snapshot()
}
