package systems

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/spaghettifunk/blitz/engine/assets/loaders"
	"github.com/spaghettifunk/blitz/engine/core"
	"github.com/spaghettifunk/blitz/engine/renderer/metadata"
)

var ErrTooManyTextures = errors.New("texture limit reached")

type TextureSystemConfig struct {
	/** @brief The maximum number of textures that can be loaded at once. */
	MaxTextureCount uint32
	/** @brief Larger images are scaled down to fit this size. 0 keeps them as they are. */
	MaxTextureSize int
	/** @brief Color of the texture drawn while a texture is not ready. */
	PlaceholderColor color.NRGBA
}

// TextureSystem owns every named texture. Acquire hands out a pending
// texture immediately and fills it once the background decode completes on
// the main loop.
type TextureSystem struct {
	Config         *TextureSystemConfig
	DefaultTexture *metadata.Texture
	// Hashtable for texture lookups.
	RegisteredTextureTable map[string]*metadata.Texture

	jobSystem *JobSystem
	loader    *loaders.TextureLoader
}

func NewTextureSystem(config *TextureSystemConfig, js *JobSystem) (*TextureSystem, error) {
	if config.MaxTextureCount == 0 {
		err := fmt.Errorf("func NewTextureSystem - config.MaxTextureCount must be > 0")
		core.LogError(err.Error())
		return nil, err
	}
	return &TextureSystem{
		Config:                 config,
		DefaultTexture:         metadata.NewPlaceholderTexture(config.PlaceholderColor),
		RegisteredTextureTable: make(map[string]*metadata.Texture),
		jobSystem:              js,
		loader:                 &loaders.TextureLoader{MaxSize: config.MaxTextureSize},
	}, nil
}

func (ts *TextureSystem) Shutdown() error {
	ts.RegisteredTextureTable = make(map[string]*metadata.Texture)
	return nil
}

// Acquire returns the texture registered under path, loading it from disk
// the first time it is asked for.
func (ts *TextureSystem) Acquire(path string) (*metadata.Texture, error) {
	if path == metadata.DEFAULT_TEXTURE_NAME {
		core.LogWarn("texture system Acquire called for default texture. Use GetDefaultTexture for texture 'default'")
		return ts.DefaultTexture, nil
	}
	if t, ok := ts.RegisteredTextureTable[path]; ok {
		return t, nil
	}
	if err := ts.checkLimit(path); err != nil {
		return nil, err
	}

	t := metadata.NewPendingTexture(path)
	ts.RegisteredTextureTable[path] = t
	if err := ts.LoadTexture(t); err != nil {
		delete(ts.RegisteredTextureTable, path)
		return nil, err
	}
	return t, nil
}

// checkLimit fails when registering name would exceed MaxTextureCount.
func (ts *TextureSystem) checkLimit(name string) error {
	if uint32(len(ts.RegisteredTextureTable)) >= ts.Config.MaxTextureCount {
		return fmt.Errorf("%w: cannot register '%s', %d textures already registered", ErrTooManyTextures, name, ts.Config.MaxTextureCount)
	}
	return nil
}

// Get returns a registered texture without loading anything.
func (ts *TextureSystem) Get(path string) (*metadata.Texture, bool) {
	t, ok := ts.RegisteredTextureTable[path]
	return t, ok
}

func (ts *TextureSystem) Release(path string) {
	delete(ts.RegisteredTextureTable, path)
}

func (ts *TextureSystem) GetDefaultTexture() *metadata.Texture {
	return ts.DefaultTexture
}

// Reload decodes the file of a registered texture again. The current
// pixels stay visible until the new ones are ready.
func (ts *TextureSystem) Reload(path string) error {
	t, ok := ts.RegisteredTextureTable[path]
	if !ok {
		return fmt.Errorf("%w: texture '%s' is not registered", core.ErrAssetNotFound, path)
	}
	return ts.LoadTexture(t)
}

// LoadTexture kicks off a job decoding the texture file named by t.Name.
func (ts *TextureSystem) LoadTexture(t *metadata.Texture) error {
	return ts.jobSystem.Submit(metadata.JobTask{
		Name: "texture:" + t.Name,
		EntryPoint: func() (interface{}, error) {
			res, err := ts.loader.Load(t.Name)
			if err != nil {
				return nil, err
			}
			return res.Data, nil
		},
		OnComplete: func(result interface{}) { ts.textureLoadJobSuccess(t, result) },
		OnFailure:  func(err error) { ts.textureLoadJobFail(t, err) },
	})
}

// LoadFromBytes registers a texture decoded from in-memory file contents,
// e.g. a file dropped on the window. An existing texture of the same name
// is refreshed in place.
func (ts *TextureSystem) LoadFromBytes(name string, data []byte) (*metadata.Texture, error) {
	t, ok := ts.RegisteredTextureTable[name]
	if !ok {
		if err := ts.checkLimit(name); err != nil {
			return nil, err
		}
		t = metadata.NewPendingTexture(name)
		ts.RegisteredTextureTable[name] = t
	}
	err := ts.jobSystem.Submit(metadata.JobTask{
		Name: "texture:" + name,
		EntryPoint: func() (interface{}, error) {
			img, _, err := loaders.DecodeImage(bytes.NewReader(data))
			if err != nil {
				return nil, err
			}
			return loaders.ResizeToFit(img, ts.Config.MaxTextureSize), nil
		},
		OnComplete: func(result interface{}) { ts.textureLoadJobSuccess(t, result) },
		OnFailure:  func(err error) { ts.textureLoadJobFail(t, err) },
	})
	if err != nil {
		if !ok {
			delete(ts.RegisteredTextureTable, name)
		}
		return nil, err
	}
	return t, nil
}

func (ts *TextureSystem) textureLoadJobSuccess(t *metadata.Texture, result interface{}) {
	img, ok := result.(*image.NRGBA)
	if !ok {
		ts.textureLoadJobFail(t, fmt.Errorf("unexpected texture data %T", result))
		return
	}
	t.SetReady(img)
	w, h := t.Size()
	core.LogDebug("Successfully loaded texture '%s' (%dx%d, generation %d).", t.Name, w, h, t.Generation)
}

func (ts *TextureSystem) textureLoadJobFail(t *metadata.Texture, err error) {
	core.LogError("Failed to load texture '%s': %s", t.Name, err)
	// a reload failure keeps the previous pixels
	if t.Ready() {
		return
	}
	t.SetFailed(err)
}
