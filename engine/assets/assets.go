package assets

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/blitz/engine/assets/loaders"
	"github.com/spaghettifunk/blitz/engine/core"
	"github.com/spaghettifunk/blitz/engine/renderer/metadata"
	"github.com/spaghettifunk/blitz/engine/systems"
)

var ErrWatcherClosed = errors.New("asset watcher already closed")

type AssetInfo struct {
	Path       string
	Type       loaders.ResourceType
	LastLoaded time.Time
}

type AssetManagerConfig struct {
	// Relative asset paths are resolved against BaseDir.
	BaseDir         string
	Workers         int
	QueueSize       int
	MaxTextureCount uint32
	MaxTextureSize  int
	Placeholder     color.NRGBA
}

// MapLoaded receives decoded map pixels on the main loop.
type MapLoaded func(path string, pixels *loaders.PixelData)

// AssetManager loads meshes, textures and maps in the background and hands
// them over on the main loop. Files it loaded can be watched for changes, a
// changed file is loaded again and its callbacks run again.
type AssetManager struct {
	config  AssetManagerConfig
	assets  map[string]AssetInfo
	loaders map[loaders.ResourceType]Loader
	// reload actions per tracked path; main loop only
	reloaders map[string]func() error

	mutex sync.RWMutex

	jobs     *systems.JobSystem
	textures *systems.TextureSystem
	meshes   *systems.MeshLoaderSystem

	fsnotify *fsnotify.Watcher
	done     chan struct{}
	changed  chan string
	isClosed bool
}

func NewAssetManager(config AssetManagerConfig) (*AssetManager, error) {
	js, err := systems.NewJobSystem(config.Workers, config.QueueSize)
	if err != nil {
		return nil, err
	}
	ts, err := systems.NewTextureSystem(&systems.TextureSystemConfig{
		MaxTextureCount:  config.MaxTextureCount,
		MaxTextureSize:   config.MaxTextureSize,
		PlaceholderColor: config.Placeholder,
	}, js)
	if err != nil {
		js.Shutdown()
		return nil, err
	}
	mls, err := systems.NewMeshLoaderSystem(js)
	if err != nil {
		js.Shutdown()
		return nil, err
	}

	am := &AssetManager{
		config:    config,
		assets:    make(map[string]AssetInfo),
		loaders:   make(map[loaders.ResourceType]Loader),
		reloaders: make(map[string]func() error),
		jobs:      js,
		textures:  ts,
		meshes:    mls,
		done:      make(chan struct{}),
		changed:   make(chan string, 64),
	}

	// Register loaders
	am.registerLoader(loaders.ResourceTypeMesh, &loaders.OBJLoader{})
	am.registerLoader(loaders.ResourceTypeImage, &loaders.ImageLoader{})
	am.registerLoader(loaders.ResourceTypeTexture, &loaders.TextureLoader{MaxSize: config.MaxTextureSize})

	return am, nil
}

// Register loaders for each asset type
func (am *AssetManager) registerLoader(assetType loaders.ResourceType, loader Loader) {
	am.loaders[assetType] = loader
}

// Resolve joins relative paths to the asset directory.
func (am *AssetManager) Resolve(path string) string {
	if filepath.IsAbs(path) || am.config.BaseDir == "" {
		return filepath.Clean(path)
	}
	return filepath.Join(am.config.BaseDir, path)
}

// LoadAsset synchronously loads a file with the loader registered for its extension.
func (am *AssetManager) LoadAsset(path string) (*loaders.Resource, error) {
	path = am.Resolve(path)
	assetType := determineAssetType(path)
	loader, ok := am.loaders[assetType]
	if !ok {
		return nil, fmt.Errorf("%w: no loader registered for '%s'", core.ErrUnsupportedAsset, path)
	}
	res, err := loader.Load(path)
	if err != nil {
		return nil, err
	}
	am.track(path, assetType)
	return res, nil
}

func (am *AssetManager) UnloadAsset(res *loaders.Resource) error {
	if loader, ok := am.loaders[res.Type]; ok {
		return loader.Unload(res)
	}
	return nil
}

// LoadMesh parses and normalizes an OBJ file in the background. onLoaded
// runs on the main loop, again every time the watched file changes.
func (am *AssetManager) LoadMesh(path string, onLoaded systems.MeshLoaded, onFailed systems.MeshFailed) error {
	path = am.Resolve(path)
	load := func() error { return am.meshes.LoadFromFile(path, onLoaded, onFailed) }
	if err := load(); err != nil {
		return err
	}
	am.track(path, loaders.ResourceTypeMesh)
	am.reloaders[path] = load
	return nil
}

// LoadMeshFromBytes parses OBJ contents that did not come from the asset directory.
func (am *AssetManager) LoadMeshFromBytes(name string, data []byte, onLoaded systems.MeshLoaded, onFailed systems.MeshFailed) error {
	return am.meshes.LoadFromBytes(name, data, onLoaded, onFailed)
}

// LoadTexture returns the texture for path, pending until its pixels are decoded.
func (am *AssetManager) LoadTexture(path string) (*metadata.Texture, error) {
	path = am.Resolve(path)
	t, err := am.textures.Acquire(path)
	if err != nil {
		return nil, err
	}
	am.track(path, loaders.ResourceTypeTexture)
	am.reloaders[path] = func() error { return am.textures.Reload(path) }
	return t, nil
}

// LoadTextureFromBytes decodes an image that did not come from the asset directory.
func (am *AssetManager) LoadTextureFromBytes(name string, data []byte) (*metadata.Texture, error) {
	return am.textures.LoadFromBytes(name, data)
}

// LoadMap decodes a map image in the background.
func (am *AssetManager) LoadMap(path string, onLoaded MapLoaded, onFailed func(path string, err error)) error {
	path = am.Resolve(path)
	load := func() error {
		return am.jobs.Submit(metadata.JobTask{
			Name: "map:" + path,
			EntryPoint: func() (interface{}, error) {
				res, err := am.loaders[loaders.ResourceTypeImage].Load(path)
				if err != nil {
					return nil, err
				}
				return res.Data, nil
			},
			OnComplete: func(result interface{}) {
				pixels := result.(*loaders.PixelData)
				core.LogDebug("Successfully loaded map '%s' (%dx%d).", path, pixels.Width, pixels.Height)
				onLoaded(path, pixels)
			},
			OnFailure: func(err error) {
				core.LogError("Failed to load map '%s': %s", path, err)
				if onFailed != nil {
					onFailed(path, err)
				}
			},
		})
	}
	if err := load(); err != nil {
		return err
	}
	am.track(path, loaders.ResourceTypeImage)
	am.reloaders[path] = load
	return nil
}

func (am *AssetManager) Textures() *systems.TextureSystem {
	return am.textures
}

// Assets lists the tracked files.
func (am *AssetManager) Assets() []AssetInfo {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	out := make([]AssetInfo, 0, len(am.assets))
	for _, a := range am.assets {
		out = append(out, a)
	}
	return out
}

// Update reloads files changed on disk and runs the callbacks of finished
// loads. Must be called from the main loop, once per frame.
func (am *AssetManager) Update() int {
	pending := map[string]struct{}{}
	for drained := false; !drained; {
		select {
		case path := <-am.changed:
			pending[path] = struct{}{}
		default:
			drained = true
		}
	}
	for path := range pending {
		reload, ok := am.reloaders[path]
		if !ok {
			continue
		}
		core.LogInfo("reloading '%s'", path)
		if err := reload(); err != nil {
			core.LogError("failed to reload '%s': %s", path, err)
		}
	}
	return am.jobs.Update()
}

// Wait blocks until every load, including the ones started by callbacks,
// has finished and its callbacks ran.
func (am *AssetManager) Wait() {
	am.jobs.Wait()
}

func (am *AssetManager) Pending() int {
	return am.jobs.Pending()
}

// Watch starts reloading tracked files under dir when they are written.
func (am *AssetManager) Watch(dir string) error {
	if am.isClosed {
		return ErrWatcherClosed
	}
	if am.fsnotify == nil {
		w, err := fsnotify.NewWatcher()
		if err != nil {
			return err
		}
		am.fsnotify = w
		go am.start()
	}
	return am.watchRecursive(am.Resolve(dir))
}

func (am *AssetManager) Shutdown() error {
	if !am.isClosed {
		am.isClosed = true
		close(am.done)
	}
	return am.jobs.Shutdown()
}

func (am *AssetManager) start() {
	for {
		select {

		case e := <-am.fsnotify.Events:
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					am.watchRecursive(e.Name)
				}
				continue
			}
			// Handle create or modify events
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				am.handleFileEvent(e.Name)
			}
			if e.Op&fsnotify.Remove != 0 {
				core.LogWarn("tracked asset '%s' was removed", e.Name)
			}

		case err := <-am.fsnotify.Errors:
			if err != nil {
				core.LogError(err.Error())
			}

		case <-am.done:
			am.fsnotify.Close()
			return
		}
	}
}

// watchRecursive adds all directories under the given one to the watch list.
func (am *AssetManager) watchRecursive(path string) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !fi.IsDir() {
			return nil
		}
		return am.fsnotify.Add(walkPath)
	})
}

// Handle the creation or modification of a file
func (am *AssetManager) handleFileEvent(path string) {
	path = filepath.Clean(path)
	am.mutex.Lock()
	info, ok := am.assets[path]
	if ok {
		info.LastLoaded = time.Now()
		am.assets[path] = info
	}
	am.mutex.Unlock()
	if !ok {
		return
	}

	select {
	case am.changed <- path:
	default:
		core.LogWarn("dropping change notification for '%s'", path)
	}
}

func (am *AssetManager) track(path string, assetType loaders.ResourceType) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.assets[path] = AssetInfo{
		Path:       path,
		Type:       assetType,
		LastLoaded: time.Now(),
	}
}

func determineAssetType(path string) loaders.ResourceType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp":
		return loaders.ResourceTypeImage
	case ".obj":
		return loaders.ResourceTypeMesh
	default:
		return loaders.ResourceTypeNone
	}
}

// IsImage reports whether path has an image extension.
func IsImage(path string) bool {
	return determineAssetType(path) == loaders.ResourceTypeImage
}

// IsMesh reports whether path has a mesh extension.
func IsMesh(path string) bool {
	return determineAssetType(path) == loaders.ResourceTypeMesh
}
