package assets

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spaghettifunk/blitz/engine/assets/loaders"
	"github.com/spaghettifunk/blitz/engine/core"
	"github.com/spaghettifunk/blitz/engine/geometry"
	"github.com/spaghettifunk/blitz/engine/renderer/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, c color.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := 0; i < 4; i++ {
		img.SetNRGBA(i%2, i/2, c)
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func newManager(t *testing.T, dir string) *AssetManager {
	t.Helper()
	am, err := NewAssetManager(AssetManagerConfig{
		BaseDir:         dir,
		Workers:         2,
		QueueSize:       8,
		MaxTextureCount: 16,
	})
	require.NoError(t, err)
	t.Cleanup(func() { am.Shutdown() })
	return am
}

func TestDetermineAssetType(t *testing.T) {
	assert.Equal(t, loaders.ResourceTypeImage, determineAssetType("maps/complex1.PNG"))
	assert.Equal(t, loaders.ResourceTypeImage, determineAssetType("a.webp"))
	assert.Equal(t, loaders.ResourceTypeMesh, determineAssetType("models/cat.obj"))
	assert.Equal(t, loaders.ResourceTypeNone, determineAssetType("notes.txt"))
	assert.True(t, IsImage("x.bmp"))
	assert.True(t, IsMesh("x.obj"))
}

func TestNewAssetManagerValidation(t *testing.T) {
	_, err := NewAssetManager(AssetManagerConfig{Workers: 0, MaxTextureCount: 1})
	assert.Error(t, err)
	_, err = NewAssetManager(AssetManagerConfig{Workers: 1, MaxTextureCount: 0})
	assert.Error(t, err)
}

func TestLoadMapAndMesh(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "map.png"), color.NRGBA{R: 2, A: 255})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tri.obj"), []byte("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"), 0o644))

	am := newManager(t, dir)

	var pixels *loaders.PixelData
	require.NoError(t, am.LoadMap("map.png", func(_ string, p *loaders.PixelData) { pixels = p }, nil))
	var mesh *geometry.NormalizedMesh
	require.NoError(t, am.LoadMesh("tri.obj", func(_ string, m *geometry.NormalizedMesh) { mesh = m }, nil))

	am.Wait()
	require.NotNil(t, pixels)
	assert.Equal(t, 2, pixels.Width)
	r, _, _, _ := pixels.At(1, 1)
	assert.Equal(t, uint8(2), r)
	require.NotNil(t, mesh)
	assert.Len(t, mesh.Vertices, 3)
	assert.Len(t, am.Assets(), 2)
	assert.Zero(t, am.Pending())
}

func TestLoadMapFailure(t *testing.T) {
	am := newManager(t, t.TempDir())
	var failed error
	require.NoError(t, am.LoadMap("missing.png", func(string, *loaders.PixelData) {
		t.Fatal("map should not load")
	}, func(_ string, err error) { failed = err }))
	am.Wait()
	assert.ErrorIs(t, failed, core.ErrAssetNotFound)
}

func TestLoadAsset(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), color.NRGBA{A: 255})
	am := newManager(t, dir)

	res, err := am.LoadAsset("a.png")
	require.NoError(t, err)
	assert.Equal(t, loaders.ResourceTypeImage, res.Type)
	require.NoError(t, am.UnloadAsset(res))

	_, err = am.LoadAsset("readme.md")
	assert.ErrorIs(t, err, core.ErrUnsupportedAsset)
}

func TestTextureHotReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "skin.png")
	writePNG(t, path, color.NRGBA{R: 255, A: 255})

	am := newManager(t, dir)
	tex, err := am.LoadTexture("skin.png")
	require.NoError(t, err)
	assert.Equal(t, metadata.TextureStatePending, tex.State)
	am.Wait()
	require.True(t, tex.Ready())
	assert.Equal(t, uint8(255), tex.Image.NRGBAAt(0, 0).R)

	require.NoError(t, am.Watch("."))
	writePNG(t, path, color.NRGBA{G: 255, A: 255})

	require.Eventually(t, func() bool {
		am.Update()
		return tex.Generation >= 2 && tex.Image.NRGBAAt(0, 0).G == 255
	}, 5*time.Second, 20*time.Millisecond)
}
