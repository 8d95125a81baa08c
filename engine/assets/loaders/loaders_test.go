package loaders

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spaghettifunk/blitz/engine/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

const quadOBJ = `# a textured quad
mtllib quad.mtl
o quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
usemtl skin
s off
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func TestParseOBJQuadIsFanned(t *testing.T) {
	mesh, err := ParseOBJ(strings.NewReader(quadOBJ))
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 2, 0, 2, 3}, mesh.Indices)
	assert.Equal(t, 4, mesh.VertexCount())
	assert.Equal(t, []float32{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0}, mesh.Positions)
	assert.Equal(t, []float32{0, 0, 1, 0, 1, 1, 0, 1}, mesh.UVs)
	assert.Len(t, mesh.Normals, 12)
}

func TestParseOBJNegativeIndicesAndDedupe(t *testing.T) {
	src := `
v 0 0 0
v 1 0 0
v 0 1 0
v 1 1 0
f -4 -3 -2
f 2 4 3
`
	mesh, err := ParseOBJ(strings.NewReader(src))
	require.NoError(t, err)

	// vertices 2 and 3 are shared by both triangles
	assert.Equal(t, []int{0, 1, 2, 1, 3, 2}, mesh.Indices)
	assert.Equal(t, 4, mesh.VertexCount())
	assert.Empty(t, mesh.UVs)
	assert.Empty(t, mesh.Normals)
}

func TestParseOBJNormalsWithoutUVs(t *testing.T) {
	src := `
v 0 0 0
v 1 0 0
v 0 1 0
vn 0 0 1
f 1//1 2//1 3//1
`
	mesh, err := ParseOBJ(strings.NewReader(src))
	require.NoError(t, err)
	assert.Empty(t, mesh.UVs)
	assert.Equal(t, []float32{0, 0, 1, 0, 0, 1, 0, 0, 1}, mesh.Normals)
}

func TestParseOBJPartialAttributesAreDropped(t *testing.T) {
	src := `
v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
f 1/1 2 3
`
	mesh, err := ParseOBJ(strings.NewReader(src))
	require.NoError(t, err)
	assert.Empty(t, mesh.UVs)
	assert.Equal(t, 3, mesh.VertexCount())
}

func TestParseOBJErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"short vertex", "v 1 2\n"},
		{"bad float", "v 1 a 2\n"},
		{"two corners", "v 0 0 0\nv 1 0 0\nf 1 2\n"},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n"},
		{"index past end", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 4\n"},
		{"missing uv", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1/1 2/1 3/1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOBJ(strings.NewReader(tt.src))
			assert.ErrorIs(t, err, ErrMalformedOBJ)
		})
	}
}

func checkerboard() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			c := color.NRGBA{R: uint8(x * 60), G: uint8(y * 200), B: 7, A: 255}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestDecodeImageFormats(t *testing.T) {
	var pngBuf, bmpBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, checkerboard()))
	require.NoError(t, bmp.Encode(&bmpBuf, checkerboard()))

	for name, buf := range map[string]*bytes.Buffer{"png": &pngBuf, "bmp": &bmpBuf} {
		t.Run(name, func(t *testing.T) {
			img, format, err := DecodeImage(buf)
			require.NoError(t, err)
			assert.Equal(t, name, format)
			assert.Equal(t, 4, img.Rect.Dx())
			assert.Equal(t, color.NRGBA{R: 180, G: 200, B: 7, A: 255}, img.NRGBAAt(3, 1))
		})
	}

	_, _, err := DecodeImage(strings.NewReader("not an image"))
	assert.ErrorIs(t, err, core.ErrUnsupportedAsset)
}

func TestResizeToFit(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 64, 16))
	assert.Same(t, img, ResizeToFit(img, 64))
	assert.Same(t, img, ResizeToFit(img, 0))

	small := ResizeToFit(img, 32)
	assert.Equal(t, 32, small.Rect.Dx())
	assert.Equal(t, 8, small.Rect.Dy())
}

func TestLoaders(t *testing.T) {
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "map.png")
	f, err := os.Create(imgPath)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, checkerboard()))
	require.NoError(t, f.Close())

	objPath := filepath.Join(dir, "quad.obj")
	require.NoError(t, os.WriteFile(objPath, []byte(quadOBJ), 0o644))

	pixels, err := LoadImage(imgPath)
	require.NoError(t, err)
	assert.Equal(t, 4, pixels.Width)
	assert.Equal(t, 2, pixels.Height)
	r, g, b, a := pixels.At(3, 1)
	assert.Equal(t, []uint8{180, 200, 7, 255}, []uint8{r, g, b, a})

	res, err := (&ImageLoader{}).Load(imgPath)
	require.NoError(t, err)
	assert.Equal(t, ResourceTypeImage, res.Type)
	assert.IsType(t, &PixelData{}, res.Data)

	res, err = (&TextureLoader{MaxSize: 2}).Load(imgPath)
	require.NoError(t, err)
	assert.Equal(t, ResourceTypeTexture, res.Type)
	tex := res.Data.(*image.NRGBA)
	assert.Equal(t, 2, tex.Rect.Dx())
	assert.Equal(t, 1, tex.Rect.Dy())

	res, err = (&OBJLoader{}).Load(objPath)
	require.NoError(t, err)
	assert.Equal(t, "quad", res.Name)
	assert.Equal(t, ResourceTypeMesh, res.Type)

	_, err = LoadImage(filepath.Join(dir, "missing.png"))
	assert.ErrorIs(t, err, core.ErrAssetNotFound)
}
