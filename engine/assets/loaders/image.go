package loaders

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/spaghettifunk/blitz/engine/core"
)

// PixelData is a row-major grid of 8-bit non-premultiplied RGBA values,
// row 0 first.
type PixelData struct {
	Width  int
	Height int
	Pix    []uint8
}

// At returns the RGBA values of the pixel at (x, y).
func (p *PixelData) At(x, y int) (r, g, b, a uint8) {
	i := (y*p.Width + x) * 4
	return p.Pix[i], p.Pix[i+1], p.Pix[i+2], p.Pix[i+3]
}

// DecodeImage decodes any registered format (png, jpeg, gif, bmp, webp) into
// a non-premultiplied RGBA image whose bounds start at the origin.
func DecodeImage(r io.Reader) (*image.NRGBA, string, error) {
	src, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %s", core.ErrUnsupportedAsset, err)
	}
	if img, ok := src.(*image.NRGBA); ok && img.Rect.Min == (image.Point{}) {
		return img, format, nil
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst, format, nil
}

// ResizeToFit scales img down so that neither side exceeds maxSize. Images that
// already fit are returned as is.
func ResizeToFit(img *image.NRGBA, maxSize int) *image.NRGBA {
	b := img.Bounds()
	if maxSize <= 0 || (b.Dx() <= maxSize && b.Dy() <= maxSize) {
		return img
	}
	w, h := b.Dx(), b.Dy()
	if w >= h {
		w, h = maxSize, h*maxSize/w
	} else {
		w, h = w*maxSize/h, maxSize
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

func openImage(path string) (*image.NRGBA, os.FileInfo, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", core.ErrAssetNotFound, path)
		}
		return nil, nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, nil, err
	}
	img, _, err := DecodeImage(file)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, info, nil
}

// LoadImage reads an image file into raw pixels.
func LoadImage(path string) (*PixelData, error) {
	img, _, err := openImage(path)
	if err != nil {
		return nil, err
	}
	return &PixelData{
		Width:  img.Rect.Dx(),
		Height: img.Rect.Dy(),
		Pix:    img.Pix,
	}, nil
}

type ImageLoader struct{}

func (il *ImageLoader) Load(path string) (*Resource, error) {
	pixels, err := LoadImage(path)
	if err != nil {
		return nil, err
	}
	return &Resource{
		Name:     filepath.Base(path),
		FullPath: path,
		Type:     ResourceTypeImage,
		DataSize: uint64(len(pixels.Pix)),
		Data:     pixels,
	}, nil
}

func (il *ImageLoader) Unload(*Resource) error {
	return nil
}
