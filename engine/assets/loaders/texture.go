package loaders

import (
	"path/filepath"
)

// TextureLoader decodes an image for sampling, downscaling anything larger
// than MaxSize on either side.
type TextureLoader struct {
	MaxSize int
}

func (tl *TextureLoader) Load(path string) (*Resource, error) {
	img, info, err := openImage(path)
	if err != nil {
		return nil, err
	}
	img = ResizeToFit(img, tl.MaxSize)
	return &Resource{
		Name:     filepath.Base(path),
		FullPath: path,
		Type:     ResourceTypeTexture,
		DataSize: uint64(info.Size()),
		Data:     img, // Return the decoded image object
	}, nil
}

func (tl *TextureLoader) Unload(*Resource) error {
	return nil
}
