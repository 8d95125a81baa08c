//go:build mage

package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/target"
)

type Assets mg.Namespace

const (
	mapPath   = "assets/maps/complex1.png"
	mapWidth  = 32
	mapHeight = 32
)

// Writes the sample height map used by the default configuration.
func (Assets) Map() error {
	if _, err := os.Stat(mapPath); err == nil {
		if changed, err := target.Path(mapPath, "magefiles/assets.go"); err != nil || !changed {
			return err
		}
	}
	if err := os.MkdirAll(filepath.Dir(mapPath), 0o755); err != nil {
		return err
	}

	img := image.NewNRGBA(image.Rect(0, 0, mapWidth, mapHeight))
	for z := 0; z < mapHeight; z++ {
		for x := 0; x < mapWidth; x++ {
			// The red channel is the column height: a one cube floor,
			// a low wall around the border and a few tall pillars.
			red := uint8(1)
			switch {
			case x == 0 || z == 0 || x == mapWidth-1 || z == mapHeight-1:
				red = 2
			case x%8 == 4 && z%6 == 1:
				red = 3
			}
			img.SetNRGBA(x, z, color.NRGBA{R: red, G: uint8(90 + 4*x), B: uint8(60 + 3*z), A: 255})
		}
	}

	f, err := os.Create(mapPath)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return err
	}
	fmt.Printf("Wrote %s (%dx%d)\n", mapPath, mapWidth, mapHeight)
	return nil
}
