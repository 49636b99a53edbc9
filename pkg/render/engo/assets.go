// pkg/render/engo/assets.go
package engo

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"golang.org/x/image/font/gofont/gomono"
)

// FontURL is the asset name the HUD font is registered under
const FontURL = "gomono.ttf"

// Sprite patterns, one row per string. '#' marks an opaque pixel.
var (
	rocketPattern = []string{
		"...##...",
		"..####..",
		"..####..",
		"..####..",
		"..####..",
		"..####..",
		".######.",
		"##....##",
	}
	flamePattern = []string{
		"##....##",
		".######.",
		"..####..",
		"...##...",
	}
	ifoPattern = []string{
		"..####..",
		".######.",
		"########",
		"########",
		"########",
		"########",
		".######.",
		"..####..",
	}
)

// AssetManager handles loading and managing sprites
type AssetManager struct {
	rocketSprite common.Drawable
	flameSprite  common.Drawable
	ifoSprite    common.Drawable
	loaded       bool
}

// NewAssetManager creates a new asset manager
func NewAssetManager() *AssetManager {
	return &AssetManager{}
}

// LoadAssets builds the vehicle textures. It needs an OpenGL context.
func (am *AssetManager) LoadAssets() error {
	am.rocketSprite = am.createSprite(rocketPattern, color.NRGBA{230, 230, 230, 255})
	am.flameSprite = am.createSprite(flamePattern, color.NRGBA{255, 160, 0, 255})
	am.ifoSprite = am.createSprite(ifoPattern, color.NRGBA{120, 200, 255, 255})
	am.loaded = true
	return nil
}

// PreloadFont registers the embedded HUD font with engo's file loader
func PreloadFont() error {
	if err := engo.Files.LoadReaderData(FontURL, bytes.NewReader(gomono.TTF)); err != nil {
		return fmt.Errorf("failed to load font: %w", err)
	}
	return nil
}

// createSprite creates a sprite from a pattern
func (am *AssetManager) createSprite(pattern []string, fill color.NRGBA) common.Drawable {
	texture := common.NewImageObject(patternImage(pattern, fill))
	return common.NewTextureSingle(texture)
}

// patternImage rasterizes a pattern onto a transparent image
func patternImage(pattern []string, fill color.NRGBA) *image.NRGBA {
	width := 0
	for _, row := range pattern {
		width = max(width, len(row))
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, len(pattern)))
	for y, row := range pattern {
		for x, pixel := range row {
			if pixel == '#' {
				img.SetNRGBA(x, y, fill)
			}
		}
	}
	return img
}

// Loaded reports whether LoadAssets has run
func (am *AssetManager) Loaded() bool {
	return am.loaded
}

// RocketSprite returns the rocket body sprite
func (am *AssetManager) RocketSprite() common.Drawable {
	return am.rocketSprite
}

// FlameSprite returns the exhaust flame sprite
func (am *AssetManager) FlameSprite() common.Drawable {
	return am.flameSprite
}

// IFOSprite returns the IFO sprite
func (am *AssetManager) IFOSprite() common.Drawable {
	return am.ifoSprite
}

// GroundDrawable returns the drawable used for the ground strip
func (am *AssetManager) GroundDrawable() common.Drawable {
	return common.Rectangle{}
}
