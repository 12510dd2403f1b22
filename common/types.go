// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Color is a linear RGBA color with channels in [0, 1].
type Color struct {
	R, G, B, A float32
}

// ColorFromRGB8 builds an opaque color from 8-bit channel values. Values above 255 saturate.
//
// Parameters:
//   - r, g, b: channel values in [0, 255]
//
// Returns:
//   - Color: the normalized color
func ColorFromRGB8(r, g, b uint32) Color {
	return Color{
		R: float32(min(r, 255)) / 255.0,
		G: float32(min(g, 255)) / 255.0,
		B: float32(min(b, 255)) / 255.0,
		A: 1,
	}
}

// ColorFromHex builds an opaque color from a 0xRRGGBB value.
//
// Parameters:
//   - hex: packed 24-bit color
//
// Returns:
//   - Color: the normalized color
func ColorFromHex(hex uint32) Color {
	return ColorFromRGB8((hex>>16)&0xFF, (hex>>8)&0xFF, hex&0xFF)
}

// TextureStagingData holds RGBA pixel data for a texture pending GPU upload.
type TextureStagingData struct {
	// Pixels is the byte slice representing the actual pixel data for the texture. It should be in RGBA format, with 4 bytes per pixel.
	Pixels []byte
	// Width is the width of the texture in pixels.
	Width uint32
	// Height is the height of the texture in pixels.
	Height uint32
}

// DecodeTexture decodes an encoded image into RGBA staging data.
// PNG, JPEG, GIF, BMP, TIFF and WebP are supported.
// Reference: https://pkg.go.dev/image
//
// Parameters:
//   - r: reader over the encoded image bytes
//
// Returns:
//   - *TextureStagingData: the decoded RGBA pixels
//   - error: error if decoding fails or the image is empty
func DecodeTexture(r io.Reader) (*TextureStagingData, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, fmt.Errorf("decoded %s image is empty", format)
	}

	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	return &TextureStagingData{
		Pixels: rgba.Pix,
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
	}, nil
}
