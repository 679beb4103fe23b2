// package common contains common types that are used throughout this renderer. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/cogentcore/webgpu/wgpu"
)

// TextureStagingData holds RGBA pixel data for a texture binding pending GPU upload.
// This is the hand-off format between the image decoding layer and the renderer's
// texture creation path.
type TextureStagingData struct {
	// Pixels is the byte slice representing the actual pixel data for the texture. It is in RGBA format, with 4 bytes per pixel.
	Pixels []byte
	// Width is the width of the texture in pixels. This is required to correctly create the GPU texture and interpret the pixel data.
	Width uint32
	// Height is the height of the texture in pixels. This is required to correctly create the GPU texture and interpret the pixel data.
	Height uint32
}

// SamplerStagingData holds the configuration for a sampler binding pending GPU creation.
// Zero-value fields fall back to the renderer's defaults (repeat addressing, linear filtering).
type SamplerStagingData struct {
	// AddressModeU, AddressModeV, AddressModeW specify the addressing mode for texture coordinates outside the [0, 1] range in each dimension (U, V, W).
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	// MagFilter and MinFilter specify the filtering mode for magnification and minification.
	MagFilter, MinFilter wgpu.FilterMode
	// MipmapFilter specifies the filtering mode for mipmap level selection.
	MipmapFilter wgpu.MipmapFilterMode
	// LodMinClamp and LodMaxClamp specify the minimum and maximum level of detail (LOD) for mipmapping.
	LodMinClamp, LodMaxClamp float32
	// Compare specifies the comparison function for comparison samplers.
	Compare wgpu.CompareFunction
	// MaxAnisotropy specifies the maximum anisotropy level for anisotropic filtering.
	MaxAnisotropy uint16
}

// DecodedImage is a CPU-side image decoded to RGBA, ready to stage for GPU upload.
// Channels records the channel count of the *source* image (before the RGBA
// conversion) so callers can reject formats the scene does not support.
type DecodedImage struct {
	// Pixels is the RGBA pixel data, 4 bytes per pixel, row-major, bottom row first.
	Pixels []byte

	// Width is the image width in pixels.
	Width uint32

	// Height is the image height in pixels.
	Height uint32

	// Channels is the channel count of the source image (1, 3 or 4).
	Channels int
}

// Staging converts the decoded image to texture staging data for GPU upload.
//
// Returns:
//   - TextureStagingData: the pixel data and dimensions ready for texture creation
func (d *DecodedImage) Staging() TextureStagingData {
	return TextureStagingData{
		Pixels: d.Pixels,
		Width:  d.Width,
		Height: d.Height,
	}
}

// DecodeImageFile opens and decodes an image file (PNG or JPEG) into RGBA pixel
// data. Rows are flipped vertically during conversion so the first row of Pixels
// is the bottom of the image, matching the texture coordinate origin the scene
// meshes are built with. Source images with a channel count other than 3 or 4
// are rejected.
// Reference: https://pkg.go.dev/image
//
// Parameters:
//   - path: the image file path on disk
//
// Returns:
//   - *DecodedImage: the decoded RGBA image, or nil on error
//   - error: error if the file cannot be opened, decoded, or has an unsupported channel count
func DecodeImageFile(path string) (*DecodedImage, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image file %s: %w", path, err)
	}

	channels := sourceChannels(img)
	if channels != 3 && channels != 4 {
		return nil, fmt.Errorf("image %s has %d channels, only 3 or 4 are supported", path, channels)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	// Flip rows so row 0 of the output is the bottom of the image.
	flipped := make([]byte, len(rgba.Pix))
	rowBytes := rgba.Stride
	for y := 0; y < height; y++ {
		src := rgba.Pix[y*rowBytes : y*rowBytes+width*4]
		dst := flipped[(height-1-y)*rowBytes:]
		copy(dst, src)
	}

	return &DecodedImage{
		Pixels:   flipped,
		Width:    uint32(width),
		Height:   uint32(height),
		Channels: channels,
	}, nil
}

// sourceChannels reports the channel count of the decoded image's native
// representation, before any RGBA conversion.
//
// Parameters:
//   - img: the decoded image
//
// Returns:
//   - int: the source channel count
func sourceChannels(img image.Image) int {
	switch m := img.(type) {
	case *image.Gray, *image.Gray16:
		return 1
	case *image.Alpha, *image.Alpha16:
		return 1
	case *image.YCbCr:
		return 3
	case *image.CMYK:
		return 4
	case *image.RGBA, *image.RGBA64, *image.NRGBA, *image.NRGBA64:
		return 4
	case *image.Paletted:
		if m.Opaque() {
			return 3
		}
		return 4
	default:
		return 4
	}
}
