package common

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestDecodeImageFilePNG(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.Set(x, y, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "flat.png")
	writePNG(t, path, img)

	decoded, err := DecodeImageFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Width != 2 || decoded.Height != 2 {
		t.Errorf("dimensions %dx%d, want 2x2", decoded.Width, decoded.Height)
	}
	if decoded.Channels != 4 {
		t.Errorf("channels = %d, want 4", decoded.Channels)
	}
	if len(decoded.Pixels) != 16 {
		t.Errorf("pixel bytes = %d, want 16", len(decoded.Pixels))
	}
}

func TestDecodeImageFileJPEG(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "flat.jpg")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := jpeg.Encode(f, img, nil); err != nil {
		f.Close()
		t.Fatal(err)
	}
	f.Close()

	decoded, err := DecodeImageFile(path)
	if err != nil {
		t.Fatal(err)
	}
	// JPEG decodes as YCbCr, a 3-channel source format.
	if decoded.Channels != 3 {
		t.Errorf("channels = %d, want 3", decoded.Channels)
	}
	if decoded.Width != 4 || decoded.Height != 4 {
		t.Errorf("dimensions %dx%d, want 4x4", decoded.Width, decoded.Height)
	}
}

// Row 0 of the decoded pixels must be the bottom row of the source image.
func TestDecodeImageFileFlipsRows(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255}) // top: red
	img.Set(0, 1, color.NRGBA{B: 255, A: 255}) // bottom: blue
	path := filepath.Join(t.TempDir(), "flip.png")
	writePNG(t, path, img)

	decoded, err := DecodeImageFile(path)
	if err != nil {
		t.Fatal(err)
	}
	bottom := decoded.Pixels[0:4]
	top := decoded.Pixels[4:8]
	if bottom[2] != 255 || bottom[0] != 0 {
		t.Errorf("first row = %v, want the blue bottom row", bottom)
	}
	if top[0] != 255 || top[2] != 0 {
		t.Errorf("second row = %v, want the red top row", top)
	}
}

// Single-channel sources are rejected rather than silently expanded.
func TestDecodeImageFileRejectsGrayscale(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 2))
	path := filepath.Join(t.TempDir(), "gray.png")
	writePNG(t, path, img)

	if _, err := DecodeImageFile(path); err == nil {
		t.Fatal("expected error for 1-channel image")
	}
}

func TestDecodeImageFileMissing(t *testing.T) {
	if _, err := DecodeImageFile(filepath.Join(t.TempDir(), "absent.png")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDecodedImageStaging(t *testing.T) {
	d := &DecodedImage{
		Pixels:   []byte{1, 2, 3, 4},
		Width:    1,
		Height:   1,
		Channels: 4,
	}
	s := d.Staging()
	if s.Width != 1 || s.Height != 1 || len(s.Pixels) != 4 {
		t.Errorf("staging = %+v", s)
	}
}

func TestCoalesce(t *testing.T) {
	if got := Coalesce(0, 0, 7, 3); got != 7 {
		t.Errorf("Coalesce = %d, want 7", got)
	}
	if got := Coalesce("", "a"); got != "a" {
		t.Errorf("Coalesce = %q, want \"a\"", got)
	}
	if got := Coalesce(0, 0); got != 0 {
		t.Errorf("Coalesce = %d, want 0", got)
	}
}
