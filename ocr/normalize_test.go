package ocr

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func testImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 7), G: uint8(y * 7), B: 0x40, A: 0xFF})
		}
	}
	return img
}

func decodePNG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, frm, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding Normalize output: %v", err)
	}
	if frm != "png" {
		t.Fatalf("Normalize output format = %q, want png", frm)
	}
	return img
}

func TestNormalize_PNGPassthrough(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage(20, 10)); err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}

	got, err := Normalize(buf.Bytes())
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if !bytes.Equal(got, buf.Bytes()) {
		t.Error("Normalize re-encoded PNG input, want passthrough")
	}
}

func TestNormalize_GIF(t *testing.T) {
	var buf bytes.Buffer
	if err := gif.Encode(&buf, testImage(20, 10), nil); err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}

	got, err := Normalize(buf.Bytes())
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	img := decodePNG(t, got)
	if img.Bounds() != image.Rect(0, 0, 20, 10) {
		t.Errorf("bounds = %v, want %v", img.Bounds(), image.Rect(0, 0, 20, 10))
	}
}

func TestNormalize_BMP(t *testing.T) {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, testImage(16, 16)); err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}

	got, err := Normalize(buf.Bytes())
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	decodePNG(t, got)
}

func TestNormalize_TIFF(t *testing.T) {
	var buf bytes.Buffer
	if err := tiff.Encode(&buf, testImage(16, 16), nil); err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}

	got, err := Normalize(buf.Bytes())
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	decodePNG(t, got)
}

func TestNormalize_InvalidData(t *testing.T) {
	if _, err := Normalize([]byte("not an image at all")); err == nil {
		t.Error("Normalize accepted junk input, want error")
	}
}
