package ocr

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

// Normalize converts image data to PNG so Tesseract always receives a
// format its Leptonica build accepts. PNG, JPEG, GIF, BMP, TIFF and WebP
// inputs are recognized; PNG data is returned unchanged.
func Normalize(imageData []byte) ([]byte, error) {
	if bytes.HasPrefix(imageData, pngMagic) {
		return imageData, nil
	}

	img, frm, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("re-encode %s image as png: %w", frm, err)
	}
	return buf.Bytes(), nil
}
