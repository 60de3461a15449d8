package qrcode

import (
	"fmt"
	"image"

	"github.com/makiuchi-d/gozxing"
	zxqrcode "github.com/makiuchi-d/gozxing/qrcode"
)

// Scan decodes the QR code in img. Clean renders are read as pure barcodes
// first; anything else goes through finder pattern detection.
func Scan(img image.Image) (string, error) {
	bitmap, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("prepare image: %w", err)
	}

	attempts := []map[gozxing.DecodeHintType]interface{}{
		{gozxing.DecodeHintType_PURE_BARCODE: true},
		{gozxing.DecodeHintType_TRY_HARDER: true},
	}

	reader := zxqrcode.NewQRCodeReader()

	var lastErr error

	for _, hints := range attempts {
		result, err := reader.Decode(bitmap, hints)
		if err == nil {
			return result.GetText(), nil
		}

		lastErr = err

		reader.Reset()
	}

	return "", fmt.Errorf("decode: %w", lastErr)
}
