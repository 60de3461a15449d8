package qrcode

import (
	"github.com/makiuchi-d/gozxing"
	zxqrcode "github.com/makiuchi-d/gozxing/qrcode"
	"github.com/makiuchi-d/gozxing/qrcode/decoder"
)

var zxingLevels = [...]decoder.ErrorCorrectionLevel{
	decoder.ErrorCorrectionLevel_L,
	decoder.ErrorCorrectionLevel_M,
	decoder.ErrorCorrectionLevel_Q,
	decoder.ErrorCorrectionLevel_H,
}

func init() {
	registerEncoder("zxing", func() Encoder {
		return &bitmapEncoder{name: "zxing", matrix: zxingMatrix}
	})
}

func zxingMatrix(payload string, level RecoveryLevel) ([][]bool, error) {
	hints := map[gozxing.EncodeHintType]interface{}{
		gozxing.EncodeHintType_ERROR_CORRECTION: zxingLevels[level],
		gozxing.EncodeHintType_MARGIN:           quietZone,
	}

	// A zero target size renders one pixel per module.
	m, err := zxqrcode.NewQRCodeWriter().Encode(payload, gozxing.BarcodeFormat_QR_CODE, 0, 0, hints)
	if err != nil {
		return nil, err
	}

	side := m.GetWidth()
	bitmap := make([][]bool, side)

	for y := range bitmap {
		bitmap[y] = make([]bool, side)

		for x := range bitmap[y] {
			bitmap[y][x] = m.Get(x, y)
		}
	}

	return bitmap, nil
}
