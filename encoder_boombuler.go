package qrcode

import (
	"github.com/boombuler/barcode/qr"
)

var boombulerLevels = [...]qr.ErrorCorrectionLevel{qr.L, qr.M, qr.Q, qr.H}

func init() {
	registerEncoder("boombuler", func() Encoder {
		return &bitmapEncoder{name: "boombuler", matrix: boombulerMatrix}
	})
}

func boombulerMatrix(payload string, level RecoveryLevel) ([][]bool, error) {
	code, err := qr.Encode(payload, boombulerLevels[level], qr.Auto)
	if err != nil {
		return nil, err
	}

	b := code.Bounds()

	return withQuietZone(b.Dx(), func(x, y int) bool {
		r, _, _, _ := code.At(b.Min.X+x, b.Min.Y+y).RGBA()

		return r < 0x8000
	}), nil
}
