package qrcode

import (
	"rsc.io/qr"
)

var rscLevels = [...]qr.Level{qr.L, qr.M, qr.Q, qr.H}

func init() {
	registerEncoder("rsc", func() Encoder {
		return &bitmapEncoder{name: "rsc", matrix: rscMatrix}
	})
}

func rscMatrix(payload string, level RecoveryLevel) ([][]bool, error) {
	code, err := qr.Encode(payload, rscLevels[level])
	if err != nil {
		return nil, err
	}

	return withQuietZone(code.Size, code.Black), nil
}
