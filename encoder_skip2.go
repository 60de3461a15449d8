package qrcode

import (
	skip2 "github.com/skip2/go-qrcode"
)

var skip2Levels = [...]skip2.RecoveryLevel{skip2.Low, skip2.Medium, skip2.High, skip2.Highest}

func init() {
	registerEncoder("skip2", func() Encoder {
		return &bitmapEncoder{name: "skip2", matrix: skip2Matrix}
	})
}

func skip2Matrix(payload string, level RecoveryLevel) ([][]bool, error) {
	q, err := skip2.New(payload, skip2Levels[level])
	if err != nil {
		return nil, err
	}

	// Bitmap already carries the quiet zone.
	return q.Bitmap(), nil
}
