package qrcode

import (
	"fmt"
	"strings"
)

// RecoveryLevel is the error correction level requested from the encoder.
type RecoveryLevel int

const (
	// Level L: 7% error recovery.
	Low RecoveryLevel = iota

	// Level M: 15% error recovery.
	Medium

	// Level Q: 25% error recovery.
	High

	// Level H: 30% error recovery.
	Highest
)

var levelLetters = [...]string{"L", "M", "Q", "H"}

func (l RecoveryLevel) String() string {
	if l < Low || l > Highest {
		return fmt.Sprintf("RecoveryLevel(%d)", int(l))
	}

	return levelLetters[l]
}

// ParseLevel accepts the letters L, M, Q and H in any case.
func ParseLevel(s string) (RecoveryLevel, error) {
	for i, letter := range levelLetters {
		if strings.EqualFold(s, letter) {
			return RecoveryLevel(i), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}
