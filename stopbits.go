package serial

import (
	"fmt"

	gobug "go.bug.st/serial"
)

type StopBits gobug.StopBits

func (sb StopBits) Get() gobug.StopBits {
	return gobug.StopBits(sb)
}

const (
	// StopBits1 represents 1 stop bit
	StopBits1 = StopBits(gobug.OneStopBit)
	// StopBits1Half represents 1.5 stop bits
	StopBits1Half = StopBits(gobug.OnePointFiveStopBits)
	// StopBits2 represents 2 stop bits
	StopBits2 = StopBits(gobug.TwoStopBits)
)

func (sb StopBits) String() string {
	switch sb {
	case StopBits1:
		return "1"
	case StopBits1Half:
		return "1.5"
	case StopBits2:
		return "2"
	}
	return fmt.Sprintf("StopBits(%d)", int(sb))
}

func (sb StopBits) Valid() bool {
	return sb == StopBits1 || sb == StopBits1Half || sb == StopBits2
}

// ParseStopBits converts the numeric stop bit count (1, 1.5 or 2) used in
// configuration files. Zero is treated as 1.
func ParseStopBits(n float64) (StopBits, error) {
	switch n {
	case 0, 1:
		return StopBits1, nil
	case 1.5:
		return StopBits1Half, nil
	case 2:
		return StopBits2, nil
	}
	return StopBits1, fmt.Errorf("%w: stop bits must be 1, 1.5 or 2, got: %v", ErrInvalidConfig, n)
}
