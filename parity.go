package serial

import (
	"fmt"
	"strings"

	gobug "go.bug.st/serial"
)

type Parity gobug.Parity

func (pa Parity) Get() gobug.Parity {
	return gobug.Parity(pa)
}

const (
	// ParityNone represents no parity bit
	ParityNone = Parity(gobug.NoParity)
	// ParityOdd represents odd parity bit
	ParityOdd = Parity(gobug.OddParity)
	// ParityEven represents even parity bit
	ParityEven = Parity(gobug.EvenParity)
	// ParityMark represents mark parity bit (always 1)
	ParityMark = Parity(gobug.MarkParity)
	// ParitySpace represents space parity bit (always 0)
	ParitySpace = Parity(gobug.SpaceParity)
)

var parityNames = map[Parity]string{
	ParityNone:  "None",
	ParityOdd:   "Odd",
	ParityEven:  "Even",
	ParityMark:  "Mark",
	ParitySpace: "Space",
}

func (pa Parity) String() string {
	if name, ok := parityNames[pa]; ok {
		return name
	}
	return fmt.Sprintf("Parity(%d)", int(pa))
}

func (pa Parity) Valid() bool {
	_, ok := parityNames[pa]
	return ok
}

// ParseParity maps a parity name to its value. Matching is case-insensitive;
// an empty name means None and "Mask" is accepted as an alias for Mark.
func ParseParity(name string) (Parity, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none", "n":
		return ParityNone, nil
	case "odd", "o":
		return ParityOdd, nil
	case "even", "e":
		return ParityEven, nil
	case "mark", "mask", "m":
		return ParityMark, nil
	case "space", "s":
		return ParitySpace, nil
	}
	return ParityNone, fmt.Errorf("%w: unknown parity %q", ErrInvalidConfig, name)
}
