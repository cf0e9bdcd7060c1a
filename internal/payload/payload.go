// Package payload encodes operator input into the bytes written to the
// sensor.
package payload

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Mode selects how input text is encoded.
type Mode int

const (
	// ModeText sends the text followed by a newline.
	ModeText Mode = iota
	// ModeHex sends the bytes spelled by a hex string.
	ModeHex
)

var ErrInvalidHex = errors.New("payload: invalid hex")

func (m Mode) String() string {
	switch m {
	case ModeText:
		return "N"
	case ModeHex:
		return "H"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode accepts "N" (text) and "H" (hex), case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "N", "":
		return ModeText, nil
	case "H":
		return ModeHex, nil
	}
	return ModeText, fmt.Errorf("payload: unknown mode %q (use N or H)", s)
}

// Text returns s with a trailing newline.
func Text(s string) []byte {
	return []byte(s + "\n")
}

// Hex decodes a hex string such as "48 65\n6c6c 6f". Newlines and other
// whitespace between digits are ignored.
func Hex(s string) ([]byte, error) {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	b, err := hex.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidHex, err)
	}
	return b, nil
}

// Encode encodes s according to mode.
func Encode(s string, mode Mode) ([]byte, error) {
	switch mode {
	case ModeText:
		return Text(s), nil
	case ModeHex:
		return Hex(s)
	}
	return nil, fmt.Errorf("payload: unknown mode %v", mode)
}
