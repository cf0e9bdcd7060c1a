package serial

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// decodeChunk decodes b as UTF-8, substituting U+FFFD for invalid sequences.
// It never fails; replaced reports whether any substitution happened.
func decodeChunk(b []byte) (text string, replaced bool) {
	if utf8.Valid(b) {
		return string(b), false
	}
	out, _, err := transform.Bytes(unicode.UTF8.NewDecoder(), b)
	if err != nil {
		return strings.ToValidUTF8(string(b), string(utf8.RuneError)), true
	}
	return string(out), true
}
