package level

import "strings"

// DefaultMaxLine bounds a buffered line when NewLineBuffer gets no limit.
const DefaultMaxLine = 256

// LineBuffer reassembles newline-terminated lines from arbitrarily split
// chunks. A trailing "\r" is stripped. It is not safe for concurrent use.
type LineBuffer struct {
	max     int
	pending strings.Builder
	// overflow is set while discarding the rest of an oversized line.
	overflow bool
}

func NewLineBuffer(max int) *LineBuffer {
	if max <= 0 {
		max = DefaultMaxLine
	}
	return &LineBuffer{max: max}
}

// Feed appends chunk and returns every line it completed.
func (b *LineBuffer) Feed(chunk string) []string {
	var lines []string
	for chunk != "" {
		i := strings.IndexByte(chunk, '\n')
		if i < 0 {
			b.append(chunk)
			break
		}
		b.append(chunk[:i])
		if !b.overflow {
			lines = append(lines, strings.TrimSuffix(b.pending.String(), "\r"))
		}
		b.pending.Reset()
		b.overflow = false
		chunk = chunk[i+1:]
	}
	return lines
}

// Pending returns the unterminated tail.
func (b *LineBuffer) Pending() string {
	return b.pending.String()
}

func (b *LineBuffer) append(s string) {
	if b.overflow {
		return
	}
	if b.pending.Len()+len(s) > b.max {
		b.pending.Reset()
		b.overflow = true
		return
	}
	b.pending.WriteString(s)
}
