// Package level turns ultrasonic distance readings into fluid level
// percentages.
package level

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrEmptyRange is returned when the sensor range has no extent.
var ErrEmptyRange = errors.New("level: max distance equals min distance")

var digits = regexp.MustCompile(`\d+`)

// ExtractDistance returns the first run of decimal digits in text.
func ExtractDistance(text string) (int, bool) {
	m := digits.FindString(text)
	if m == "" {
		return 0, false
	}
	d, err := strconv.Atoi(m)
	if err != nil {
		// more digits than an int holds
		return 0, false
	}
	return d, true
}

// Percent maps distance from [max, min] onto [0, 100]. A sensor mounted above
// the fluid reads max when the tank is empty and min when it is full. Values
// outside the range are not clamped.
func Percent(distance, min, max int) (float64, error) {
	if max == min {
		return 0, ErrEmptyRange
	}
	return float64(max-distance) * 100 / float64(max-min), nil
}

// Reading is one decoded sensor line.
type Reading struct {
	Raw      string    `json:"raw"`
	Distance int       `json:"distance_cm"`
	Percent  float64   `json:"level_pct"`
	At       time.Time `json:"at"`
}

// Converter holds the sensor range.
type Converter struct {
	Min int
	Max int

	now func() time.Time
}

func NewConverter(min, max int) (*Converter, error) {
	if max == min {
		return nil, fmt.Errorf("sensor range %d..%d: %w", min, max, ErrEmptyRange)
	}
	return &Converter{Min: min, Max: max, now: time.Now}, nil
}

// Convert parses text into a Reading. ok is false when text carries no
// distance.
func (c *Converter) Convert(text string) (Reading, bool) {
	raw := strings.TrimSpace(text)
	d, ok := ExtractDistance(raw)
	if !ok {
		return Reading{}, false
	}
	pct, err := Percent(d, c.Min, c.Max)
	if err != nil {
		return Reading{}, false
	}
	return Reading{Raw: raw, Distance: d, Percent: pct, At: c.now()}, true
}
