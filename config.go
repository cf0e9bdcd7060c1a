package serial

import (
	"time"

	gobug "go.bug.st/serial"
)

const (
	// DefaultPollInterval bounds how long an idle worker waits before it
	// re-checks the stop flag. It is also the default port read timeout.
	DefaultPollInterval = 200 * time.Millisecond

	// MaxPollInterval caps the poll interval so Join stays prompt.
	MaxPollInterval = time.Second

	// DefaultChunkSize is the largest single read issued by the rx worker.
	DefaultChunkSize = 1024
)

// PortConfig holds configuration for opening a serial port. It is passed by
// value to Start and is not retained beyond the session it opens.
type PortConfig struct {
	// Path is the serial device, e.g. /dev/ttyUSB0 or COM3.
	Path string

	BaudRate BaudRate
	DataBits DataBits
	StopBits StopBits
	Parity   Parity

	// ReadTimeout is the underlying port read timeout. The rx worker uses it
	// as its poll interval. Start caps it at MaxPollInterval and
	// ValidateConfig rejects larger values.
	ReadTimeout time.Duration
}

// DefaultPortConfig returns a 9600 8N1 configuration for path.
func DefaultPortConfig(path string) PortConfig {
	return PortConfig{
		Path:        path,
		BaudRate:    Baud9600,
		DataBits:    DataBits8,
		StopBits:    StopBits1,
		Parity:      ParityNone,
		ReadTimeout: DefaultPollInterval,
	}
}

// withDefaults fills zero-valued fields that have an obvious default and caps
// ReadTimeout at MaxPollInterval.
// Parity and stop bits already default to None and 1 through their zero values.
func (c PortConfig) withDefaults() PortConfig {
	if c.DataBits == 0 {
		c.DataBits = DataBits8
	}
	switch {
	case c.ReadTimeout == 0:
		c.ReadTimeout = DefaultPollInterval
	case c.ReadTimeout > MaxPollInterval:
		// the rx worker only sees the stop flag between reads
		c.ReadTimeout = MaxPollInterval
	}
	return c
}

func (c PortConfig) mode() *gobug.Mode {
	return &gobug.Mode{
		BaudRate: c.BaudRate.Int(),
		DataBits: c.DataBits.Int(),
		Parity:   c.Parity.Get(),
		StopBits: c.StopBits.Get(),
	}
}
