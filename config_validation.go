package serial

import (
	"fmt"
	"strings"
)

// ValidateConfig validates serial port configuration parameters. Every
// returned error wraps ErrInvalidConfig.
func ValidateConfig(cfg PortConfig) error {
	// Validate port path
	if strings.TrimSpace(cfg.Path) == "" {
		return fmt.Errorf("%w: port path cannot be empty", ErrInvalidConfig)
	}
	if strings.Contains(cfg.Path, "..") {
		return fmt.Errorf("%w: port path contains path traversal: %s", ErrInvalidConfig, cfg.Path)
	}

	// Validate baud rate
	if !cfg.BaudRate.Valid() {
		return fmt.Errorf("%w: invalid baud rate %d, must be positive", ErrInvalidConfig, cfg.BaudRate)
	}

	// Validate data bits
	if !cfg.DataBits.Valid() {
		return fmt.Errorf("%w: data bits must be 5-8, got: %d", ErrInvalidConfig, cfg.DataBits)
	}

	if !cfg.Parity.Valid() {
		return fmt.Errorf("%w: invalid parity value: %d", ErrInvalidConfig, int(cfg.Parity))
	}

	if !cfg.StopBits.Valid() {
		return fmt.Errorf("%w: invalid stop bits value: %d", ErrInvalidConfig, int(cfg.StopBits))
	}

	if cfg.ReadTimeout < 0 {
		return fmt.Errorf("%w: read timeout cannot be negative: %v", ErrInvalidConfig, cfg.ReadTimeout)
	}
	if cfg.ReadTimeout > MaxPollInterval {
		return fmt.Errorf("%w: read timeout %v exceeds %v", ErrInvalidConfig, cfg.ReadTimeout, MaxPollInterval)
	}

	return nil
}
