package serial

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestValidateConfig_ValidConfig(t *testing.T) {
	cfg := PortConfig{
		Path:        "/dev/ttyUSB0",
		BaudRate:    9600,
		DataBits:    8,
		Parity:      ParityNone,
		StopBits:    StopBits1,
		ReadTimeout: 200 * time.Millisecond,
	}

	if err := ValidateConfig(cfg); err != nil {
		t.Fatalf("expected valid config, got error: %v", err)
	}
}

func TestValidateConfig_EmptyPath(t *testing.T) {
	cfg := DefaultPortConfig("")

	err := ValidateConfig(cfg)
	if err == nil {
		t.Fatal("expected error for empty port path")
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got: %v", err)
	}
	if !strings.Contains(err.Error(), "port path cannot be empty") {
		t.Fatalf("expected 'port path cannot be empty' error, got: %v", err)
	}
}

func TestValidateConfig_PathTraversal(t *testing.T) {
	err := ValidateConfig(DefaultPortConfig("/dev/../etc/passwd"))
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got: %v", err)
	}
}

func TestValidateConfig_InvalidBaudRate(t *testing.T) {
	tests := []struct {
		baudRate BaudRate
		wantErr  bool
	}{
		{1200, false},   // Valid
		{9600, false},   // Valid
		{115200, false}, // Valid
		{74880, false},  // Non-standard, left to the driver
		{250000, false}, // Non-standard, left to the driver
		{0, true},       // Invalid
		{-9600, true},   // Invalid
	}

	for _, tt := range tests {
		cfg := DefaultPortConfig("/dev/ttyUSB0")
		cfg.BaudRate = tt.baudRate

		err := ValidateConfig(cfg)
		if (err != nil) != tt.wantErr {
			t.Fatalf("baudRate=%d: wantErr=%v, got=%v", tt.baudRate, tt.wantErr, err)
		}
		if tt.wantErr && !strings.Contains(err.Error(), "invalid baud rate") {
			t.Fatalf("baudRate=%d: expected 'invalid baud rate' error, got: %v", tt.baudRate, err)
		}
	}
}

func TestValidateConfig_InvalidDataBits(t *testing.T) {
	tests := []struct {
		dataBits DataBits
		wantErr  bool
	}{
		{4, true},
		{5, false},
		{6, false},
		{7, false},
		{8, false},
		{9, true},
	}

	for _, tt := range tests {
		cfg := DefaultPortConfig("/dev/ttyUSB0")
		cfg.DataBits = tt.dataBits

		err := ValidateConfig(cfg)
		if (err != nil) != tt.wantErr {
			t.Fatalf("dataBits=%d: wantErr=%v, got=%v", tt.dataBits, tt.wantErr, err)
		}
	}
}

func TestValidateConfig_InvalidParityAndStopBits(t *testing.T) {
	cfg := DefaultPortConfig("/dev/ttyUSB0")
	cfg.Parity = Parity(42)
	if err := ValidateConfig(cfg); err == nil || !strings.Contains(err.Error(), "invalid parity") {
		t.Fatalf("expected parity error, got: %v", err)
	}

	cfg = DefaultPortConfig("/dev/ttyUSB0")
	cfg.StopBits = StopBits(7)
	if err := ValidateConfig(cfg); err == nil || !strings.Contains(err.Error(), "invalid stop bits") {
		t.Fatalf("expected stop bits error, got: %v", err)
	}
}

func TestValidateConfig_NegativeTimeout(t *testing.T) {
	cfg := DefaultPortConfig("/dev/ttyUSB0")
	cfg.ReadTimeout = -time.Second

	if err := ValidateConfig(cfg); err == nil {
		t.Fatal("expected error for negative read timeout")
	}
}

func TestValidateConfig_TimeoutAboveMaxPollInterval(t *testing.T) {
	cfg := DefaultPortConfig("/dev/ttyUSB0")
	cfg.ReadTimeout = MaxPollInterval

	if err := ValidateConfig(cfg); err != nil {
		t.Fatalf("expected %v to be accepted, got: %v", MaxPollInterval, err)
	}

	cfg.ReadTimeout = 30 * time.Second
	err := ValidateConfig(cfg)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got: %v", err)
	}

	if got := cfg.withDefaults().ReadTimeout; got != MaxPollInterval {
		t.Fatalf("expected withDefaults to cap read timeout at %v, got %v", MaxPollInterval, got)
	}
}

func TestPortConfigDefaults(t *testing.T) {
	cfg := PortConfig{Path: "/dev/ttyUSB0", BaudRate: Baud9600}.withDefaults()

	if cfg.DataBits != DataBits8 {
		t.Fatalf("expected 8 data bits, got %d", cfg.DataBits)
	}
	if cfg.ReadTimeout != DefaultPollInterval {
		t.Fatalf("expected read timeout %v, got %v", DefaultPollInterval, cfg.ReadTimeout)
	}
	if cfg.Parity != ParityNone || cfg.StopBits != StopBits1 {
		t.Fatalf("expected 8N1 defaults, got parity=%v stop=%v", cfg.Parity, cfg.StopBits)
	}
	if err := ValidateConfig(cfg); err != nil {
		t.Fatalf("defaulted config should be valid: %v", err)
	}

	mode := cfg.mode()
	if mode.BaudRate != 9600 || mode.DataBits != 8 {
		t.Fatalf("unexpected mode %+v", mode)
	}
}

func TestParseParity(t *testing.T) {
	tests := []struct {
		name    string
		want    Parity
		wantErr bool
	}{
		{"None", ParityNone, false},
		{"", ParityNone, false},
		{"even", ParityEven, false},
		{"ODD", ParityOdd, false},
		{"Mark", ParityMark, false},
		{"Mask", ParityMark, false},
		{"Space", ParitySpace, false},
		{"parity", ParityNone, true},
	}

	for _, tt := range tests {
		got, err := ParseParity(tt.name)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseParity(%q): wantErr=%v, got=%v", tt.name, tt.wantErr, err)
		}
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("ParseParity(%q): expected ErrInvalidConfig, got %v", tt.name, err)
			}
			continue
		}
		if got != tt.want {
			t.Fatalf("ParseParity(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}

	if ParityEven.String() != "Even" {
		t.Fatalf("unexpected String(): %s", ParityEven)
	}
}

func TestParseStopBits(t *testing.T) {
	tests := []struct {
		in      float64
		want    StopBits
		wantErr bool
	}{
		{0, StopBits1, false},
		{1, StopBits1, false},
		{1.5, StopBits1Half, false},
		{2, StopBits2, false},
		{3, StopBits1, true},
	}

	for _, tt := range tests {
		got, err := ParseStopBits(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseStopBits(%v): wantErr=%v, got=%v", tt.in, tt.wantErr, err)
		}
		if !tt.wantErr && got != tt.want {
			t.Fatalf("ParseStopBits(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if StopBits1Half.String() != "1.5" {
		t.Fatalf("unexpected String(): %s", StopBits1Half)
	}
}
