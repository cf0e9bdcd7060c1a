// Package config loads levelmon settings from defaults, an optional config
// file, LEVELMON_* environment variables and bound command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fluidlevel/serial"
	"github.com/fluidlevel/serial/internal/logging"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	EnvPrefix  = "LEVELMON"
	configName = "levelmon"
)

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Serial Serial         `mapstructure:"serial"`
	Sensor Sensor         `mapstructure:"sensor"`
	Log    logging.Config `mapstructure:"log"`
}

type Serial struct {
	Port         string        `mapstructure:"port" validate:"required"`
	BaudRate     int           `mapstructure:"baud_rate" validate:"gt=0"`
	ByteSize     int           `mapstructure:"byte_size" validate:"gte=5,lte=8"`
	StopBits     float64       `mapstructure:"stop_bits"`
	Parity       string        `mapstructure:"parity"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" validate:"gte=0"`
	PollInterval time.Duration `mapstructure:"poll_interval" validate:"gte=0"`
	// Linger is how long `send` waits for a reply before joining.
	Linger time.Duration `mapstructure:"linger" validate:"gte=0"`
}

// Sensor is the distance range of the level sensor, in centimetres.
type Sensor struct {
	MinCM int `mapstructure:"min_cm" validate:"gte=0"`
	MaxCM int `mapstructure:"max_cm" validate:"gtfield=MinCM"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// New returns a viper instance carrying the defaults and env binding.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("serial.port", "/dev/ttyUSB0")
	v.SetDefault("serial.baud_rate", 9600)
	v.SetDefault("serial.byte_size", 8)
	v.SetDefault("serial.stop_bits", 1)
	v.SetDefault("serial.parity", "None")
	v.SetDefault("serial.read_timeout", serial.DefaultPollInterval)
	v.SetDefault("serial.poll_interval", serial.DefaultPollInterval)
	v.SetDefault("serial.linger", 500*time.Millisecond)

	v.SetDefault("sensor.min_cm", 0)
	v.SetDefault("sensor.max_cm", 100)

	logDefaults := logging.DefaultConfig()
	v.SetDefault("log.level", logDefaults.Level)
	v.SetDefault("log.no_color", logDefaults.NoColor)
	v.SetDefault("log.json", logDefaults.JSON)
	v.SetDefault("log.file", logDefaults.File)
	v.SetDefault("log.max_size_mb", logDefaults.MaxSizeMB)
	v.SetDefault("log.max_backups", logDefaults.MaxBackups)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads path, or levelmon.{toml,yaml,json} from the working directory
// and ~/.config/levelmon when path is empty, and returns the validated
// result. A missing default config file is not an error.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/levelmon")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field-level rules and that the serial section converts to
// a valid port configuration.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("%w: %w", ErrInvalid, err)
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
		}
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
	}
	if _, err := c.PortConfig(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// PortConfig converts the serial section into a serial.PortConfig.
func (c *Config) PortConfig() (serial.PortConfig, error) {
	parity, err := serial.ParseParity(c.Serial.Parity)
	if err != nil {
		return serial.PortConfig{}, err
	}
	stopBits, err := serial.ParseStopBits(c.Serial.StopBits)
	if err != nil {
		return serial.PortConfig{}, err
	}

	pc := serial.PortConfig{
		Path:        c.Serial.Port,
		BaudRate:    serial.BaudRate(c.Serial.BaudRate),
		DataBits:    serial.DataBits(c.Serial.ByteSize),
		StopBits:    stopBits,
		Parity:      parity,
		ReadTimeout: c.Serial.ReadTimeout,
	}
	if err := serial.ValidateConfig(pc); err != nil {
		return serial.PortConfig{}, err
	}
	return pc, nil
}

// SessionOptions returns the serial.Session options implied by the config.
func (c *Config) SessionOptions() []serial.Option {
	return []serial.Option{serial.WithPollInterval(c.Serial.PollInterval)}
}
