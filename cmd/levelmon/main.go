// Command levelmon reads a serial ultrasonic level sensor and reports the
// fluid level.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fluidlevel/serial/internal/config"
	"github.com/fluidlevel/serial/internal/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	v         = config.New()
	cfg       *config.Config
	logger    = zerolog.Nop()
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "levelmon",
	Short: "Monitor a serial fluid level sensor",
	Long: `levelmon talks to an ultrasonic distance sensor on a serial port and
converts each distance reading into a fluid level percentage.

Settings come from, in increasing priority: built-in defaults, a config file
(levelmon.toml/yaml/json in the working directory or ~/.config/levelmon),
LEVELMON_* environment variables (e.g. LEVELMON_SERIAL_PORT) and flags.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(v, cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded
		logger, logCloser = logging.New(cfg.Log, os.Stderr)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logCloser != nil {
			return logCloser.Close()
		}
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "Config file (default: ./levelmon.toml)")
	flags.StringP("port", "p", "", "Serial device, e.g. /dev/ttyUSB0 or COM3")
	flags.IntP("baud", "b", 0, "Baud rate (default: 9600)")
	flags.String("parity", "", "Parity: None, Even, Odd, Mark, Space")
	flags.String("log-level", "", "Log level: trace, debug, info, warn, error, off")

	bindFlag(v, "serial.port", flags, "port")
	bindFlag(v, "serial.baud_rate", flags, "baud")
	bindFlag(v, "serial.parity", flags, "parity")
	bindFlag(v, "log.level", flags, "log-level")
}

func bindFlag(v *viper.Viper, key string, flags *pflag.FlagSet, name string) {
	if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
		panic(fmt.Sprintf("binding flag %s: %v", name, err))
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
