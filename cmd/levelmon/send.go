package main

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/fluidlevel/serial"
	"github.com/fluidlevel/serial/internal/payload"
	"github.com/spf13/cobra"
)

var sendCmd = &cobra.Command{
	Use:   "send <payload>",
	Short: "Send one payload to the sensor and print the reply",
	Long: `Send a payload to the configured port, wait for the linger time and print
whatever the sensor answered.

Payloads are sent as text with a trailing newline (--mode N, the default) or
decoded from hex (--mode H or --hex), e.g.:
  levelmon send PING
  levelmon send --hex "50 49 4e 47 0a"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		modeName, _ := cmd.Flags().GetString("mode")
		if hexMode, _ := cmd.Flags().GetBool("hex"); hexMode {
			modeName = "H"
		}
		mode, err := payload.ParseMode(modeName)
		if err != nil {
			return err
		}
		data, err := payload.Encode(args[0], mode)
		if err != nil {
			return err
		}
		return runSend(cmd.OutOrStdout(), data, cfg.Serial.Linger)
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)

	sendCmd.Flags().StringP("mode", "m", "N", "Payload mode: N (text + newline) or H (hex)")
	sendCmd.Flags().BoolP("hex", "x", false, "Shorthand for --mode H")
	sendCmd.Flags().Duration("linger", 0, "How long to wait for the write and a reply (default: serial.linger)")
	bindFlag(v, "serial.linger", sendCmd.Flags(), "linger")
}

func runSend(out io.Writer, data []byte, linger time.Duration) error {
	if linger <= 0 {
		// Join would discard the payload before the tx worker wrote it
		return fmt.Errorf("linger must be positive, got %v", linger)
	}

	infoStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("99")).
		Bold(true)

	pc, err := cfg.PortConfig()
	if err != nil {
		return err
	}

	failed := make(chan error, 1)
	session := serial.NewSession(serial.HandlerFuncs{
		Failed: func(err error) {
			select {
			case failed <- err:
			default:
			}
		},
	}, append(cfg.SessionOptions(), serial.WithLogger(logger))...)

	if err := session.Start(pc); err != nil {
		return err
	}
	session.Write(data)
	fmt.Fprintf(out, "%s Queued %d bytes for %s\n", infoStyle.Render(">"), len(data), pc.Path)

	select {
	case err := <-failed:
		session.Join()
		return err
	case <-time.After(linger):
	}
	session.Join()

	if m := session.Metrics(); m.PayloadsWritten == 0 {
		return fmt.Errorf("payload not written within %v", linger)
	}
	fmt.Fprintf(out, "%s Sent %d bytes\n", infoStyle.Render(">"), len(data))

	for {
		text, ok := session.TryRead()
		if !ok {
			break
		}
		fmt.Fprint(out, text)
	}
	return nil
}
