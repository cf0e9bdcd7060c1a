package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/fluidlevel/serial"
	"github.com/fluidlevel/serial/internal/level"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Print level readings as they arrive",
	Long: `Open the configured port and print one line per sensor reading: the
distance in centimetres and the fluid level as a percentage of the
[sensor.max_cm, sensor.min_cm] range.

The command runs until interrupted (Ctrl+C) and exits non-zero if the port
fails.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		chunks, _ := cmd.Flags().GetBool("chunks")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runMonitor(ctx, cmd.OutOrStdout(), asJSON, chunks)
	},
}

func init() {
	rootCmd.AddCommand(monitorCmd)

	monitorCmd.Flags().Bool("json", false, "Print one JSON object per reading")
	monitorCmd.Flags().Bool("chunks", false, "Treat every received chunk as a reading instead of waiting for newlines")
}

func runMonitor(ctx context.Context, out io.Writer, asJSON, chunks bool) error {
	conv, err := level.NewConverter(cfg.Sensor.MinCM, cfg.Sensor.MaxCM)
	if err != nil {
		return err
	}
	pc, err := cfg.PortConfig()
	if err != nil {
		return err
	}

	notify := make(chan struct{}, 1)
	failed := make(chan error, 1)
	session := serial.NewSession(serial.HandlerFuncs{
		Received: func() {
			select {
			case notify <- struct{}{}:
			default:
			}
		},
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
	defer session.Join()

	p := readingPrinter{out: out, json: json.NewEncoder(out), asJSON: asJSON}
	lines := level.NewLineBuffer(0)
	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("interrupted, closing port")
			return nil
		case err := <-failed:
			return err
		case <-notify:
			for {
				text, ok := session.TryRead()
				if !ok {
					break
				}
				var records []string
				if chunks {
					records = []string{text}
				} else {
					records = lines.Feed(text)
				}
				for _, rec := range records {
					r, ok := conv.Convert(rec)
					if !ok {
						logger.Debug().Str("line", rec).Msg("no distance in reading")
						continue
					}
					if err := p.print(r); err != nil {
						return err
					}
				}
			}
		}
	}
}

type readingPrinter struct {
	out    io.Writer
	json   *json.Encoder
	asJSON bool
}

var (
	timeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	levelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("40"))
	lowStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

func (p readingPrinter) print(r level.Reading) error {
	if p.asJSON {
		return p.json.Encode(r)
	}
	style := levelStyle
	if r.Percent < 10 {
		style = lowStyle
	}
	_, err := fmt.Fprintf(p.out, "%s  %4d cm  %s\n",
		timeStyle.Render(r.At.Format("15:04:05")),
		r.Distance,
		style.Render(fmt.Sprintf("%6.1f%%", r.Percent)))
	return err
}
