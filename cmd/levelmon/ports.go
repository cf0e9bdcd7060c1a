package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/fluidlevel/serial"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List available serial ports",
	Long: `List serial devices that look like real ports (COMn, /dev/tty*, /dev/cu.*).

With --detail, USB vendor/product IDs and serial numbers are shown where the
platform exposes them.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		detail, _ := cmd.Flags().GetBool("detail")
		asJSON, _ := cmd.Flags().GetBool("json")
		out := cmd.OutOrStdout()

		if !detail {
			ports, err := serial.AvailablePorts()
			if err != nil {
				return err
			}
			if asJSON {
				return json.NewEncoder(out).Encode(ports)
			}
			if len(ports) == 0 {
				fmt.Fprintln(out, "No serial ports found")
				return nil
			}
			for _, port := range ports {
				fmt.Fprintln(out, port)
			}
			return nil
		}

		infos, err := serial.DetailedPorts()
		if err != nil {
			return err
		}
		if asJSON {
			return json.NewEncoder(out).Encode(infos)
		}
		if len(infos) == 0 {
			fmt.Fprintln(out, "No serial ports found")
			return nil
		}
		renderTable(out, infos)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(portsCmd)

	portsCmd.Flags().BoolP("detail", "d", false, "Show USB details in a styled table")
	portsCmd.Flags().Bool("json", false, "Print the list as JSON")
}

// renderTable renders the port list in a styled static table format
func renderTable(out io.Writer, infos []serial.PortInfo) {
	fmt.Fprintf(out, "Found %d serial port(s):\n\n", len(infos))

	portWidth := 24
	idWidth := 11
	serialWidth := 16

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("240"))

	cellStyle := lipgloss.NewStyle().
		PaddingRight(2)

	header := fmt.Sprintf("%-*s %-*s %-*s %s",
		portWidth, "Port",
		idWidth, "VID:PID",
		serialWidth, "Serial",
		"Product")
	fmt.Fprintln(out, headerStyle.Render(header))

	for _, info := range infos {
		ids := "-"
		if info.IsUSB {
			ids = info.VendorID + ":" + info.ProductID
		}
		row := fmt.Sprintf("%-*s %-*s %-*s %s",
			portWidth, info.Name,
			idWidth, ids,
			serialWidth, orDash(info.SerialNumber),
			orDash(info.Product))
		fmt.Fprintln(out, cellStyle.Render(row))
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
