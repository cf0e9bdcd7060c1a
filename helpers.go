package serial

import (
	"fmt"
	"sort"
	"strings"
)

// PortInfo describes an enumerated serial port.
type PortInfo struct {
	Name         string
	IsUSB        bool
	VendorID     string
	ProductID    string
	SerialNumber string
	Product      string
}

// AvailablePorts returns the sorted list of local serial devices whose names
// look like real serial ports.
func AvailablePorts() ([]string, error) {
	ports, err := getPortsList()
	if err != nil {
		return nil, fmt.Errorf("listing ports: %w", err)
	}
	filtered := make([]string, 0, len(ports))
	for _, port := range ports {
		if isValidPortPattern(port) {
			filtered = append(filtered, port)
		}
	}
	sort.Strings(filtered)
	return filtered, nil
}

// DetailedPorts is AvailablePorts with USB metadata where the platform
// exposes it.
func DetailedPorts() ([]PortInfo, error) {
	details, err := getDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("listing ports: %w", err)
	}
	infos := make([]PortInfo, 0, len(details))
	for _, d := range details {
		if d == nil || !isValidPortPattern(d.Name) {
			continue
		}
		infos = append(infos, PortInfo{
			Name:         d.Name,
			IsUSB:        d.IsUSB,
			VendorID:     d.VID,
			ProductID:    d.PID,
			SerialNumber: d.SerialNumber,
			Product:      d.Product,
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

func isValidPortPattern(portName string) bool {
	if strings.Contains(portName, "..") {
		return false
	}
	// Windows: COM1-COM999 (must have at least one digit after COM)
	if strings.HasPrefix(portName, "COM") && len(portName) >= 4 && len(portName) <= 6 {
		return isDigits(portName[3:])
	}
	// Unix/Linux: /dev/tty* or /dev/cu* (macOS)
	if strings.HasPrefix(portName, "/dev/tty") || strings.HasPrefix(portName, "/dev/cu.") {
		return true
	}
	return false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
