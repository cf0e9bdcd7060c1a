package serial

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.bug.st/serial/enumerator"
)

func TestIsValidPortPattern(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"COM1", true},
		{"COM12", true},
		{"COM999", true},
		{"COM", false},
		{"COMX", false},
		{"COM1000", false},
		{"/dev/ttyUSB0", true},
		{"/dev/ttyACM1", true},
		{"/dev/ttyS0", true},
		{"/dev/cu.usbserial-1410", true},
		{"/dev/null", false},
		{"/dev/tty/../sda", false},
		{"", false},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, isValidPortPattern(tt.name), tt.name)
	}
}

func TestAvailablePortsFiltersAndSorts(t *testing.T) {
	prev := getPortsList
	t.Cleanup(func() { getPortsList = prev })
	getPortsList = func() ([]string, error) {
		return []string{"/dev/ttyUSB1", "/dev/null", "/dev/ttyACM0", "COM3", "/dev/sda"}, nil
	}

	ports, err := AvailablePorts()
	require.NoError(t, err)
	require.Equal(t, []string{"/dev/ttyACM0", "/dev/ttyUSB1", "COM3"}, ports)
}

func TestAvailablePortsError(t *testing.T) {
	prev := getPortsList
	t.Cleanup(func() { getPortsList = prev })
	boom := errors.New("enumeration failed")
	getPortsList = func() ([]string, error) { return nil, boom }

	_, err := AvailablePorts()
	require.ErrorIs(t, err, boom)
}

func TestDetailedPorts(t *testing.T) {
	prev := getDetailedPortsList
	t.Cleanup(func() { getDetailedPortsList = prev })
	getDetailedPortsList = func() ([]*enumerator.PortDetails, error) {
		return []*enumerator.PortDetails{
			{Name: "/dev/ttyUSB0", IsUSB: true, VID: "1a86", PID: "7523", Product: "USB Serial"},
			nil,
			{Name: "/dev/ttyACM0", IsUSB: true, VID: "2341", PID: "0043", SerialNumber: "8573"},
			{Name: "/dev/random"},
		}, nil
	}

	infos, err := DetailedPorts()
	require.NoError(t, err)
	require.Len(t, infos, 2)
	require.Equal(t, "/dev/ttyACM0", infos[0].Name)
	require.Equal(t, "8573", infos[0].SerialNumber)
	require.Equal(t, "/dev/ttyUSB0", infos[1].Name)
	require.Equal(t, "1a86", infos[1].VendorID)
	require.Equal(t, "7523", infos[1].ProductID)
	require.Equal(t, "USB Serial", infos[1].Product)
}
