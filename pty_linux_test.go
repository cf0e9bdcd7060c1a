//go:build linux

package serial

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/creack/pty"
	"github.com/stretchr/testify/require"
)

// TestSessionOverPTY drives a real go.bug.st/serial port through a
// pseudo-terminal pair: the session owns the slave end, the test plays the
// sensor on the master end.
func TestSessionOverPTY(t *testing.T) {
	master, slave, err := pty.Open()
	require.NoError(t, err)
	t.Cleanup(func() { master.Close(); slave.Close() })

	h := newRecordingHandler()
	s := NewSession(h, WithPollInterval(10*time.Millisecond))

	cfg := DefaultPortConfig(slave.Name())
	cfg.BaudRate = Baud115200
	cfg.ReadTimeout = 10 * time.Millisecond
	if err := s.Start(cfg); err != nil {
		t.Skipf("pty does not accept serial settings here: %v", err)
	}
	t.Cleanup(s.Join)
	require.True(t, s.IsOpen())
	require.Equal(t, slave.Name(), s.Port())

	// Master writes to slave, the rx worker should receive it.
	_, err = master.Write([]byte("42\r\n"))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	var got strings.Builder
	for !strings.Contains(got.String(), "42") {
		text, err := s.ReadContext(ctx)
		require.NoError(t, err, "timeout waiting for session to receive from master")
		got.WriteString(text)
	}
	require.GreaterOrEqual(t, h.received.Load(), int32(1))

	// The tx worker writes to the slave, master should receive it.
	fromSlave := make(chan string, 1)
	go func() {
		buf := make([]byte, 128)
		n, err := master.Read(buf)
		if err != nil {
			return
		}
		fromSlave <- string(buf[:n])
	}()

	s.WriteString("PING\n")
	select {
	case msg := <-fromSlave:
		require.Contains(t, msg, "PING")
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for master to receive from session")
	}
}
