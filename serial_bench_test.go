package serial

import (
	"testing"
	"time"

	gobug "go.bug.st/serial"
)

// BenchmarkWriteRoundTrip measures the cost of queueing a payload and having
// the tx worker hand it to a mock port.
func BenchmarkWriteRoundTrip(b *testing.B) {
	mp := newMockPort("bench")
	prev := openPort
	openPort = singlePortOpener(mp)
	defer func() { openPort = prev }()

	s := NewSession(nil, WithPollInterval(time.Millisecond))
	if err := s.Start(benchPortConfig()); err != nil {
		b.Fatalf("Start error: %v", err)
	}
	defer s.Join()

	payload := []byte("PING\n")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Write(payload)
	}
	for s.metrics.PayloadsWritten.Load() < int64(b.N) {
		time.Sleep(100 * time.Microsecond)
	}
}

// BenchmarkReceive focuses on the rx worker by feeding many small chunks.
func BenchmarkReceive(b *testing.B) {
	mp := newMockPort("bench")
	prev := openPort
	openPort = singlePortOpener(mp)
	defer func() { openPort = prev }()

	s := NewSession(nil, WithPollInterval(time.Millisecond))
	if err := s.Start(benchPortConfig()); err != nil {
		b.Fatalf("Start error: %v", err)
	}
	defer s.Join()

	// Feed data in another goroutine.
	go func() {
		for i := 0; i < b.N; i++ {
			mp.readCh <- []byte("123\r\n")
		}
	}()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if got := s.Read(); got != "123\r\n" {
			b.Fatalf("Read returned %q", got)
		}
	}
}

func singlePortOpener(mp *mockPort) func(string, *gobug.Mode) (portHandle, error) {
	return func(string, *gobug.Mode) (portHandle, error) {
		return mp, nil
	}
}

func benchPortConfig() PortConfig {
	cfg := DefaultPortConfig("/dev/ttyBENCH")
	cfg.ReadTimeout = time.Millisecond
	return cfg
}
