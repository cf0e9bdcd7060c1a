package serial

import (
	"time"

	"go.uber.org/atomic"
)

// Metrics tracks serial session health statistics
type Metrics struct {
	// Session lifecycle
	StartAttempts       atomic.Int64 // Total Start calls
	SessionsStarted     atomic.Int64 // Starts that spawned workers
	OpenFailures        atomic.Int64 // Starts that failed to open the port
	TransportFailures   atomic.Int64 // Sessions torn down by a read/write error
	Disconnections      atomic.Int64 // Sessions ended by Join or Start
	ConnectionStartTime atomic.Int64 // When the current session started (ns)
	TotalUptime         atomic.Int64 // Total connected time in nanoseconds

	// Receive path
	ChunksRead         atomic.Int64 // Non-empty reads delivered to rx
	BytesRead          atomic.Int64 // Total bytes read
	DecodeReplacements atomic.Int64 // Chunks containing invalid UTF-8
	LastReadTime       atomic.Int64 // Timestamp of last non-empty read

	// Transmit path
	PayloadsQueued    atomic.Int64 // Payloads accepted by Write
	PayloadsWritten   atomic.Int64 // Payloads fully written to the port
	PayloadsDiscarded atomic.Int64 // Payloads dropped by Start's queue reset
	BytesWritten      atomic.Int64 // Total bytes written
	LastWriteTime     atomic.Int64 // Timestamp of last write

	LastFailureTime atomic.Int64 // Timestamp of last open/transport failure
}

// HealthStatus represents the overall health of serial communication
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
	HealthStatusDown      HealthStatus = "down"
)

// MetricsSnapshot is a point-in-time copy of Metrics with derived values.
type MetricsSnapshot struct {
	Timestamp   time.Time
	IsConnected bool

	SessionsStarted   int64
	OpenFailures      int64
	TransportFailures int64

	ChunksRead         int64
	BytesRead          int64
	DecodeReplacements int64
	PayloadsQueued     int64
	PayloadsWritten    int64
	PayloadsDiscarded  int64
	BytesWritten       int64

	TxPending int
	RxPending int

	UptimeSeconds float64
	LastRead      time.Time
	LastWrite     time.Time

	HealthStatus HealthStatus
}

func (m *Metrics) recordRead(n int, replaced bool) {
	m.ChunksRead.Inc()
	m.BytesRead.Add(int64(n))
	m.LastReadTime.Store(time.Now().UnixNano())
	if replaced {
		m.DecodeReplacements.Inc()
	}
}

func (m *Metrics) recordWrite(n int) {
	m.PayloadsWritten.Inc()
	m.BytesWritten.Add(int64(n))
	m.LastWriteTime.Store(time.Now().UnixNano())
}

func (m *Metrics) recordConnect() {
	m.SessionsStarted.Inc()
	m.ConnectionStartTime.Store(time.Now().UnixNano())
}

func (m *Metrics) recordDisconnect() {
	// Swap ensures a session's uptime is only counted once even when a
	// failing worker and Join both end it.
	if start := m.ConnectionStartTime.Swap(0); start > 0 {
		m.TotalUptime.Add(time.Now().UnixNano() - start)
		m.Disconnections.Inc()
	}
}

func (m *Metrics) recordFailure(kind FailureKind) {
	m.LastFailureTime.Store(time.Now().UnixNano())
	if kind == FailureOpen {
		m.OpenFailures.Inc()
		return
	}
	m.TransportFailures.Inc()
}

func (m *Metrics) calculateUptime(isConnected bool, connectionStartTime int64) float64 {
	if !isConnected || connectionStartTime == 0 {
		return 0.0
	}

	duration := time.Now().UnixNano() - connectionStartTime
	if duration <= 0 {
		return 0.0
	}

	return float64(duration) / float64(time.Second)
}

func (m *Metrics) assessHealthStatus(snapshot *MetricsSnapshot) HealthStatus {
	if !snapshot.IsConnected {
		return HealthStatusDown
	}

	// Mostly garbled input usually means a baud rate or framing mismatch.
	if snapshot.ChunksRead > 0 && snapshot.DecodeReplacements*2 > snapshot.ChunksRead {
		return HealthStatusUnhealthy
	}
	if snapshot.ChunksRead > 0 && snapshot.DecodeReplacements*10 > snapshot.ChunksRead {
		return HealthStatusDegraded
	}

	return HealthStatusHealthy
}

func unixNanoTime(ns int64) time.Time {
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns)
}
