package serial

import (
	"time"
)

// Metrics accessor methods for Session

// Metrics returns a snapshot of the session's counters.
func (s *Session) Metrics() *MetricsSnapshot {
	m := s.metrics
	isConnected := s.IsOpen()

	snapshot := &MetricsSnapshot{
		Timestamp:          time.Now(),
		IsConnected:        isConnected,
		SessionsStarted:    m.SessionsStarted.Load(),
		OpenFailures:       m.OpenFailures.Load(),
		TransportFailures:  m.TransportFailures.Load(),
		ChunksRead:         m.ChunksRead.Load(),
		BytesRead:          m.BytesRead.Load(),
		DecodeReplacements: m.DecodeReplacements.Load(),
		PayloadsQueued:     m.PayloadsQueued.Load(),
		PayloadsWritten:    m.PayloadsWritten.Load(),
		PayloadsDiscarded:  m.PayloadsDiscarded.Load(),
		BytesWritten:       m.BytesWritten.Load(),
		TxPending:          s.tx.Len(),
		RxPending:          s.rx.Len(),
		UptimeSeconds:      m.calculateUptime(isConnected, m.ConnectionStartTime.Load()),
		LastRead:           unixNanoTime(m.LastReadTime.Load()),
		LastWrite:          unixNanoTime(m.LastWriteTime.Load()),
	}
	snapshot.HealthStatus = m.assessHealthStatus(snapshot)
	return snapshot
}

// BufferPoolStats returns statistics for the rx chunk buffer pool.
func (s *Session) BufferPoolStats() PoolStats {
	return s.pool.Stats()
}
