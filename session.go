package serial

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/atomic"
)

// Session owns one serial connection at a time and decouples callers from
// blocking port I/O. Writes go through an unbounded tx queue drained by a tx
// worker; an rx worker reads the port and queues decoded text for Read.
//
// A Session is created once and may be started and joined repeatedly. Start
// and Join are serialized internally; Write, Read and TryRead are safe to
// call from any goroutine.
type Session struct {
	handler      Handler
	logger       zerolog.Logger
	pollInterval time.Duration
	chunkSize    int

	tx *fifo[[]byte]
	rx *fifo[string]

	// lifecycleMu serializes Start and Join.
	lifecycleMu sync.Mutex

	// mu guards gen.
	mu  sync.Mutex
	gen *generation

	pool    *BufferPool
	metrics *Metrics
}

// generation is the state of one Start→Join lifetime: the open handle, its
// two workers and their shared stop flag.
type generation struct {
	port   string
	handle portHandle

	stopped  atomic.Bool
	stopCh   chan struct{}
	stopOnce sync.Once

	closed    atomic.Bool
	closeOnce sync.Once
	closeErr  error

	failOnce sync.Once
	wg       sync.WaitGroup
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for lifecycle and traffic logs.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithPollInterval sets how long an idle tx worker waits before re-checking
// the stop flag. Values outside (0, MaxPollInterval] are clamped.
func WithPollInterval(d time.Duration) Option {
	return func(s *Session) {
		switch {
		case d <= 0:
			d = DefaultPollInterval
		case d > MaxPollInterval:
			d = MaxPollInterval
		}
		s.pollInterval = d
	}
}

// WithChunkSize sets the maximum size of a single port read.
func WithChunkSize(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.chunkSize = n
		}
	}
}

// NewSession returns an idle session that reports events to h. A nil
// handler discards events.
func NewSession(h Handler, opts ...Option) *Session {
	if h == nil {
		h = HandlerFuncs{}
	}
	s := &Session{
		handler:      h,
		logger:       zerolog.Nop(),
		pollInterval: DefaultPollInterval,
		chunkSize:    DefaultChunkSize,
		tx:           newFIFO[[]byte](),
		rx:           newFIFO[string](),
		metrics:      &Metrics{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.pool = NewBufferPool(s.chunkSize)
	return s
}

// Start opens the port described by cfg and spawns the tx and rx workers.
// Any running session is stopped and its port closed first, and both queues
// are cleared. On failure no workers run, OnFailed receives the same
// *FailureError that Start returns, and Start may be called again.
func (s *Session) Start(cfg PortConfig) error {
	failure := s.start(cfg)
	if failure != nil {
		s.report(failure)
		return failure
	}
	return nil
}

func (s *Session) start(cfg PortConfig) *FailureError {
	s.lifecycleMu.Lock()
	defer s.lifecycleMu.Unlock()

	s.stopLocked()

	if n := s.tx.Reset(); n > 0 {
		s.metrics.PayloadsDiscarded.Add(int64(n))
		s.logger.Debug().Int("payloads", n).Msg("discarded pending tx payloads")
	}
	s.rx.Reset()

	s.metrics.StartAttempts.Inc()
	cfg = cfg.withDefaults()
	if err := ValidateConfig(cfg); err != nil {
		return s.openFailed(cfg.Path, err)
	}

	handle, err := openPort(cfg.Path, cfg.mode())
	if err != nil {
		return s.openFailed(cfg.Path, classifyOpenError(err))
	}
	if err = handle.SetReadTimeout(cfg.ReadTimeout); err != nil {
		return s.openFailed(cfg.Path, handleOpenError(handle, err))
	}

	g := &generation{
		port:   cfg.Path,
		handle: handle,
		stopCh: make(chan struct{}),
	}
	s.mu.Lock()
	s.gen = g
	s.mu.Unlock()
	s.metrics.recordConnect()

	s.logger.Info().
		Str("port", cfg.Path).
		Int("baud", cfg.BaudRate.Int()).
		Int("data_bits", cfg.DataBits.Int()).
		Stringer("stop_bits", cfg.StopBits).
		Stringer("parity", cfg.Parity).
		Dur("read_timeout", cfg.ReadTimeout).
		Msg("serial session started")

	g.wg.Add(2)
	go s.txWorker(g)
	go s.rxWorker(g)
	return nil
}

// Write queues payload for transmission and returns immediately. The
// payload is copied. Payloads still queued when the next Start runs are
// discarded.
func (s *Session) Write(payload []byte) {
	buf := make([]byte, len(payload))
	copy(buf, payload)
	s.tx.Push(buf)
	s.metrics.PayloadsQueued.Inc()
}

// WriteString is Write for text payloads. Any line terminator must already
// be part of text.
func (s *Session) WriteString(text string) {
	s.tx.Push([]byte(text))
	s.metrics.PayloadsQueued.Inc()
}

// Read blocks until a received chunk is available and returns the oldest.
func (s *Session) Read() string {
	text, _ := s.rx.PopContext(context.Background())
	return text
}

// ReadContext is Read with cancellation.
func (s *Session) ReadContext(ctx context.Context) (string, error) {
	return s.rx.PopContext(ctx)
}

// TryRead returns the oldest received chunk without blocking.
func (s *Session) TryRead() (string, bool) {
	return s.rx.TryPop()
}

// Join stops both workers, waits for them to exit and closes the port.
// Queued tx payloads are not flushed. Join is a no-op when no session is
// running. After Join returns the port is not touched again.
func (s *Session) Join() {
	s.lifecycleMu.Lock()
	defer s.lifecycleMu.Unlock()
	s.stopLocked()
}

// IsOpen reports whether the session currently holds an open port.
func (s *Session) IsOpen() bool {
	s.mu.Lock()
	g := s.gen
	s.mu.Unlock()
	return g != nil && !g.closed.Load()
}

// Port returns the path of the current session, or "" when idle.
func (s *Session) Port() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen == nil {
		return ""
	}
	return s.gen.port
}

// stopLocked ends the current generation, if any. lifecycleMu must be held.
func (s *Session) stopLocked() {
	s.mu.Lock()
	g := s.gen
	s.mu.Unlock()
	if g == nil {
		return
	}

	g.signalStop()
	g.wg.Wait()
	if err := s.closeGeneration(g); err != nil {
		s.logger.Warn().Err(err).Str("port", g.port).Msg("closing serial port")
	}

	s.mu.Lock()
	if s.gen == g {
		s.gen = nil
	}
	s.mu.Unlock()
	s.logger.Info().Str("port", g.port).Msg("serial session stopped")
}

func (s *Session) txWorker(g *generation) {
	failure := s.txLoop(g)
	g.wg.Done()
	if failure != nil {
		s.report(failure)
	}
}

func (s *Session) txLoop(g *generation) *FailureError {
	s.logger.Debug().Str("port", g.port).Msg("tx worker started")
	defer s.logger.Debug().Str("port", g.port).Msg("tx worker exited")

	for !g.stopped.Load() {
		payload, ok := s.tx.Pop(s.pollInterval, g.stopCh)
		if !ok {
			continue
		}
		s.logger.Trace().Str("port", g.port).Bytes("tx", payload).Msg("write")
		if err := writeFull(g.handle, payload); err != nil {
			return s.fail(g, FailureWrite, err)
		}
		s.metrics.recordWrite(len(payload))
	}
	return nil
}

func (s *Session) rxWorker(g *generation) {
	failure := s.rxLoop(g)
	g.wg.Done()
	if failure != nil {
		s.report(failure)
	}
}

func (s *Session) rxLoop(g *generation) *FailureError {
	s.logger.Debug().Str("port", g.port).Msg("rx worker started")
	defer s.logger.Debug().Str("port", g.port).Msg("rx worker exited")

	buf := s.pool.Get()
	defer s.pool.Put(buf)

	for !g.stopped.Load() {
		n, err := g.handle.Read(buf)
		if err != nil {
			return s.fail(g, FailureRead, err)
		}
		if n == 0 {
			// read timeout
			continue
		}

		text, replaced := decodeChunk(buf[:n])
		s.rx.Push(text)
		s.metrics.recordRead(n, replaced)
		s.logger.Trace().Str("port", g.port).Str("rx", text).Bool("replaced", replaced).Msg("read")
		s.handler.OnReceived()
	}
	return nil
}

// writeFull writes all of p, treating a zero-length write as an error.
func writeFull(h portHandle, p []byte) error {
	for len(p) > 0 {
		n, err := h.Write(p)
		if err != nil {
			return err
		}
		if n == 0 {
			return io.ErrShortWrite
		}
		p = p[n:]
	}
	return nil
}

func (g *generation) signalStop() {
	g.stopOnce.Do(func() {
		g.stopped.Store(true)
		close(g.stopCh)
	})
}
