package serial

import (
	"errors"
)

// handleOpenError closes a half-opened handle and joins any error from
// closing with the original error.
func handleOpenError(h portHandle, err error) error {
	if e := h.Close(); e != nil {
		err = errors.Join(err, e)
	}
	return classifyOpenError(err)
}

// closeGeneration closes the generation's handle exactly once, whichever of
// Join or a failing worker gets there first.
func (s *Session) closeGeneration(g *generation) error {
	g.closeOnce.Do(func() {
		g.closeErr = g.handle.Close()
		g.closed.Store(true)
		s.metrics.recordDisconnect()
	})
	return g.closeErr
}

// fail tears the generation down after a transport error: the stop flag is
// set (so the other worker exits too) and the port is closed. Only the first
// failure of a generation is returned for reporting; later errors, typically
// the other worker tripping over the closed handle, return nil.
func (s *Session) fail(g *generation, kind FailureKind, err error) *FailureError {
	var failure *FailureError
	g.failOnce.Do(func() {
		failure = &FailureError{Kind: kind, Port: g.port, Err: err}
	})
	g.signalStop()
	if cerr := s.closeGeneration(g); cerr != nil {
		s.logger.Debug().Err(cerr).Str("port", g.port).Msg("closing failed serial port")
	}
	if failure != nil {
		s.metrics.recordFailure(kind)
	}
	return failure
}

func (s *Session) openFailed(port string, err error) *FailureError {
	s.metrics.recordFailure(FailureOpen)
	return &FailureError{Kind: FailureOpen, Port: port, Err: err}
}

// report logs a failure and hands it to the handler. It runs outside
// lifecycleMu and after the worker has left the wait group, so the handler
// may call Start or Join.
func (s *Session) report(failure *FailureError) {
	s.logger.Warn().
		Err(failure.Err).
		Str("port", failure.Port).
		Stringer("kind", failure.Kind).
		Msg("serial session failed")
	s.handler.OnFailed(failure)
}
