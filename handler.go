package serial

// Handler receives session events. Both methods are called from worker
// goroutines and must not block for long. OnReceived carries no payload:
// the data is already queued and can be pulled with Read or TryRead.
//
// OnReceived runs on the rx worker while Join waits for that worker, so it
// must not call Start or Join: doing so deadlocks.
//
// OnFailed receives a *FailureError. It is called at most once per
// successful Start, and once for every failed Start. It runs after the
// failing worker has finished and may call Start or Join.
type Handler interface {
	OnReceived()
	OnFailed(err error)
}

// HandlerFuncs adapts a pair of functions to Handler. Nil fields are no-ops.
type HandlerFuncs struct {
	Received func()
	Failed   func(err error)
}

func (h HandlerFuncs) OnReceived() {
	if h.Received != nil {
		h.Received()
	}
}

func (h HandlerFuncs) OnFailed(err error) {
	if h.Failed != nil {
		h.Failed(err)
	}
}
