package host

import "sync/atomic"

var active atomic.Pointer[Handler]

// Activate publishes the handler as the process-wide event bridge. The
// embedding engine's plugin layer fetches it with Bridge once it is
// ready to deliver interaction callbacks.
func Activate(h *Handler) {
	active.Store(h)
}

// Bridge returns the published event bridge, or nil before Activate.
func Bridge() *Handler {
	return active.Load()
}
