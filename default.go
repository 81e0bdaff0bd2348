package invariants

import "sync"

// The default handler is process-wide state, lazily built on first use and
// replaceable at startup. It follows the same discipline as any other
// process-lifetime singleton here: all access under the mutex, no teardown.
var (
	defaultHandler *Handler
	defaultMu      sync.RWMutex
)

// Default returns the process-wide handler, building one from DefaultConfig
// on first use.
func Default() *Handler {
	defaultMu.RLock()
	h := defaultHandler
	defaultMu.RUnlock()

	if h != nil {
		return h
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultHandler == nil {
		h, err := New(DefaultConfig())
		if err != nil {
			// DefaultConfig always validates.
			panic(err)
		}

		defaultHandler = h
	}

	return defaultHandler
}

// SetDefault replaces the process-wide handler. Call once during application
// startup, before any assertion can fail. Passing nil resets to lazy
// construction from DefaultConfig; tests use that to restore the initial
// state.
func SetDefault(h *Handler) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	defaultHandler = h
}
