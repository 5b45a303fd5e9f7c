package observability

import (
	"context"
	"sync"
	"time"
)

// ShutdownFunc is a function to call during graceful shutdown
type ShutdownFunc func(ctx context.Context) error

// ShutdownManager coordinates graceful shutdown of registered components in
// LIFO order, so dependents stop before the things they depend on.
type ShutdownManager struct {
	mu      sync.Mutex
	funcs   []namedShutdown
	timeout time.Duration
	logger  *Logger
}

type namedShutdown struct {
	name string
	fn   ShutdownFunc
}

// NewShutdownManager creates a shutdown manager with the given overall timeout
func NewShutdownManager(timeout time.Duration, logger *Logger) *ShutdownManager {
	return &ShutdownManager{timeout: timeout, logger: logger}
}

// Register adds a named shutdown function. Registration order matters:
// functions run in reverse order of registration.
func (sm *ShutdownManager) Register(name string, fn ShutdownFunc) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.funcs = append(sm.funcs, namedShutdown{name: name, fn: fn})
}

// Shutdown runs all registered functions in LIFO order within the configured
// timeout. It returns the first error encountered but still runs the rest.
func (sm *ShutdownManager) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), sm.timeout)
	defer cancel()

	sm.mu.Lock()
	funcs := make([]namedShutdown, len(sm.funcs))
	copy(funcs, sm.funcs)
	sm.mu.Unlock()

	var firstErr error
	for i := len(funcs) - 1; i >= 0; i-- {
		s := funcs[i]
		sm.logger.Infof("Shutting down %s", s.name)
		if err := s.fn(ctx); err != nil {
			sm.logger.WithError(err).Errorf("Failed to shut down %s", s.name)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
