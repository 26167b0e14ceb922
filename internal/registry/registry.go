package registry

import (
	"errors"
	"fmt"
	"sync"

	"implex/internal/descriptor"
)

// ErrHookInstalled reports a second InstallHook call within one session.
var ErrHookInstalled = errors.New("renderer hook already installed")

// Hook receives the complete implementor map exactly once per session.
type Hook func(descriptor.Map)

// Registry is the session-lifetime slot shared by the data side and the
// renderer side. The zero value is not usable; construct with New.
//
// The loader and the renderer may run on different goroutines, so the
// slot is mutex-guarded; the hook itself is invoked outside the lock on
// whichever goroutine completed the pair.
type Registry struct {
	mu      sync.Mutex
	hook    Hook
	pending descriptor.Map
}

// New returns an empty registry: no hook armed, nothing pending.
func New() *Registry {
	return &Registry{}
}

// Register publishes the implementor map. If a hook is armed it is
// invoked synchronously with m, unchanged and uncopied; otherwise m is
// buffered in the pending slot, replacing any earlier pending map.
//
// A malformed map is rejected before any state change, so a failed
// Register leaves both the pending slot and the hook exactly as they
// were.
func (r *Registry) Register(m descriptor.Map) error {
	if err := descriptor.Validate(m); err != nil {
		return fmt.Errorf("register implementors: %w", err)
	}

	r.mu.Lock()
	hook := r.hook
	if hook == nil {
		r.pending = m
	}
	r.mu.Unlock()

	if hook != nil {
		hook(m)
	}
	return nil
}

// InstallHook arms h as the renderer hook. If a map is already pending
// it is delivered to h synchronously, during this call, and the slot is
// cleared. Installing a second hook fails with ErrHookInstalled.
func (r *Registry) InstallHook(h Hook) error {
	if h == nil {
		return errors.New("nil renderer hook")
	}

	r.mu.Lock()
	if r.hook != nil {
		r.mu.Unlock()
		return ErrHookInstalled
	}
	r.hook = h
	pending := r.pending
	r.pending = nil
	r.mu.Unlock()

	if pending != nil {
		h(pending)
	}
	return nil
}
