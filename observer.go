package alembic

import (
	"sync"

	"go.uber.org/zap"
)

// Hook observes resolution outcomes. Hooks are invoked synchronously on the
// resolving goroutine and are side-effect-only: a panic in a hook is logged
// and suppressed, never surfaced to the resolving caller.
type Hook func(key TypeKey, instance any)

// observerChain fans resolution events out to registered hooks.
type observerChain struct {
	mu      sync.RWMutex
	created []Hook
	cached  []Hook
}

func (o *observerChain) onCreated(hook Hook) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.created = append(o.created, hook)
}

func (o *observerChain) onCached(hook Hook) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.cached = append(o.cached, hook)
}

// notifyCreated fires after a resolution constructed a new instance.
func (o *observerChain) notifyCreated(log *zap.Logger, key TypeKey, instance any) {
	o.mu.RLock()
	hooks := o.created
	o.mu.RUnlock()

	for _, hook := range hooks {
		call(log, hook, key, instance)
	}
}

// notifyCached fires after a resolution returned a cached instance.
func (o *observerChain) notifyCached(log *zap.Logger, key TypeKey, instance any) {
	o.mu.RLock()
	hooks := o.cached
	o.mu.RUnlock()

	for _, hook := range hooks {
		call(log, hook, key, instance)
	}
}

func call(log *zap.Logger, hook Hook, key TypeKey, instance any) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn("observer hook panicked",
				zap.String("key", string(key)),
				zap.Any("panic", r),
			)
		}
	}()

	hook(key, instance)
}
