package alembic

import (
	"context"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// binding is a registered recipe: an original factory plus the scope that
// controls instance lifetime. Replacing the factory via an override does not
// change the binding's identity or scope.
type binding struct {
	key     TypeKey
	factory Factory
	kind    scopeKind
	scope   Scope
}

// containerImpl implements Container.
type containerImpl struct {
	mu        sync.RWMutex // guards bindings and tags
	bindings  map[TypeKey]*binding
	tags      map[Tag]*tagSet
	overrides *overrideStack
	cached    *strongScope
	shared    *sharedScope
	observers observerChain
	log       *zap.Logger
	fallback  func(TypeKey) (any, bool)
}

func newContainer(opts ...ContainerOption) *containerImpl {
	var merged containerOptions
	for _, opt := range opts {
		opt(&merged)
	}

	if merged.log == nil {
		merged.log = zap.NewNop()
	}

	return &containerImpl{
		bindings:  make(map[TypeKey]*binding),
		tags:      make(map[Tag]*tagSet),
		overrides: newOverrideStack(),
		cached:    newStrongScope(),
		shared:    newSharedScope(),
		log:       merged.log,
		fallback:  merged.fallback,
	}
}

// scopeFor maps a scope selection to the container's scope instance.
func (c *containerImpl) scopeFor(opts bindOptions) (Scope, error) {
	switch opts.kind {
	case kindUnique:
		return uniqueScope{}, nil
	case kindCached:
		return c.cached, nil
	case kindShared:
		return c.shared, nil
	case kindSingleton:
		return singletonScope, nil
	case kindGraph:
		return graphScope{}, nil
	case kindCustom:
		if opts.scope == nil {
			return nil, ErrInvalidScope
		}

		return opts.scope, nil
	default:
		return uniqueScope{}, nil
	}
}

// Register defines a binding for key, or installs a factory override when key
// is already bound.
func (c *containerImpl) Register(key TypeKey, factory Factory, opts ...BindOption) error {
	if key == "" {
		return ErrInvalidKey
	}

	if factory == nil {
		return ErrInvalidFactory
	}

	merged := mergeBindOptions(opts)

	c.mu.Lock()

	existing, bound := c.bindings[key]
	if !bound {
		scope, err := c.scopeFor(merged)
		if err != nil {
			c.mu.Unlock()

			return err
		}

		c.bindings[key] = &binding{
			key:     key,
			factory: factory,
			kind:    merged.kind,
			scope:   scope,
		}
		c.mu.Unlock()

		return nil
	}

	c.mu.Unlock()

	// Already bound: this registration is an override. The scope stays as
	// defined; the cached instance is evicted so the next resolution runs
	// the new factory.
	c.overrides.set(key, factory)
	existing.scope.Evict(key)

	return nil
}

// Resolve returns the instance for key, entering a resolution cycle if none
// is active on ctx. The cycle (and with it any Graph-scoped instances) lives
// exactly until this root call returns.
func (c *containerImpl) Resolve(ctx context.Context, key TypeKey) (any, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	return c.resolve(enterCycle(ctx), key)
}

// resolve performs resolution within an already-entered cycle. Factories are
// handed the cycle-carrying ctx, so nested resolutions land here directly via
// Resolve and reuse the same cycle.
func (c *containerImpl) resolve(ctx context.Context, key TypeKey) (any, error) {
	c.mu.RLock()
	b := c.bindings[key]
	c.mu.RUnlock()

	if b == nil {
		if c.fallback != nil {
			if instance, ok := c.fallback(key); ok {
				return instance, nil
			}
		}

		return nil, ErrKeyNotFound(key)
	}

	factory := b.factory
	if override, ok := c.overrides.lookup(key); ok {
		factory = override
	}

	if instance, ok := b.scope.Cached(ctx, key); ok {
		c.observers.notifyCached(c.log, key, instance)

		return instance, nil
	}

	// Construct outside any scope lock: the factory may re-enter resolution,
	// and concurrent callers may race to construct. First store wins; a
	// losing instance is discarded, not an error.
	instance, err := factory(ctx, c)
	if err != nil {
		return nil, err
	}

	canonical, won := b.scope.Store(ctx, key, instance)
	if won {
		c.observers.notifyCreated(c.log, key, canonical)
	} else {
		c.observers.notifyCached(c.log, key, canonical)
	}

	return canonical, nil
}

// Reset removes any override for key and evicts its scope-cache entry.
func (c *containerImpl) Reset(key TypeKey) {
	c.overrides.remove(key)

	c.mu.RLock()
	b := c.bindings[key]
	c.mu.RUnlock()

	if b != nil {
		b.scope.Evict(key)
	}
}

// ResetAll discards overrides, scope caches, or both.
func (c *containerImpl) ResetAll(kind ResetKind) {
	if kind == ResetRegistrations || kind == ResetEverything {
		c.evictKeys(c.overrides.clear())
	}

	if kind == ResetScopes || kind == ResetEverything {
		c.resetScopes()
	}
}

// resetScopes resets every distinct scope in use by this container's
// bindings, except the process-wide singleton cache which is never reset
// implicitly.
func (c *containerImpl) resetScopes() {
	c.mu.RLock()

	seen := make(map[Scope]struct{}, 4)
	scopes := make([]Scope, 0, 4)

	for _, b := range c.bindings {
		if b.kind == kindSingleton {
			continue
		}

		if _, ok := seen[b.scope]; ok {
			continue
		}

		seen[b.scope] = struct{}{}
		scopes = append(scopes, b.scope)
	}

	c.mu.RUnlock()

	for _, scope := range scopes {
		scope.Reset()
	}
}

func (c *containerImpl) evictKeys(keys []TypeKey) {
	if len(keys) == 0 {
		return
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, key := range keys {
		if b, ok := c.bindings[key]; ok {
			b.scope.Evict(key)
		}
	}
}

// Has reports whether a binding is registered for key.
func (c *containerImpl) Has(key TypeKey) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.bindings[key]

	return ok
}

// Keys returns all registered binding keys.
func (c *containerImpl) Keys() []TypeKey {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]TypeKey, 0, len(c.bindings))
	for key := range c.bindings {
		keys = append(keys, key)
	}

	return keys
}

// PushOverrides saves the current override frame.
func (c *containerImpl) PushOverrides() {
	c.overrides.push()
}

// PopOverrides restores the previous override frame. Cache entries for keys
// whose override status changed are evicted so resolution behavior matches
// the pre-push world.
func (c *containerImpl) PopOverrides() {
	c.evictKeys(c.overrides.pop())
}

// Tag registers the binding identified by key under tag. The tag index is
/// independent of the binding registry: tagging does not require the binding
// to exist yet, and unregistering never removes tag entries.
func (c *containerImpl) Tag(key TypeKey, tag Tag, opts ...TagOption) error {
	if key == "" {
		return ErrInvalidKey
	}

	if tag == "" {
		return ErrInvalidTag
	}

	merged := mergeTagOptions(opts)

	c.mu.Lock()
	defer c.mu.Unlock()

	ts, ok := c.tags[tag]
	if !ok {
		ts = newTagSet()
		c.tags[tag] = ts
	}

	ts.upsert(key, merged)

	return nil
}

// taggedEntries snapshots the sorted entries for tag.
func (c *containerImpl) taggedEntries(tag Tag) []taggedBinding {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ts, ok := c.tags[tag]
	if !ok {
		return nil
	}

	return ts.sorted()
}

// ResolveTagged resolves every binding tagged under tag in priority order.
// The whole batch runs under one resolution cycle, so Graph-scoped
// dependencies deduplicate across the batch.
func (c *containerImpl) ResolveTagged(ctx context.Context, tag Tag) ([]any, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	ctx = enterCycle(ctx)

	entries := c.taggedEntries(tag)
	instances := make([]any, 0, len(entries))

	var errs error

	for _, entry := range entries {
		instance, err := c.resolve(ctx, entry.key)
		if err != nil {
			c.log.Debug("skipping tagged binding",
				zap.String("tag", string(tag)),
				zap.String("key", string(entry.key)),
				zap.Error(err),
			)
			errs = multierr.Append(errs, err)

			continue
		}

		instances = append(instances, instance)
	}

	return instances, errs
}

// ResolveTaggedAssociative resolves the aliased bindings tagged under tag
// into an alias-keyed map.
func (c *containerImpl) ResolveTaggedAssociative(ctx context.Context, tag Tag) (map[string]any, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	ctx = enterCycle(ctx)

	entries := c.taggedEntries(tag)
	instances := make(map[string]any, len(entries))

	var errs error

	for _, entry := range entries {
		if entry.alias == "" {
			continue
		}

		instance, err := c.resolve(ctx, entry.key)
		if err != nil {
			c.log.Debug("skipping tagged binding",
				zap.String("tag", string(tag)),
				zap.String("key", string(entry.key)),
				zap.Error(err),
			)
			errs = multierr.Append(errs, err)

			continue
		}

		instances[entry.alias] = instance
	}

	return instances, errs
}

// OnCreated registers a hook fired when a resolution constructs a new instance.
func (c *containerImpl) OnCreated(hook Hook) {
	c.observers.onCreated(hook)
}

// OnCached registers a hook fired when a resolution returns a cached instance.
func (c *containerImpl) OnCached(hook Hook) {
	c.observers.onCached(hook)
}

// Inspect returns diagnostic information about a binding.
func (c *containerImpl) Inspect(key TypeKey) BindingInfo {
	c.mu.RLock()
	b := c.bindings[key]

	var tags []Tag

	for tag, ts := range c.tags {
		if _, ok := ts.entries[key]; ok {
			tags = append(tags, tag)
		}
	}

	c.mu.RUnlock()

	if b == nil {
		return BindingInfo{Key: key, Tags: tags}
	}

	_, overridden := c.overrides.lookup(key)
	_, cached := b.scope.Cached(context.Background(), key)

	return BindingInfo{
		Key:        key,
		Registered: true,
		Scope:      b.kind.String(),
		Overridden: overridden,
		Cached:     cached,
		Tags:       tags,
	}
}
