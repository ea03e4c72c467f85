package alembic

import "go.uber.org/zap"

// =============================================================================
// BIND OPTIONS
// =============================================================================

// scopeKind selects a built-in scope at registration time.
type scopeKind int

const (
	kindUnique scopeKind = iota
	kindCached
	kindShared
	kindSingleton
	kindGraph
	kindCustom
)

func (k scopeKind) String() string {
	switch k {
	case kindUnique:
		return "unique"
	case kindCached:
		return "cached"
	case kindShared:
		return "shared"
	case kindSingleton:
		return "singleton"
	case kindGraph:
		return "graph"
	case kindCustom:
		return "custom"
	default:
		return "unknown"
	}
}

type bindOptions struct {
	kind  scopeKind
	scope Scope // set only for kindCustom
}

// BindOption configures a binding at registration time.
type BindOption func(*bindOptions)

// Unique makes every resolution construct a fresh instance (default).
func Unique() BindOption {
	return func(o *bindOptions) {
		o.kind = kindUnique
	}
}

// Cached caches the instance in the container until evicted or reset.
func Cached() BindOption {
	return func(o *bindOptions) {
		o.kind = kindCached
	}
}

// Shared caches the instance weakly: it is reused while some caller still
// holds it and rebuilt after the garbage collector reclaims it. The instance
// must be pointer-shaped to participate; see [Scope] docs on sharedScope.
func Shared() BindOption {
	return func(o *bindOptions) {
		o.kind = kindShared
	}
}

// Singleton caches the instance process-wide, outside any container. Reset
// only via [ResetSingletons].
func Singleton() BindOption {
	return func(o *bindOptions) {
		o.kind = kindSingleton
	}
}

// Graph caches the instance for the duration of one root resolution
// call-tree, deduplicating diamond-shaped dependency graphs.
func Graph() BindOption {
	return func(o *bindOptions) {
		o.kind = kindGraph
	}
}

// WithScope installs a caller-supplied lifetime strategy.
func WithScope(scope Scope) BindOption {
	return func(o *bindOptions) {
		o.kind = kindCustom
		o.scope = scope
	}
}

func mergeBindOptions(opts []BindOption) bindOptions {
	merged := bindOptions{kind: kindUnique}
	for _, opt := range opts {
		opt(&merged)
	}

	return merged
}

// =============================================================================
// TAG OPTIONS
// =============================================================================

type tagOptions struct {
	priority int
	alias    string
}

// TagOption configures a tagged binding.
type TagOption func(*tagOptions)

// WithPriority orders the binding within its tag. ResolveTagged returns
// instances in ascending priority. Default 0.
func WithPriority(priority int) TagOption {
	return func(o *tagOptions) {
		o.priority = priority
	}
}

// WithAlias names the binding within its tag for associative resolution.
// Entries without an alias are excluded from ResolveTaggedAssociative.
func WithAlias(alias string) TagOption {
	return func(o *tagOptions) {
		o.alias = alias
	}
}

func mergeTagOptions(opts []TagOption) tagOptions {
	var merged tagOptions
	for _, opt := range opts {
		opt(&merged)
	}

	return merged
}

// =============================================================================
// CONTAINER OPTIONS
// =============================================================================

type containerOptions struct {
	log      *zap.Logger
	fallback func(TypeKey) (any, bool)
}

// ContainerOption configures a container at construction time.
type ContainerOption func(*containerOptions)

// WithLogger sets the logger used for suppressed hook panics and skipped
// tagged bindings. Defaults to a no-op logger.
func WithLogger(log *zap.Logger) ContainerOption {
	return func(o *containerOptions) {
		o.log = log
	}
}

// WithFallback supplies a default for keys with no binding. When the fallback
// reports ok, Resolve returns its value instead of a KEY_NOT_FOUND error.
func WithFallback(fallback func(TypeKey) (any, bool)) ContainerOption {
	return func(o *containerOptions) {
		o.fallback = fallback
	}
}
