package alembic

// BindingInfo contains diagnostic information about a binding.
type BindingInfo struct {
	// Key is the binding's identity.
	Key TypeKey

	// Registered reports whether a binding exists for Key.
	Registered bool

	// Scope is the lifetime strategy name (unique, cached, shared,
	// singleton, graph, custom).
	Scope string

	// Overridden reports whether an override is active in the current
	// override frame.
	Overridden bool

	// Cached reports whether an instance is currently cached in the
	// binding's scope. Always false for graph-scoped bindings, whose cache
	// lives only inside a resolution cycle.
	Cached bool

	// Tags lists the tags this binding is registered under.
	Tags []Tag
}

// Filter defines criteria for querying bindings.
type Filter struct {
	// Scope filters by lifetime strategy name. Empty matches all.
	Scope string

	// Tag filters bindings registered under a tag. Empty matches all.
	Tag Tag

	// Overridden filters by override status. nil matches all.
	Overridden *bool
}

// Query returns information about every binding matching the filter.
//
// Example:
//
//	// Find all cached bindings currently overridden
//	overridden := true
//	infos := alembic.Query(c, alembic.Filter{Scope: "cached", Overridden: &overridden})
func Query(c Container, filter Filter) []BindingInfo {
	var results []BindingInfo

	for _, key := range c.Keys() {
		info := c.Inspect(key)

		if filter.Scope != "" && info.Scope != filter.Scope {
			continue
		}

		if filter.Tag != "" {
			tagged := false

			for _, tag := range info.Tags {
				if tag == filter.Tag {
					tagged = true

					break
				}
			}

			if !tagged {
				continue
			}
		}

		if filter.Overridden != nil && info.Overridden != *filter.Overridden {
			continue
		}

		results = append(results, info)
	}

	return results
}

// QueryKeys returns the keys of bindings matching the filter.
func QueryKeys(c Container, filter Filter) []TypeKey {
	results := Query(c, filter)

	keys := make([]TypeKey, len(results))
	for i, info := range results {
		keys[i] = info.Key
	}

	return keys
}

// FindByTag returns all bindings registered under a tag.
func FindByTag(c Container, tag Tag) []BindingInfo {
	return Query(c, Filter{Tag: tag})
}

// FindByScope returns all bindings with a specific lifetime strategy.
func FindByScope(c Container, scope string) []BindingInfo {
	return Query(c, Filter{Scope: scope})
}

// FindOverridden returns all bindings with an active override.
func FindOverridden(c Container) []BindingInfo {
	overridden := true

	return Query(c, Filter{Overridden: &overridden})
}
