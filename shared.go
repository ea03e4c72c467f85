package alembic

import (
	"context"
	"reflect"
	"sync"
	"unsafe"
	"weak"
)

// sharedScope caches instances with weak references. An instance stays cached
// while some caller still holds it; once the last strong holder releases it
// and the garbage collector reclaims it, the next resolution constructs a new
// instance.
//
// Only pointer-shaped instances can be weakly referenced. Non-pointer
// instances bypass the cache entirely and behave as if the binding were
// unique-scoped; box a value type in a pointer to share it.
type sharedScope struct {
	mu   sync.Mutex
	refs map[TypeKey]weakRef
}

func newSharedScope() *sharedScope {
	return &sharedScope{
		refs: make(map[TypeKey]weakRef),
	}
}

func (s *sharedScope) Cached(_ context.Context, key TypeKey) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ref, ok := s.refs[key]
	if !ok {
		return nil, false
	}

	instance, alive := ref.value()
	if !alive {
		delete(s.refs, key)

		return nil, false
	}

	return instance, true
}

func (s *sharedScope) Store(_ context.Context, key TypeKey, instance any) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ref, ok := s.refs[key]; ok {
		if existing, alive := ref.value(); alive {
			return existing, false
		}
	}

	ref, ok := makeWeakRef(instance)
	if !ok {
		// Not weakly referenceable; hand the instance back uncached.
		return instance, true
	}

	s.refs[key] = ref

	return instance, true
}

func (s *sharedScope) Evict(key TypeKey) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.refs, key)
}

func (s *sharedScope) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.refs = make(map[TypeKey]weakRef)
}

// weakRef is a type-erased weak pointer. The pointee type is recorded so the
// original interface value can be reconstructed on a cache hit.
type weakRef struct {
	typ reflect.Type
	ptr weak.Pointer[byte]
}

func makeWeakRef(instance any) (weakRef, bool) {
	rv := reflect.ValueOf(instance)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return weakRef{}, false
	}

	return weakRef{
		typ: rv.Type(),
		ptr: weak.Make((*byte)(rv.UnsafePointer())),
	}, true
}

func (r weakRef) value() (any, bool) {
	p := r.ptr.Value()
	if p == nil {
		return nil, false
	}

	return reflect.NewAt(r.typ.Elem(), unsafe.Pointer(p)).Interface(), true
}
