package alembic

import "sync"

// overrideMu serializes every override-stack mutation and every override
// lookup during resolution, across all containers. Override installation and
// resolution race between test and production goroutines, so one process-wide
// lock keeps them coherent.
var overrideMu sync.Mutex

// overrideStack holds per-container factory overrides in a stack of frames.
// The base frame always exists. Tests push a frame, install overrides, assert
// and pop, restoring exactly the pre-test registrations without tracking
// which keys were touched.
type overrideStack struct {
	frames []map[TypeKey]Factory
}

func newOverrideStack() *overrideStack {
	return &overrideStack{
		frames: []map[TypeKey]Factory{{}},
	}
}

func (s *overrideStack) top() map[TypeKey]Factory {
	return s.frames[len(s.frames)-1]
}

// lookup returns the override factory for key in the current top frame.
func (s *overrideStack) lookup(key TypeKey) (Factory, bool) {
	overrideMu.Lock()
	defer overrideMu.Unlock()

	factory, ok := s.top()[key]

	return factory, ok
}

func (s *overrideStack) set(key TypeKey, factory Factory) {
	overrideMu.Lock()
	defer overrideMu.Unlock()

	s.top()[key] = factory
}

// remove drops the override for key from the top frame, restoring the
// original factory. It reports whether an override was present.
func (s *overrideStack) remove(key TypeKey) bool {
	overrideMu.Lock()
	defer overrideMu.Unlock()

	_, ok := s.top()[key]
	delete(s.top(), key)

	return ok
}

// push duplicates the current top frame so subsequent overrides and resets
// mutate only the copy.
func (s *overrideStack) push() {
	overrideMu.Lock()
	defer overrideMu.Unlock()

	frame := make(map[TypeKey]Factory, len(s.top()))
	for key, factory := range s.top() {
		frame[key] = factory
	}

	s.frames = append(s.frames, frame)
}

// pop discards the top frame and restores the previous one. Popping with only
// the base frame remaining is a no-op. It returns the keys whose override
// status may have changed, so the caller can evict their cache entries.
func (s *overrideStack) pop() []TypeKey {
	overrideMu.Lock()
	defer overrideMu.Unlock()

	if len(s.frames) == 1 {
		return nil
	}

	discarded := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]

	touched := make(map[TypeKey]struct{}, len(discarded))
	for key := range discarded {
		touched[key] = struct{}{}
	}

	for key := range s.top() {
		touched[key] = struct{}{}
	}

	keys := make([]TypeKey, 0, len(touched))
	for key := range touched {
		keys = append(keys, key)
	}

	return keys
}

// clear empties the top frame without changing the stack depth and returns
// the keys that were overridden.
func (s *overrideStack) clear() []TypeKey {
	overrideMu.Lock()
	defer overrideMu.Unlock()

	frame := s.top()

	keys := make([]TypeKey, 0, len(frame))
	for key := range frame {
		keys = append(keys, key)
	}

	s.frames[len(s.frames)-1] = make(map[TypeKey]Factory)

	return keys
}
