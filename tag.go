package alembic

import "sort"

// taggedBinding is one entry of the tag index: a reference to a binding by
// key, carrying its ordering priority and optional alias. The tag index and
// the binding registry are independently owned maps; removing or replacing a
// binding does not remove its tag entries, stale entries are skipped at
// resolution time instead.
type taggedBinding struct {
	key      TypeKey
	priority int
	alias    string
	seq      int // insertion order, tie-break for equal priorities
}

// tagSet holds the tagged bindings registered under one tag. The (tag, key)
// pair is unique: re-tagging the same binding replaces its priority and alias
// but keeps its original insertion position.
type tagSet struct {
	entries map[TypeKey]*taggedBinding
	nextSeq int
}

func newTagSet() *tagSet {
	return &tagSet{
		entries: make(map[TypeKey]*taggedBinding),
	}
}

func (ts *tagSet) upsert(key TypeKey, opts tagOptions) {
	if entry, ok := ts.entries[key]; ok {
		entry.priority = opts.priority
		entry.alias = opts.alias

		return
	}

	ts.entries[key] = &taggedBinding{
		key:      key,
		priority: opts.priority,
		alias:    opts.alias,
		seq:      ts.nextSeq,
	}
	ts.nextSeq++
}

// sorted returns the entries ordered by ascending priority, insertion order
// breaking ties.
func (ts *tagSet) sorted() []taggedBinding {
	entries := make([]taggedBinding, 0, len(ts.entries))
	for _, entry := range ts.entries {
		entries = append(entries, *entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].priority != entries[j].priority {
			return entries[i].priority < entries[j].priority
		}

		return entries[i].seq < entries[j].seq
	})

	return entries
}
