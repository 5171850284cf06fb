package sat

// OccLists maps each Lit to a list of T with lazy deletion: entries that the
// isDeleted predicate flags as gone are not removed eagerly. Instead, the
// literal is added to a "smudge" set and the list is compacted the next
// time it is looked up (or when CleanAll is called, e.g. before a garbage
// collection walks every list).
type OccLists[T any] struct {
	lists     [][]T
	dirty     []bool
	dirties   []Lit
	isDeleted func(T) bool
}

// NewOccLists returns an empty OccLists. isDeleted decides, for a given
// entry, whether it refers to a clause that has since been removed.
func NewOccLists[T any](isDeleted func(T) bool) *OccLists[T] {
	return &OccLists[T]{isDeleted: isDeleted}
}

// Init ensures storage exists for literal l (called once per literal when
// its variable is created).
func (o *OccLists[T]) Init(l Lit) {
	o.ensure(l)
}

func (o *OccLists[T]) ensure(l Lit) {
	for len(o.lists) <= int(l) {
		o.lists = append(o.lists, nil)
		o.dirty = append(o.dirty, false)
	}
}

// Push appends v to l's list.
func (o *OccLists[T]) Push(l Lit, v T) {
	o.ensure(l)
	o.lists[l] = append(o.lists[l], v)
}

// Smudge records that l's list contains entries that may need cleaning.
func (o *OccLists[T]) Smudge(l Lit) {
	o.ensure(l)
	if !o.dirty[l] {
		o.dirty[l] = true
		o.dirties = append(o.dirties, l)
	}
}

// Lookup returns l's list, compacting away deleted entries first if l was
// smudged since the last lookup.
func (o *OccLists[T]) Lookup(l Lit) []T {
	o.ensure(l)
	if o.dirty[l] {
		o.clean(l)
	}
	return o.lists[l]
}

// Raw returns l's list without cleaning it. Used by garbage collection after
// a prior CleanAll, which has already compacted every list; Raw then avoids
// a redundant per-literal dirty check while rewriting each watcher's CRef in
// place.
func (o *OccLists[T]) Raw(l Lit) []T {
	o.ensure(l)
	return o.lists[l]
}

// Set replaces l's list outright.
func (o *OccLists[T]) Set(l Lit, list []T) {
	o.ensure(l)
	o.lists[l] = list
}

// Clear empties l's list in place.
func (o *OccLists[T]) Clear(l Lit) {
	o.ensure(l)
	o.lists[l] = o.lists[l][:0]
}

func (o *OccLists[T]) clean(l Lit) {
	lst := o.lists[l]
	j := 0
	for i := range lst {
		if !o.isDeleted(lst[i]) {
			lst[j] = lst[i]
			j++
		}
	}
	o.lists[l] = lst[:j]
	o.dirty[l] = false
}

// CleanAll compacts every smudged list. Used before a garbage collection
// walks watch lists, so that no entry referencing a removed clause survives
// the relocation pass.
func (o *OccLists[T]) CleanAll() {
	for _, l := range o.dirties {
		if o.dirty[l] {
			o.clean(l)
		}
	}
	o.dirties = o.dirties[:0]
}
