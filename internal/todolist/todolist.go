// Package todolist keeps to-do entries unique by name and sorted by name.
package todolist

import (
	"iter"

	"github.com/google/btree"
)

const degree = 8

type Entry struct {
	Name        string
	Description string
	Completed   bool
}

func byName(a, b Entry) bool {
	return a.Name < b.Name
}

// List is an ordered set of entries keyed by name. The zero value is not
// usable; call New.
type List struct {
	tree *btree.BTreeG[Entry]
}

func New() *List {
	return &List{tree: btree.NewG[Entry](degree, byName)}
}

// Clone returns an independent copy of l. Unlike CopyFrom it always copies,
// including when l is empty.
func (l *List) Clone() *List {
	return &List{tree: l.tree.Clone()}
}

// CopyFrom replaces the contents of l with an independent copy of other.
//
// When other is empty, l is left untouched rather than cleared. Callers
// rely on this: saving an empty list keeps the previous snapshot, and
// loading an empty snapshot keeps the current list.
func (l *List) CopyFrom(other *List) {
	if other == l || other.Len() == 0 {
		return
	}
	l.tree = other.tree.Clone()
}

// Add inserts a new unchecked entry, or overwrites the description of an
// existing one and unchecks it.
func (l *List) Add(name, description string) {
	l.tree.ReplaceOrInsert(Entry{Name: name, Description: description})
}

func (l *List) Remove(name string) {
	l.tree.Delete(Entry{Name: name})
}

func (l *List) Check(name string) {
	l.setCompleted(name, true)
}

func (l *List) Uncheck(name string) {
	l.setCompleted(name, false)
}

// setCompleted walks every entry instead of looking the name up, so a
// future relaxation of name uniqueness still marks all matches.
func (l *List) setCompleted(name string, completed bool) {
	var matches []Entry
	l.tree.Ascend(func(e Entry) bool {
		if e.Name == name {
			matches = append(matches, e)
		}
		return true
	})
	for _, e := range matches {
		e.Completed = completed
		l.tree.ReplaceOrInsert(e)
	}
}

func (l *List) Get(name string) (Entry, bool) {
	return l.tree.Get(Entry{Name: name})
}

func (l *List) Contains(name string) bool {
	return l.tree.Has(Entry{Name: name})
}

func (l *List) Len() int {
	return l.tree.Len()
}

func (l *List) Clear() {
	l.tree.Clear(false)
}

// Entries yields a snapshot of every entry in ascending name order. The
// sequence can be ranged over any number of times.
func (l *List) Entries() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		l.tree.Ascend(func(e Entry) bool {
			return yield(e)
		})
	}
}

// Slice collects Entries into a new slice.
func (l *List) Slice() []Entry {
	out := make([]Entry, 0, l.Len())
	for e := range l.Entries() {
		out = append(out, e)
	}
	return out
}
