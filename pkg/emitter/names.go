package emitter

import "strconv"

// nameTable spells every entity as <name>_<n>. Numbers are handed out in
// first-reference order and never reused within one emission, so source
// names that are reserved words in the host language stay legal.
type nameTable struct {
	ids  map[any]int
	next int
}

func newNameTable() *nameTable {
	return &nameTable{ids: make(map[any]int)}
}

// name returns the memoized spelling for entity.
func (t *nameTable) name(entity any, base string) string {
	id, ok := t.ids[entity]
	if !ok {
		t.next++
		id = t.next
		t.ids[entity] = id
	}
	return base + "_" + strconv.Itoa(id)
}

// fresh returns a name no entity and no other call will get.
func (t *nameTable) fresh(base string) string {
	t.next++
	return base + "_" + strconv.Itoa(t.next)
}

func (t *nameTable) size() int { return len(t.ids) }
