package registry

import (
	"fmt"
	"sync"

	"github.com/safing/portcrypt/log"
)

// TableSize is the number of slots of every descriptor table.
const TableSize = 32

// Descriptor is implemented by every registrable algorithm description.
type Descriptor interface {
	Name() string
}

// Entry is a snapshot of an occupied slot.
type Entry[D Descriptor] struct {
	Index      int
	Descriptor D
}

// Table is a fixed size slot array of descriptors of one algorithm family.
// It is safe for concurrent use.
type Table[D Descriptor] struct {
	family string

	lock  sync.Mutex
	slots [TableSize]*D
}

// NewTable returns an empty table. The family name is only used in logs and
// error messages.
func NewTable[D Descriptor](family string) *Table[D] {
	return &Table[D]{
		family: family,
	}
}

// Family returns the family name of the table.
func (t *Table[D]) Family() string {
	return t.family
}

// Register adds the descriptor to the table and returns its index. If a
// descriptor with identical content is already registered, its index is
// returned and no slot is consumed.
func (t *Table[D]) Register(d D) (int, error) {
	if isNil(d) {
		return -1, fmt.Errorf("%w: nil %s descriptor", ErrInvalidArgument, t.family)
	}
	name := d.Name()
	if name == "" {
		return -1, fmt.Errorf("%w: %s descriptor without name", ErrInvalidArgument, t.family)
	}

	idx, added, err := t.register(d)
	if err != nil {
		return -1, err
	}
	if added {
		log.Debugf("registry: registered %s %s at index %d", t.family, name, idx)
	}
	return idx, nil
}

func (t *Table[D]) register(d D) (idx int, added bool, err error) {
	t.lock.Lock()
	defer t.lock.Unlock()

	// is it already registered?
	for i, slot := range t.slots {
		if slot != nil && sameDescriptor(*slot, d) {
			return i, false, nil
		}
	}

	// find a blank spot
	for i, slot := range t.slots {
		if slot == nil {
			stored := d
			t.slots[i] = &stored
			return i, true, nil
		}
	}

	return -1, false, fmt.Errorf("%w: no free %s slot for %s", ErrFull, t.family, d.Name())
}

// Unregister clears the slot at idx. Other slots are not moved.
func (t *Table[D]) Unregister(idx int) error {
	t.lock.Lock()
	if !t.occupied(idx) {
		t.lock.Unlock()
		return ErrInvalidIndex
	}
	name := (*t.slots[idx]).Name()
	t.slots[idx] = nil
	t.lock.Unlock()

	log.Debugf("registry: unregistered %s %s from index %d", t.family, name, idx)
	return nil
}

// UnregisterDescriptor clears the slot holding a descriptor with content
// identical to d.
func (t *Table[D]) UnregisterDescriptor(d D) error {
	if isNil(d) {
		return fmt.Errorf("%w: nil %s descriptor", ErrInvalidArgument, t.family)
	}

	t.lock.Lock()
	defer t.lock.Unlock()

	for i, slot := range t.slots {
		if slot != nil && sameDescriptor(*slot, d) {
			t.slots[i] = nil
			return nil
		}
	}
	return ErrNotFound
}

// Find returns the index of the first descriptor with the exact given name.
func (t *Table[D]) Find(name string) (int, error) {
	if name == "" {
		return -1, ErrInvalidArgument
	}

	t.lock.Lock()
	defer t.lock.Unlock()

	for i, slot := range t.slots {
		if slot != nil && (*slot).Name() == name {
			return i, nil
		}
	}
	return -1, ErrNotFound
}

// FindFunc returns the first occupied slot for which match returns true.
// match is called with the table lock held and must not call into the table.
func (t *Table[D]) FindFunc(match func(D) bool) (int, D, error) {
	t.lock.Lock()
	defer t.lock.Unlock()

	for i, slot := range t.slots {
		if slot != nil && match(*slot) {
			return i, *slot, nil
		}
	}
	var empty D
	return -1, empty, ErrNotFound
}

// Lookup returns the index and the descriptor registered under name.
func (t *Table[D]) Lookup(name string) (int, D, error) {
	if name == "" {
		var empty D
		return -1, empty, ErrInvalidArgument
	}
	return t.FindFunc(func(d D) bool {
		return d.Name() == name
	})
}

// Validate checks that idx points to an occupied slot.
func (t *Table[D]) Validate(idx int) error {
	t.lock.Lock()
	defer t.lock.Unlock()

	if !t.occupied(idx) {
		return ErrInvalidIndex
	}
	return nil
}

// Get returns the descriptor at idx.
func (t *Table[D]) Get(idx int) (D, error) {
	t.lock.Lock()
	defer t.lock.Unlock()

	if !t.occupied(idx) {
		var empty D
		return empty, ErrInvalidIndex
	}
	return *t.slots[idx], nil
}

// Entries returns a snapshot of all occupied slots in index order.
func (t *Table[D]) Entries() []Entry[D] {
	t.lock.Lock()
	defer t.lock.Unlock()

	entries := make([]Entry[D], 0, TableSize)
	for i, slot := range t.slots {
		if slot != nil {
			entries = append(entries, Entry[D]{
				Index:      i,
				Descriptor: *slot,
			})
		}
	}
	return entries
}

// Len returns the number of occupied slots.
func (t *Table[D]) Len() int {
	t.lock.Lock()
	defer t.lock.Unlock()

	var n int
	for _, slot := range t.slots {
		if slot != nil {
			n++
		}
	}
	return n
}

// Reset empties all slots.
func (t *Table[D]) Reset() {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.slots = [TableSize]*D{}
}

// occupied must be called with the lock held.
func (t *Table[D]) occupied(idx int) bool {
	return idx >= 0 && idx < TableSize && t.slots[idx] != nil
}
