package gsm

import (
	"math"

	"github.com/pkg/errors"
)

// Index identifies a slot by its position in the backing slice.
// Indices returned by Acquire stay valid until the slot is given back,
// no matter how many other slots get acquired, released or added in
// the meantime.
type Index = uint

// NullIndex is the reserved "no such slot" value. It is the maximum
// value of the index type rather than 0, because 0 is a valid index
// (the first slot). Callers can use it to store "no slot" in their
// own structures.
const NullIndex = ^Index(0)

// ErrIndexOutOfRange is returned when a given index does not refer to
// any slot, i.e. it is >= Size()
var ErrIndexOutOfRange = errors.New("index out of range")

// ErrSlotNotAcquired is returned by GiveBack when the slot at the given
// index is already free, which means the caller is releasing a handle
// twice or never acquired it in the first place
var ErrSlotNotAcquired = errors.New("slot not acquired")

// slot is one element of the backing slice. prev and next thread it
// into whichever of the two lists (free or occupied) currently owns it
type slot struct {
	empty bool
	prev  Index
	next  Index
}

// SlabManager hands out stable integer indices to slots and tracks
// which of them are in use. Two intrusive doubly linked lists, one of
// free slots and one of occupied slots, are threaded through a single
// backing slice via the slots' own link fields, so every slot belongs
// to exactly one list at any time.
//
// A SlabManager must not be mutated from multiple goroutines without
// external locking.
type SlabManager struct {
	slots []slot

	emptyHead  Index
	filledHead Index

	emptyCnt  uint
	filledCnt uint

	growthFactor float64
}

// New initializes a new slab manager using the default configuration,
// it starts out with a single free slot
func New() *SlabManager {
	return NewWithConfig(Config)
}

// NewSized initializes a new slab manager with n free slots (min 1)
func NewSized(n uint) *SlabManager {
	cfg := Config
	cfg.InitialSlots = n
	return NewWithConfig(cfg)
}

// NewWithConfig initializes a new slab manager based on the given
// configuration and returns a pointer to it
func NewWithConfig(cfg SlabManagerConfig) *SlabManager {
	n := cfg.InitialSlots
	if n < 1 {
		n = 1
	}

	m := &SlabManager{
		slots:        make([]slot, n),
		growthFactor: cfg.GrowthFactor,
	}
	m.initialize()

	return m
}

// initialize marks every slot of the backing slice as free and threads
// the free list through them in increasing index order, so slot 0
// becomes the free head. The occupied list becomes empty.
func (m *SlabManager) initialize() {
	n := len(m.slots)

	for i := 0; i < n; i++ {
		m.slots[i].empty = true
		if i == 0 {
			m.slots[i].prev = NullIndex
		} else {
			m.slots[i].prev = Index(i - 1)
		}
		if i == n-1 {
			m.slots[i].next = NullIndex
		} else {
			m.slots[i].next = Index(i + 1)
		}
	}

	m.emptyHead = 0
	m.filledHead = NullIndex

	m.emptyCnt = uint(n)
	m.filledCnt = 0
}

// pushFilled splices the slot at the given index to the front of the
// occupied list and marks it as in use. The slot must already be
// unlinked from the free list.
func (m *SlabManager) pushFilled(ind Index) {
	if m.filledHead != NullIndex {
		m.slots[m.filledHead].prev = ind
	}
	m.slots[ind].next = m.filledHead
	m.slots[ind].prev = NullIndex
	m.slots[ind].empty = false
	m.filledHead = ind
}

// pushEmpty splices the slot at the given index to the front of the
// free list and marks it as free. The slot must already be unlinked
// from the occupied list.
func (m *SlabManager) pushEmpty(ind Index) {
	if m.emptyHead != NullIndex {
		m.slots[m.emptyHead].prev = ind
	}
	m.slots[ind].next = m.emptyHead
	m.slots[ind].prev = NullIndex
	m.slots[ind].empty = true
	m.emptyHead = ind
}

// Acquire takes a free slot, marks it as in use and returns its index.
// The returned index stays valid until it is passed to GiveBack.
// If no slot is free, one new slot gets appended to the backing slice,
// growing the total slot count by exactly one. Acquire never fails;
// it is O(1) amortized.
func (m *SlabManager) Acquire() Index {
	if m.emptyHead != NullIndex {
		ind := m.emptyHead

		// move the free head to its successor
		m.emptyHead = m.slots[ind].next
		if m.emptyHead != NullIndex {
			m.slots[m.emptyHead].prev = NullIndex
		}

		m.pushFilled(ind)

		m.emptyCnt--
		m.filledCnt++

		return ind
	}

	// no free slot left, append a brand-new one
	ind := Index(len(m.slots))

	if len(m.slots) == cap(m.slots) && m.growthFactor > 1 {
		m.Reserve(uint(math.Ceil(m.growthFactor * float64(len(m.slots)+1))))
	}
	m.slots = append(m.slots, slot{})

	m.pushFilled(ind)
	m.filledCnt++

	return ind
}

// GiveBack returns a previously acquired slot to the manager for reuse.
// On success it returns nil, the slot is unlinked from the occupied
// list and spliced to the front of the free list.
// It returns ErrIndexOutOfRange if ind does not refer to any slot, and
// ErrSlotNotAcquired if the slot is already free. In both cases the
// manager is left unmodified.
func (m *SlabManager) GiveBack(ind Index) error {
	empty, err := m.IsSlotEmpty(ind)
	if err != nil {
		return errors.WithMessage(err, "GiveBack")
	}
	if empty {
		return errors.Wrapf(ErrSlotNotAcquired, "GiveBack: slot %d is already free", ind)
	}

	// unlink from the occupied list
	prev := m.slots[ind].prev
	next := m.slots[ind].next

	if next != NullIndex {
		m.slots[next].prev = prev
	}
	if prev != NullIndex {
		m.slots[prev].next = next
	} else {
		m.filledHead = next
	}

	m.pushEmpty(ind)

	m.filledCnt--
	m.emptyCnt++

	return nil
}

// IsSlotEmpty reports whether the slot at the given index is free.
// It returns ErrIndexOutOfRange if ind does not refer to any slot.
func (m *SlabManager) IsSlotEmpty(ind Index) (bool, error) {
	if ind >= Index(len(m.slots)) {
		return false, errors.Wrapf(ErrIndexOutOfRange, "IsSlotEmpty: index %d with %d slots", ind, len(m.slots))
	}
	return m.slots[ind].empty, nil
}

// Clear marks every slot as free and rebuilds the free list in index
// order, exactly like construction does, while keeping the current
// slot count. All previously returned indices stop being valid handles.
func (m *SlabManager) Clear() {
	m.initialize()
}

// Size returns the current number of slots, free and occupied combined
func (m *SlabManager) Size() uint {
	return uint(len(m.slots))
}

// Capacity returns the number of slots the backing slice can hold
// before it has to be reallocated. It is always >= Size().
func (m *SlabManager) Capacity() uint {
	return uint(cap(m.slots))
}

// EmptyCount returns the number of free slots
func (m *SlabManager) EmptyCount() uint {
	return m.emptyCnt
}

// FilledCount returns the number of occupied slots
func (m *SlabManager) FilledCount() uint {
	return m.filledCnt
}
