package gsm

// Resize grows or shrinks the manager to newSize slots.
//
// Growing appends newSize - Size() fresh free slots and splices them
// onto the front of the free list one by one, so the last appended
// slot becomes the new free head.
//
// Shrinking is a non-binding request: no occupied slot is ever
// destroyed or moved. The slot count never drops below the highest
// occupied index plus one, and the request is silently ignored when
// the last slot is occupied or when fewer than 4 free slots would
// remain in the kept range. After a successful truncation the free
// list is rebuilt from scratch; the occupied list is untouched.
func (m *SlabManager) Resize(newSize uint) {
	ss := uint(len(m.slots))

	if newSize == ss {
		return
	}

	if newSize > ss {
		// upsize
		for i := ss; i < newSize; i++ {
			m.slots = append(m.slots, slot{})
			m.pushEmpty(Index(i))
		}
		m.emptyCnt += newSize - ss
		return
	}

	// downsize
	if newSize < 1 {
		newSize = 1
	}

	// scan backward for the highest occupied slot, counting the free
	// slots behind it. The counter is signed so the scan terminates
	// cleanly at slot 0.
	pos := NullIndex
	trailing := uint(0)
	for i := int(ss) - 1; i >= 0; i-- {
		if !m.slots[i].empty {
			pos = Index(i)
			break
		}
		trailing++
	}

	if pos == NullIndex {
		// nothing is occupied, re-initialize at the requested size
		m.slots = m.slots[:newSize]
		m.initialize()
		return
	}

	if pos == ss-1 {
		// the last slot is occupied, already minimal
		return
	}

	if m.emptyCnt-trailing < 4 {
		return
	}

	if newSize > uint(pos)+1 {
		m.slots = m.slots[:newSize]
	} else {
		m.slots = m.slots[:pos+1]
	}

	// rebuild the free list over the remaining slots. Pushing each free
	// slot to the front while scanning from the back leaves the list
	// threaded in increasing index order.
	m.emptyHead = NullIndex
	m.emptyCnt = 0
	for i := len(m.slots) - 1; i >= 0; i-- {
		if m.slots[i].empty {
			m.pushEmpty(Index(i))
			m.emptyCnt++
		}
	}
}

// Reserve grows the backing slice's capacity so it can hold at least n
// slots without reallocating. It never changes the slot count, the
// lists or the counts; it is purely a performance hint.
func (m *SlabManager) Reserve(n uint) {
	if n <= uint(cap(m.slots)) {
		return
	}

	grown := make([]slot, len(m.slots), n)
	copy(grown, m.slots)
	m.slots = grown
}

// ResizeToMin requests a maximal shrink. It is equivalent to Resize(1)
// and subject to the same occupied-slot floor and free-slot guard.
func (m *SlabManager) ResizeToMin() {
	m.Resize(1)
}

// ShrinkToFit releases reserved but unused capacity beyond the current
// slot count. It never changes the logical state of the manager.
func (m *SlabManager) ShrinkToFit() {
	if cap(m.slots) == len(m.slots) {
		return
	}

	exact := make([]slot, len(m.slots))
	copy(exact, m.slots)
	m.slots = exact
}
