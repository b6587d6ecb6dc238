package gsm

// Clone returns an independent deep copy of the manager. The backing
// slice is duplicated, so mutations of the copy never affect the
// original. All indices valid on the original are valid on the copy,
// because list links are slice-relative.
func (m *SlabManager) Clone() *SlabManager {
	dup := *m
	dup.slots = make([]slot, len(m.slots), cap(m.slots))
	copy(dup.slots, m.slots)
	return &dup
}

// Move transfers ownership of the backing slice and all bookkeeping to
// a newly returned manager. The receiver is reset to the same state as
// a freshly constructed manager with one free slot, so it stays usable.
func (m *SlabManager) Move() *SlabManager {
	moved := &SlabManager{}
	*moved = *m

	m.slots = make([]slot, 1)
	m.initialize()

	return moved
}
