package gsm

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/willf/bitset"
)

// String creates a long multi-line string which illustrates the manager
// in a pretty and human-readable format
func (m *SlabManager) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "-------------------------------\n")
	fmt.Fprintf(&b, "Slot Count: %d\n", len(m.slots))
	fmt.Fprintf(&b, "Capacity: %d\n", cap(m.slots))
	fmt.Fprintf(&b, "Empty Count: %d\n", m.emptyCnt)
	fmt.Fprintf(&b, "Filled Count: %d\n", m.filledCnt)

	for i := range m.slots {
		state := "in use"
		if m.slots[i].empty {
			state = "empty"
		}
		fmt.Fprintf(&b, "% 03d: %s (prev %s, next %s)\n", i, state, indexString(m.slots[i].prev), indexString(m.slots[i].next))
	}

	fmt.Fprintf(&b, "empty list [head = %s]:", indexString(m.emptyHead))
	for i := m.emptyHead; i != NullIndex; i = m.slots[i].next {
		fmt.Fprintf(&b, " %d", i)
	}
	fmt.Fprintf(&b, "\n")

	fmt.Fprintf(&b, "filled list [head = %s]:", indexString(m.filledHead))
	for i := m.filledHead; i != NullIndex; i = m.slots[i].next {
		fmt.Fprintf(&b, " %d", i)
	}
	fmt.Fprintf(&b, "\n")

	return b.String()
}

// indexString formats an index for the String dump, showing the
// reserved "no slot" value as "null" instead of a huge number
func indexString(ind Index) string {
	if ind == NullIndex {
		return "null"
	}
	return fmt.Sprintf("%d", ind)
}

// checkIntegrity walks both lists and verifies that the bookkeeping is
// consistent: cached counts match the true list lengths, the flags of
// the visited slots agree with the list that owns them, links are
// symmetric, and the two walks together visit every slot exactly once.
// It returns nil if everything holds, otherwise an error describing
// the first violation found.
func (m *SlabManager) checkIntegrity() error {
	visited := bitset.New(uint(len(m.slots)))

	emptyLen, err := m.checkList(m.emptyHead, true, visited)
	if err != nil {
		return err
	}
	if emptyLen != m.emptyCnt {
		return errors.Errorf("empty list has %d slots but emptyCnt is %d", emptyLen, m.emptyCnt)
	}

	filledLen, err := m.checkList(m.filledHead, false, visited)
	if err != nil {
		return err
	}
	if filledLen != m.filledCnt {
		return errors.Errorf("filled list has %d slots but filledCnt is %d", filledLen, m.filledCnt)
	}

	if visited.Count() != uint(len(m.slots)) {
		return errors.Errorf("lists cover %d of %d slots", visited.Count(), len(m.slots))
	}

	return nil
}

// checkList walks one list from the given head and verifies the link
// and flag invariants of every slot on it. Slots get marked in the
// visited bitset; finding an already marked slot means the lists
// overlap or a list contains a cycle.
// It returns the number of slots on the list.
func (m *SlabManager) checkList(head Index, wantEmpty bool, visited *bitset.BitSet) (uint, error) {
	count := uint(0)
	prev := NullIndex

	for i := head; i != NullIndex; i = m.slots[i].next {
		if i >= Index(len(m.slots)) {
			return count, errors.Errorf("list link points at slot %d of %d", i, len(m.slots))
		}
		if visited.Test(i) {
			return count, errors.Errorf("slot %d is on a list twice", i)
		}
		visited.Set(i)

		if m.slots[i].empty != wantEmpty {
			return count, errors.Errorf("slot %d has empty=%t but is on the empty=%t list", i, m.slots[i].empty, wantEmpty)
		}
		if m.slots[i].prev != prev {
			return count, errors.Errorf("slot %d has prev %s, want %s", i, indexString(m.slots[i].prev), indexString(prev))
		}

		prev = i
		count++
	}

	return count, nil
}
