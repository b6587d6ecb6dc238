package gsm

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// shrinkFixture builds a manager with 10 slots where slots 0-3 are
// free, 4-7 are occupied and 8-9 are free trailing slots, so a shrink
// request passes both the floor and the remaining-free-slots guard
func shrinkFixture() *SlabManager {
	m := NewSized(10)
	for i := 0; i < 8; i++ {
		m.Acquire()
	}
	for i := Index(0); i < 4; i++ {
		if err := m.GiveBack(i); err != nil {
			panic(err)
		}
	}
	return m
}

func TestResizeGrow(t *testing.T) {
	Convey("When growing a manager from 2 to 5 slots", t, func() {
		m := NewSized(2)
		m.Resize(5)

		So(m.Size(), ShouldEqual, 5)
		So(m.EmptyCount(), ShouldEqual, 5)
		So(m.FilledCount(), ShouldEqual, 0)
		So(m.checkIntegrity(), ShouldBeNil)

		Convey("the new slots should sit at the front of the free list", func() {
			So(m.Acquire(), ShouldEqual, 4)
			So(m.Acquire(), ShouldEqual, 3)
			So(m.Acquire(), ShouldEqual, 2)
			So(m.Acquire(), ShouldEqual, 0)
			So(m.Acquire(), ShouldEqual, 1)
			So(m.checkIntegrity(), ShouldBeNil)
		})
	})

	Convey("When resizing to the current size", t, func() {
		m := NewSized(3)
		m.Acquire()
		m.Resize(3)

		Convey("nothing should change", func() {
			So(m.Size(), ShouldEqual, 3)
			So(m.EmptyCount(), ShouldEqual, 2)
			So(m.FilledCount(), ShouldEqual, 1)
			So(m.checkIntegrity(), ShouldBeNil)
		})
	})
}

func TestResizeShrink(t *testing.T) {
	Convey("Given a manager with free slots on both sides of the highest occupied one", t, func() {
		m := shrinkFixture()
		So(m.Size(), ShouldEqual, 10)
		So(m.EmptyCount(), ShouldEqual, 6)

		Convey("a maximal shrink request should truncate down to the occupied floor", func() {
			m.Resize(1)

			So(m.Size(), ShouldEqual, 8)
			So(m.EmptyCount(), ShouldEqual, 4)
			So(m.FilledCount(), ShouldEqual, 4)
			So(m.checkIntegrity(), ShouldBeNil)

			Convey("held indices should survive the truncation", func() {
				for i := Index(4); i < 8; i++ {
					empty, err := m.IsSlotEmpty(i)
					So(err, ShouldBeNil)
					So(empty, ShouldBeFalse)
				}
			})

			Convey("and the rebuilt free list should be in increasing index order", func() {
				So(m.Acquire(), ShouldEqual, 0)
				So(m.Acquire(), ShouldEqual, 1)
				So(m.checkIntegrity(), ShouldBeNil)
			})
		})

		Convey("a shrink request above the floor should be honored exactly", func() {
			m.Resize(9)

			So(m.Size(), ShouldEqual, 9)
			So(m.EmptyCount(), ShouldEqual, 5)
			So(m.FilledCount(), ShouldEqual, 4)
			So(m.checkIntegrity(), ShouldBeNil)
		})

		Convey("ResizeToMin should behave like Resize(1)", func() {
			m.ResizeToMin()

			So(m.Size(), ShouldEqual, 8)
			So(m.checkIntegrity(), ShouldBeNil)
		})
	})

	Convey("When the last slot is occupied", t, func() {
		m := NewSized(4)
		for i := 0; i < 4; i++ {
			m.Acquire()
		}
		for i := Index(0); i < 3; i++ {
			So(m.GiveBack(i), ShouldBeNil)
		}

		Convey("a shrink request should be ignored", func() {
			m.Resize(1)

			So(m.Size(), ShouldEqual, 4)
			So(m.EmptyCount(), ShouldEqual, 3)
			So(m.checkIntegrity(), ShouldBeNil)
		})
	})

	Convey("When fewer than 4 free slots would remain in the kept range", t, func() {
		m := NewSized(4)
		m.Acquire()

		Convey("a shrink request should be ignored", func() {
			m.Resize(1)

			So(m.Size(), ShouldEqual, 4)
			So(m.EmptyCount(), ShouldEqual, 3)
			So(m.FilledCount(), ShouldEqual, 1)
			So(m.checkIntegrity(), ShouldBeNil)
		})
	})

	Convey("When no slot is occupied at all", t, func() {
		m := NewSized(8)

		Convey("shrinking should re-initialize at the requested size", func() {
			m.Resize(3)

			So(m.Size(), ShouldEqual, 3)
			So(m.EmptyCount(), ShouldEqual, 3)
			So(m.FilledCount(), ShouldEqual, 0)
			So(m.checkIntegrity(), ShouldBeNil)
			So(m.Acquire(), ShouldEqual, 0)
		})

		Convey("shrinking to 0 should leave the minimum of 1 slot", func() {
			m.Resize(0)

			So(m.Size(), ShouldEqual, 1)
			So(m.EmptyCount(), ShouldEqual, 1)
			So(m.checkIntegrity(), ShouldBeNil)
		})
	})
}

func TestReserve(t *testing.T) {
	Convey("When reserving capacity on a manager with used slots", t, func() {
		m := NewSized(3)
		m.Acquire()
		m.Reserve(64)

		Convey("the capacity should grow but the logical state stay untouched", func() {
			So(m.Capacity(), ShouldBeGreaterThanOrEqualTo, 64)
			So(m.Size(), ShouldEqual, 3)
			So(m.EmptyCount(), ShouldEqual, 2)
			So(m.FilledCount(), ShouldEqual, 1)
			So(m.checkIntegrity(), ShouldBeNil)
		})

		Convey("reserving less than the current capacity should do nothing", func() {
			capBefore := m.Capacity()
			m.Reserve(2)
			So(m.Capacity(), ShouldEqual, capBefore)
		})
	})
}

func TestShrinkToFit(t *testing.T) {
	Convey("When a manager carries spare capacity", t, func() {
		m := NewSized(3)
		m.Acquire()
		m.Reserve(100)
		So(m.Capacity(), ShouldBeGreaterThanOrEqualTo, 100)

		Convey("ShrinkToFit should release it without touching the logical state", func() {
			m.ShrinkToFit()

			So(m.Capacity(), ShouldEqual, m.Size())
			So(m.Size(), ShouldEqual, 3)
			So(m.EmptyCount(), ShouldEqual, 2)
			So(m.FilledCount(), ShouldEqual, 1)
			So(m.checkIntegrity(), ShouldBeNil)
		})
	})
}
