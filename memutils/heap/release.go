package heap

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/heapsim/memutils"
	"github.com/vkngwrapper/heapsim/memutils/store"
	"golang.org/x/exp/slog"
)

// Release frees an allocation previously returned by Request, merging it with any free segments
// physically adjacent to it. Releasing a handle that is not live in this manager returns an error
// and leaves the heap untouched.
func (m *Manager) Release(handle int) error {
	segment := handle - store.HandleOffset
	if !m.words.Contains(segment) {
		return errors.Wrapf(memutils.ErrInvalidHandle, "handle %d is outside of the heap", handle)
	}

	if !m.words.IsReserved(segment) {
		return errors.Wrapf(memutils.ErrNotReserved, "handle %d", handle)
	}

	if _, live := m.liveHandles.Get(handle); !live {
		return errors.Wrapf(memutils.ErrInvalidHandle, "handle %d was not returned by this manager", handle)
	}

	size := m.words.SegmentSize(segment)
	if segment+size > m.words.Len() || m.words.Word(segment+size-1) != size {
		m.invariantViolation(errors.AssertionFailedf("reserved segment at %d has mismatched boundary tags", segment))
	}

	left, hasLeft := m.words.LeftNeighbor(segment)
	leftFree := hasLeft && m.words.IsFree(left)
	right, hasRight := m.words.RightNeighbor(segment)
	rightFree := hasRight && m.words.IsFree(right)

	coalesced := segment
	coalescedSize := size

	switch {
	case leftFree && rightFree:
		// The right neighbor leaves the list and everything is folded into the left neighbor,
		// which keeps its place in the list
		rightSize := m.words.SegmentSize(right)
		m.unlink(right)
		m.freeCount--

		m.eraseTags(segment-1, segment, segment+size-1)
		m.eraseHeader(right)

		coalesced = left
		coalescedSize = m.words.SegmentSize(left) + size + rightSize
		m.words.WriteFreeTags(coalesced, coalescedSize)

	case rightFree:
		// The released segment takes over the right neighbor's place in the list
		rightSize := m.words.SegmentSize(right)
		next := m.words.Next(right)
		prev := m.words.Prev(right)

		m.eraseTags(segment + size - 1)
		m.eraseHeader(right)

		coalescedSize = size + rightSize
		m.words.WriteFreeTags(coalesced, coalescedSize)

		if next == right {
			m.words.SetNext(coalesced, coalesced)
			m.words.SetPrev(coalesced, coalesced)
		} else {
			m.words.SetNext(coalesced, next)
			m.words.SetPrev(coalesced, prev)
			m.words.SetPrev(next, coalesced)
			m.words.SetNext(prev, coalesced)
		}

		if m.head == right {
			m.head = coalesced
		}

	case leftFree:
		// The left neighbor grows in place and keeps its place in the list
		m.eraseTags(segment-1, segment)

		coalesced = left
		coalescedSize = m.words.SegmentSize(left) + size
		m.words.WriteFreeTags(coalesced, coalescedSize)

	default:
		m.words.WriteFreeTags(coalesced, coalescedSize)
		m.pushFront(coalesced)
		m.freeCount++
	}

	m.sumFreeSize += size
	if m.zeroPayloads() {
		m.words.Clear(coalesced+store.FreeOverhead-1, coalesced+coalescedSize-1)
	}

	m.liveHandles.Delete(handle)

	m.logger.Debug("Manager::Release",
		slog.Int("Handle", handle),
		slog.Int("SegmentSize", size),
		slog.Int("CoalescedAddress", coalesced),
		slog.Int("CoalescedSize", coalescedSize),
	)

	m.validateMutation("Release")
	return nil
}

// pushFront makes the free segment at segment the new head of the free list
func (m *Manager) pushFront(segment int) {
	if m.head == store.Null {
		m.words.SetNext(segment, segment)
		m.words.SetPrev(segment, segment)
		m.head = segment
		return
	}

	tail := m.words.Prev(m.head)
	m.words.SetNext(segment, m.head)
	m.words.SetPrev(segment, tail)
	m.words.SetNext(tail, segment)
	m.words.SetPrev(m.head, segment)
	m.head = segment
}

// eraseTags zeroes boundary tags that have been absorbed into a larger segment, so that nothing
// that remembers an old address (such as a next-fit cursor) can mistake it for a live segment
func (m *Manager) eraseTags(addrs ...int) {
	for _, addr := range addrs {
		m.words.SetWord(addr, 0)
	}
}

// eraseHeader zeroes the size tag and links of an absorbed free segment
func (m *Manager) eraseHeader(segment int) {
	m.words.Clear(segment, segment+store.FreeOverhead-1)
}
