package heap

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/heapsim/memutils"
	"github.com/vkngwrapper/heapsim/memutils/store"
	"golang.org/x/exp/slog"
)

// ReservationSize is the size of the segment reserved for a request of count words. A reserved
// segment needs its two tags, and must also be able to hold a full free-list node in case it is
// released later with no free neighbor to merge into.
func ReservationSize(count int) int {
	return memutils.Max(count+store.ReservedOverhead, store.FreeOverhead)
}

// Request reserves count words of the heap. An error is returned only when count is out of range;
// a heap with no free segment large enough produces a RequestResult with Success set to false.
//
// Request panics if the strategy returns a segment that is not free or is too small, since
// continuing would corrupt the heap.
func (m *Manager) Request(count int) (RequestResult, error) {
	result := RequestResult{Handle: store.Null}

	if count < 1 || count > m.words.Len() {
		return result, errors.Wrapf(memutils.ErrInvalidRequestSize, "count is %d, capacity is %d", count, m.words.Len())
	}

	reservation := ReservationSize(count)
	segment, examined, found := m.strategy.FindSegment(m.head, m.words, reservation)
	result.SegmentsExamined = examined

	if !found {
		m.searchStats.AddSearch(examined, false)
		m.logger.Debug("Manager::Request no segment found",
			slog.Int("Count", count),
			slog.Int("SegmentsExamined", examined),
		)
		return result, nil
	}

	m.checkStrategyResult(segment, reservation)
	m.searchStats.AddSearch(examined, true)

	segmentSize := m.words.SegmentSize(segment)
	reserved := segment
	reservedSize := segmentSize

	remaining := segmentSize - reservation
	if remaining >= store.FreeOverhead {
		// Reserve the back of the segment. The front keeps its address and its links, so the
		// free list needs no rewiring.
		m.words.WriteFreeTags(segment, remaining)
		reserved = segment + remaining
		reservedSize = reservation
	} else {
		m.unlink(segment)
		m.freeCount--
	}

	m.words.WriteReservedTags(reserved, reservedSize)
	m.sumFreeSize -= reservedSize
	if m.zeroPayloads() {
		m.words.Clear(reserved+1, reserved+reservedSize-1)
	}

	result.Success = true
	result.Handle = reserved + store.HandleOffset
	m.liveHandles.Put(result.Handle, count)

	m.logger.Debug("Manager::Request",
		slog.Int("Count", count),
		slog.Int("Handle", result.Handle),
		slog.Int("SegmentSize", reservedSize),
		slog.Int("SegmentsExamined", examined),
	)

	m.validateMutation("Request")
	return result, nil
}

func (m *Manager) checkStrategyResult(segment int, reservation int) {
	if segment == store.Null || !m.words.Contains(segment) {
		m.invariantViolation(errors.AssertionFailedf("strategy %s returned address %d, which is not in the heap", m.strategyName, segment))
	}

	if !m.words.IsFree(segment) {
		m.invariantViolation(errors.AssertionFailedf("strategy %s returned segment at %d, which is not free", m.strategyName, segment))
	}

	size := m.words.SegmentSize(segment)
	if size < reservation {
		m.invariantViolation(errors.AssertionFailedf("strategy %s returned segment at %d of size %d, but at least %d was required", m.strategyName, segment, size, reservation))
	}

	if segment+size > m.words.Len() {
		m.invariantViolation(errors.AssertionFailedf("strategy %s returned segment at %d of size %d, which runs past the end of the heap", m.strategyName, segment, size))
	}
}

// unlink removes the free segment at segment from the free list. Its own links are left as they are.
func (m *Manager) unlink(segment int) {
	next := m.words.Next(segment)
	if next == segment {
		m.head = store.Null
		return
	}

	prev := m.words.Prev(segment)
	m.words.SetNext(prev, next)
	m.words.SetPrev(next, prev)

	if m.head == segment {
		m.head = next
	}
}
