package heap

import (
	"github.com/vkngwrapper/heapsim/memutils"
	"github.com/vkngwrapper/heapsim/memutils/store"
)

// SegmentType indicates whether a segment is free or reserved
type SegmentType uint32

const (
	SegmentFree SegmentType = iota
	SegmentReserved
)

var segmentTypeMapping = map[SegmentType]string{
	SegmentFree:     "FREE",
	SegmentReserved: "RESERVED",
}

func (t SegmentType) String() string {
	return segmentTypeMapping[t]
}

// Segment describes a single free or reserved region of the heap
type Segment struct {
	Offset int
	Size   int
	Type   SegmentType

	// Handle and Requested are only set for reserved segments. Requested is the word count that
	// was passed to Request, which may be smaller than Size minus the bookkeeping words.
	Handle    int
	Requested int

	// Next and Prev are only set for free segments
	Next int
	Prev int
}

// VisitAllSegments calls the provided callback once for each segment in the heap, in address order.
// If the callback returns an error, the walk stops and the error is returned.
func (m *Manager) VisitAllSegments(visit func(segment Segment) error) error {
	for offset := 0; offset < m.words.Len(); {
		size := m.words.SegmentSize(offset)

		segment := Segment{
			Offset: offset,
			Size:   size,
			Handle: store.Null,
			Next:   store.Null,
			Prev:   store.Null,
		}

		if m.words.IsFree(offset) {
			segment.Type = SegmentFree
			segment.Next = m.words.Next(offset)
			segment.Prev = m.words.Prev(offset)
		} else {
			segment.Type = SegmentReserved
			segment.Handle = offset + store.HandleOffset
			segment.Requested, _ = m.liveHandles.Get(segment.Handle)
		}

		err := visit(segment)
		if err != nil {
			return err
		}

		if size == 0 {
			// An empty tag would otherwise stall the walk; Validate reports it
			break
		}
		offset += size
	}

	return nil
}

// AddDetailedStatistics sums this heap's statistics into the statistics currently present
// in the provided memutils.DetailedStatistics object.
func (m *Manager) AddDetailedStatistics(stats *memutils.DetailedStatistics) {
	stats.HeapCount++
	stats.HeapWords += m.words.Len()

	_ = m.VisitAllSegments(func(segment Segment) error {
		if segment.Type == SegmentFree {
			stats.AddFreeSegment(segment.Size)
		} else {
			stats.AddAllocation(segment.Size, segment.Requested)
		}
		return nil
	})
}

// AddStatistics sums this heap's statistics into the statistics currently present in the
// provided memutils.Statistics object.
func (m *Manager) AddStatistics(stats *memutils.Statistics) {
	stats.HeapCount++
	stats.AllocationCount += m.liveHandles.Count()
	stats.HeapWords += m.words.Len()
	stats.AllocationWords += m.SumReservedSize()
}
