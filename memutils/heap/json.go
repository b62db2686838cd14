package heap

import (
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
)

// HeapJsonData populates a json object with summary information about this heap
func (m *Manager) HeapJsonData(json jwriter.ObjectState) {
	json.Name("TotalWords").Int(m.words.Len())
	json.Name("UnusedWords").Int(m.sumFreeSize)
	json.Name("Allocations").Int(m.liveHandles.Count())
	json.Name("UnusedRanges").Int(m.freeCount)
	json.Name("FreeListHead").Int(m.head)
}

// SearchJsonData populates a json object with the search cost accumulated by Request
func (m *Manager) SearchJsonData(json jwriter.ObjectState) {
	json.Name("Requests").Int(m.searchStats.Requests)
	json.Name("FailedRequests").Int(m.searchStats.FailedRequests)
	json.Name("SegmentsExamined").Int(m.searchStats.SegmentsExamined)
	json.Name("MaxSegmentsExamined").Int(m.searchStats.MaxSegmentsExamined)
	json.Name("AverageSegmentsExamined").Float64(m.searchStats.AverageSegmentsExamined())
}

// PrintDetailedMap writes every segment of the heap, in address order, into a json array
func (m *Manager) PrintDetailedMap(json jwriter.ObjectState) {
	arrayState := json.Name("Segments").Array()
	defer arrayState.End()

	_ = m.VisitAllSegments(func(segment Segment) error {
		obj := arrayState.Object()
		defer obj.End()

		obj.Name("Offset").Int(segment.Offset)
		obj.Name("Type").String(segment.Type.String())
		obj.Name("Size").Int(segment.Size)

		if segment.Type == SegmentFree {
			obj.Name("Next").Int(segment.Next)
			obj.Name("Prev").Int(segment.Prev)
		} else {
			obj.Name("Handle").Int(segment.Handle)
			obj.Name("Requested").Int(segment.Requested)
		}

		return nil
	})
}

// BuildStatsString produces a json document describing the heap. When detailed is true, every
// segment is listed as well.
func (m *Manager) BuildStatsString(detailed bool) string {
	writer := jwriter.NewWriter()

	obj := writer.Object()
	obj.Name("Strategy").String(m.strategyName)
	obj.Name("Flags").String(m.flags.String())

	heapObj := obj.Name("Heap").Object()
	m.HeapJsonData(heapObj)
	heapObj.End()

	searchObj := obj.Name("Search").Object()
	m.SearchJsonData(searchObj)
	searchObj.End()

	if detailed {
		m.PrintDetailedMap(obj)
	}

	obj.End()

	return string(writer.Bytes())
}
