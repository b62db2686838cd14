package memutils

import "math"

// Statistics holds word counts summed across one or more heaps
type Statistics struct {
	HeapCount       int
	AllocationCount int
	HeapWords       int
	AllocationWords int
}

func (s *Statistics) Clear() {
	s.HeapCount = 0
	s.AllocationCount = 0
	s.HeapWords = 0
	s.AllocationWords = 0
}

func (s *Statistics) AddStatistics(other *Statistics) {
	s.HeapCount += other.HeapCount
	s.AllocationCount += other.AllocationCount
	s.HeapWords += other.HeapWords
	s.AllocationWords += other.AllocationWords
}

// Utilization is the fraction of heap words currently reserved, including segment overhead
func (s *Statistics) Utilization() float64 {
	if s.HeapWords == 0 {
		return 0
	}
	return float64(s.AllocationWords) / float64(s.HeapWords)
}

// DetailedStatistics adds fragmentation figures to Statistics. Internal waste is every reserved
// word a caller did not ask for: boundary tags plus any padding the heap could not split off.
// External fragmentation is free memory that is not part of the largest free segment.
type DetailedStatistics struct {
	Statistics
	RequestedWords int
	WastedWords    int

	FreeSegmentCount    int
	FreeWords           int
	SmallestFreeSegment int
	LargestFreeSegment  int
}

func (s *DetailedStatistics) Clear() {
	s.Statistics.Clear()
	s.RequestedWords = 0
	s.WastedWords = 0
	s.FreeSegmentCount = 0
	s.FreeWords = 0
	s.SmallestFreeSegment = math.MaxInt
	s.LargestFreeSegment = 0
}

// AddFreeSegment records a free segment of size words
func (s *DetailedStatistics) AddFreeSegment(size int) {
	s.FreeSegmentCount++
	s.FreeWords += size

	if size < s.SmallestFreeSegment {
		s.SmallestFreeSegment = size
	}

	if size > s.LargestFreeSegment {
		s.LargestFreeSegment = size
	}
}

// AddAllocation records a reserved segment of size words that was handed out for a request of
// requested words
func (s *DetailedStatistics) AddAllocation(size int, requested int) {
	s.AllocationCount++
	s.AllocationWords += size
	s.RequestedWords += requested
	s.WastedWords += size - requested
}

func (s *DetailedStatistics) AddDetailedStatistics(other *DetailedStatistics) {
	s.Statistics.AddStatistics(&other.Statistics)
	s.RequestedWords += other.RequestedWords
	s.WastedWords += other.WastedWords
	s.FreeSegmentCount += other.FreeSegmentCount
	s.FreeWords += other.FreeWords

	if other.SmallestFreeSegment < s.SmallestFreeSegment {
		s.SmallestFreeSegment = other.SmallestFreeSegment
	}

	if other.LargestFreeSegment > s.LargestFreeSegment {
		s.LargestFreeSegment = other.LargestFreeSegment
	}
}

// InternalFragmentation is the fraction of reserved words that callers did not ask for
func (s *DetailedStatistics) InternalFragmentation() float64 {
	if s.AllocationWords == 0 {
		return 0
	}
	return float64(s.WastedWords) / float64(s.AllocationWords)
}

// ExternalFragmentation is the fraction of free words outside the largest free segment. A heap
// whose free memory is one segment scores 0.
func (s *DetailedStatistics) ExternalFragmentation() float64 {
	if s.FreeWords == 0 {
		return 0
	}
	return 1 - float64(s.LargestFreeSegment)/float64(s.FreeWords)
}

// SearchStatistics tracks the search cost of allocation requests: how many free segments the
// allocation strategy had to inspect to satisfy (or fail) each request
type SearchStatistics struct {
	Requests            int
	FailedRequests      int
	SegmentsExamined    int
	MaxSegmentsExamined int
}

func (s *SearchStatistics) Clear() {
	s.Requests = 0
	s.FailedRequests = 0
	s.SegmentsExamined = 0
	s.MaxSegmentsExamined = 0
}

// AddSearch records the outcome of a single strategy search
func (s *SearchStatistics) AddSearch(examined int, success bool) {
	s.Requests++
	if !success {
		s.FailedRequests++
	}

	s.SegmentsExamined += examined
	if examined > s.MaxSegmentsExamined {
		s.MaxSegmentsExamined = examined
	}
}

func (s *SearchStatistics) AddSearchStatistics(other *SearchStatistics) {
	s.Requests += other.Requests
	s.FailedRequests += other.FailedRequests
	s.SegmentsExamined += other.SegmentsExamined

	if other.MaxSegmentsExamined > s.MaxSegmentsExamined {
		s.MaxSegmentsExamined = other.MaxSegmentsExamined
	}
}

// AverageSegmentsExamined is the mean search cost per request, or 0 if no requests were recorded
func (s *SearchStatistics) AverageSegmentsExamined() float64 {
	if s.Requests == 0 {
		return 0
	}
	return float64(s.SegmentsExamined) / float64(s.Requests)
}
