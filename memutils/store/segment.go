package store

import "github.com/vkngwrapper/heapsim/memutils"

// SegmentSize is the length in words of the segment beginning at start
func (s *Store) SegmentSize(start int) int {
	return memutils.Abs(s.words[start])
}

// IsFree returns true if the segment beginning at start is tagged free
func (s *Store) IsFree(start int) bool {
	return s.words[start] < 0
}

// IsReserved returns true if the segment beginning at start is tagged reserved
func (s *Store) IsReserved(start int) bool {
	return s.words[start] > 0
}

func (s *Store) EndTagAddress(start int) int {
	return start + s.SegmentSize(start) - 1
}

func (s *Store) PrevPtrAddress(start int) int {
	return start + PrevOffset
}

func (s *Store) NextPtrAddress(start int) int {
	return start + NextOffset
}

// LeftNeighbor locates the segment physically preceding the one at start by reading that
// segment's end tag. The second return value is false when start is the first segment.
func (s *Store) LeftNeighbor(start int) (int, bool) {
	if start <= 0 {
		return Null, false
	}

	left := start - memutils.Abs(s.words[start-1])
	return left, left >= 0
}

// RightNeighbor locates the segment physically following the one at start. The second return
// value is false when start is the last segment.
func (s *Store) RightNeighbor(start int) (int, bool) {
	right := start + s.SegmentSize(start)
	return right, right < len(s.words)
}

// Next is the free-list successor of the free segment at start
func (s *Store) Next(start int) int {
	return s.words[s.NextPtrAddress(start)]
}

// Prev is the free-list predecessor of the free segment at start
func (s *Store) Prev(start int) int {
	return s.words[s.PrevPtrAddress(start)]
}

func (s *Store) SetNext(start int, next int) {
	s.words[s.NextPtrAddress(start)] = next
}

func (s *Store) SetPrev(start int, prev int) {
	s.words[s.PrevPtrAddress(start)] = prev
}

// WriteFreeTags tags [start, start+size) as a free segment. Links are left untouched.
func (s *Store) WriteFreeTags(start int, size int) {
	s.words[start] = -size
	s.words[start+size-1] = -size
}

// WriteReservedTags tags [start, start+size) as a reserved segment
func (s *Store) WriteReservedTags(start int, size int) {
	s.words[start] = size
	s.words[start+size-1] = size
}

// IsFreeSegment performs a structural check that start names a well-formed member of the free
// list: negative size tag, a matching end tag inside the store, and links that are in range
// and point back at start. It never panics on garbage input.
func (s *Store) IsFreeSegment(start int) bool {
	if !s.Contains(start) || s.words[start] >= 0 {
		return false
	}

	size := -s.words[start]
	if size < FreeOverhead || start+size > len(s.words) {
		return false
	}

	if s.words[start+size-1] != s.words[start] {
		return false
	}

	next := s.Next(start)
	prev := s.Prev(start)
	if !s.Contains(next) || !s.Contains(prev) {
		return false
	}

	if !s.Contains(next+PrevOffset) || !s.Contains(prev+NextOffset) {
		return false
	}

	return s.Prev(next) == start && s.Next(prev) == start
}
