package strategy

import "github.com/vkngwrapper/heapsim/memutils/store"

// NextFit behaves like FirstFit, but each search resumes from the free segment following the one
// returned by the previous successful search instead of from the head of the list.
//
// NextFit carries a cursor between calls, so each heap needs its own NextFit. Sharing one between
// heaps would carry the cursor from one heap's store into another's.
type NextFit struct {
	cursor int
}

var _ Strategy = &NextFit{}

// NewNextFit creates a NextFit with no cursor. Its first search begins at the head of the list.
func NewNextFit() *NextFit {
	return &NextFit{cursor: store.Null}
}

// Cursor is the address the next search will begin from, or store.Null if it will begin at
// the head of the list
func (s *NextFit) Cursor() int {
	return s.cursor
}

// Reset forgets the cursor so that the next search begins at the head of the list
func (s *NextFit) Reset() {
	s.cursor = store.Null
}

func (s *NextFit) FindSegment(head int, words *store.Store, minSize int) (int, int, bool) {
	// A cursor whose segment was reserved or merged away since the last search no longer
	// names a member of the free list
	start := s.cursor
	if start == store.Null || !words.IsFreeSegment(start) {
		start = head
	}

	found := store.Null
	examined := Traverse(words, start, func(segment int) bool {
		if words.SegmentSize(segment) >= minSize {
			found = segment
			return false
		}
		return true
	})

	if found == store.Null {
		return store.Null, examined, false
	}

	s.cursor = words.Next(found)
	if s.cursor == found {
		s.cursor = store.Null
	}

	return found, examined, true
}
