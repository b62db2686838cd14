package strategy

import (
	"github.com/vkngwrapper/heapsim/memutils/store"
)

// Strategy chooses which free segment will satisfy an allocation request. Implementations walk the
// circular free list beginning at head and must not modify the store.
//
//go:generate mockgen -source strategy.go -destination ./mocks/strategy.go -package mock_strategy
type Strategy interface {
	// FindSegment returns the address of a free segment whose size is at least minSize. The examined
	// return value is the number of free segments inspected, including the one returned or the last
	// one checked before giving up. When found is false, segment is store.Null.
	FindSegment(head int, words *store.Store, minSize int) (segment int, examined int, found bool)
}

// Traverse walks the free list starting at start, calling visit for each free segment until visit
// returns false or the walk arrives back at start. It returns the number of segments visited.
//
// The walk is bounded by the size of the store and stops early on a link that leaves the store,
// so a corrupt list cannot cause it to spin forever.
func Traverse(words *store.Store, start int, visit func(segment int) bool) int {
	if start == store.Null || !words.Contains(start) {
		return 0
	}

	visited := 0
	segment := start
	for visited < words.Len() {
		visited++
		if !visit(segment) {
			return visited
		}

		if !words.Contains(segment + store.NextOffset) {
			return visited
		}

		segment = words.Next(segment)
		if segment == start || !words.Contains(segment) {
			return visited
		}
	}

	return visited
}

// FirstFit returns the first free segment encountered that is large enough
type FirstFit struct{}

var _ Strategy = FirstFit{}

func (s FirstFit) FindSegment(head int, words *store.Store, minSize int) (int, int, bool) {
	found := store.Null
	examined := Traverse(words, head, func(segment int) bool {
		if words.SegmentSize(segment) >= minSize {
			found = segment
			return false
		}
		return true
	})

	return found, examined, found != store.Null
}

// BestFit returns the smallest free segment that is large enough. A segment of exactly the
// requested size ends the search immediately. Among equal sizes, the first encountered wins.
type BestFit struct{}

var _ Strategy = BestFit{}

func (s BestFit) FindSegment(head int, words *store.Store, minSize int) (int, int, bool) {
	found := store.Null
	bestSize := 0
	examined := Traverse(words, head, func(segment int) bool {
		size := words.SegmentSize(segment)
		if size == minSize {
			found = segment
			return false
		}

		if size > minSize && (found == store.Null || size < bestSize) {
			found = segment
			bestSize = size
		}
		return true
	})

	return found, examined, found != store.Null
}

// WorstFit returns the largest free segment that is large enough. A segment of exactly the
// requested size still ends the search immediately. Among equal sizes, the first encountered wins.
type WorstFit struct{}

var _ Strategy = WorstFit{}

func (s WorstFit) FindSegment(head int, words *store.Store, minSize int) (int, int, bool) {
	found := store.Null
	worstSize := 0
	examined := Traverse(words, head, func(segment int) bool {
		size := words.SegmentSize(segment)
		if size == minSize {
			found = segment
			return false
		}

		if size > minSize && size > worstSize {
			found = segment
			worstSize = size
		}
		return true
	})

	return found, examined, found != store.Null
}
