package store

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/heapsim/memutils"
)

const (
	// Null is the address value used for links and heads that do not point at any segment
	Null int = -1

	// FreeOverhead is the number of bookkeeping words a free segment needs: two size tags plus
	// the previous and next links of the free list
	FreeOverhead int = 4
	// ReservedOverhead is the number of bookkeeping words a reserved segment needs: the two size tags
	ReservedOverhead int = 2

	// PrevOffset is the position of the previous-free-segment link within a free segment
	PrevOffset int = 1
	// NextOffset is the position of the next-free-segment link within a free segment
	NextOffset int = 2
	// HandleOffset is the distance between a reserved segment's start and the handle given to callers
	HandleOffset int = 1
)

// Store is the linear array of words that makes up an entire heap. Regions of the store are
// tagged as segments: the first and last word of each segment hold its size, negative when the
// segment is free and positive when it is reserved. Free segments additionally hold links to
// their neighbors in the free list, so the store needs no metadata outside of itself.
type Store struct {
	words []int
}

// New creates a store of the provided size with every word zeroed
func New(size int) (*Store, error) {
	if size < FreeOverhead {
		return nil, errors.Wrapf(memutils.ErrHeapTooSmall, "size is %d, minimum is %d", size, FreeOverhead)
	}

	return &Store{words: make([]int, size)}, nil
}

// Len is the number of words in the store
func (s *Store) Len() int { return len(s.words) }

// Contains returns true if addr is a valid word index
func (s *Store) Contains(addr int) bool {
	return addr >= 0 && addr < len(s.words)
}

func (s *Store) Word(addr int) int { return s.words[addr] }

func (s *Store) SetWord(addr int, value int) { s.words[addr] = value }

// Clear zeroes the words in [from, to)
func (s *Store) Clear(from, to int) {
	for i := from; i < to; i++ {
		s.words[i] = 0
	}
}

// Snapshot returns a copy of every word in the store
func (s *Store) Snapshot() []int {
	snapshot := make([]int, len(s.words))
	copy(snapshot, s.words)
	return snapshot
}
