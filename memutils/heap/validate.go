package heap

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/heapsim/memutils"
	"github.com/vkngwrapper/heapsim/memutils/store"
)

// Validate performs internal consistency checks on the heap. It walks the free list from its head
// and then every segment in address order. When the manager is functioning correctly it should not
// be possible for this method to return an error. Validate never modifies the heap.
func (m *Manager) Validate() error {
	totalWords := m.words.Len()

	if m.sumFreeSize < 0 || m.sumFreeSize > totalWords {
		return errors.Errorf("invalid free size %d for a heap of %d words", m.sumFreeSize, totalWords)
	}

	listCount, listWords, err := m.validateFreeList()
	if err != nil {
		return err
	}

	var freeCount, reservedCount, freeWords int
	previousFree := false
	for offset := 0; offset < totalWords; {
		tag := m.words.Word(offset)
		if tag == 0 {
			return errors.Errorf("segment at offset %d has an empty size tag", offset)
		}

		size := memutils.Abs(tag)
		if offset+size > totalWords {
			return errors.Errorf("segment at offset %d of size %d runs past the end of the heap", offset, size)
		}

		if m.words.Word(offset+size-1) != tag {
			return errors.Errorf("segment at offset %d has size tag %d but end tag %d", offset, tag, m.words.Word(offset+size-1))
		}

		if size < store.FreeOverhead {
			return errors.Errorf("segment at offset %d has size %d, which is too small to ever be a free segment", offset, size)
		}

		if tag < 0 {
			if previousFree {
				return errors.Errorf("free segment at offset %d follows another free segment and should have been merged", offset)
			}

			freeCount++
			freeWords += size
			previousFree = true
		} else {
			if _, live := m.liveHandles.Get(offset + store.HandleOffset); !live {
				return errors.Errorf("reserved segment at offset %d does not belong to a live allocation", offset)
			}

			reservedCount++
			previousFree = false
		}

		offset += size
	}

	if freeCount != listCount {
		return errors.Errorf("the number of free segments in the heap and the number of segments in the free list do not match! free list size: %d, free segments: %d", listCount, freeCount)
	}

	if freeWords != listWords {
		return errors.Errorf("free segments in the heap add up to %d words, but the free list adds up to %d", freeWords, listWords)
	}

	if freeWords != m.sumFreeSize {
		return errors.Errorf("the free size of the heap is %d, but the free segments only added up to %d", m.sumFreeSize, freeWords)
	}

	if freeCount != m.freeCount {
		return errors.Errorf("the free segment count of the heap is %d, but there were %d free segments", m.freeCount, freeCount)
	}

	if reservedCount != m.liveHandles.Count() {
		return errors.Errorf("the heap has %d live allocations, but there were %d reserved segments", m.liveHandles.Count(), reservedCount)
	}

	return nil
}

// validateFreeList walks the free list from the head, returning the number of segments in it and
// their total size
func (m *Manager) validateFreeList() (int, int, error) {
	if m.head == store.Null {
		return 0, 0, nil
	}

	totalWords := m.words.Len()
	if !m.words.Contains(m.head) {
		return 0, 0, errors.Errorf("free list head %d is outside of the heap", m.head)
	}

	var count, words int
	segment := m.head
	for {
		if count >= totalWords {
			return 0, 0, errors.Errorf("free list starting at %d does not cycle back to its head", m.head)
		}

		tag := m.words.Word(segment)
		if tag == 0 {
			return 0, 0, errors.Errorf("free list member at offset %d has an empty size tag", segment)
		}

		if tag > 0 {
			return 0, 0, errors.Errorf("segment at offset %d is in the free list but is not free", segment)
		}

		size := -tag
		if size < store.FreeOverhead || segment+size > totalWords {
			return 0, 0, errors.Errorf("free list member at offset %d has invalid size %d", segment, size)
		}

		if m.words.Word(segment+size-1) != tag {
			return 0, 0, errors.Errorf("free list member at offset %d has size tag %d but end tag %d", segment, tag, m.words.Word(segment+size-1))
		}

		next := m.words.Next(segment)
		prev := m.words.Prev(segment)
		if !m.words.Contains(next) || !m.words.Contains(next+store.PrevOffset) {
			return 0, 0, errors.Errorf("free list member at offset %d links to next segment %d, which is outside of the heap", segment, next)
		}

		if !m.words.Contains(prev) || !m.words.Contains(prev+store.NextOffset) {
			return 0, 0, errors.Errorf("free list member at offset %d links to previous segment %d, which is outside of the heap", segment, prev)
		}

		if m.words.Prev(next) != segment {
			return 0, 0, errors.Errorf("segment at offset %d lists the segment at offset %d as its next segment, but the reverse reference is broken", segment, next)
		}

		if m.words.Next(prev) != segment {
			return 0, 0, errors.Errorf("segment at offset %d lists the segment at offset %d as its previous segment, but the reverse reference is broken", segment, prev)
		}

		count++
		words += size

		segment = next
		if segment == m.head {
			return count, words, nil
		}
	}
}
