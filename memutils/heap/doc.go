// Package heap is a dynamic memory allocator simulated over a fixed-size array of words.
//
// The heap is carved into segments tagged at both ends with their size (see package store). Free
// segments are threaded into a circular doubly-linked free list through their own header words.
// Request asks a strategy.Strategy to pick a free segment, then splits it when the leftover is big
// enough to stand on its own as a free segment, reserving the back portion so the front keeps its
// place in the free list. Release merges the freed segment with whichever physical neighbors are
// free, so no two free segments are ever adjacent.
//
// Handles returned from Request are the address of the first usable word of the reserved segment
// and should be treated as opaque.
package heap
