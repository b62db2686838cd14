package heap_test

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/heapsim/memutils/heap"
	"github.com/vkngwrapper/heapsim/memutils/strategy"
)

type liveAllocation struct {
	handle int
	count  int
}

// checkHeapProperties verifies conservation, coalescing and non-overlap against the segments
// reported by the manager and the allocations the test believes are live
func checkHeapProperties(t *testing.T, manager *heap.Manager, live map[int]int) {
	require.NoError(t, manager.Validate())

	total := 0
	previousFree := false
	reserved := map[int]heap.Segment{}
	err := manager.VisitAllSegments(func(segment heap.Segment) error {
		total += segment.Size

		isFree := segment.Type == heap.SegmentFree
		require.False(t, isFree && previousFree, "adjacent free segments at %d", segment.Offset)
		previousFree = isFree

		if !isFree {
			reserved[segment.Handle] = segment
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, manager.Capacity(), total)
	require.Len(t, reserved, len(live))

	var ranges [][2]int
	for handle, count := range live {
		segment, ok := reserved[handle]
		require.True(t, ok, "handle %d is not reserved", handle)
		require.Equal(t, count, segment.Requested)
		require.GreaterOrEqual(t, segment.Size, heap.ReservationSize(count))

		// Usable words run from the handle up to the end tag
		ranges = append(ranges, [2]int{handle, handle + count})
	}

	sort.Slice(ranges, func(i, j int) bool { return ranges[i][0] < ranges[j][0] })
	for i := 1; i < len(ranges); i++ {
		require.LessOrEqual(t, ranges[i-1][1], ranges[i][0], "live allocations overlap")
	}
}

func TestRandomRequestRelease(t *testing.T) {
	for _, kind := range strategy.Kinds() {
		for _, flags := range []heap.CreateFlags{0, heap.CreateStrict} {
			t.Run(kind.String()+"/"+flags.String(), func(t *testing.T) {
				rng := rand.New(rand.NewSource(42))
				manager := newManager(t, 512, kind, flags)
				live := map[int]int{}
				var order []liveAllocation

				for step := 0; step < 2000; step++ {
					if len(order) > 0 && rng.Intn(5) < 2 {
						index := rng.Intn(len(order))
						allocation := order[index]
						order = append(order[:index], order[index+1:]...)
						delete(live, allocation.handle)

						require.NoError(t, manager.Release(allocation.handle), "step %d", step)
					} else {
						count := 1 + rng.Intn(40)
						freeBefore := manager.SumFreeSize()

						result, err := manager.Request(count)
						require.NoError(t, err, "step %d", step)
						require.GreaterOrEqual(t, result.SegmentsExamined, 0)

						if result.Success {
							_, duplicate := live[result.Handle]
							require.False(t, duplicate, "step %d: handle %d handed out twice", step, result.Handle)

							live[result.Handle] = count
							order = append(order, liveAllocation{handle: result.Handle, count: count})
						} else {
							require.Equal(t, freeBefore, manager.SumFreeSize())
						}
					}

					checkHeapProperties(t, manager, live)
				}

				for _, allocation := range order {
					require.NoError(t, manager.Release(allocation.handle))
				}

				require.True(t, manager.IsEmpty())
				require.Equal(t, []int{0}, manager.FreeSegments())
				require.Equal(t, manager.Capacity(), manager.SumFreeSize())
			})
		}
	}
}

func TestBestFitNeverPicksLargerSegment(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	manager := newManager(t, 1024, strategy.KindBestFit, heap.CreateStrict)

	var handles []int
	for {
		result, err := manager.Request(1 + rng.Intn(30))
		require.NoError(t, err)
		if !result.Success {
			break
		}
		handles = append(handles, result.Handle)
	}

	// Punch holes of varying sizes
	for i := 0; i < len(handles); i += 2 {
		require.NoError(t, manager.Release(handles[i]))
	}

	for i := 0; i < 20; i++ {
		count := 1 + rng.Intn(20)
		reservation := heap.ReservationSize(count)

		smallest := -1
		for _, segment := range manager.FreeSegments() {
			size := -manager.Word(segment)
			if size >= reservation && (smallest < 0 || size < smallest) {
				smallest = size
			}
		}

		result, err := manager.Request(count)
		require.NoError(t, err)
		require.Equal(t, smallest >= 0, result.Success)
		if !result.Success {
			continue
		}

		// Either the chosen segment was consumed whole, or the back was carved off the smallest fit
		segment := result.Handle - 1
		reservedSize := manager.Word(segment)
		require.True(t, reservedSize == smallest || (reservedSize == reservation && smallest-reservation >= 4))
	}
}
