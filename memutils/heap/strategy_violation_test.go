package heap_test

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/heapsim/memutils"
	"github.com/vkngwrapper/heapsim/memutils/heap"
	mock_strategy "github.com/vkngwrapper/heapsim/memutils/strategy/mocks"
	"go.uber.org/mock/gomock"
)

func requireAssertionPanic(t *testing.T, f func()) {
	defer func() {
		recovered := recover()
		require.NotNil(t, recovered, "expected a panic")

		err, isErr := recovered.(error)
		require.True(t, isErr, "expected panic with an error, got %v", recovered)
		require.True(t, errors.IsAssertionFailure(err), "expected an assertion failure, got %v", err)
	}()

	f()
}

func TestStrategyFailureLeavesHeapUntouched(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStrategy := mock_strategy.NewMockStrategy(ctrl)
	manager, err := heap.New(nil, 20, mockStrategy, heap.CreateOptions{})
	require.NoError(t, err)
	before := manager.Snapshot()

	mockStrategy.EXPECT().FindSegment(0, gomock.Any(), 7).Return(-1, 3, false)

	result, err := manager.Request(5)
	require.NoError(t, err)
	require.False(t, result.Success)
	require.Equal(t, 3, result.SegmentsExamined)
	require.Equal(t, before, manager.Snapshot())
	require.NoError(t, manager.Validate())
	require.Equal(t, memutils.SearchStatistics{
		Requests:            1,
		FailedRequests:      1,
		SegmentsExamined:    3,
		MaxSegmentsExamined: 3,
	}, manager.SearchStatistics())
}

func TestStrategyReturnsNull(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStrategy := mock_strategy.NewMockStrategy(ctrl)
	manager, err := heap.New(nil, 20, mockStrategy, heap.CreateOptions{})
	require.NoError(t, err)

	mockStrategy.EXPECT().FindSegment(0, gomock.Any(), 12).Return(-1, 1, true)

	requireAssertionPanic(t, func() {
		_, _ = manager.Request(10)
	})
	require.Equal(t, memutils.SearchStatistics{}, manager.SearchStatistics())
}

func TestStrategyReturnsReservedSegment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStrategy := mock_strategy.NewMockStrategy(ctrl)
	manager, err := heap.New(nil, 20, mockStrategy, heap.CreateOptions{})
	require.NoError(t, err)

	mockStrategy.EXPECT().FindSegment(0, gomock.Any(), 12).Return(0, 1, true)
	result, err := manager.Request(10)
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Equal(t, 9, result.Handle)

	mockStrategy.EXPECT().FindSegment(0, gomock.Any(), 4).Return(8, 2, true)
	requireAssertionPanic(t, func() {
		_, _ = manager.Request(1)
	})

	// Only the search that produced a usable segment is recorded
	require.Equal(t, memutils.SearchStatistics{
		Requests:            1,
		SegmentsExamined:    1,
		MaxSegmentsExamined: 1,
	}, manager.SearchStatistics())
}

func TestStrategyReturnsUndersizedSegment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStrategy := mock_strategy.NewMockStrategy(ctrl)
	manager, err := heap.New(nil, 20, mockStrategy, heap.CreateOptions{})
	require.NoError(t, err)

	mockStrategy.EXPECT().FindSegment(0, gomock.Any(), 22).Return(0, 1, true)
	requireAssertionPanic(t, func() {
		_, _ = manager.Request(20)
	})
}
