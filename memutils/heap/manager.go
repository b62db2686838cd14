package heap

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/dolthub/swiss"
	"github.com/vkngwrapper/heapsim/memutils"
	"github.com/vkngwrapper/heapsim/memutils/store"
	"github.com/vkngwrapper/heapsim/memutils/strategy"
	"golang.org/x/exp/slog"
)

// CreateFlags indicate specific manager behaviors to activate or deactivate
type CreateFlags int32

const (
	// CreateStrict makes the manager zero every payload it hands out or takes back and run a full
	// consistency check after every Request and Release, panicking if the heap is found to be corrupt.
	// This is expensive, and is the same checking that the debug_heap build tag switches on.
	CreateStrict CreateFlags = 1 << iota
)

var createFlagsMapping = map[CreateFlags]string{
	CreateStrict: "CreateStrict",
}

func (f CreateFlags) String() string {
	if f == 0 {
		return "None"
	}

	var names []string
	for bit := CreateFlags(1); bit != 0 && bit <= f; bit <<= 1 {
		if f&bit == 0 {
			continue
		}

		name, ok := createFlagsMapping[bit]
		if !ok {
			name = fmt.Sprintf("CreateFlags(%#x)", int32(bit))
		}
		names = append(names, name)
	}

	return strings.Join(names, "|")
}

// CreateOptions contains optional settings when creating a Manager
type CreateOptions struct {
	// Flags indicates specific manager behaviors to activate or deactivate
	Flags CreateFlags
}

// RequestResult is returned from Manager.Request
type RequestResult struct {
	// Success is false when no free segment was large enough for the request
	Success bool
	// Handle identifies the new allocation and is only meaningful when Success is true. It is
	// the address of the first usable word of the reserved segment.
	Handle int
	// SegmentsExamined is the number of free segments the strategy inspected
	SegmentsExamined int
}

// Manager is a heap allocator simulated over a fixed-size array of words. Free memory is tracked
// with a circular doubly-linked list threaded through the free segments themselves, and the
// choice of which free segment serves a request is delegated to a strategy.Strategy.
//
// A Manager is not safe for concurrent use.
type Manager struct {
	logger       *slog.Logger
	words        *store.Store
	strategy     strategy.Strategy
	strategyName string
	flags        CreateFlags

	head        int
	freeCount   int
	sumFreeSize int

	// handle -> requested word count
	liveHandles *swiss.Map[int, int]
	searchStats memutils.SearchStatistics
}

var _ memutils.Validatable = &Manager{}

// New creates a Manager over totalWords words that will place allocations using the provided
// strategy. The heap begins as a single free segment. If logger is nil, slog.Default() is used.
//
// The Manager takes ownership of the strategy. Stateful strategies such as strategy.NextFit must
// not be shared with another Manager.
func New(logger *slog.Logger, totalWords int, s strategy.Strategy, options CreateOptions) (*Manager, error) {
	if s == nil {
		return nil, memutils.ErrNilStrategy
	}

	words, err := store.New(totalWords)
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = slog.Default()
	}

	m := &Manager{
		logger:       logger,
		words:        words,
		strategy:     s,
		strategyName: strategyName(s),
		flags:        options.Flags,
	}
	m.reset()

	m.logger.Debug("Manager::New",
		slog.Int("TotalWords", totalWords),
		slog.String("Strategy", m.strategyName),
		slog.String("Flags", m.flags.String()),
	)

	return m, nil
}

// NewWithKind creates a Manager using a fresh instance of one of the built-in strategies
func NewWithKind(logger *slog.Logger, totalWords int, kind strategy.Kind, options CreateOptions) (*Manager, error) {
	s, err := strategy.New(kind)
	if err != nil {
		return nil, err
	}

	return New(logger, totalWords, s, options)
}

func strategyName(s strategy.Strategy) string {
	switch s.(type) {
	case strategy.FirstFit, *strategy.FirstFit:
		return strategy.KindFirstFit.String()
	case *strategy.NextFit:
		return strategy.KindNextFit.String()
	case strategy.BestFit, *strategy.BestFit:
		return strategy.KindBestFit.String()
	case strategy.WorstFit, *strategy.WorstFit:
		return strategy.KindWorstFit.String()
	}

	return fmt.Sprintf("%T", s)
}

func (m *Manager) reset() {
	totalWords := m.words.Len()
	m.words.Clear(0, totalWords)
	m.words.WriteFreeTags(0, totalWords)
	m.words.SetNext(0, 0)
	m.words.SetPrev(0, 0)

	m.head = 0
	m.freeCount = 1
	m.sumFreeSize = totalWords
	m.liveHandles = swiss.NewMap[int, int](42)
	m.searchStats.Clear()
}

// Clear instantly frees all allocations, returning the heap to a single free segment. Search
// statistics are discarded and strategies with a Reset method are reset.
func (m *Manager) Clear() {
	m.reset()

	if resetter, ok := m.strategy.(interface{ Reset() }); ok {
		resetter.Reset()
	}
}

// Capacity is the total number of words in the heap
func (m *Manager) Capacity() int { return m.words.Len() }

// FreeListHead is the address of the free segment at the head of the free list, or store.Null
// if there is no free memory
func (m *Manager) FreeListHead() int { return m.head }

// StrategyName is the name of the strategy used to place allocations
func (m *Manager) StrategyName() string { return m.strategyName }

// Strict returns true if the manager was created with CreateStrict
func (m *Manager) Strict() bool { return m.flags&CreateStrict != 0 }

func (m *Manager) zeroPayloads() bool {
	return m.Strict() || memutils.DebugZeroPayloads
}

// Word returns the raw value of a single word of the heap
func (m *Manager) Word(addr int) int { return m.words.Word(addr) }

// Snapshot returns a copy of every word in the heap
func (m *Manager) Snapshot() []int { return m.words.Snapshot() }

// AllocationCount is the number of live allocations
func (m *Manager) AllocationCount() int { return m.liveHandles.Count() }

// FreeRegionsCount is the number of free segments, which is also the length of the free list
func (m *Manager) FreeRegionsCount() int { return m.freeCount }

// SumFreeSize is the number of words in free segments, including their bookkeeping words
func (m *Manager) SumFreeSize() int { return m.sumFreeSize }

// SumReservedSize is the number of words in reserved segments, including their bookkeeping words
func (m *Manager) SumReservedSize() int { return m.words.Len() - m.sumFreeSize }

// IsEmpty returns true if there are no live allocations
func (m *Manager) IsEmpty() bool { return m.liveHandles.Count() == 0 }

// Utilization is the fraction of the heap currently reserved
func (m *Manager) Utilization() float64 {
	return float64(m.SumReservedSize()) / float64(m.words.Len())
}

// SearchStatistics returns the search cost accumulated across every Request since the manager
// was created or last cleared
func (m *Manager) SearchStatistics() memutils.SearchStatistics { return m.searchStats }

// FreeSegments lists the addresses of the free segments in free-list order, starting at the head
func (m *Manager) FreeSegments() []int {
	var segments []int
	strategy.Traverse(m.words, m.head, func(segment int) bool {
		segments = append(segments, segment)
		return true
	})
	return segments
}

func (m *Manager) invariantViolation(err error) {
	m.logger.LogAttrs(context.Background(), slog.LevelError, "heap invariant violated",
		slog.String("Strategy", m.strategyName),
		slog.Any("error", err),
	)
	panic(err)
}

// validateMutation runs after each Request and Release. Strict managers always check; others
// only check when built with the debug_heap tag.
func (m *Manager) validateMutation(operation string) {
	if !m.Strict() {
		memutils.DebugValidate(m)
		return
	}

	err := m.Validate()
	if err != nil {
		m.invariantViolation(errors.NewAssertionErrorWithWrappedErrf(err, "heap corrupted by %s", operation))
	}
}
