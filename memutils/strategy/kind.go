package strategy

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/heapsim/memutils"
)

// Kind identifies one of the built-in allocation strategies
type Kind uint32

const (
	// KindFirstFit selects FirstFit, which takes the first large-enough free segment from the head
	// of the free list
	KindFirstFit Kind = iota + 1
	// KindNextFit selects NextFit, which takes the first large-enough free segment after the one
	// chosen by the previous request
	KindNextFit
	// KindBestFit selects BestFit, which takes the smallest large-enough free segment
	KindBestFit
	// KindWorstFit selects WorstFit, which takes the largest large-enough free segment
	KindWorstFit
)

var kindMapping = map[Kind]string{
	KindFirstFit: "FirstFit",
	KindNextFit:  "NextFit",
	KindBestFit:  "BestFit",
	KindWorstFit: "WorstFit",
}

var kindByName = map[string]Kind{
	"FirstFit": KindFirstFit,
	"NextFit":  KindNextFit,
	"BestFit":  KindBestFit,
	"WorstFit": KindWorstFit,
}

func (k Kind) String() string {
	return kindMapping[k]
}

// Kinds lists every built-in strategy in declaration order
func Kinds() []Kind {
	return []Kind{KindFirstFit, KindNextFit, KindBestFit, KindWorstFit}
}

// ParseKind maps a strategy name, as returned by Kind.String, back to its Kind
func ParseKind(name string) (Kind, error) {
	kind, ok := kindByName[name]
	if !ok {
		return 0, errors.Wrapf(memutils.ErrUnknownStrategy, "name %q", name)
	}
	return kind, nil
}

// New creates a fresh strategy of the provided kind. Every call returns a separate instance, so
// stateful strategies like NextFit are never shared between callers by accident.
func New(kind Kind) (Strategy, error) {
	switch kind {
	case KindFirstFit:
		return FirstFit{}, nil
	case KindNextFit:
		return NewNextFit(), nil
	case KindBestFit:
		return BestFit{}, nil
	case KindWorstFit:
		return WorstFit{}, nil
	}

	return nil, errors.Wrapf(memutils.ErrUnknownStrategy, "kind %d", kind)
}
