package topics

import (
	"fmt"
	"math/rand"
	"time"
)

// Mode controls how the selector picks a topic for a run.
type Mode string

const (
	// ModeRandom picks uniformly from the catalog.
	ModeRandom Mode = "random"
	// ModeDaily picks by day of year, so the same date always yields the
	// same topic.
	ModeDaily Mode = "daily"
)

// Selector chooses exactly one topic per invocation.
type Selector struct {
	mode    Mode
	catalog []string
	rng     *rand.Rand
}

// NewSelector builds a selector over catalog. A nil catalog means the
// built-in one; an explicitly empty catalog is an error. rng may be nil, in
// which case a time-seeded source is used.
func NewSelector(mode Mode, catalog []string, rng *rand.Rand) (*Selector, error) {
	if catalog == nil {
		catalog = Default()
	}
	if len(catalog) == 0 {
		return nil, fmt.Errorf("topic catalog must not be empty")
	}
	switch mode {
	case ModeRandom, ModeDaily:
	default:
		return nil, fmt.Errorf("unknown selection mode %q (want random or daily)", mode)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Selector{mode: mode, catalog: catalog, rng: rng}, nil
}

// Pick returns one topic from the catalog. In daily mode the pick is a pure
// function of now; in random mode it draws from the selector's source.
func (s *Selector) Pick(now time.Time) string {
	switch s.mode {
	case ModeDaily:
		return s.catalog[now.YearDay()%len(s.catalog)]
	default:
		return s.catalog[s.rng.Intn(len(s.catalog))]
	}
}

// Catalog returns the topics this selector draws from.
func (s *Selector) Catalog() []string {
	out := make([]string, len(s.catalog))
	copy(out, s.catalog)
	return out
}
