// Package strand implements the persistent reasoning-strand ledger.
//
// A strand is a named, appendable chain of thought. Strands live in one of
// two mutually exclusive collections — active or completed — inside a single
// persisted aggregate (the Ledger). Identity is counter-based and ids are
// never reused, even after completion.
//
// This package follows the same design principles as the rest of the server:
// - SRP: types, store, operations, and search in separate files
// - DIP: Store is an interface; operations depend on the abstraction
package strand

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrNotFound is returned when an operation references a strand id that does
// not exist in the collection it requires. Wrapped errors always carry the
// offending id in the message.
var ErrNotFound = errors.New("strand not found")

// Strand is a single reasoning session: an ordered list of thoughts under a
// topic, optionally concluded.
type Strand struct {
	ID          string     `json:"id"`
	Topic       string     `json:"topic"`
	Thoughts    []string   `json:"thoughts"`
	Created     time.Time  `json:"created"`
	LastUpdated time.Time  `json:"last_updated"`
	Conclusion  string     `json:"conclusion,omitempty"`
	Completed   *time.Time `json:"completed,omitempty"`
	// BranchedFrom records the source strand id at branch time. It is a
	// dead back-reference, not a live link: the source may later complete
	// or branch again without affecting it.
	BranchedFrom string `json:"branched_from,omitempty"`
}

// Done reports whether the strand has been concluded.
func (s *Strand) Done() bool {
	return s.Completed != nil
}

// Status returns the lifecycle state as a display string.
func (s *Strand) Status() string {
	if s.Done() {
		return StatusCompleted
	}
	return StatusActive
}

// Lifecycle status filter values for List.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusAll       = "all"
)

// ValidateStatus returns an error if the status filter is not recognized.
func ValidateStatus(status string) error {
	switch status {
	case StatusActive, StatusCompleted, StatusAll:
		return nil
	}
	return fmt.Errorf("invalid status %q: must be one of: active, completed, all", status)
}

// Ledger is the persisted aggregate: every strand ever created, split by
// lifecycle state, plus the id counter. A strand id appears in exactly one
// of Active/Completed for its whole lifetime.
type Ledger struct {
	Active    map[string]*Strand `json:"active"`
	Completed map[string]*Strand `json:"completed"`
	Counter   int64              `json:"counter"`
}

// NewLedger returns an empty ledger with initialized maps.
func NewLedger() *Ledger {
	return &Ledger{
		Active:    make(map[string]*Strand),
		Completed: make(map[string]*Strand),
		Counter:   0,
	}
}

// lookup finds a strand by id in either collection.
func (l *Ledger) lookup(id string) (*Strand, bool) {
	if s, ok := l.Active[id]; ok {
		return s, true
	}
	if s, ok := l.Completed[id]; ok {
		return s, true
	}
	return nil, false
}

// nextID consumes the counter and returns a fresh strand id.
func (l *Ledger) nextID() string {
	l.Counter++
	return fmt.Sprintf("strand_%d", l.Counter)
}

// idNum extracts the numeric suffix of a strand id for ordering.
// Malformed ids sort first.
func idNum(id string) int64 {
	suffix, ok := strings.CutPrefix(id, "strand_")
	if !ok {
		return 0
	}
	n, err := strconv.ParseInt(suffix, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// notFound builds a caller-visible NotFound error naming the id.
func notFound(id string) error {
	return fmt.Errorf("strand %q: %w", id, ErrNotFound)
}
