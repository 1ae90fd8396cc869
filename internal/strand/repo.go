package strand

import (
	"fmt"
	"sort"
	"time"
)

// Default result caps for the read operations.
const (
	DefaultListLimit   = 20
	DefaultSearchLimit = 10
)

// Repo owns the strand ledger and exposes all operations over it.
//
// Every mutation is a full load → in-memory-transform → save cycle, fully
// handled before the next request is read. Requests are served in arrival
// order within one process; there is no isolation across processes sharing
// a backing store (last-writer-wins, accepted by design).
type Repo struct {
	store Store
	now   func() time.Time
}

// NewRepo creates a Repo over the given store.
func NewRepo(store Store) *Repo {
	return &Repo{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Create starts a new strand with a mandatory initial thought and places it
// in the active collection under a fresh counter-assigned id.
func (r *Repo) Create(topic, initialThought string) (*Strand, error) {
	if topic == "" {
		return nil, fmt.Errorf("topic must not be empty")
	}
	if initialThought == "" {
		return nil, fmt.Errorf("initial thought must not be empty")
	}

	ledger, err := r.store.Load()
	if err != nil {
		return nil, err
	}

	now := r.now()
	s := &Strand{
		ID:          ledger.nextID(),
		Topic:       topic,
		Thoughts:    []string{initialThought},
		Created:     now,
		LastUpdated: now,
	}
	ledger.Active[s.ID] = s

	if err := r.store.Save(ledger); err != nil {
		return nil, err
	}
	return s, nil
}

// Append pushes a thought onto an active strand and refreshes its
// last_updated timestamp. Appending to a completed strand is rejected with
// NotFound, not silently redirected.
func (r *Repo) Append(id, thought string) (*Strand, error) {
	if thought == "" {
		return nil, fmt.Errorf("thought must not be empty")
	}

	ledger, err := r.store.Load()
	if err != nil {
		return nil, err
	}

	s, ok := ledger.Active[id]
	if !ok {
		if _, completed := ledger.Completed[id]; completed {
			return nil, fmt.Errorf("strand %q is completed and frozen: %w", id, ErrNotFound)
		}
		return nil, notFound(id)
	}

	s.Thoughts = append(s.Thoughts, thought)
	s.LastUpdated = r.now()

	if err := r.store.Save(ledger); err != nil {
		return nil, err
	}
	return s, nil
}

// Complete sets the conclusion and completion timestamp, then moves the
// strand from active to completed in a single in-memory transform.
// Completion is single-use and irreversible: a second call on the same id
// yields NotFound.
func (r *Repo) Complete(id, conclusion string) (*Strand, error) {
	if conclusion == "" {
		return nil, fmt.Errorf("conclusion must not be empty")
	}

	ledger, err := r.store.Load()
	if err != nil {
		return nil, err
	}

	s, ok := ledger.Active[id]
	if !ok {
		return nil, notFound(id)
	}

	now := r.now()
	s.Conclusion = conclusion
	s.Completed = &now
	s.LastUpdated = now
	delete(ledger.Active, id)
	ledger.Completed[id] = s

	if err := r.store.Save(ledger); err != nil {
		return nil, err
	}
	return s, nil
}

// Branch forks a new active strand from any existing strand — active or
// completed. The branch copies the source's full thought history, appends
// one new thought, and records the source id as lineage. The source is
// read-only input to the copy; it is never mutated.
func (r *Repo) Branch(sourceID, topic, thought string) (*Strand, error) {
	if topic == "" {
		return nil, fmt.Errorf("branch topic must not be empty")
	}
	if thought == "" {
		return nil, fmt.Errorf("branch thought must not be empty")
	}

	ledger, err := r.store.Load()
	if err != nil {
		return nil, err
	}

	src, ok := ledger.lookup(sourceID)
	if !ok {
		return nil, notFound(sourceID)
	}

	thoughts := make([]string, 0, len(src.Thoughts)+1)
	thoughts = append(thoughts, src.Thoughts...)
	thoughts = append(thoughts, thought)

	now := r.now()
	branch := &Strand{
		ID:           ledger.nextID(),
		Topic:        topic,
		Thoughts:     thoughts,
		Created:      now,
		LastUpdated:  now,
		BranchedFrom: sourceID,
	}
	ledger.Active[branch.ID] = branch

	if err := r.store.Save(ledger); err != nil {
		return nil, err
	}
	return branch, nil
}

// Get returns a strand by id from either collection.
func (r *Repo) Get(id string) (*Strand, error) {
	ledger, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	s, ok := ledger.lookup(id)
	if !ok {
		return nil, notFound(id)
	}
	return s, nil
}

// List enumerates strands matching the status filter, in creation order
// (ascending numeric id), capped at limit. limit <= 0 applies the default.
func (r *Repo) List(status string, limit int) ([]*Strand, error) {
	if status == "" {
		status = StatusAll
	}
	if err := ValidateStatus(status); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}

	ledger, err := r.store.Load()
	if err != nil {
		return nil, err
	}

	var result []*Strand
	if status == StatusActive || status == StatusAll {
		for _, s := range ledger.Active {
			result = append(result, s)
		}
	}
	if status == StatusCompleted || status == StatusAll {
		for _, s := range ledger.Completed {
			result = append(result, s)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return idNum(result[i].ID) < idNum(result[j].ID)
	})

	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// Stats returns the ledger's aggregate counts for status reporting.
func (r *Repo) Stats() (active, completed int, counter int64, err error) {
	ledger, err := r.store.Load()
	if err != nil {
		return 0, 0, 0, err
	}
	return len(ledger.Active), len(ledger.Completed), ledger.Counter, nil
}
