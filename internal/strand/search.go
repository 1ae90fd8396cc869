package strand

import (
	"fmt"
	"sort"
	"strings"
)

// Match kinds, in rank order: a topic hit outranks any content hit.
const (
	MatchTopic      = "topic"
	MatchContent    = "content"
	MatchConclusion = "conclusion"
)

// Match is one search result: a strand plus the field kind that matched.
type Match struct {
	Strand *Strand
	Kind   string
}

// Search performs a case-insensitive substring search of query against every
// strand's topic, each of its thoughts, and — for completed strands — its
// conclusion. Topic matches rank above content matches; within a tier,
// results are ordered newest-created first with id as the deterministic
// tie-break. The result is capped at limit (default 10).
func (r *Repo) Search(query string, limit int) ([]Match, error) {
	if query == "" {
		return nil, fmt.Errorf("query must not be empty")
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	ledger, err := r.store.Load()
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)

	var matches []Match
	scan := func(strands map[string]*Strand) {
		for _, s := range strands {
			if kind, ok := classify(s, needle); ok {
				matches = append(matches, Match{Strand: s, Kind: kind})
			}
		}
	}
	scan(ledger.Active)
	scan(ledger.Completed)

	sort.Slice(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		at, bt := tier(a.Kind), tier(b.Kind)
		if at != bt {
			return at < bt
		}
		if !a.Strand.Created.Equal(b.Strand.Created) {
			return a.Strand.Created.After(b.Strand.Created)
		}
		return idNum(a.Strand.ID) > idNum(b.Strand.ID)
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// classify reports the highest-ranking field of s containing needle.
// needle must already be lowercased.
func classify(s *Strand, needle string) (string, bool) {
	if strings.Contains(strings.ToLower(s.Topic), needle) {
		return MatchTopic, true
	}
	for _, thought := range s.Thoughts {
		if strings.Contains(strings.ToLower(thought), needle) {
			return MatchContent, true
		}
	}
	if s.Done() && strings.Contains(strings.ToLower(s.Conclusion), needle) {
		return MatchConclusion, true
	}
	return "", false
}

// tier maps a match kind to its rank: topic first, content after.
func tier(kind string) int {
	if kind == MatchTopic {
		return 0
	}
	return 1
}
