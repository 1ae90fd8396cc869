package strand_test

import (
	"testing"
	"time"

	"github.com/loomworks/loom/internal/strand"
)

func TestSearch_EmptyQueryRejected(t *testing.T) {
	r := newTestRepo(t)
	if _, err := r.Search("", 0); err == nil {
		t.Error("empty query should be a caller-input error, not match-everything")
	}
}

func TestSearch_CaseInsensitiveSubstring(t *testing.T) {
	r := newTestRepo(t)
	if _, err := r.Create("Database Migration", "plan the rollout"); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	for _, query := range []string{"database", "DATABASE", "base migr"} {
		matches, err := r.Search(query, 0)
		if err != nil {
			t.Fatalf("Search(%q) error: %v", query, err)
		}
		if len(matches) != 1 {
			t.Errorf("Search(%q) = %d matches, want 1", query, len(matches))
		}
	}
}

func TestSearch_MatchKinds(t *testing.T) {
	r := newTestRepo(t)

	topicHit, _ := r.Create("caching strategy", "think about eviction")
	contentHit, _ := r.Create("api design", "maybe add caching headers")
	conclusionHit, _ := r.Create("perf review", "profiled the hot path")
	if _, err := r.Complete(conclusionHit.ID, "fixed by caching the index"); err != nil {
		t.Fatalf("Complete error: %v", err)
	}

	matches, err := r.Search("caching", 0)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(matches) != 3 {
		t.Fatalf("got %d matches, want 3", len(matches))
	}

	kinds := map[string]string{}
	for _, m := range matches {
		kinds[m.Strand.ID] = m.Kind
	}
	if kinds[topicHit.ID] != strand.MatchTopic {
		t.Errorf("topic hit tagged %q, want %q", kinds[topicHit.ID], strand.MatchTopic)
	}
	if kinds[contentHit.ID] != strand.MatchContent {
		t.Errorf("content hit tagged %q, want %q", kinds[contentHit.ID], strand.MatchContent)
	}
	if kinds[conclusionHit.ID] != strand.MatchConclusion {
		t.Errorf("conclusion hit tagged %q, want %q", kinds[conclusionHit.ID], strand.MatchConclusion)
	}
}

func TestSearch_TopicRanksAboveContent(t *testing.T) {
	r := newTestRepo(t)
	r.SetNow(tickingClock(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)))

	// Content match created later — recency must not beat the topic tier.
	topicHit, _ := r.Create("indexing plan", "step one")
	contentHit, _ := r.Create("unrelated topic", "revisit indexing later")

	matches, err := r.Search("indexing", 0)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
	if matches[0].Strand.ID != topicHit.ID {
		t.Errorf("first match = %s (%s), want topic hit %s", matches[0].Strand.ID, matches[0].Kind, topicHit.ID)
	}
	if matches[1].Strand.ID != contentHit.ID {
		t.Errorf("second match = %s, want content hit %s", matches[1].Strand.ID, contentHit.ID)
	}
}

func TestSearch_RecencyWithinTier(t *testing.T) {
	r := newTestRepo(t)
	r.SetNow(tickingClock(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)))

	older, _ := r.Create("retry logic v1", "thought")
	newer, _ := r.Create("retry logic v2", "thought")

	matches, err := r.Search("retry logic", 0)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
	if matches[0].Strand.ID != newer.ID || matches[1].Strand.ID != older.ID {
		t.Errorf("order = [%s %s], want newest first [%s %s]",
			matches[0].Strand.ID, matches[1].Strand.ID, newer.ID, older.ID)
	}
}

func TestSearch_ConclusionOnlyMatchesAfterCompletion(t *testing.T) {
	r := newTestRepo(t)

	s, _ := r.Create("triage", "check the logs")

	matches, err := r.Search("patch applied", 0)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("pre-completion: got %d matches, want 0 (no conclusion exists yet)", len(matches))
	}

	if _, err := r.Complete(s.ID, "Patch applied upstream"); err != nil {
		t.Fatalf("Complete error: %v", err)
	}

	matches, err = r.Search("patch applied", 0)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(matches) != 1 || matches[0].Kind != strand.MatchConclusion {
		t.Fatalf("post-completion: matches = %+v, want one conclusion-tagged hit", matches)
	}
}

func TestSearch_LimitCapsResults(t *testing.T) {
	r := newTestRepo(t)
	r.SetNow(tickingClock(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)))

	for i := 0; i < 5; i++ {
		if _, err := r.Create("queue depth", "thought"); err != nil {
			t.Fatalf("Create error: %v", err)
		}
	}

	matches, err := r.Search("queue", 2)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("got %d matches, want 2 (limit applied)", len(matches))
	}
}

func TestSearch_NoMatches(t *testing.T) {
	r := newTestRepo(t)
	if _, err := r.Create("topic", "thought"); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	matches, err := r.Search("zzz-not-present", 0)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("got %d matches, want 0", len(matches))
	}
}
