package scan

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
)

// ViolationsFile is the filename for the persisted violation log.
const ViolationsFile = "violations.json"

// DefaultViolationLimit caps how many log entries a read returns by default.
const DefaultViolationLimit = 20

// excerptLen bounds how much of the offending text is kept in the log.
const excerptLen = 160

// Violation is one logged threshold breach.
type Violation struct {
	At      time.Time `json:"at"`
	Score   int       `json:"score"`
	Terms   []string  `json:"terms"`
	Excerpt string    `json:"excerpt"`
}

// ViolationLog persists threshold breaches as a JSON document, newest last.
// Same continuity policy as the other file stores: corruption means an
// empty log, not a failure.
type ViolationLog struct {
	path string
	now  func() time.Time
}

// NewViolationLog creates a log backed by dataDir/violations.json.
func NewViolationLog(dataDir string) *ViolationLog {
	return &ViolationLog{
		path: filepath.Join(dataDir, ViolationsFile),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Record appends one violation derived from a scan report.
func (v *ViolationLog) Record(report Report, text string) error {
	entries := v.load()

	terms := make([]string, 0, len(report.Hits))
	for _, h := range report.Hits {
		terms = append(terms, h.Term)
	}
	excerpt := text
	if len(excerpt) > excerptLen {
		excerpt = excerpt[:excerptLen] + "…"
	}
	entries = append(entries, Violation{
		At:      v.now(),
		Score:   report.Score,
		Terms:   terms,
		Excerpt: excerpt,
	})

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling violation log: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(v.path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	return os.WriteFile(v.path, data, 0o644)
}

// List returns up to limit entries, newest first. limit <= 0 applies the
// default.
func (v *ViolationLog) List(limit int) []Violation {
	if limit <= 0 {
		limit = DefaultViolationLimit
	}

	entries := v.load()
	// Stored oldest-first; reverse for display.
	out := make([]Violation, 0, len(entries))
	for i := len(entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, entries[i])
	}
	return out
}

func (v *ViolationLog) load() []Violation {
	data, err := os.ReadFile(v.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", v.path).Msg("violation log unreadable, starting empty")
		}
		return nil
	}
	var entries []Violation
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Warn().Err(err).Str("path", v.path).Msg("violation log malformed, starting empty")
		return nil
	}
	return entries
}
