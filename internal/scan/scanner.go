// Package scan implements the marketing-language text scanner, its
// violation log, and the context-token estimator.
//
// These are independent keyword/threshold checks: they share no state or
// algorithm with the strand ledger.
package scan

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed ruleset.yaml
var rulesetYAML []byte

// Rule is one weighted term in the ruleset.
type Rule struct {
	Term   string `yaml:"term"`
	Weight int    `yaml:"weight"`
}

// Ruleset is the scanner configuration loaded from the embedded YAML.
type Ruleset struct {
	Threshold int    `yaml:"threshold"`
	Terms     []Rule `yaml:"terms"`
}

// LoadRuleset parses the embedded ruleset.
func LoadRuleset() (*Ruleset, error) {
	var rs Ruleset
	if err := yaml.Unmarshal(rulesetYAML, &rs); err != nil {
		return nil, fmt.Errorf("parsing embedded ruleset: %w", err)
	}
	if rs.Threshold <= 0 {
		return nil, fmt.Errorf("ruleset threshold must be positive, got %d", rs.Threshold)
	}
	if len(rs.Terms) == 0 {
		return nil, fmt.Errorf("ruleset has no terms")
	}
	return &rs, nil
}

// Hit records one matched term and how often it occurred.
type Hit struct {
	Term   string `json:"term"`
	Count  int    `json:"count"`
	Weight int    `json:"weight"`
}

// Report is the outcome of scanning one text.
type Report struct {
	Hits      []Hit `json:"hits"`
	Score     int   `json:"score"`
	Threshold int   `json:"threshold"`
	Violation bool  `json:"violation"`
}

// Scanner checks text against a weighted term list.
type Scanner struct {
	rules *Ruleset
}

// NewScanner creates a Scanner over the given ruleset.
func NewScanner(rules *Ruleset) *Scanner {
	return &Scanner{rules: rules}
}

// Scan counts case-insensitive occurrences of every ruleset term in text.
// The score is the weighted occurrence sum; a score at or above the
// threshold marks the text as a violation.
func (s *Scanner) Scan(text string) Report {
	lower := strings.ToLower(text)

	report := Report{Threshold: s.rules.Threshold}
	for _, rule := range s.rules.Terms {
		count := strings.Count(lower, strings.ToLower(rule.Term))
		if count == 0 {
			continue
		}
		report.Hits = append(report.Hits, Hit{Term: rule.Term, Count: count, Weight: rule.Weight})
		report.Score += count * rule.Weight
	}
	report.Violation = report.Score >= s.rules.Threshold
	return report
}
