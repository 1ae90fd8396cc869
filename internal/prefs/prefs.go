// Package prefs stores user preferences and architectural patterns.
//
// Preferences are a closed set of known fields plus one explicit extension
// map — unknown keys land in Extra by name, never as dynamic properties on
// the record itself. The whole document is rewritten on every update.
package prefs

import (
	"time"
)

// Known preference field names accepted by Apply.
const (
	FieldCommunicationStyle = "communication_style"
	FieldWorkspaceRoot      = "workspace_root"
	FieldCommandChaining    = "command_chaining"
	FieldAesthetic          = "aesthetic"
)

// Pattern is one architectural pattern registered via add_pattern.
type Pattern struct {
	Type  string    `json:"type"`
	Data  string    `json:"data"`
	Added time.Time `json:"added"`
}

// Preferences is the persisted preference document.
type Preferences struct {
	CommunicationStyle string            `json:"communication_style"`
	WorkspaceRoot      string            `json:"workspace_root,omitempty"`
	CommandChaining    bool              `json:"command_chaining"`
	Aesthetic          string            `json:"aesthetic"`
	Patterns           []Pattern         `json:"patterns,omitempty"`
	Extra              map[string]string `json:"extra,omitempty"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// Defaults returns the preference document used when no file exists yet.
func Defaults() *Preferences {
	return &Preferences{
		CommunicationStyle: "brief professional",
		CommandChaining:    true,
		Aesthetic:          "minimal",
	}
}

// Apply sets one preference field. Known fields update their typed slot;
// any other name is written to the explicit extension map. It reports
// whether the value landed in the extension map.
func (p *Preferences) Apply(field, value string) (extension bool) {
	switch field {
	case FieldCommunicationStyle:
		p.CommunicationStyle = value
	case FieldWorkspaceRoot:
		p.WorkspaceRoot = value
	case FieldCommandChaining:
		p.CommandChaining = value == "true" || value == "yes" || value == "on"
	case FieldAesthetic:
		p.Aesthetic = value
	default:
		if p.Extra == nil {
			p.Extra = make(map[string]string)
		}
		p.Extra[field] = value
		return true
	}
	return false
}

// AddPattern appends an architectural pattern with a timestamp.
func (p *Preferences) AddPattern(patternType, patternData string, now time.Time) {
	p.Patterns = append(p.Patterns, Pattern{
		Type:  patternType,
		Data:  patternData,
		Added: now,
	})
}
