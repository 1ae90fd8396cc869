package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
)

// PrefsFile is the filename for the persisted preference document.
const PrefsFile = "preferences.json"

// Store defines the persistence interface for preferences.
type Store interface {
	Load() (*Preferences, error)
	Save(*Preferences) error
}

// FileStore implements Store using a single JSON document on disk.
// Like the strand ledger, preferences are scratch data: a missing or
// malformed file yields defaults rather than an error.
type FileStore struct {
	path string
}

// NewFileStore creates a preference store backed by dataDir/preferences.json.
func NewFileStore(dataDir string) *FileStore {
	return &FileStore{path: filepath.Join(dataDir, PrefsFile)}
}

// Load reads the preference document, falling back to defaults.
func (fs *FileStore) Load() (*Preferences, error) {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", fs.path).Msg("preferences unreadable, using defaults")
		}
		return Defaults(), nil
	}

	var p Preferences
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("path", fs.path).Msg("preferences malformed, using defaults")
		return Defaults(), nil
	}
	return &p, nil
}

// Save writes the full preference document.
func (fs *FileStore) Save(p *Preferences) error {
	p.UpdatedAt = time.Now().UTC()

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling preferences: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(fs.path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	return os.WriteFile(fs.path, data, 0o644)
}
