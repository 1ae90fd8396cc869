package strand

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// LedgerFile is the filename for the persisted strand ledger.
const LedgerFile = "strands.json"

// Store defines the persistence interface for the strand ledger.
// Abstracted for testability (DIP). Every operation is a full-document
// read/modify/write cycle — there are no partial updates.
type Store interface {
	Load() (*Ledger, error)
	Save(*Ledger) error
}

// FileStore implements Store using a single JSON document on disk.
//
// The ledger is working scratch data, not a system of record: a missing,
// unreadable, or malformed file is treated as "start over" and Load returns
// a fresh empty ledger instead of failing. There is no protection against
// concurrent writers from other processes — the intended deployment is one
// process per backing file.
type FileStore struct {
	path string
}

// NewFileStore creates a ledger store backed by dataDir/strands.json.
func NewFileStore(dataDir string) *FileStore {
	return &FileStore{path: filepath.Join(dataDir, LedgerFile)}
}

// Path returns the absolute path of the backing file.
func (fs *FileStore) Path() string {
	return fs.path
}

// Load reads the full ledger. Corruption is recovered locally: losing
// in-flight scratch state is preferred over refusing service.
func (fs *FileStore) Load() (*Ledger, error) {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", fs.path).Msg("ledger unreadable, starting empty")
		}
		return NewLedger(), nil
	}

	var ledger Ledger
	if err := json.Unmarshal(data, &ledger); err != nil {
		log.Warn().Err(err).Str("path", fs.path).Msg("ledger malformed, starting empty")
		return NewLedger(), nil
	}

	// Maps may be null in a hand-edited or truncated document.
	if ledger.Active == nil {
		ledger.Active = make(map[string]*Strand)
	}
	if ledger.Completed == nil {
		ledger.Completed = make(map[string]*Strand)
	}
	return &ledger, nil
}

// Save writes the full ledger. The document is written to a temp file and
// renamed into place so a sequential reader never observes a half-written
// file.
func (fs *FileStore) Save(ledger *Ledger) error {
	data, err := json.MarshalIndent(ledger, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling ledger: %w", err)
	}

	dir := filepath.Dir(fs.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, LedgerFile+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp ledger: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing temp ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp ledger: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting ledger permissions: %w", err)
	}
	if err := os.Rename(tmpPath, fs.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing ledger: %w", err)
	}
	return nil
}
