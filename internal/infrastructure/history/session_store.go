package history

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/doeshing/investigator-go/internal/domain"
	"github.com/doeshing/investigator-go/internal/ports"
)

// SessionStore keeps finished conversations as one JSON array on disk.
// Every save re-reads the file, appends and rewrites it.
type SessionStore struct {
	path   string
	mu     sync.Mutex
	logger ports.Logger
}

// NewSessionStore opens the session file at path.
func NewSessionStore(path string, logger ports.Logger) *SessionStore {
	return &SessionStore{path: path, logger: logger}
}

// Save appends record to the store.
func (s *SessionStore) Save(record domain.SessionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.load()
	records = append(records, record)

	if err := os.MkdirAll(filepath.Dir(s.path), domain.DirectoryPermissions); err != nil {
		return fmt.Errorf("create sessions dir: %w", err)
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode sessions: %w", err)
	}
	if err := os.WriteFile(s.path, buf.Bytes(), domain.FilePermissions); err != nil {
		return fmt.Errorf("write sessions: %w", err)
	}
	return nil
}

// Records returns every saved session in append order.
func (s *SessionStore) Records() ([]domain.SessionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(), nil
}

// Path returns the backing file path.
func (s *SessionStore) Path() string {
	return s.path
}

// BrokenPath is where an unreadable store is moved aside.
func (s *SessionStore) BrokenPath() string {
	return strings.TrimSuffix(s.path, filepath.Ext(s.path)) + ".broken.json"
}

// load reads the store. A missing or empty file is an empty store; a file that
// cannot be read or decoded is renamed to BrokenPath and treated as empty.
func (s *SessionStore) load() []domain.SessionRecord {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		s.quarantine(err)
		return nil
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	var records []domain.SessionRecord
	if err := json.Unmarshal(data, &records); err != nil {
		s.quarantine(err)
		return nil
	}
	return records
}

func (s *SessionStore) quarantine(cause error) {
	broken := s.BrokenPath()
	renameErr := os.Rename(s.path, broken)
	if s.logger == nil {
		return
	}
	fields := map[string]interface{}{"path": s.path, "moved_to": broken, "cause": cause.Error()}
	if renameErr != nil {
		s.logger.Error("failed to quarantine unreadable session store", renameErr, fields)
		return
	}
	s.logger.Warn("session store unreadable, starting fresh", fields)
}

var _ ports.SessionStore = (*SessionStore)(nil)
