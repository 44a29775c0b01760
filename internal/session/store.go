package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"
)

// MemoryStore keeps the token in memory
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

// Load returns the stored token
func (m *MemoryStore) Load() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

// Save stores the token
func (m *MemoryStore) Save(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

// Clear forgets the token
func (m *MemoryStore) Clear() error {
	return m.Save("")
}

// FileStore keeps the token in a JSON file as {"admin_token": "..."}
type FileStore struct {
	path string
}

// NewFileStore stores the token at path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultTokenFile ~/.config/dstclan/session.json, or a relative file without a home directory
func DefaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".dstclan-session.json"
	}
	return filepath.Join(dir, "dstclan", "session.json")
}

// Load reads the token; a missing file means logged out
func (f *FileStore) Load() (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read session file: %w", err)
	}

	var stored map[string]string
	if err := json.Unmarshal(data, &stored); err != nil {
		return "", fmt.Errorf("parse session file: %w", err)
	}
	return stored[StorageKey], nil
}

// Save writes the token, readable by the owner only
func (f *FileStore) Save(token string) error {
	data, err := json.Marshal(map[string]string{StorageKey: token})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	return os.WriteFile(f.path, data, 0o600)
}

// Clear removes the session file
func (f *FileStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
