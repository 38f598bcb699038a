package broker

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

var (
	ErrNotFound  = errors.New("broker not found")
	ErrDuplicate = errors.New("broker already exists")
	ErrDecrypt   = errors.New("cannot decrypt broker store (wrong master password?)")
)

type envelope struct {
	Version int    `json:"version"`
	Salt    []byte `json:"salt"`
	Data    []byte `json:"data"`
}

const envelopeVersion = 1

// FileStore is a Provider persisted as one encrypted file.
type FileStore struct {
	mu      sync.RWMutex
	path    string
	vault   *vault
	brokers map[string]Broker
}

// OpenFileStore opens the store at path, creating it when missing.
func OpenFileStore(path string, password []byte) (*FileStore, error) {
	s := &FileStore{path: path, brokers: map[string]Broker{}}

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		salt, err := newSalt()
		if err != nil {
			return nil, err
		}
		if s.vault, err = openVault(password, salt); err != nil {
			return nil, err
		}
		return s, s.flush()
	}
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("corrupt broker store: %w", err)
	}
	if s.vault, err = openVault(password, env.Salt); err != nil {
		return nil, err
	}
	plain, err := s.vault.open(env.Data)
	if err != nil {
		return nil, ErrDecrypt
	}
	if err := json.Unmarshal(plain, &s.brokers); err != nil {
		return nil, fmt.Errorf("corrupt broker data: %w", err)
	}
	return s, nil
}

func (s *FileStore) flush() error {
	plain, err := json.Marshal(s.brokers)
	if err != nil {
		return err
	}
	sealed, err := s.vault.seal(plain)
	if err != nil {
		return err
	}
	out, err := json.Marshal(envelope{Version: envelopeVersion, Salt: s.vault.salt, Data: sealed})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, out, 0o600)
}

// List returns summaries sorted by name.
func (s *FileStore) List() ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Summary, 0, len(s.brokers))
	for _, b := range s.brokers {
		out = append(out, b.Summarize())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Get returns a copy of the named profile.
func (s *FileStore) Get(name string) (*Broker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.brokers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return &b, nil
}

// Add stores a new profile.
func (s *FileStore) Add(b Broker) error {
	if err := b.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.brokers[b.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, b.Name)
	}
	s.brokers[b.Name] = b
	return s.flush()
}

// Update replaces the profile called name, renaming it if b.Name differs.
func (s *FileStore) Update(name string, b Broker) error {
	if err := b.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.brokers[name]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if _, taken := s.brokers[b.Name]; taken && b.Name != name {
		return fmt.Errorf("%w: %s", ErrDuplicate, b.Name)
	}
	delete(s.brokers, name)
	s.brokers[b.Name] = b
	return s.flush()
}

// Remove deletes the named profile.
func (s *FileStore) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.brokers[name]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	delete(s.brokers, name)
	return s.flush()
}
