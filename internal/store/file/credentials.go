package file

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"faqhub.org/internal/auth"
)

// CredentialStore keeps admin credentials in admins.json.
type CredentialStore struct {
	mu   sync.Mutex
	path string
}

var _ auth.CredentialStore = (*CredentialStore)(nil)

// NewCredentialStore creates a store rooted at dir.
func NewCredentialStore(dir string) (*CredentialStore, error) {
	path := filepath.Join(dir, "admins.json")
	if err := ensureDir(path); err != nil {
		return nil, fmt.Errorf("credential store: %w", err)
	}
	return &CredentialStore{path: path}, nil
}

// load reads the full record array. Read errors degrade to an empty list;
// an unreadable store must reject logins, not crash the process.
func (s *CredentialStore) load() []auth.Credential {
	creds := []auth.Credential{}
	if err := readJSON(s.path, &creds); err != nil {
		return []auth.Credential{}
	}
	return creds
}

func (s *CredentialStore) save(creds []auth.Credential) error {
	return writeJSON(s.path, creds)
}

func (s *CredentialStore) Lookup(_ context.Context, username string) (auth.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.load() {
		if c.Username == username {
			return c, nil
		}
	}
	return auth.Credential{}, auth.ErrNotFound
}

func (s *CredentialStore) Find(_ context.Context, id string) (auth.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.load() {
		if c.ID == id {
			return c, nil
		}
	}
	return auth.Credential{}, auth.ErrNotFound
}

func (s *CredentialStore) List(context.Context) ([]auth.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(), nil
}

func (s *CredentialStore) Create(_ context.Context, cred auth.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	creds := s.load()
	for _, c := range creds {
		if c.Username == cred.Username {
			return fmt.Errorf("%w: username %s already exists", auth.ErrValidation, cred.Username)
		}
	}
	return s.save(append(creds, cred))
}

func (s *CredentialStore) Update(_ context.Context, cred auth.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	creds := s.load()
	for i, c := range creds {
		if c.ID == cred.ID {
			creds[i] = cred
			return s.save(creds)
		}
	}
	return auth.ErrNotFound
}

func (s *CredentialStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	creds := s.load()
	kept := creds[:0]
	for _, c := range creds {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(creds) {
		return auth.ErrNotFound
	}
	return s.save(kept)
}
