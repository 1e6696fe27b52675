package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var ErrKeyNotFound = errors.New("api key not found or revoked")

const keyPrefix = "cs"

// APIKey holds the metadata of an issued key. The secret itself is
// returned exactly once at creation and only its bcrypt hash is kept.
type APIKey struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Prefix    string    `json:"prefix"`
	hash      []byte
	CreatedAt time.Time `json:"created_at"`
	Revoked   bool      `json:"revoked"`
}

// APIKeyStore manages issued API keys in memory.
type APIKeyStore struct {
	mu   sync.RWMutex
	keys map[string]*APIKey // id -> key
}

// NewAPIKeyStore creates an empty store.
func NewAPIKeyStore() *APIKeyStore {
	return &APIKeyStore{keys: make(map[string]*APIKey)}
}

// Create issues a new key for the given role. The returned secret has
// the form cs_<id>_<random> so the id can be recovered for lookup.
func (s *APIKeyStore) Create(name, role string) (*APIKey, string, error) {
	if !validRoles[role] {
		return nil, "", fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}

	idBytes := make([]byte, 8)
	secretBytes := make([]byte, 24)
	if _, err := rand.Read(idBytes); err != nil {
		return nil, "", fmt.Errorf("generate key id: %w", err)
	}
	if _, err := rand.Read(secretBytes); err != nil {
		return nil, "", fmt.Errorf("generate key secret: %w", err)
	}

	id := hex.EncodeToString(idBytes)
	secret := hex.EncodeToString(secretBytes)
	plaintext := fmt.Sprintf("%s_%s_%s", keyPrefix, id, secret)

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash key: %w", err)
	}

	key := &APIKey{
		ID:        id,
		Name:      name,
		Role:      role,
		Prefix:    fmt.Sprintf("%s_%s", keyPrefix, id[:4]),
		hash:      hash,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.keys[id] = key
	s.mu.Unlock()

	return key, plaintext, nil
}

// Validate checks a presented key and returns its metadata.
func (s *APIKeyStore) Validate(plaintext string) (*APIKey, error) {
	parts := strings.Split(plaintext, "_")
	if len(parts) != 3 || parts[0] != keyPrefix {
		return nil, ErrKeyNotFound
	}
	id, secret := parts[1], parts[2]

	s.mu.RLock()
	key, ok := s.keys[id]
	s.mu.RUnlock()
	if !ok || key.Revoked {
		return nil, ErrKeyNotFound
	}

	if bcrypt.CompareHashAndPassword(key.hash, []byte(secret)) != nil {
		return nil, ErrKeyNotFound
	}
	return key, nil
}

// Revoke permanently disables a key.
func (s *APIKeyStore) Revoke(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key, ok := s.keys[id]
	if !ok {
		return ErrKeyNotFound
	}
	key.Revoked = true
	return nil
}
