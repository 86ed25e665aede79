// Package session keeps dashboard logins in a fiber storage backend.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/botpanel/botpanel/internal/db/models"
)

// CookieName is the name of the session cookie.
const CookieName = "session"

// ErrSessionNotFound is returned for unknown or expired session ids.
var ErrSessionNotFound = errors.New("session not found")

// Data represents the session data structure.
type Data struct {
	User models.User
}

// Store reads and writes session data.
type Store struct {
	Storage fiber.Storage
	Expiry  time.Duration
}

// New creates a session store on top of the given storage backend.
func New(storage fiber.Storage, expiry time.Duration) *Store {
	if storage == nil {
		panic("storage is nil")
	}

	return &Store{
		Storage: storage,
		Expiry:  expiry,
	}
}

// Write writes the session data for the given session ID.
func (s *Store) Write(sessionID string, data *Data) error {
	out, err := json.Marshal(data)
	if err != nil {
		return err
	}

	return s.Storage.Set(sessionID, out, s.Expiry)
}

// Read reads the session data for the given session ID.
func (s *Store) Read(sessionID string) (*Data, error) {
	if sessionID == "" {
		return nil, ErrSessionNotFound
	}

	byteData, err := s.Storage.Get(sessionID)
	if err != nil {
		return nil, err
	}

	// fiber storages return nil for missing keys
	if len(byteData) == 0 {
		return nil, ErrSessionNotFound
	}

	data := new(Data)
	if err = json.Unmarshal(byteData, data); err != nil {
		return nil, err
	}

	return data, nil
}

// Delete removes the session.
func (s *Store) Delete(sessionID string) error {
	return s.Storage.Delete(sessionID)
}

// GenerateSessionID generates a new secure random session ID.
func GenerateSessionID() (string, error) {
	// 32 bytes = 256 bits
	b := make([]byte, 32) //nolint:mnd
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}
