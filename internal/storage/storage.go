package storage

import (
	"errors"
	"sync"
)

// DefaultApplicationID is the application whose licenses are counted unless configured otherwise.
const DefaultApplicationID = 374

var (
	// ErrInvalidApplicationID indicates the provided application id violates validation rules.
	ErrInvalidApplicationID = errors.New("application id must be a non-negative integer")
)

// Storage provides access to the application id licenses are counted for.
type Storage interface {
	GetApplicationID() (int, error)
	SetApplicationID(id int) error
}

// MemoryStorage keeps the target application id in-memory and guards access with a RWMutex.
type MemoryStorage struct {
	mu            sync.RWMutex
	applicationID int
}

// NewMemoryStorage initialises storage with DefaultApplicationID.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		applicationID: DefaultApplicationID,
	}
}

// GetApplicationID returns the currently configured application id.
func (s *MemoryStorage) GetApplicationID() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.applicationID, nil
}

// SetApplicationID validates and stores the application id.
func (s *MemoryStorage) SetApplicationID(id int) error {
	if err := ValidateApplicationID(id); err != nil {
		return err
	}

	s.mu.Lock()
	s.applicationID = id
	s.mu.Unlock()

	return nil
}

// ValidateApplicationID reports whether id can identify an application.
func ValidateApplicationID(id int) error {
	if id < 0 {
		return ErrInvalidApplicationID
	}
	return nil
}
