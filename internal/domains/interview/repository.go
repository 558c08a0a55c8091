package interview

import "errors"

var ErrSessionNotFound = errors.New("session not found")

// SessionRepository abstracts interview session storage.
type SessionRepository interface {
	Create(s *Session) error
	Get(id string) (*Session, error)
	Update(s *Session) error
	List() ([]Session, error)
}
