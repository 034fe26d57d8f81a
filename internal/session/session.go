package session

import (
	"RestoPos/internal/domain"
	"RestoPos/pkg/logging"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// Data is the persisted identity of the signed-in user.
type Data struct {
	Token    string
	UserID   int
	UserName string
	Role     string
}

var empty = Data{UserID: domain.NoUser}

// Backend persists Data. Save and Clear must replace all fields at once.
type Backend interface {
	Load() (Data, bool, error)
	Save(Data) error
	Clear() error
}

// Store is the single source of truth for the session. It is created once
// and passed to whatever needs the token or the role.
type Store struct {
	mu         sync.RWMutex
	data       Data
	backend    Backend
	persistent bool
	now        func() time.Time
}

// New loads the stored session from backend. A nil backend or a failing one
// leaves the store in memory for the rest of the process.
func New(backend Backend) *Store {
	logger := logging.GetLogger()
	s := &Store{data: empty, backend: backend, now: time.Now}
	if backend == nil {
		return s
	}

	data, ok, err := backend.Load()
	if err != nil {
		logger.Errorf("session storage unavailable, keeping session in memory: %v", err)
		s.backend = nil
		return s
	}
	s.persistent = true
	if ok {
		s.data = data
	}
	return s
}

func (s *Store) SaveSession(token string, userID int, userName, role string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = Data{Token: token, UserID: userID, UserName: userName, Role: role}
	s.persist(func(b Backend) error { return b.Save(s.data) })
}

// UpdateIdentity keeps the token and replaces the identity fields.
func (s *Store) UpdateIdentity(userID int, userName, role string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data.Token == "" {
		return
	}
	s.data.UserID = userID
	s.data.UserName = userName
	s.data.Role = role
	s.persist(func(b Backend) error { return b.Save(s.data) })
}

func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = empty
	s.persist(func(b Backend) error {
		err := b.Clear()
		if err == nil {
			return nil
		}
		logger := logging.GetLogger()
		logger.Warnf("session clear failed, overwriting the stored session: %v", err)
		if serr := b.Save(empty); serr != nil {
			return errors.Wrapf(serr, "stored session is stale after logout (clear: %v)", err)
		}
		return nil
	})
}

// persist runs with s.mu held.
func (s *Store) persist(op func(Backend) error) {
	if s.backend == nil {
		return
	}
	if err := op(s.backend); err != nil {
		logger := logging.GetLogger()
		logger.Errorf("session storage failed, keeping session in memory: %v", err)
		s.backend = nil
		s.persistent = false
	}
}

// Token returns the bearer token, false when there is none.
func (s *Store) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Token, s.data.Token != ""
}

// Role is empty whenever there is no token.
func (s *Store) Role() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data.Token == "" {
		return ""
	}
	return s.data.Role
}

func (s *Store) UserID() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data.Token == "" {
		return domain.NoUser
	}
	return s.data.UserID
}

func (s *Store) UserName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.UserName
}

func (s *Store) Snapshot() Data {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

func (s *Store) Permissions() domain.Permissions {
	return domain.PermissionsFor(domain.ParseRole(s.Role()))
}

func (s *Store) IsLoggedIn() bool {
	token, ok := s.Token()
	return ok && !expired(token, s.now())
}

// Expired reports whether the token carries an exp claim in the past.
func (s *Store) Expired() bool {
	token, ok := s.Token()
	return ok && expired(token, s.now())
}

// Persistent is false once the store fell back to memory.
func (s *Store) Persistent() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.persistent
}

// expired reads the token without verifying it; opaque tokens never expire
// on the client.
func expired(token string, at time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !at.Before(exp.Time)
}
