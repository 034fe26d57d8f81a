package session

import (
	"RestoPos/internal/database"
	"RestoPos/internal/domain"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openBackend(t *testing.T, name string) Backend {
	db, err := database.Open(name)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLite(db, "")
}

func TestSessionSurvivesRestart(t *testing.T) {
	name := filepath.Join(t.TempDir(), database.DB_NAME)

	s := New(openBackend(t, name))
	assert.True(t, s.Persistent())
	assert.False(t, s.IsLoggedIn())
	s.SaveSession("tok-1", 7, "Ana", "camarero")

	restarted := New(openBackend(t, name))
	token, ok := restarted.Token()
	assert.True(t, ok)
	assert.Equal(t, "tok-1", token)
	assert.Equal(t, 7, restarted.UserID())
	assert.Equal(t, "Ana", restarted.UserName())
	assert.Equal(t, "camarero", restarted.Role())
	assert.True(t, restarted.IsLoggedIn())
	assert.True(t, restarted.Permissions().TakeOrders)
}

func TestLogoutClearsEverything(t *testing.T) {
	name := filepath.Join(t.TempDir(), database.DB_NAME)

	s := New(openBackend(t, name))
	s.SaveSession("tok-1", 7, "Ana", "admin")
	s.Logout()

	_, ok := s.Token()
	assert.False(t, ok)
	assert.Equal(t, domain.NoUser, s.UserID())
	assert.Equal(t, "", s.UserName())
	assert.Equal(t, "", s.Role())
	assert.False(t, s.IsLoggedIn())

	restarted := New(openBackend(t, name))
	assert.Equal(t, Data{UserID: domain.NoUser}, restarted.Snapshot())
}

func TestRoleWithoutTokenIsInvalid(t *testing.T) {
	s := New(nil)
	s.SaveSession("", 3, "Luis", "admin")
	assert.Equal(t, "", s.Role())
	assert.Equal(t, domain.NoUser, s.UserID())
	assert.Equal(t, domain.Permissions{}, s.Permissions())
}

func TestUpdateIdentityKeepsToken(t *testing.T) {
	s := New(nil)
	s.UpdateIdentity(1, "x", "admin")
	assert.Equal(t, "", s.Role())

	s.SaveSession("tok", domain.NoUser, "", "")
	s.UpdateIdentity(4, "Luis", "cocinero")
	assert.Equal(t, Data{Token: "tok", UserID: 4, UserName: "Luis", Role: "cocinero"}, s.Snapshot())
}

type brokenBackend struct {
	loadErr error
	saves   int
}

func (b *brokenBackend) Load() (Data, bool, error) { return Data{}, false, b.loadErr }
func (b *brokenBackend) Save(Data) error {
	b.saves++
	return errors.New("disk full")
}
func (b *brokenBackend) Clear() error { return errors.New("disk full") }

func TestStorageFailureDegradesToMemory(t *testing.T) {
	b := &brokenBackend{}
	s := New(b)
	assert.True(t, s.Persistent())

	assert.NotPanics(t, func() { s.SaveSession("tok", 1, "Ana", "admin") })
	assert.False(t, s.Persistent())
	token, ok := s.Token()
	assert.True(t, ok)
	assert.Equal(t, "tok", token)

	s.SaveSession("tok2", 1, "Ana", "admin")
	assert.Equal(t, 1, b.saves)

	s.Logout()
	assert.False(t, s.IsLoggedIn())
}

func TestUnavailableStorageAtStart(t *testing.T) {
	s := New(&brokenBackend{loadErr: errors.New("no such table")})
	assert.False(t, s.Persistent())
	s.SaveSession("tok", 1, "Ana", "admin")
	assert.True(t, s.IsLoggedIn())
}

func TestExpiredJWT(t *testing.T) {
	sign := func(exp time.Time) string {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "1", "exp": exp.Unix()})
		signed, err := tok.SignedString([]byte("secret"))
		require.NoError(t, err)
		return signed
	}

	s := New(nil)
	s.SaveSession(sign(time.Now().Add(-time.Minute)), 1, "Ana", "admin")
	assert.True(t, s.Expired())
	assert.False(t, s.IsLoggedIn())

	s.SaveSession(sign(time.Now().Add(time.Hour)), 1, "Ana", "admin")
	assert.False(t, s.Expired())
	assert.True(t, s.IsLoggedIn())

	s.SaveSession("opaque-token", 1, "Ana", "admin")
	assert.False(t, s.Expired())
	assert.True(t, s.IsLoggedIn())
}

type stickyBackend struct {
	saved []Data
}

func (b *stickyBackend) Load() (Data, bool, error) { return Data{}, false, nil }
func (b *stickyBackend) Save(d Data) error {
	b.saved = append(b.saved, d)
	return nil
}
func (b *stickyBackend) Clear() error { return errors.New("database is locked") }

func TestLogoutOverwritesWhenClearFails(t *testing.T) {
	b := &stickyBackend{}
	s := New(b)
	s.SaveSession("tok", 3, "Ana", "admin")

	s.Logout()
	require.Len(t, b.saved, 2)
	assert.Equal(t, Data{UserID: domain.NoUser}, b.saved[1])
	assert.True(t, s.Persistent())
	assert.False(t, s.IsLoggedIn())
}
