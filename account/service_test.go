package account

import (
	"context"
	"strings"
	"testing"

	"github.com/poiesic/notekeep/core"
	"github.com/poiesic/notekeep/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })

	svc, err := NewService(repos.Users, WithCost(bcrypt.MinCost))
	require.NoError(t, err)
	return svc
}

func TestNewService(t *testing.T) {
	_, err := NewService(nil)
	assert.ErrorIs(t, err, ErrUserRepositoryRequired)

	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	_, err = NewService(repos.Users, WithCost(bcrypt.MaxCost+1))
	assert.Error(t, err)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	user, err := svc.Register(ctx, "  alice ", "s3cret")
	require.NoError(t, err)
	assert.NotZero(t, user.Id)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "s3cret", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret")))

	t.Run("duplicate username", func(t *testing.T) {
		_, err := svc.Register(ctx, "alice", "other")
		assert.ErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := svc.Register(ctx, "   ", "pw")
		assert.ErrorIs(t, err, core.ErrInvalidUser)
		assert.ErrorIs(t, err, core.ErrEmptyUsername)

		_, err = svc.Register(ctx, "bob", "")
		assert.ErrorIs(t, err, core.ErrInvalidUser)
		assert.ErrorIs(t, err, core.ErrEmptyPassword)
	})

	t.Run("password too long for bcrypt", func(t *testing.T) {
		_, err := svc.Register(ctx, "carol", strings.Repeat("x", 100))
		assert.ErrorIs(t, err, core.ErrInvalidUser)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	registered, err := svc.Register(ctx, "alice", "s3cret")
	require.NoError(t, err)

	user, err := svc.Login(ctx, "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, registered.Id, user.Id)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "wrong password", username: "alice", password: "nope"},
		{name: "unknown user", username: "mallory", password: "s3cret"},
		{name: "username is case sensitive", username: "Alice", password: "s3cret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(ctx, tt.username, tt.password)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}

	t.Run("empty password", func(t *testing.T) {
		_, err := svc.Login(ctx, "alice", "")
		assert.ErrorIs(t, err, core.ErrInvalidUser)
	})
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.Register(ctx, "alice", "old-pw")
	require.NoError(t, err)

	_, err = svc.ChangePassword(ctx, "alice", "wrong", "new-pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.ChangePassword(ctx, "alice", "old-pw", "")
	assert.ErrorIs(t, err, core.ErrInvalidUser)

	updated, err := svc.ChangePassword(ctx, "alice", "old-pw", "new-pw")
	require.NoError(t, err)
	assert.Equal(t, "alice", updated.Username)

	_, err = svc.Login(ctx, "alice", "old-pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "alice", "new-pw")
	assert.NoError(t, err)
}
