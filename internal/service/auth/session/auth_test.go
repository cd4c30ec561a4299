package session_auth

import (
	"errors"
	"testing"
	"time"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type SessionAuthUnitSuite struct {
	suite.Suite
}

type memoryCache struct {
	values map[string]string
	ttls   map[string]time.Duration
	setErr error
	getErr error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{
		values: make(map[string]string),
		ttls:   make(map[string]time.Duration),
	}
}

func (c *memoryCache) Set(key string, value string, ttl time.Duration) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.values[key] = value
	c.ttls[key] = ttl
	return nil
}

func (c *memoryCache) Get(key string) (string, error) {
	if c.getErr != nil {
		return "", c.getErr
	}
	return c.values[key], nil
}

func (s *SessionAuthUnitSuite) TestLogin(t provider.T) {
	t.Run("Should mint a resolvable session", func(t provider.T) {
		cache := newMemoryCache()
		service := New(cache, time.Hour)

		user, token, err := service.Login("alice")
		require.NoError(t, err)
		require.NotEmpty(t, token)
		assert.Equal(t, "alice", user.DisplayName)
		assert.True(t, user.Known())
		assert.Equal(t, time.Hour, cache.ttls[token])

		resolved, err := service.CurrentUser(token)
		require.NoError(t, err)
		assert.Equal(t, user, resolved)
	})

	t.Run("Should reject an empty display name", func(t provider.T) {
		service := New(newMemoryCache(), time.Hour)

		_, _, err := service.Login("")

		assert.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("Should mint distinct tokens for distinct logins", func(t provider.T) {
		service := New(newMemoryCache(), time.Hour)

		aliceUser, aliceToken, err := service.Login("alice")
		require.NoError(t, err)
		bobUser, bobToken, err := service.Login("bob")
		require.NoError(t, err)

		assert.NotEqual(t, aliceToken, bobToken)
		assert.NotEqual(t, aliceUser.ID, bobUser.ID)
	})

	t.Run("Should surface a cache write failure as internal", func(t provider.T) {
		cache := newMemoryCache()
		cache.setErr = errors.New("connection refused")
		service := New(cache, time.Hour)

		_, _, err := service.Login("alice")

		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("Should fall back to a default TTL", func(t provider.T) {
		cache := newMemoryCache()
		service := New(cache, 0)

		_, token, err := service.Login("alice")

		require.NoError(t, err)
		assert.Equal(t, 24*time.Hour, cache.ttls[token])
	})
}

func (s *SessionAuthUnitSuite) TestCurrentUser(t provider.T) {
	t.Run("Should report no session for an empty token", func(t provider.T) {
		service := New(newMemoryCache(), time.Hour)

		_, err := service.CurrentUser("")

		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("Should report no session for an unknown token", func(t provider.T) {
		service := New(newMemoryCache(), time.Hour)

		_, err := service.CurrentUser("expired-or-bogus")

		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("Should surface a cache read failure as internal", func(t provider.T) {
		cache := newMemoryCache()
		cache.getErr = errors.New("connection refused")
		service := New(cache, time.Hour)

		_, err := service.CurrentUser("some-token")

		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("Should surface a corrupted payload as internal", func(t provider.T) {
		cache := newMemoryCache()
		cache.values["bad-token"] = "not json"
		service := New(cache, time.Hour)

		_, err := service.CurrentUser("bad-token")

		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(SessionAuthUnitSuite))
}
