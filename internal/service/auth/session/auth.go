package session_auth

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/humanbelnik/cinetally/internal/model"
)

type Token = string

var (
	ErrInternal  = errors.New("internal error")
	ErrNoSession = errors.New("no active session")
	ErrEmptyName = errors.New("display name required")
)

type SessionCache interface {
	Set(key string, value string, ttl time.Duration) error
	Get(key string) (string, error)
}

// Service is the identity provider: a token either resolves to a user or it
// does not. Session policy beyond TTL-bound tokens lives outside the core.
type Service struct {
	sessionCache SessionCache
	ttl          time.Duration
}

func New(
	sessionCache SessionCache,
	ttl time.Duration,
) *Service {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &Service{
		sessionCache: sessionCache,
		ttl:          ttl,
	}
}

type sessionPayload struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
}

// Login mints an identity and a session token for it.
func (s *Service) Login(displayName string) (model.User, Token, error) {
	if displayName == "" {
		return model.User{}, "", ErrEmptyName
	}

	user := model.User{
		ID:          uuid.New(),
		DisplayName: displayName,
	}

	payload, err := json.Marshal(sessionPayload{
		ID:          user.ID,
		DisplayName: user.DisplayName,
	})
	if err != nil {
		return model.User{}, "", errors.Join(ErrInternal, err)
	}

	t := uuid.New().String()
	if err := s.sessionCache.Set(t, string(payload), s.ttl); err != nil {
		return model.User{}, "", errors.Join(ErrInternal, err)
	}

	return user, t, nil
}

// CurrentUser resolves a session token. An empty or expired token is
// ErrNoSession.
func (s *Service) CurrentUser(t Token) (model.User, error) {
	if t == "" {
		return model.User{}, ErrNoSession
	}

	v, err := s.sessionCache.Get(t)
	if err != nil {
		return model.User{}, errors.Join(ErrInternal, err)
	}
	if v == "" {
		return model.User{}, ErrNoSession
	}

	var payload sessionPayload
	if err := json.Unmarshal([]byte(v), &payload); err != nil {
		return model.User{}, errors.Join(ErrInternal, err)
	}

	return model.User{
		ID:          payload.ID,
		DisplayName: payload.DisplayName,
	}, nil
}
