// Package session issues and persists client sessions. A session is a small
// JSON blob in the cache metadata table plus an HS256 token whose expiry
// bounds the session lifetime.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/gaetanosm/lifetrack/internal/client/cache"
	"github.com/gaetanosm/lifetrack/internal/common"
	"github.com/gaetanosm/lifetrack/internal/models"
)

const metadataKey = "session"

// Session is what the UI layer gets back from login/register/check.
type Session struct {
	ID          string      `json:"id"`
	UserID      string      `json:"userId"`
	DisplayName string      `json:"displayName"`
	Role        models.Role `json:"role"`
	OwnerID     string      `json:"ownerId,omitempty"`
	Token       string      `json:"token"`
	// Pending signals that the user's record only reached the local cache
	// and is waiting for reconciliation.
	Pending bool `json:"pending,omitempty"`
}

// Claims carried inside the session token.
type Claims struct {
	jwt.RegisteredClaims
	UserID string      `json:"uid"`
	Role   models.Role `json:"role"`
}

// Manager mints and verifies session tokens.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// Generate issues a signed token for the given record.
func (m *Manager) Generate(rec *models.UserRecord) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		UserID: rec.ID,
		Role:   rec.Role,
	})
	return token.SignedString(m.secret)
}

// Verify parses tokenString and returns its claims, or common.ErrInvalidToken
// for anything unparseable, forged, or expired.
func (m *Manager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}

// Store persists the current session in the cache metadata table.
type Store struct {
	meta cache.MetadataRepository
}

func NewStore(meta cache.MetadataRepository) *Store {
	return &Store{meta: meta}
}

// Save replaces the current session.
func (s *Store) Save(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	return s.meta.Set(ctx, metadataKey, data)
}

// Load returns the saved session or common.ErrNoSession.
func (s *Store) Load(ctx context.Context) (*Session, error) {
	data, err := s.meta.Get(ctx, metadataKey)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, common.ErrNoSession
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		// A corrupt blob is the same as no session.
		return nil, errors.Join(common.ErrNoSession, err)
	}
	return &sess, nil
}

// Clear removes the saved session. Clearing an absent session is a no-op.
func (s *Store) Clear(ctx context.Context) error {
	return s.meta.Delete(ctx, metadataKey)
}
