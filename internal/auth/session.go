package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hugh/taskhive/internal/database/models"
	"gorm.io/gorm"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionManager issues, validates, and revokes login sessions. A session is
// a stored row keyed by a random opaque token plus a signed envelope carrying
// that token as its subject. Validation checks both the envelope's expiry
// claim and the row's own expired_at.
type SessionManager struct {
	db  *gorm.DB
	jwt *JWTService
	ttl time.Duration
}

func NewSessionManager(db *gorm.DB, jwt *JWTService, ttl time.Duration) *SessionManager {
	return &SessionManager{db: db, jwt: jwt, ttl: ttl}
}

// Issue creates a session for the user and returns the raw opaque token and
// the signed envelope to hand to the client.
func (m *SessionManager) Issue(ctx context.Context, userID uuid.UUID) (string, string, error) {
	raw, err := generateToken()
	if err != nil {
		return "", "", fmt.Errorf("generating session token: %w", err)
	}

	session := models.AuthSession{
		Token:     raw,
		UserID:    userID,
		ExpiredAt: time.Now().Add(m.ttl),
	}
	if err := m.db.WithContext(ctx).Create(&session).Error; err != nil {
		return "", "", fmt.Errorf("persisting session: %w", err)
	}

	envelope, err := m.jwt.Sign(raw)
	if err != nil {
		return "", "", fmt.Errorf("signing session envelope: %w", err)
	}

	return raw, envelope, nil
}

// Validate resolves a signed envelope to its stored session. An unknown
// token, a bad signature, an expired claim, or a row past its own expiry all
// fail the same way from the caller's point of view.
func (m *SessionManager) Validate(ctx context.Context, envelope string) (*models.AuthSession, error) {
	raw, err := m.jwt.Verify(envelope)
	if err != nil {
		return nil, err
	}

	var session models.AuthSession
	if err := m.db.WithContext(ctx).Where("token = ?", raw).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if time.Now().After(session.ExpiredAt) {
		return nil, ErrExpiredToken
	}

	return &session, nil
}

// Revoke deletes the stored session for the raw opaque token. Deleting an
// already-revoked token is not an error.
func (m *SessionManager) Revoke(ctx context.Context, raw string) error {
	return m.db.WithContext(ctx).Where("token = ?", raw).Delete(&models.AuthSession{}).Error
}

// generateToken returns 128 bits from crypto/rand, hex-encoded.
func generateToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
