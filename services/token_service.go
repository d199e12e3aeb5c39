package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const DefaultTokenTTL = 24 * time.Hour

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)

// UserToken is the caller identity carried in the Authorization header.
type UserToken struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TokenService signs and verifies bearer tokens. Tokens are
// base64url(payload) + "." + base64url(hmac-sha256(payload)).
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: DefaultTokenTTL}
}

// Sign issues a token for the given identity.
func (s *TokenService) Sign(userID, username string) (string, error) {
	payload, err := json.Marshal(UserToken{
		UserID:    userID,
		Username:  username,
		ExpiresAt: time.Now().Add(s.ttl),
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(payload) + "." + s.signature(payload), nil
}

// Verify checks the signature and expiry, returning the embedded identity.
func (s *TokenService) Verify(token string) (*UserToken, error) {
	encodedPayload, signature, found := strings.Cut(token, ".")
	if !found {
		return nil, ErrInvalidToken
	}
	payload, err := base64.RawURLEncoding.DecodeString(encodedPayload)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !hmac.Equal([]byte(signature), []byte(s.signature(payload))) {
		return nil, ErrInvalidToken
	}

	var userToken UserToken
	if err := json.Unmarshal(payload, &userToken); err != nil {
		return nil, ErrInvalidToken
	}
	if userToken.UserID == "" {
		return nil, ErrInvalidToken
	}
	if time.Now().After(userToken.ExpiresAt) {
		return nil, ErrExpiredToken
	}
	return &userToken, nil
}

func (s *TokenService) signature(payload []byte) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write(payload)
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
