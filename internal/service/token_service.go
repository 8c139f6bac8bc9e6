package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	appErrors "github.com/campusbot/schedule-api/pkg/errors"
)

const tokenKeyPrefix = "import_token:"

type tokenStore interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	GetDel(ctx context.Context, key string) (string, error)
}

// TokenService issues short-lived, single-use upload tokens. The token
// itself is a signed JWT carrying the user id; its jti is parked in the
// store so a token can be redeemed exactly once.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	store  tokenStore
	now    func() time.Time
}

// NewTokenService constructs TokenService.
func NewTokenService(secret string, ttl time.Duration, store tokenStore) *TokenService {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, store: store, now: time.Now}
}

// Issue creates an upload token bound to userID.
func (s *TokenService) Issue(ctx context.Context, userID string) (string, time.Time, error) {
	if userID == "" {
		return "", time.Time{}, appErrors.Clone(appErrors.ErrValidation, "user id is required")
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign token")
	}

	if err := s.store.Set(ctx, tokenKeyPrefix+claims.ID, userID, s.ttl); err != nil {
		return "", time.Time{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to park token")
	}

	return signed, expiresAt, nil
}

// Redeem validates a token and consumes it, returning the bound user id.
// A second redemption of the same token fails.
func (s *TokenService) Redeem(ctx context.Context, token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return "", appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired upload token")
	}

	userID, err := s.store.GetDel(ctx, tokenKeyPrefix+claims.ID)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to consume token")
	}
	if userID == "" || userID != claims.Subject {
		return "", appErrors.Clone(appErrors.ErrUnauthorized, "upload token already used")
	}

	return userID, nil
}
