package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/safakhan413/user-data-api/internal/pkg/ctxutil"
	pkgerrors "github.com/safakhan413/user-data-api/internal/pkg/errors"
	"github.com/safakhan413/user-data-api/internal/pkg/logger"
)

// AuthService validates credentials against the single configured admin
// identity and issues/verifies signed, time-limited tokens.
type AuthService interface {
	IssueToken(ctx context.Context, username, password string) (string, error)
	Authorize(ctx context.Context, tokenString string) (*ctxutil.RequestData, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	log               *logger.Logger
	adminUsername     string
	adminPasswordHash string
	jwtSecretKey      string
	accessTTL         time.Duration
}

func NewAuthService(
	log *logger.Logger,
	adminUsername string,
	adminPasswordHash string,
	jwtSecretKey string,
	accessTTL time.Duration,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		log:               serviceLog,
		adminUsername:     adminUsername,
		adminPasswordHash: adminPasswordHash,
		jwtSecretKey:      jwtSecretKey,
		accessTTL:         accessTTL,
	}
}

func (as *authService) IssueToken(ctx context.Context, username, password string) (string, error) {
	if username != as.adminUsername {
		as.log.Warn("Login attempt for unknown username", "username", username)
		return "", fmt.Errorf("incorrect username or password: %w", pkgerrors.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(as.adminPasswordHash), []byte(password)); err != nil {
		as.log.Warn("Password verification failed", "username", username)
		return "", fmt.Errorf("incorrect username or password: %w", pkgerrors.ErrUnauthorized)
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(as.accessTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(as.jwtSecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	as.log.Info("Issued access token", "username", username)
	return signed, nil
}

func (as *authService) Authorize(ctx context.Context, tokenString string) (*ctxutil.RequestData, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("could not validate credentials: %w", pkgerrors.ErrUnauthorized)
	}
	if claims.Subject != as.adminUsername {
		return nil, fmt.Errorf("could not validate credentials: %w", pkgerrors.ErrUnauthorized)
	}
	return &ctxutil.RequestData{Username: claims.Subject}, nil
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	rd, err := as.Authorize(ctx, tokenString)
	if err != nil {
		return ctx, err
	}
	return ctxutil.WithRequestData(ctx, rd), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}
