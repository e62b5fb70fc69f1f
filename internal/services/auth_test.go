package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/safakhan413/user-data-api/internal/data/repos/testutil"
	pkgerrors "github.com/safakhan413/user-data-api/internal/pkg/errors"
)

func newTestAuthService(t *testing.T, ttl time.Duration) AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt hash: %v", err)
	}
	return NewAuthService(testutil.Logger(t), "admin", string(hash), "test-signing-key", ttl)
}

func TestAuthServiceIssueAndAuthorize(t *testing.T) {
	as := newTestAuthService(t, time.Minute)
	ctx := context.Background()

	token, err := as.IssueToken(ctx, "admin", "secret")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if token == "" {
		t.Fatalf("IssueToken: empty token")
	}

	rd, err := as.Authorize(ctx, token)
	if err != nil {
		t.Fatalf("Authorize: %v", err)
	}
	if rd.Username != "admin" {
		t.Fatalf("Authorize: expected admin identity, got %q", rd.Username)
	}
}

func TestAuthServiceRejectsBadCredentials(t *testing.T) {
	as := newTestAuthService(t, time.Minute)
	ctx := context.Background()

	if _, err := as.IssueToken(ctx, "admin", "wrong"); !errors.Is(err, pkgerrors.ErrUnauthorized) {
		t.Fatalf("IssueToken (bad password): expected ErrUnauthorized, got %v", err)
	}
	if _, err := as.IssueToken(ctx, "somebody", "secret"); !errors.Is(err, pkgerrors.ErrUnauthorized) {
		t.Fatalf("IssueToken (bad username): expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthServiceRejectsBadTokens(t *testing.T) {
	as := newTestAuthService(t, time.Minute)
	ctx := context.Background()

	if _, err := as.Authorize(ctx, "not-a-token"); !errors.Is(err, pkgerrors.ErrUnauthorized) {
		t.Fatalf("Authorize (malformed): expected ErrUnauthorized, got %v", err)
	}

	token, err := as.IssueToken(ctx, "admin", "secret")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if _, err := as.Authorize(ctx, token+"tampered"); !errors.Is(err, pkgerrors.ErrUnauthorized) {
		t.Fatalf("Authorize (tampered): expected ErrUnauthorized, got %v", err)
	}

	// A token signed with a different key is rejected.
	other := NewAuthService(testutil.Logger(t), "admin", "", "another-key", time.Minute)
	if _, err := other.Authorize(ctx, token); !errors.Is(err, pkgerrors.ErrUnauthorized) {
		t.Fatalf("Authorize (wrong key): expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthServiceRejectsExpiredToken(t *testing.T) {
	as := newTestAuthService(t, -time.Minute)
	ctx := context.Background()

	token, err := as.IssueToken(ctx, "admin", "secret")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if _, err := as.Authorize(ctx, token); !errors.Is(err, pkgerrors.ErrUnauthorized) {
		t.Fatalf("Authorize (expired): expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthServiceSetContextFromToken(t *testing.T) {
	as := newTestAuthService(t, time.Minute)
	ctx := context.Background()

	token, err := as.IssueToken(ctx, "admin", "secret")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	ctx2, err := as.SetContextFromToken(ctx, token)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	if ctx2 == ctx {
		t.Fatalf("SetContextFromToken: context not augmented")
	}
}
