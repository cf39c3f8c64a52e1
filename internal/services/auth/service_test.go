package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	redrepo "github.com/avelasquezg/chambeaya/internal/repo/redis"
	authsvc "github.com/avelasquezg/chambeaya/internal/services/auth"
)

func TestRefreshRotation(t *testing.T) {
	svc, cleanup := newAuthServiceForTest(t)
	defer cleanup()

	ctx := context.Background()
	issueRes, err := svc.IssueForUser(ctx, 1001, "student")
	if err != nil {
		t.Fatalf("issue session: %v", err)
	}

	refreshRes, err := svc.Refresh(ctx, issueRes.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}

	if refreshRes.RefreshToken == issueRes.RefreshToken {
		t.Fatalf("refresh token was not rotated")
	}

	if _, err := svc.Refresh(ctx, issueRes.RefreshToken); !errors.Is(err, authsvc.ErrUnauthorized) {
		t.Fatalf("old refresh token should be unauthorized, got err=%v", err)
	}

	if _, err := svc.ValidateAccessToken(ctx, refreshRes.AccessToken); err != nil {
		t.Fatalf("new access token validation failed: %v", err)
	}
}

func TestLogoutInvalidatesSession(t *testing.T) {
	svc, cleanup := newAuthServiceForTest(t)
	defer cleanup()

	ctx := context.Background()
	issueRes, err := svc.IssueForUser(ctx, 2002, "business")
	if err != nil {
		t.Fatalf("issue session: %v", err)
	}

	claims, err := svc.ValidateAccessToken(ctx, issueRes.AccessToken)
	if err != nil {
		t.Fatalf("validate access token before logout: %v", err)
	}
	if claims.UserType != "business" {
		t.Fatalf("expected user_type business in claims, got %q", claims.UserType)
	}

	if err := svc.Logout(ctx, claims.SID); err != nil {
		t.Fatalf("logout: %v", err)
	}

	if _, err := svc.ValidateAccessToken(ctx, issueRes.AccessToken); !errors.Is(err, authsvc.ErrUnauthorized) {
		t.Fatalf("access token should be unauthorized after logout, got err=%v", err)
	}
}

func TestLogoutAllInvalidatesEverySession(t *testing.T) {
	svc, cleanup := newAuthServiceForTest(t)
	defer cleanup()

	ctx := context.Background()
	first, err := svc.IssueForUser(ctx, 3003, "student")
	if err != nil {
		t.Fatalf("issue first session: %v", err)
	}
	second, err := svc.IssueForUser(ctx, 3003, "student")
	if err != nil {
		t.Fatalf("issue second session: %v", err)
	}

	if err := svc.LogoutAll(ctx, 3003); err != nil {
		t.Fatalf("logout all: %v", err)
	}

	if _, err := svc.ValidateAccessToken(ctx, first.AccessToken); !errors.Is(err, authsvc.ErrUnauthorized) {
		t.Fatalf("first access token should be unauthorized, got err=%v", err)
	}
	if _, err := svc.ValidateAccessToken(ctx, second.AccessToken); !errors.Is(err, authsvc.ErrUnauthorized) {
		t.Fatalf("second access token should be unauthorized, got err=%v", err)
	}
}

func newAuthServiceForTest(t *testing.T) (*authsvc.Service, func()) {
	t.Helper()

	mini, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}

	client := goredis.NewClient(&goredis.Options{Addr: mini.Addr()})
	repo := redrepo.NewSessionRepo(client)
	jwtManager := authsvc.NewJWTManager("test-secret", 15*time.Minute)
	svc := authsvc.NewService(jwtManager, repo, 45*24*time.Hour)

	cleanup := func() {
		_ = client.Close()
		mini.Close()
	}

	return svc, cleanup
}
