package auth

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestUserIDFromContext(t *testing.T) {
	userID := uuid.New()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: userID.String()},
		Email:            "viewer@example.com",
	}
	ctx := context.WithValue(context.Background(), ClaimsKey, claims)

	got, err := UserIDFromContext(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != userID {
		t.Errorf("expected %s, got %s", userID, got)
	}
}

func TestUserIDFromContext_NoClaims(t *testing.T) {
	if _, err := UserIDFromContext(context.Background()); err == nil {
		t.Error("expected error without claims in context")
	}
}

func TestUserIDFromContext_EmptySubject(t *testing.T) {
	ctx := context.WithValue(context.Background(), ClaimsKey, &Claims{})
	if _, err := UserIDFromContext(ctx); err == nil {
		t.Error("expected error for empty subject")
	}
}

func TestUserIDFromContext_InvalidUUID(t *testing.T) {
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "not-a-uuid"},
	}
	ctx := context.WithValue(context.Background(), ClaimsKey, claims)
	if _, err := UserIDFromContext(ctx); err == nil {
		t.Error("expected error for malformed subject")
	}
}

func TestGetClaims_Absent(t *testing.T) {
	if _, ok := GetClaims(context.Background()); ok {
		t.Error("expected ok=false without claims")
	}
}
