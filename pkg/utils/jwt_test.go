package utils

import (
	"testing"

	"github.com/google/uuid"

	"github.com/contextly-dev/contextly/internal/config"
	"github.com/contextly-dev/contextly/internal/models"
)

func TestGenerateAndValidateToken(t *testing.T) {
	cfg := &config.Config{Server: config.ServerConfig{JwtSecretKey: "test-secret"}}
	user := &models.User{
		UserID:   uuid.New(),
		Username: "alex",
		Email:    "alex@example.com",
		Role:     models.UserRole,
	}

	token, err := GenerateJWTToken(user, cfg)
	if err != nil {
		t.Fatalf("GenerateJWTToken: %v", err)
	}

	claims, err := ValidateToken(token, cfg.Server.JwtSecretKey)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != user.UserID.String() {
		t.Errorf("user id = %q, want %q", claims.UserID, user.UserID)
	}
	if claims.Email != user.Email || claims.Role != models.UserRole {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	cfg := &config.Config{Server: config.ServerConfig{JwtSecretKey: "test-secret"}}
	token, err := GenerateJWTToken(&models.User{UserID: uuid.New()}, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, err = ValidateToken(token, "other-secret"); err == nil {
		t.Error("expected validation failure with the wrong secret")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	if _, err := ValidateToken("not.a.token", "test-secret"); err == nil {
		t.Error("expected parse failure")
	}
}
