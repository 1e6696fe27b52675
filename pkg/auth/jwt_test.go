package auth

import (
	"errors"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestJWTManager_RoundTrip(t *testing.T) {
	m, err := NewJWTManager(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewJWTManager failed: %v", err)
	}

	token, err := m.Generate("ada", RoleAnalyst)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.Username != "ada" || claims.Role != RoleAnalyst {
		t.Errorf("claims = %+v, want ada/analyst", claims)
	}
}

func TestJWTManager_ShortSecret(t *testing.T) {
	if _, err := NewJWTManager("short", time.Hour); !errors.Is(err, ErrShortSecret) {
		t.Errorf("err = %v, want ErrShortSecret", err)
	}
}

func TestJWTManager_InvalidRole(t *testing.T) {
	m, _ := NewJWTManager(testSecret, time.Hour)
	if _, err := m.Generate("ada", "superuser"); !errors.Is(err, ErrInvalidRole) {
		t.Errorf("err = %v, want ErrInvalidRole", err)
	}
}

func TestJWTManager_ExpiredToken(t *testing.T) {
	m, _ := NewJWTManager(testSecret, -time.Minute)
	token, err := m.Generate("ada", RoleViewer)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if _, err := m.Validate(token); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("err = %v, want ErrExpiredToken", err)
	}
}

func TestJWTManager_WrongSecret(t *testing.T) {
	m1, _ := NewJWTManager(testSecret, time.Hour)
	m2, _ := NewJWTManager("ffffffffffffffffffffffffffffffff", time.Hour)

	token, _ := m1.Generate("ada", RoleViewer)
	if _, err := m2.Validate(token); err == nil {
		t.Error("expected validation failure with wrong secret")
	}
}
