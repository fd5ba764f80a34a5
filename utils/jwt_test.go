package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	InitJWTSecret()

	signed, err := GenerateToken(7, "admin", "admin")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	token, err := jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return JWTSecret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		t.Fatal("token claims invalid")
	}
	if claims["user_id"].(float64) != 7 {
		t.Errorf("user_id = %v, want 7", claims["user_id"])
	}
	if claims["username"] != "admin" || claims["role"] != "admin" {
		t.Errorf("claims = %v", claims)
	}
}

func TestGenerateTokenWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	InitJWTSecret()

	signed, err := GenerateToken(7, "admin", "admin")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	_, err = jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return []byte("another-secret"), nil
	})
	if err == nil {
		t.Fatal("token should not verify with a different secret")
	}
}
