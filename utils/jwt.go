package utils

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTSecret 簽發與驗證 token 用的密鑰，啟動時由 InitJWTSecret 載入
var JWTSecret []byte

// InitJWTSecret 從環境變數載入 JWT_SECRET
func InitJWTSecret() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "smartpark-dev-secret"
		log.Println("JWT_SECRET not set, using default development secret")
	}
	JWTSecret = []byte(secret)
}

// GenerateToken 簽發 24 小時有效的 HMAC token，claims 帶 user_id、username、role
func GenerateToken(userID int, username, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"role":     role,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(JWTSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
