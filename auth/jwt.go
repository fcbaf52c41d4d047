package auth

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"inkpress/models"
)

// Claims is the payload carried by an access token.
// Raw passwords never enter a token.
type Claims struct {
	UserID string
	Email  string
	Role   string
}

// JWTManager issues and verifies JWTs using a single HS256 secret string.
type JWTManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewJWTManager builds a manager with the given secret and issuer.
func NewJWTManager(secret, issuer string, ttl time.Duration) *JWTManager {
	return &JWTManager{secret: []byte(secret), issuer: issuer, ttl: ttl}
}

// NewJWTManagerFromEnv reads the secret and issuer from the environment.
//
// - JWT_SECRET: HS256 signing secret (required)
// - JWT_ISSUER: iss claim value (optional, defaults to "inkpress")
func NewJWTManagerFromEnv() (*JWTManager, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	issuer := os.Getenv("JWT_ISSUER")
	if issuer == "" {
		issuer = "inkpress"
	}

	return &JWTManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    7 * 24 * time.Hour,
	}, nil
}

// Sign issues a token for the given user carrying userId/email/role claims.
func (m *JWTManager) Sign(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"userId": user.ID.Hex(),
		"email":  user.Email,
		"role":   user.Role,
		"iss":    m.issuer,
		"exp":    time.Now().Add(m.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse verifies a token string and returns its claims.
func (m *JWTManager) Parse(tokenString string) (Claims, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return Claims{}, err
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return Claims{}, fmt.Errorf("invalid token claims")
	}

	userID, _ := mapClaims["userId"].(string)
	email, _ := mapClaims["email"].(string)
	role, _ := mapClaims["role"].(string)
	if userID == "" {
		return Claims{}, fmt.Errorf("token missing userId claim")
	}

	return Claims{UserID: userID, Email: email, Role: role}, nil
}
