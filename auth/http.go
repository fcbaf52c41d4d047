package auth

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
)

var (
	ErrMissingHeader = errors.New("authorization header is missing")
	ErrInvalidFormat = errors.New("authorization header format must be Bearer {token}")
	ErrEmptyToken    = errors.New("bearer token is empty")
)

const bearerScheme = "bearer"

// ExtractBearerToken pulls the token out of an "Authorization: Bearer x"
// header. The scheme is matched case-insensitively.
func ExtractBearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", ErrMissingHeader
	}

	scheme, rest, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return "", ErrInvalidFormat
	}

	token := strings.TrimSpace(rest)
	if token == "" {
		return "", ErrEmptyToken
	}

	return token, nil
}
