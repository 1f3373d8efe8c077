// Package jwttoken issues and verifies the HS256 access tokens carried in the
// access_token cookie.
package jwttoken

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	dErrors "samiti/pkg/domain-errors"
)

var (
	errExpired       = dErrors.New(dErrors.CodeUnauthorized, "token has expired")
	errInvalid       = dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	errInvalidClaims = dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
)

// Claims is the token payload: {"id": "<user id>", "role_type": "<role>"} plus
// the registered claims. The id is a decimal string on the wire.
type Claims struct {
	UserID   string `json:"id"`
	RoleType string `json:"role_type"`
	jwt.RegisteredClaims
}

// Principal returns the numeric user id and role.
func (c *Claims) Principal() (int64, string, error) {
	id, err := strconv.ParseInt(c.UserID, 10, 64)
	if err != nil || id <= 0 {
		return 0, "", fmt.Errorf("claim id %q is not a positive integer", c.UserID)
	}
	return id, c.RoleType, nil
}

type JWTService struct {
	signingKey []byte
	issuer     string
	parser     *jwt.Parser
}

func NewJWTService(signingKey string, issuer string) *JWTService {
	return &JWTService{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(issuer),
			jwt.WithExpirationRequired(),
		),
	}
}

// GenerateAccessToken signs a token for userID valid for expiresIn.
func (s *JWTService) GenerateAccessToken(userID int64, roleType string, expiresIn time.Duration) (string, error) {
	now := time.Now()
	id := strconv.FormatInt(userID, 10)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:   id,
		RoleType: roleType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			ID:        uuid.NewString(),
		},
	})
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

// ValidateToken verifies signature, issuer and expiry. Every failure is an
// unauthorized domain error.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := s.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.signingKey, nil
	})
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, errExpired
	case err != nil:
		return nil, errInvalid
	}
	if _, _, err := claims.Principal(); err != nil {
		return nil, errInvalidClaims
	}
	return claims, nil
}
