package jwttoken

import (
	authmw "samiti/pkg/platform/middleware/auth"
)

// JWTServiceAdapter satisfies authmw.JWTValidator so the middleware never sees Claims.
type JWTServiceAdapter struct {
	service *JWTService
}

func NewJWTServiceAdapter(service *JWTService) *JWTServiceAdapter {
	return &JWTServiceAdapter{service: service}
}

func (a *JWTServiceAdapter) ValidateToken(tokenString string) (*authmw.JWTClaims, error) {
	claims, err := a.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	userID, role, err := claims.Principal()
	if err != nil {
		return nil, errInvalidClaims
	}
	return &authmw.JWTClaims{UserID: userID, RoleType: role}, nil
}
