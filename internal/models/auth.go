package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims represents the payload of an identity token.
type JWTClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenResponse is returned by the token endpoint.
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"`
}
