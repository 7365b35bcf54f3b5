package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// claims carried by the managed backend's session token.
// The user id lives in the registered "sub" claim.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}
