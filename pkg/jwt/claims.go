package jwt

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the trigger token's custom claims
type Claims struct {
	JobName string `json:"job_name"`
	jwt.RegisteredClaims
}
