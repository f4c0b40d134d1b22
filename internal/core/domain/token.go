package domain

import "time"

// TokenClaims is the validated content of an identity token.
type TokenClaims struct {
	Subject   string
	ID        string
	ExpiresAt time.Time
}
