package models

import "time"

// TokenPayload holds the decoded claims of the session credential.
type TokenPayload struct {
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	UserID    string `json:"userId"`
	IssuedAt  int64  `json:"iat,omitempty"`
	ExpiresAt int64  `json:"exp,omitempty"`
}

// Expired reports whether the payload carries an exp claim in the past.
// A payload without exp never expires.
func (p *TokenPayload) Expired(now time.Time) bool {
	if p.ExpiresAt == 0 {
		return false
	}
	return p.ExpiresAt < now.Unix()
}

// User derives the session user view from the claims.
func (p *TokenPayload) User() *User {
	return &User{
		ID:    p.UserID,
		Email: p.Email,
		Role:  p.Role,
	}
}
