package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is an opaque bearer token issued at login. The token is the
// lookup key; it carries no claims.
type Session struct {
	BaseSimple
	UserID    uuid.UUID  `db:"user_id"`
	Token     uuid.UUID  `db:"token"`
	UserAgent *string    `db:"user_agent"`
	IPAddress *string    `db:"ip_address"`
	ExpiresAt time.Time  `db:"expires_at"`
	RevokedAt *time.Time `db:"revoked_at"`
}

func NewSession(userID uuid.UUID, ttl time.Duration, userAgent, ipAddress *string) *Session {
	base := NewBaseSimple()
	return &Session{
		BaseSimple: base,
		UserID:     userID,
		Token:      uuid.New(),
		UserAgent:  userAgent,
		IPAddress:  ipAddress,
		ExpiresAt:  base.CreatedAt.Add(ttl),
	}
}

// Active reports whether the session can still authenticate requests at t.
func (s *Session) Active(t time.Time) bool {
	return s.RevokedAt == nil && t.Before(s.ExpiresAt)
}
