package utils

import (
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// ResetTokens keeps the outstanding password-reset tokens in process memory.
// Tokens expire after the configured TTL and are consumed on first use; state
// does not survive a restart.
type ResetTokens struct {
	c   *gocache.Cache
	ttl time.Duration
}

func NewResetTokens(ttl time.Duration) *ResetTokens {
	return &ResetTokens{c: gocache.New(ttl, time.Minute), ttl: ttl}
}

// Issue creates a fresh opaque token bound to the user id.
func (r *ResetTokens) Issue(userID string) string {
	token := uuid.NewString()
	r.c.Set(token, userID, r.ttl)
	return token
}

// Consume returns the user id bound to the token and invalidates it. A token
// can be consumed exactly once.
func (r *ResetTokens) Consume(token string) (string, bool) {
	v, ok := r.c.Get(token)
	if !ok {
		return "", false
	}
	r.c.Delete(token)
	id, _ := v.(string)
	return id, id != ""
}
