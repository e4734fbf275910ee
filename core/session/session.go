package session

import "time"

// User is the cached profile of the authenticated account.
type User struct {
	ID        string
	FullName  string
	Email     string
	Phone     string
	AvatarURL string
}

// Session is the client-held record of the authentication token and cached
// user profile. A zero Session is anonymous.
//
// Invariant: Token == "" implies User == nil.
type Session struct {
	Token        string
	User         *User
	LastSyncedAt time.Time
	NeedsRefresh bool
}

// IsAuthenticated reports whether the session carries a token.
func (s Session) IsAuthenticated() bool {
	return s.Token != ""
}

// clone returns a copy safe to hand to callers; the User pointer is
// duplicated so readers cannot race with later refreshes.
func (s Session) clone() Session {
	out := s
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	return out
}
