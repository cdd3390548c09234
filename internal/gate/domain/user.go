package domain

import "time"

type User struct {
	ID           string
	Username     string // login key, unique case-insensitively
	PasswordHash string // argon2id encoded
	IsAdmin      bool
	InviteCount  int    // remaining invites; ignored for admins, who are unbounded
	InvitedBy    string // user ID of the inviter; empty only for the root admin
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanInvite reports whether the user may mint another invite code.
func (u User) CanInvite() bool {
	return u.IsAdmin || u.InviteCount > 0
}
