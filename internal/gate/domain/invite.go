package domain

import "time"

// Invite is a single-use registration code. The code itself is the primary
// key: short, case-sensitive and unique. Invites are never deleted, so a
// consumed code keeps its consumer on record permanently.
type Invite struct {
	Code      string
	CreatedBy string
	Used      bool
	UsedBy    string // empty until consumed
	CreatedAt time.Time
	UpdatedAt time.Time
}
