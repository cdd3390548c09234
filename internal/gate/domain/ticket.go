package domain

import "time"

type TicketStatus string

const (
	TicketPending  TicketStatus = "pending"
	TicketApproved TicketStatus = "approved"
	TicketRejected TicketStatus = "rejected"
)

// IsResolution reports whether s is a status an admin may move a pending
// ticket to.
func (s TicketStatus) IsResolution() bool {
	return s == TicketApproved || s == TicketRejected
}

// Ticket is a user-submitted content request. Tickets start pending and
// are resolved exactly once; a resolved ticket never changes again.
type Ticket struct {
	ID          string
	Title       string
	Description string
	Status      TicketStatus
	CreatedBy   string
	Response    string // admin response text, set at resolution
	RespondedBy string // admin user ID, set at resolution
	CreatedAt   time.Time
	ResolvedAt  *time.Time
	UpdatedAt   time.Time
}

// IsResolved reports whether the ticket has reached a terminal status.
func (t Ticket) IsResolved() bool {
	return t.Status != TicketPending
}
