package store

import (
	"context"
	"errors"
	"time"

	"github.com/nightowlmedia/doorman/internal/gate/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrConflict means a conditional update matched a record in the wrong
	// state, e.g. resolving a ticket that is no longer pending.
	ErrConflict = errors.New("store: conflict")
)

// Store is the root data access interface. Concrete drivers (sqlite for
// now) implement it. Sub-repositories keep concerns separate and let
// services depend only on what they touch.
type Store interface {
	Users() Users
	Invites() Invites
	Tickets() Tickets
	Sessions() Sessions

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing when fn returns
	// nil and rolling back otherwise. Use it for every multi-record
	// mutation (invite mint, registration) so partial writes cannot leak.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It exposes the same repos plus
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername looks a user up by login name, case-insensitively.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateInviteCount sets the remaining invite allowance and bumps
	// updated_at. Counts are always written absolute, never negative.
	UpdateInviteCount(ctx context.Context, userID string, count int) error

	// SetAdmin grants the administrator flag. Idempotent.
	SetAdmin(ctx context.Context, userID string) error

	// ListUsers returns all users, newest first.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// ListInvitedUserIDs returns the ids of users directly invited by
	// inviterID, in registration order.
	ListInvitedUserIDs(ctx context.Context, inviterID string) ([]string, error)

	// IsEmpty returns true if there are no users. Drives bootstrap.
	IsEmpty(ctx context.Context) (bool, error)
}

type Invites interface {
	// CreateInvite writes a new invite record.
	CreateInvite(ctx context.Context, inv domain.Invite) error

	// GetInviteByCode returns the invite with exactly this code, used or
	// not.
	GetInviteByCode(ctx context.Context, code string) (domain.Invite, error)

	// ListInvitesByCreator returns every invite minted by userID.
	ListInvitesByCreator(ctx context.Context, userID string) ([]domain.Invite, error)

	// ConsumeInvite marks an unused invite used and records the consumer.
	// Returns ErrNotFound when no unused invite carries the code; the
	// conditional update is what makes consumption exactly-once.
	ConsumeInvite(ctx context.Context, code string, usedBy string) error
}

type Tickets interface {
	// CreateTicket inserts a new pending ticket.
	CreateTicket(ctx context.Context, t domain.Ticket) error

	// GetTicketByID returns a ticket by id.
	GetTicketByID(ctx context.Context, id string) (domain.Ticket, error)

	// ListTicketsByCreator returns tickets submitted by userID, newest
	// first.
	ListTicketsByCreator(ctx context.Context, userID string) ([]domain.Ticket, error)

	// ListTickets returns all tickets, newest first.
	ListTickets(ctx context.Context) ([]domain.Ticket, error)

	// ResolveTicket moves a pending ticket to a terminal status. Returns
	// ErrNotFound for an unknown id and ErrConflict when the ticket has
	// already been resolved.
	ResolveTicket(
		ctx context.Context,
		id string,
		status domain.TicketStatus,
		response string,
		respondedBy string,
	) error
}

type Sessions interface {
	// CreateSession stores a new session record.
	CreateSession(ctx context.Context, s domain.Session) error

	// GetSession returns a session by id, expired or not; callers decide
	// what expiry means for them.
	GetSession(ctx context.Context, id string) (domain.Session, error)

	// DeleteSession removes a session. Deleting an absent session is not
	// an error, which makes logout idempotent.
	DeleteSession(ctx context.Context, id string) error

	// DeleteExpiredSessions removes every session whose expiry is at or
	// before now and reports how many were removed. Housekeeping calls it
	// on a timer.
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}
