package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/nightowlmedia/doorman/internal/gate/domain"
	"github.com/nightowlmedia/doorman/internal/gate/store"
)

type ticketsRepo struct {
	db dbtx
}

const ticketColumns = `id, title, description, status, created_by, response, responded_by, created_at, resolved_at, updated_at`

func (r *ticketsRepo) CreateTicket(ctx context.Context, t domain.Ticket) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tickets (id, title, description, status, created_by, response, responded_by, created_at, resolved_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Description, string(t.Status), t.CreatedBy,
		mapStringNull(t.Response), mapStringNull(t.RespondedBy),
		now, mapOptionalTime(t.ResolvedAt), now,
	)
	return mapConstraint(err)
}

func (r *ticketsRepo) GetTicketByID(ctx context.Context, id string) (domain.Ticket, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+ticketColumns+` FROM tickets WHERE id = ?`, id)
	return scanTicket(row)
}

func (r *ticketsRepo) ListTicketsByCreator(ctx context.Context, userID string) ([]domain.Ticket, error) {
	return r.list(ctx,
		`SELECT `+ticketColumns+` FROM tickets WHERE created_by = ? ORDER BY created_at DESC, id DESC`,
		userID,
	)
}

func (r *ticketsRepo) ListTickets(ctx context.Context) ([]domain.Ticket, error) {
	return r.list(ctx,
		`SELECT `+ticketColumns+` FROM tickets ORDER BY created_at DESC, id DESC`,
	)
}

// ResolveTicket transitions a pending ticket to a terminal status. The
// status = 'pending' guard makes resolution first-writer-wins; when the
// update matches no rows we re-read the ticket to tell "missing" apart
// from "already resolved".
func (r *ticketsRepo) ResolveTicket(ctx context.Context, id string, status domain.TicketStatus, response string, respondedBy string) error {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`UPDATE tickets
		 SET status = ?, response = ?, responded_by = ?, resolved_at = ?, updated_at = ?
		 WHERE id = ? AND status = ?`,
		string(status), response, respondedBy, now, now,
		id, string(domain.TicketPending),
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	if _, err := r.GetTicketByID(ctx, id); err != nil {
		return err
	}
	return store.ErrConflict
}

func (r *ticketsRepo) list(ctx context.Context, query string, args ...any) ([]domain.Ticket, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []domain.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

func scanTicket(row rowScanner) (domain.Ticket, error) {
	var (
		t           domain.Ticket
		status      string
		response    sql.NullString
		respondedBy sql.NullString
		resolvedAt  sql.NullTime
	)
	err := row.Scan(&t.ID, &t.Title, &t.Description, &status, &t.CreatedBy,
		&response, &respondedBy, &t.CreatedAt, &resolvedAt, &t.UpdatedAt)
	if err != nil {
		return domain.Ticket{}, mapNotFound(err)
	}
	t.Status = domain.TicketStatus(status)
	t.Response = mapNullString(response)
	t.RespondedBy = mapNullString(respondedBy)
	t.ResolvedAt = mapNullTimePtr(resolvedAt)
	return t, nil
}
