package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/nightowlmedia/doorman/internal/gate/domain"
)

type invitesRepo struct {
	db dbtx
}

const inviteColumns = `code, created_by, used, used_by, created_at, updated_at`

func (r *invitesRepo) CreateInvite(ctx context.Context, inv domain.Invite) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO invites (code, created_by, used, used_by, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		inv.Code, inv.CreatedBy, inv.Used, mapStringNull(inv.UsedBy), now, now,
	)
	return mapConstraint(err)
}

func (r *invitesRepo) GetInviteByCode(ctx context.Context, code string) (domain.Invite, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+inviteColumns+` FROM invites WHERE code = ?`, code)
	return scanInvite(row)
}

func (r *invitesRepo) ListInvitesByCreator(ctx context.Context, userID string) ([]domain.Invite, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+inviteColumns+` FROM invites WHERE created_by = ? ORDER BY created_at DESC, code DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invites []domain.Invite
	for rows.Next() {
		inv, err := scanInvite(rows)
		if err != nil {
			return nil, err
		}
		invites = append(invites, inv)
	}
	return invites, rows.Err()
}

func (r *invitesRepo) ConsumeInvite(ctx context.Context, code string, usedBy string) error {
	// The used = 0 guard is the whole exactly-once mechanism: a second
	// consumer matches zero rows no matter how the calls interleave.
	res, err := r.db.ExecContext(ctx,
		`UPDATE invites SET used = 1, used_by = ?, updated_at = ? WHERE code = ? AND used = 0`,
		usedBy, time.Now().UTC(), code,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanInvite(row rowScanner) (domain.Invite, error) {
	var (
		inv    domain.Invite
		usedBy sql.NullString
	)
	err := row.Scan(&inv.Code, &inv.CreatedBy, &inv.Used, &usedBy, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return domain.Invite{}, mapNotFound(err)
	}
	inv.UsedBy = mapNullString(usedBy)
	return inv, nil
}
