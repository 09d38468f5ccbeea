package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/boxboard/apiserver/types"
)

// AuditLogRepository appends to and lists the operation log. The log is
// append-only: there is no update or delete path.
type AuditLogRepository struct {
	db *sql.DB
}

func NewAuditLogRepository(db *sql.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

func (r *AuditLogRepository) Append(ctx context.Context, entry types.AuditLogEntry) (types.AuditLogEntry, error) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	const query = `
		INSERT INTO log_operazioni (utente_id, azione, entita, entita_id, dettagli, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		entry.UserID,
		entry.Action,
		entry.Entity,
		entry.EntityID,
		entry.Details,
		entry.Timestamp,
	).Scan(&entry.ID); err != nil {
		return types.AuditLogEntry{}, translateError(err)
	}
	return entry, nil
}

// List returns entries in reverse-chronological order. A limit of zero
// means unbounded.
func (r *AuditLogRepository) List(ctx context.Context, limit int) ([]types.AuditLogEntry, error) {
	query := `
		SELECT id, utente_id, azione, entita, entita_id, COALESCE(dettagli, ''), timestamp
		FROM log_operazioni
		ORDER BY timestamp DESC, id DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]types.AuditLogEntry, 0)
	for rows.Next() {
		var entry types.AuditLogEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Action,
			&entry.Entity,
			&entry.EntityID,
			&entry.Details,
			&entry.Timestamp,
		); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
