package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/boxboard/apiserver/types"
)

// NoteRepository handles persistence for notes.
type NoteRepository struct {
	db *sql.DB
}

func NewNoteRepository(db *sql.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

func (r *NoteRepository) Get(ctx context.Context, id int) (types.Note, error) {
	const query = `
		SELECT id, testo, oggetto_id, attivita_id, location_id, autore_id, data
		FROM note
		WHERE id = $1`
	var note types.Note
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&note.ID,
		&note.Text,
		&note.ItemID,
		&note.ActivityID,
		&note.LocationID,
		&note.AuthorID,
		&note.Date,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Note{}, ErrNotFound
		}
		return types.Note{}, err
	}
	return note, nil
}

// List returns notes ordered by date, optionally restricted by the
// equality filters in filter.
func (r *NoteRepository) List(ctx context.Context, filter types.NoteFilter) ([]types.Note, error) {
	query := `
		SELECT id, testo, oggetto_id, attivita_id, location_id, autore_id, data
		FROM note`
	var (
		conditions []string
		args       []any
	)
	if filter.ItemID != 0 {
		args = append(args, filter.ItemID)
		conditions = append(conditions, fmt.Sprintf("oggetto_id = $%d", len(args)))
	}
	if filter.ActivityID != 0 {
		args = append(args, filter.ActivityID)
		conditions = append(conditions, fmt.Sprintf("attivita_id = $%d", len(args)))
	}
	if filter.LocationID != 0 {
		args = append(args, filter.LocationID)
		conditions = append(conditions, fmt.Sprintf("location_id = $%d", len(args)))
	}
	for i, condition := range conditions {
		if i == 0 {
			query += " WHERE " + condition
		} else {
			query += " AND " + condition
		}
	}
	query += " ORDER BY data"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := make([]types.Note, 0)
	for rows.Next() {
		var note types.Note
		if err := rows.Scan(
			&note.ID,
			&note.Text,
			&note.ItemID,
			&note.ActivityID,
			&note.LocationID,
			&note.AuthorID,
			&note.Date,
		); err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *NoteRepository) Create(ctx context.Context, note types.Note) (types.Note, error) {
	if note.Date.IsZero() {
		note.Date = time.Now()
	}

	const query = `
		INSERT INTO note (testo, oggetto_id, attivita_id, location_id, autore_id, data)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		note.Text,
		note.ItemID,
		note.ActivityID,
		note.LocationID,
		note.AuthorID,
		note.Date,
	).Scan(&note.ID); err != nil {
		return types.Note{}, translateError(err)
	}
	return note, nil
}

func (r *NoteRepository) Update(ctx context.Context, note types.Note) (types.Note, error) {
	const query = `
		UPDATE note
		SET testo = $1,
			oggetto_id = $2,
			attivita_id = $3,
			location_id = $4,
			autore_id = $5
		WHERE id = $6`
	result, err := r.db.ExecContext(
		ctx,
		query,
		note.Text,
		note.ItemID,
		note.ActivityID,
		note.LocationID,
		note.AuthorID,
		note.ID,
	)
	if err != nil {
		return types.Note{}, translateError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Note{}, err
	}
	if affected == 0 {
		return types.Note{}, ErrNotFound
	}
	return note, nil
}

func (r *NoteRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM note WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
