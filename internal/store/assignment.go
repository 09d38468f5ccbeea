package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/boxboard/apiserver/types"
)

// AssignmentRepository handles persistence for item-activity assignments.
type AssignmentRepository struct {
	db *sql.DB
}

func NewAssignmentRepository(db *sql.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

func (r *AssignmentRepository) Get(ctx context.Context, id int) (types.Assignment, error) {
	const query = `
		SELECT id, oggetto_id, attivita_id, completata, data_prevista, data_completamento, assegnato_a
		FROM oggetto_attivita
		WHERE id = $1`
	var assignment types.Assignment
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&assignment.ID,
		&assignment.ItemID,
		&assignment.ActivityID,
		&assignment.Completed,
		&assignment.PlannedDate,
		&assignment.CompletedDate,
		&assignment.AssigneeID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Assignment{}, ErrNotFound
		}
		return types.Assignment{}, err
	}
	return assignment, nil
}

// List returns assignments ordered by planned date, unplanned ones last.
func (r *AssignmentRepository) List(ctx context.Context) ([]types.Assignment, error) {
	const query = `
		SELECT id, oggetto_id, attivita_id, completata, data_prevista, data_completamento, assegnato_a
		FROM oggetto_attivita
		ORDER BY data_prevista ASC NULLS LAST, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]types.Assignment, 0)
	for rows.Next() {
		var assignment types.Assignment
		if err := rows.Scan(
			&assignment.ID,
			&assignment.ItemID,
			&assignment.ActivityID,
			&assignment.Completed,
			&assignment.PlannedDate,
			&assignment.CompletedDate,
			&assignment.AssigneeID,
		); err != nil {
			return nil, err
		}
		assignments = append(assignments, assignment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *AssignmentRepository) Create(ctx context.Context, assignment types.Assignment) (types.Assignment, error) {
	const query = `
		INSERT INTO oggetto_attivita (oggetto_id, attivita_id, completata, data_prevista, data_completamento, assegnato_a)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		assignment.ItemID,
		assignment.ActivityID,
		assignment.Completed,
		assignment.PlannedDate,
		assignment.CompletedDate,
		assignment.AssigneeID,
	).Scan(&assignment.ID); err != nil {
		return types.Assignment{}, translateError(err)
	}
	return assignment, nil
}

func (r *AssignmentRepository) Update(ctx context.Context, assignment types.Assignment) (types.Assignment, error) {
	const query = `
		UPDATE oggetto_attivita
		SET completata = $1,
			data_prevista = $2,
			data_completamento = $3,
			assegnato_a = $4
		WHERE id = $5`
	result, err := r.db.ExecContext(
		ctx,
		query,
		assignment.Completed,
		assignment.PlannedDate,
		assignment.CompletedDate,
		assignment.AssigneeID,
		assignment.ID,
	)
	if err != nil {
		return types.Assignment{}, translateError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Assignment{}, err
	}
	if affected == 0 {
		return types.Assignment{}, ErrNotFound
	}
	return assignment, nil
}

func (r *AssignmentRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM oggetto_attivita WHERE id = $1`
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
