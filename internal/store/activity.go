package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/boxboard/apiserver/types"
)

// ActivityRepository handles persistence for the activity catalog.
type ActivityRepository struct {
	db *sql.DB
}

func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Get(ctx context.Context, id int) (types.Activity, error) {
	const query = `
		SELECT id, nome, COALESCE(descrizione, '')
		FROM attivita
		WHERE id = $1`
	var activity types.Activity
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&activity.ID,
		&activity.Name,
		&activity.Description,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Activity{}, ErrNotFound
		}
		return types.Activity{}, err
	}
	return activity, nil
}

func (r *ActivityRepository) List(ctx context.Context) ([]types.Activity, error) {
	const query = `
		SELECT id, nome, COALESCE(descrizione, '')
		FROM attivita
		ORDER BY nome`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := make([]types.Activity, 0)
	for rows.Next() {
		var activity types.Activity
		if err := rows.Scan(
			&activity.ID,
			&activity.Name,
			&activity.Description,
		); err != nil {
			return nil, err
		}
		activities = append(activities, activity)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *ActivityRepository) Create(ctx context.Context, activity types.Activity) (types.Activity, error) {
	const query = `
		INSERT INTO attivita (nome, descrizione)
		VALUES ($1, $2)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		activity.Name,
		activity.Description,
	).Scan(&activity.ID); err != nil {
		return types.Activity{}, translateError(err)
	}
	return activity, nil
}

func (r *ActivityRepository) Update(ctx context.Context, activity types.Activity) (types.Activity, error) {
	const query = `
		UPDATE attivita
		SET nome = $1,
			descrizione = $2
		WHERE id = $3`
	result, err := r.db.ExecContext(
		ctx,
		query,
		activity.Name,
		activity.Description,
		activity.ID,
	)
	if err != nil {
		return types.Activity{}, translateError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Activity{}, err
	}
	if affected == 0 {
		return types.Activity{}, ErrNotFound
	}
	return activity, nil
}

func (r *ActivityRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM attivita WHERE id = $1`
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
