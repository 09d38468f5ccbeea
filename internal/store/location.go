package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/boxboard/apiserver/types"
)

// LocationRepository handles persistence for locations.
type LocationRepository struct {
	db *sql.DB
}

func NewLocationRepository(db *sql.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

func (r *LocationRepository) Get(ctx context.Context, id int) (types.Location, error) {
	const query = `
		SELECT id, nome, COALESCE(indirizzo, ''), COALESCE(note, ''), data_creazione
		FROM locations
		WHERE id = $1`
	var location types.Location
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&location.ID,
		&location.Name,
		&location.Address,
		&location.Notes,
		&location.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Location{}, ErrNotFound
		}
		return types.Location{}, err
	}
	return location, nil
}

func (r *LocationRepository) List(ctx context.Context) ([]types.Location, error) {
	const query = `
		SELECT id, nome, COALESCE(indirizzo, ''), COALESCE(note, ''), data_creazione
		FROM locations
		ORDER BY nome`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	locations := make([]types.Location, 0)
	for rows.Next() {
		var location types.Location
		if err := rows.Scan(
			&location.ID,
			&location.Name,
			&location.Address,
			&location.Notes,
			&location.CreatedAt,
		); err != nil {
			return nil, err
		}
		locations = append(locations, location)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return locations, nil
}

func (r *LocationRepository) Create(ctx context.Context, location types.Location) (types.Location, error) {
	if location.CreatedAt.IsZero() {
		location.CreatedAt = time.Now()
	}

	const query = `
		INSERT INTO locations (nome, indirizzo, note, data_creazione)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		location.Name,
		location.Address,
		location.Notes,
		location.CreatedAt,
	).Scan(&location.ID); err != nil {
		return types.Location{}, translateError(err)
	}
	return location, nil
}

func (r *LocationRepository) Update(ctx context.Context, location types.Location) (types.Location, error) {
	const query = `
		UPDATE locations
		SET nome = $1,
			indirizzo = $2,
			note = $3
		WHERE id = $4`
	result, err := r.db.ExecContext(
		ctx,
		query,
		location.Name,
		location.Address,
		location.Notes,
		location.ID,
	)
	if err != nil {
		return types.Location{}, translateError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Location{}, err
	}
	if affected == 0 {
		return types.Location{}, ErrNotFound
	}
	return location, nil
}

func (r *LocationRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM locations WHERE id = $1`
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
