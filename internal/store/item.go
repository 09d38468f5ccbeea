package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/boxboard/apiserver/types"
)

// ItemRepository handles persistence for items and containers.
type ItemRepository struct {
	db *sql.DB
}

func NewItemRepository(db *sql.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

const itemColumns = `id, nome, COALESCE(descrizione, ''), stato, tipo,
		location_id, contenitore_id, data_rilevamento,
		COALESCE(foto_key, ''), COALESCE(foto_mime, '')`

func scanItem(row interface{ Scan(...any) error }) (types.Item, error) {
	var item types.Item
	err := row.Scan(
		&item.ID,
		&item.Name,
		&item.Description,
		&item.Status,
		&item.Kind,
		&item.LocationID,
		&item.ContainerID,
		&item.DetectedAt,
		&item.PhotoKey,
		&item.PhotoMime,
	)
	return item, err
}

func (r *ItemRepository) Get(ctx context.Context, id int) (types.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM oggetti WHERE id = $1`
	item, err := scanItem(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Item{}, ErrNotFound
		}
		return types.Item{}, err
	}
	return item, nil
}

// List returns items ordered by name, optionally restricted by the
// equality filters in filter.
func (r *ItemRepository) List(ctx context.Context, filter types.ItemFilter) ([]types.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM oggetti`
	var (
		conditions []string
		args       []any
	)
	if filter.LocationID != 0 {
		args = append(args, filter.LocationID)
		conditions = append(conditions, fmt.Sprintf("location_id = $%d", len(args)))
	}
	if filter.ContainerID != 0 {
		args = append(args, filter.ContainerID)
		conditions = append(conditions, fmt.Sprintf("contenitore_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("stato = $%d", len(args)))
	}
	if filter.Kind != "" {
		args = append(args, filter.Kind)
		conditions = append(conditions, fmt.Sprintf("tipo = $%d", len(args)))
	}
	for i, condition := range conditions {
		if i == 0 {
			query += " WHERE " + condition
		} else {
			query += " AND " + condition
		}
	}
	query += " ORDER BY nome"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]types.Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *ItemRepository) Create(ctx context.Context, item types.Item) (types.Item, error) {
	if item.DetectedAt.IsZero() {
		item.DetectedAt = time.Now()
	}

	const query = `
		INSERT INTO oggetti (nome, descrizione, stato, tipo, location_id, contenitore_id, data_rilevamento)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		item.Name,
		item.Description,
		item.Status,
		item.Kind,
		item.LocationID,
		item.ContainerID,
		item.DetectedAt,
	).Scan(&item.ID); err != nil {
		return types.Item{}, translateError(err)
	}
	return item, nil
}

func (r *ItemRepository) Update(ctx context.Context, item types.Item) (types.Item, error) {
	const query = `
		UPDATE oggetti
		SET nome = $1,
			descrizione = $2,
			stato = $3,
			tipo = $4,
			location_id = $5,
			contenitore_id = $6
		WHERE id = $7`
	result, err := r.db.ExecContext(
		ctx,
		query,
		item.Name,
		item.Description,
		item.Status,
		item.Kind,
		item.LocationID,
		item.ContainerID,
		item.ID,
	)
	if err != nil {
		return types.Item{}, translateError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Item{}, err
	}
	if affected == 0 {
		return types.Item{}, ErrNotFound
	}
	return item, nil
}

// SetPhoto records the object storage key and MIME type of an item's photo.
func (r *ItemRepository) SetPhoto(ctx context.Context, id int, key, mime string) error {
	const query = `
		UPDATE oggetti
		SET foto_key = NULLIF($1, ''),
			foto_mime = NULLIF($2, '')
		WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, key, mime, id)
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

func (r *ItemRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM oggetti WHERE id = $1`
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
