package shoppinglist

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// ONE LIST PER USER (LAZY CREATE)
// --------------------------------------------------
func (r *PostgresRepository) GetOrCreateList(
	ctx context.Context,
	userID string,
) (string, error) {

	var listID string

	err := r.db.QueryRow(ctx, `
		SELECT id FROM shopping_lists WHERE user_id = $1
	`, userID).Scan(&listID)

	if err == nil {
		return listID, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", err
	}

	listID = uuid.New().String()

	// Concurrent first use races on the unique user_id; fall back to
	// the winner's row.
	_, err = r.db.Exec(ctx, `
		INSERT INTO shopping_lists (id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO NOTHING
	`, listID, userID)
	if err != nil {
		return "", err
	}

	err = r.db.QueryRow(ctx, `
		SELECT id FROM shopping_lists WHERE user_id = $1
	`, userID).Scan(&listID)

	return listID, err
}

// --------------------------------------------------
// ITEMS
// --------------------------------------------------
func (r *PostgresRepository) ListItems(
	ctx context.Context,
	listID string,
) ([]Item, error) {

	rows, err := r.db.Query(ctx, `
		SELECT id, list_id, name, quantity, quantity_display, unit,
		       category, is_checked, source_recipe_id, created_at, updated_at
		FROM shopping_list_items
		WHERE list_id = $1
		ORDER BY id ASC
	`, listID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item

	for rows.Next() {
		var item Item
		var display *string

		if err := rows.Scan(
			&item.ID,
			&item.ListID,
			&item.Name,
			&item.Quantity,
			&display,
			&item.Unit,
			&item.Category,
			&item.IsChecked,
			&item.SourceRecipeID,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, err
		}

		if display != nil {
			item.QuantityDisplay = *display
		}

		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *PostgresRepository) InsertItem(ctx context.Context, item *Item) error {
	var display *string
	if item.QuantityDisplay != "" {
		display = &item.QuantityDisplay
	}

	return r.db.QueryRow(ctx, `
		INSERT INTO shopping_list_items (
			list_id,
			name,
			quantity,
			quantity_display,
			unit,
			category,
			is_checked,
			source_recipe_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, item.ListID, item.Name, item.Quantity, display, item.Unit,
		item.Category, item.IsChecked, item.SourceRecipeID,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

func (r *PostgresRepository) UpdateItemQuantity(
	ctx context.Context,
	listID string,
	itemID int,
	quantity float64,
) error {

	cmd, err := r.db.Exec(ctx, `
		UPDATE shopping_list_items
		SET quantity = $1,
		    updated_at = now()
		WHERE id = $2
		  AND list_id = $3
	`, quantity, itemID, listID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return errors.New("item not found")
	}
	return nil
}

func (r *PostgresRepository) UpdateItem(
	ctx context.Context,
	listID string,
	itemID int,
	update ItemUpdate,
) error {

	cmd, err := r.db.Exec(ctx, `
		UPDATE shopping_list_items
		SET name = COALESCE($1, name),
		    quantity = COALESCE($2, quantity),
		    unit = COALESCE($3, unit),
		    category = COALESCE($4, category),
		    is_checked = COALESCE($5, is_checked),
		    updated_at = now()
		WHERE id = $6
		  AND list_id = $7
	`, update.Name, update.Quantity, update.Unit, update.Category,
		update.IsChecked, itemID, listID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return errors.New("item not found")
	}
	return nil
}

func (r *PostgresRepository) DeleteItem(
	ctx context.Context,
	listID string,
	itemID int,
) error {

	cmd, err := r.db.Exec(ctx, `
		DELETE FROM shopping_list_items
		WHERE id = $1
		  AND list_id = $2
	`, itemID, listID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return errors.New("item not found")
	}
	return nil
}

func (r *PostgresRepository) DeleteChecked(
	ctx context.Context,
	listID string,
) (int64, error) {

	cmd, err := r.db.Exec(ctx, `
		DELETE FROM shopping_list_items
		WHERE list_id = $1
		  AND is_checked = TRUE
	`, listID)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *PostgresRepository) ClearList(ctx context.Context, listID string) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM shopping_list_items
		WHERE list_id = $1
	`, listID)
	return err
}
