package recipe

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Pogryziony/OmNomNom/internal/core"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// CREATE RECIPE (ATOMIC: recipe + catalog + lines)
// --------------------------------------------------
func (r *PostgresRepository) Create(ctx context.Context, recipe *Recipe) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO recipes (id, owner_id, title, description, servings, is_public)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, recipe.ID, recipe.OwnerID, recipe.Title, recipe.Description,
		recipe.Servings, recipe.IsPublic)
	if err != nil {
		return err
	}

	if err := insertLines(ctx, tx, recipe.ID, recipe.Ingredients); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// --------------------------------------------------
// UPDATE RECIPE (REPLACES ALL LINES)
// --------------------------------------------------
func (r *PostgresRepository) Update(ctx context.Context, recipe *Recipe) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `
		UPDATE recipes
		SET title = $1,
		    description = $2,
		    servings = $3,
		    is_public = $4,
		    updated_at = now()
		WHERE id = $5
	`, recipe.Title, recipe.Description, recipe.Servings,
		recipe.IsPublic, recipe.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return errors.New("no recipe row updated")
	}

	if _, err := tx.Exec(ctx, `
		DELETE FROM recipe_ingredients WHERE recipe_id = $1
	`, recipe.ID); err != nil {
		return err
	}

	if err := insertLines(ctx, tx, recipe.ID, recipe.Ingredients); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// insertLines resolves each line against the ingredient catalog and
// writes the rows. Runs inside the caller's transaction.
func insertLines(ctx context.Context, tx pgx.Tx, recipeID string, lines []IngredientLine) error {
	for _, line := range lines {
		var ingredientID int

		err := tx.QueryRow(ctx, `
			INSERT INTO ingredients (name, display_name, category)
			VALUES ($1, $2, $3)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id
		`, line.Name, line.DisplayName, line.Category).Scan(&ingredientID)
		if err != nil {
			return err
		}

		var quantity *float64
		if line.QuantityDisplay == "" {
			quantity = &line.Quantity
		}

		var display *string
		if line.QuantityDisplay != "" {
			display = &line.QuantityDisplay
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO recipe_ingredients (
				recipe_id,
				ingredient_id,
				quantity,
				quantity_display,
				unit,
				order_index,
				notes
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, recipeID, ingredientID, quantity, display,
			line.Unit, line.OrderIndex, line.Notes)
		if err != nil {
			return err
		}
	}

	return nil
}

// --------------------------------------------------
// GET RECIPE WITH ORDERED LINES
// --------------------------------------------------
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Recipe, error) {
	recipe := &Recipe{}

	err := r.db.QueryRow(ctx, `
		SELECT id, owner_id, title, description, servings, is_public, image_url, created_at, updated_at
		FROM recipes
		WHERE id = $1
	`, id).Scan(
		&recipe.ID,
		&recipe.OwnerID,
		&recipe.Title,
		&recipe.Description,
		&recipe.Servings,
		&recipe.IsPublic,
		&recipe.ImageURL,
		&recipe.CreatedAt,
		&recipe.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.New("recipe not found")
		}
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT
			ri.id,
			ri.ingredient_id,
			i.name,
			i.display_name,
			ri.quantity,
			ri.quantity_display,
			ri.unit,
			ri.order_index,
			ri.notes,
			i.category
		FROM recipe_ingredients ri
		JOIN ingredients i
		  ON i.id = ri.ingredient_id
		WHERE ri.recipe_id = $1
		ORDER BY ri.order_index ASC
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var line IngredientLine
		var quantity *float64
		var display *string

		if err := rows.Scan(
			&line.ID,
			&line.IngredientID,
			&line.Name,
			&line.DisplayName,
			&quantity,
			&display,
			&line.Unit,
			&line.OrderIndex,
			&line.Notes,
			&line.Category,
		); err != nil {
			return nil, err
		}

		if quantity != nil {
			line.Quantity = *quantity
		}
		if display != nil {
			line.QuantityDisplay = *display
		}

		recipe.Ingredients = append(recipe.Ingredients, line)
	}

	return recipe, rows.Err()
}

// --------------------------------------------------
// DELETE (LINES CASCADE)
// --------------------------------------------------
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `
		DELETE FROM recipes WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return errors.New("recipe not found")
	}
	return nil
}

// --------------------------------------------------
// LISTINGS (SUMMARIES, NO LINES)
// --------------------------------------------------
func (r *PostgresRepository) ListByOwner(
	ctx context.Context,
	ownerID string,
	limit, offset int,
) ([]*Recipe, error) {

	rows, err := r.db.Query(ctx, `
		SELECT id, owner_id, title, description, servings, is_public, image_url, created_at, updated_at
		FROM recipes
		WHERE owner_id = $1
		ORDER BY updated_at DESC
		LIMIT $2 OFFSET $3
	`, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRecipes(rows)
}

func (r *PostgresRepository) ListPublic(
	ctx context.Context,
	limit, offset int,
) ([]*Recipe, error) {

	rows, err := r.db.Query(ctx, `
		SELECT id, owner_id, title, description, servings, is_public, image_url, created_at, updated_at
		FROM recipes
		WHERE is_public = TRUE
		ORDER BY updated_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRecipes(rows)
}

func scanRecipes(rows pgx.Rows) ([]*Recipe, error) {
	var recipes []*Recipe

	for rows.Next() {
		recipe := &Recipe{}
		if err := rows.Scan(
			&recipe.ID,
			&recipe.OwnerID,
			&recipe.Title,
			&recipe.Description,
			&recipe.Servings,
			&recipe.IsPublic,
			&recipe.ImageURL,
			&recipe.CreatedAt,
			&recipe.UpdatedAt,
		); err != nil {
			return nil, err
		}
		recipes = append(recipes, recipe)
	}

	return recipes, rows.Err()
}

// --------------------------------------------------
// PUBLISH / IMAGE
// --------------------------------------------------
func (r *PostgresRepository) SetPublished(ctx context.Context, id string, public bool) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE recipes
		SET is_public = $1,
		    updated_at = now()
		WHERE id = $2
	`, public, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return errors.New("recipe not found")
	}
	return nil
}

func (r *PostgresRepository) SetImageURL(ctx context.Context, id, url string) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE recipes
		SET image_url = $1,
		    updated_at = now()
		WHERE id = $2
	`, url, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return errors.New("recipe not found")
	}
	return nil
}

// --------------------------------------------------
// INGREDIENT CATALOG
// --------------------------------------------------
func (r *PostgresRepository) ListIngredients(ctx context.Context) ([]Ingredient, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, display_name, category
		FROM ingredients
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ingredients []Ingredient

	for rows.Next() {
		var ing Ingredient
		if err := rows.Scan(&ing.ID, &ing.Name, &ing.DisplayName, &ing.Category); err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ing)
	}

	return ingredients, rows.Err()
}

// --------------------------------------------------
// core.RecipeReader (CONSUMED BY SHOPPING LIST)
// --------------------------------------------------

func (r *PostgresRepository) OwnsAll(
	ctx context.Context,
	userID string,
	recipeIDs []string,
) (bool, error) {

	var count int

	err := r.db.QueryRow(ctx, `
		SELECT COUNT(DISTINCT id)
		FROM recipes
		WHERE id = ANY($1)
		  AND owner_id = $2
	`, recipeIDs, userID).Scan(&count)
	if err != nil {
		return false, err
	}

	return count == len(recipeIDs), nil
}

func (r *PostgresRepository) ListIngredientLines(
	ctx context.Context,
	recipeIDs []string,
) ([]core.RecipeLine, error) {

	rows, err := r.db.Query(ctx, `
		SELECT
			ri.recipe_id,
			i.display_name,
			i.category,
			ri.quantity,
			ri.quantity_display,
			ri.unit
		FROM recipe_ingredients ri
		JOIN ingredients i
		  ON i.id = ri.ingredient_id
		WHERE ri.recipe_id = ANY($1)
		ORDER BY ri.recipe_id, ri.order_index ASC
	`, recipeIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []core.RecipeLine

	for rows.Next() {
		var line core.RecipeLine
		var quantity *float64
		var display *string

		if err := rows.Scan(
			&line.RecipeID,
			&line.IngredientName,
			&line.Category,
			&quantity,
			&display,
			&line.Unit,
		); err != nil {
			return nil, err
		}

		if quantity != nil {
			line.Quantity = *quantity
		}
		if display != nil {
			line.QuantityDisplay = *display
		}

		lines = append(lines, line)
	}

	return lines, rows.Err()
}
