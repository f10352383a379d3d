package core

import "context"

// RecipeLine is a flattened ingredient line pulled across one or more
// recipes. It is the unit of input for shopping-list aggregation.
type RecipeLine struct {
	RecipeID        string
	IngredientName  string
	Category        *string
	Quantity        float64
	QuantityDisplay string
	Unit            string
}

type RecipeReader interface {
	OwnsAll(ctx context.Context, userID string, recipeIDs []string) (bool, error)

	ListIngredientLines(
		ctx context.Context,
		recipeIDs []string,
	) ([]RecipeLine, error)
}
