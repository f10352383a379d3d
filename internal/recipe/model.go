package recipe

import "time"

// Ingredient is a catalog entry. Name is the normalized (lowercase,
// trimmed) unique key; DisplayName is what users see.
type Ingredient struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	DisplayName string  `json:"display_name"`
	Category    *string `json:"category"`
}

// IngredientLine is one ingredient row of a recipe. Exactly one of
// Quantity (> 0) or QuantityDisplay (free text like "a pinch") must be
// meaningful.
type IngredientLine struct {
	ID              int     `json:"id"`
	IngredientID    int     `json:"ingredient_id"`
	Name            string  `json:"name"`
	DisplayName     string  `json:"display_name"`
	Quantity        float64 `json:"quantity"`
	QuantityDisplay string  `json:"quantity_display"`
	Unit            string  `json:"unit"`
	OrderIndex      int     `json:"order_index"`
	Notes           *string `json:"notes"`
	Category        *string `json:"category"`
}

type Recipe struct {
	ID          string           `json:"id"`
	OwnerID     string           `json:"owner_id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Servings    int              `json:"servings"`
	IsPublic    bool             `json:"is_public"`
	ImageURL    *string          `json:"image_url"`
	Ingredients []IngredientLine `json:"ingredients"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// ScaledIngredient is the per-line result of a scale request. It is
// computed fresh on every request and never persisted.
// OriginalQuantity and ScaledQuantity are nil for text-based quantities.
type ScaledIngredient struct {
	Name             string   `json:"name"`
	DisplayName      string   `json:"display_name"`
	OriginalQuantity *float64 `json:"original_quantity"`
	ScaledQuantity   *float64 `json:"scaled_quantity"`
	QuantityDisplay  string   `json:"quantity_display"`
	Unit             string   `json:"unit"`
	Notes            *string  `json:"notes"`
}

type ScaledRecipe struct {
	OriginalServings  int                `json:"original_servings"`
	DesiredServings   float64            `json:"desired_servings"`
	ScalingFactor     float64            `json:"scaling_factor"`
	ScaledIngredients []ScaledIngredient `json:"scaled_ingredients"`
}
