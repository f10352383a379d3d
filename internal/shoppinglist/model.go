package shoppinglist

import "time"

// Item is a persisted shopping-list row. Quantity is nil for text-based
// quantities ("a pinch"), which carry QuantityDisplay instead.
// SourceRecipeID is set only when a single recipe produced the item.
type Item struct {
	ID              int       `json:"id"`
	ListID          string    `json:"-"`
	Name            string    `json:"name"`
	Quantity        *float64  `json:"quantity"`
	QuantityDisplay string    `json:"quantity_display,omitempty"`
	Unit            string    `json:"unit"`
	Category        *string   `json:"category"`
	IsChecked       bool      `json:"is_checked"`
	SourceRecipeID  *string   `json:"source_recipe_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// AggregatedItem is the ephemeral output of Aggregate, not yet persisted.
type AggregatedItem struct {
	Name            string
	Quantity        float64
	QuantityDisplay string
	Unit            string
	Category        *string
	RecipeIDs       []string
}

type GenerateResult struct {
	ItemsAdded   int    `json:"items_added"`
	ItemsUpdated int    `json:"items_updated"`
	Items        []Item `json:"items"`
}

// ItemUpdate carries a partial edit; nil fields are left unchanged.
type ItemUpdate struct {
	Name      *string  `json:"name"`
	Quantity  *float64 `json:"quantity"`
	Unit      *string  `json:"unit"`
	Category  *string  `json:"category"`
	IsChecked *bool    `json:"is_checked"`
}
