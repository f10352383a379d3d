package shoppinglist

import "context"

// Repository defines the data-access contract.
// Service depends ONLY on this interface.
type Repository interface {
	// GetOrCreateList returns the user's single list id, creating the
	// list on first use.
	GetOrCreateList(ctx context.Context, userID string) (string, error)

	ListItems(ctx context.Context, listID string) ([]Item, error)
	InsertItem(ctx context.Context, item *Item) error
	UpdateItemQuantity(ctx context.Context, listID string, itemID int, quantity float64) error
	UpdateItem(ctx context.Context, listID string, itemID int, update ItemUpdate) error
	DeleteItem(ctx context.Context, listID string, itemID int) error
	DeleteChecked(ctx context.Context, listID string) (int64, error)
	ClearList(ctx context.Context, listID string) error
}
