package recipe

import "context"

// Repository defines the data-access contract.
// Service depends ONLY on this interface.
type Repository interface {
	Create(ctx context.Context, r *Recipe) error
	Update(ctx context.Context, r *Recipe) error
	GetByID(ctx context.Context, id string) (*Recipe, error)
	Delete(ctx context.Context, id string) error

	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*Recipe, error)
	ListPublic(ctx context.Context, limit, offset int) ([]*Recipe, error)

	SetPublished(ctx context.Context, id string, public bool) error
	SetImageURL(ctx context.Context, id, url string) error

	ListIngredients(ctx context.Context) ([]Ingredient, error)
}
