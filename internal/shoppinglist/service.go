package shoppinglist

import (
	"context"
	"errors"
	"strings"

	"github.com/Pogryziony/OmNomNom/internal/core"
)

const maxRecipesPerGeneration = 50

var ErrForbidden = errors.New("not allowed")

type Service struct {
	repo    Repository
	recipes core.RecipeReader
}

func NewService(repo Repository, recipes core.RecipeReader) *Service {
	return &Service{repo: repo, recipes: recipes}
}

// --------------------------------------------------
// Generate list from selected recipes
// --------------------------------------------------
func (s *Service) Generate(
	ctx context.Context,
	userID string,
	recipeIDs []string,
	replaceExisting bool,
) (*GenerateResult, error) {

	recipeIDs = dedupe(recipeIDs)

	if len(recipeIDs) == 0 {
		return nil, core.NewValidationError("recipe_ids", "at least one recipe id is required")
	}
	if len(recipeIDs) > maxRecipesPerGeneration {
		return nil, core.NewValidationError("recipe_ids", "at most 50 recipes per generation")
	}

	owned, err := s.recipes.OwnsAll(ctx, userID, recipeIDs)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, ErrForbidden
	}

	lines, err := s.recipes.ListIngredientLines(ctx, recipeIDs)
	if err != nil {
		return nil, err
	}

	aggregated, err := Aggregate(lines)
	if err != nil {
		return nil, err
	}

	listID, err := s.repo.GetOrCreateList(ctx, userID)
	if err != nil {
		return nil, err
	}

	var existing []Item
	if replaceExisting {
		if err := s.repo.ClearList(ctx, listID); err != nil {
			return nil, err
		}
	} else {
		existing, err = s.repo.ListItems(ctx, listID)
		if err != nil {
			return nil, err
		}
	}

	// Unchecked numeric items already on the list absorb matching
	// aggregated quantities; everything else is inserted.
	byKey := make(map[string]*Item)
	for i := range existing {
		item := &existing[i]
		if item.IsChecked || item.Quantity == nil || item.QuantityDisplay != "" {
			continue
		}
		byKey[itemKey(item.Name, item.Unit)] = item
	}

	result := &GenerateResult{}

	for _, agg := range aggregated {
		if agg.QuantityDisplay != "" {
			item := Item{
				ListID:          listID,
				Name:            agg.Name,
				QuantityDisplay: agg.QuantityDisplay,
				Unit:            agg.Unit,
				Category:        agg.Category,
				SourceRecipeID:  singleSource(agg.RecipeIDs),
			}
			if err := s.repo.InsertItem(ctx, &item); err != nil {
				return nil, err
			}
			result.ItemsAdded++
			continue
		}

		if match, ok := byKey[itemKey(agg.Name, agg.Unit)]; ok {
			sum := core.Round2(*match.Quantity + agg.Quantity)
			if err := s.repo.UpdateItemQuantity(ctx, listID, match.ID, sum); err != nil {
				return nil, err
			}
			result.ItemsUpdated++
			continue
		}

		quantity := agg.Quantity
		item := Item{
			ListID:         listID,
			Name:           agg.Name,
			Quantity:       &quantity,
			Unit:           agg.Unit,
			Category:       agg.Category,
			SourceRecipeID: singleSource(agg.RecipeIDs),
		}
		if err := s.repo.InsertItem(ctx, &item); err != nil {
			return nil, err
		}
		result.ItemsAdded++
	}

	items, err := s.repo.ListItems(ctx, listID)
	if err != nil {
		return nil, err
	}
	result.Items = items

	return result, nil
}

func itemKey(name, unit string) string {
	return strings.ToLower(strings.TrimSpace(name)) + "::" + strings.ToLower(strings.TrimSpace(unit))
}

// singleSource keeps recipe traceability only when exactly one recipe
// contributed; merged items store NULL.
func singleSource(recipeIDs []string) *string {
	if len(recipeIDs) == 1 {
		id := recipeIDs[0]
		return &id
	}
	return nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// --------------------------------------------------
// Item lifecycle
// --------------------------------------------------

func (s *Service) Items(ctx context.Context, userID string) ([]Item, error) {
	listID, err := s.repo.GetOrCreateList(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListItems(ctx, listID)
}

// AddItem appends a manually entered item. Manual items carry no
// source recipe.
func (s *Service) AddItem(
	ctx context.Context,
	userID string,
	item Item,
) (*Item, error) {

	if strings.TrimSpace(item.Name) == "" {
		return nil, core.NewValidationError("name", "must not be empty")
	}
	if strings.TrimSpace(item.Unit) == "" {
		return nil, core.NewValidationError("unit", "must not be empty")
	}
	if item.QuantityDisplay == "" && (item.Quantity == nil || *item.Quantity <= 0) {
		return nil, core.NewValidationError("quantity", "must be positive unless quantity_display is set")
	}

	listID, err := s.repo.GetOrCreateList(ctx, userID)
	if err != nil {
		return nil, err
	}

	item.ListID = listID
	item.IsChecked = false
	item.SourceRecipeID = nil

	if err := s.repo.InsertItem(ctx, &item); err != nil {
		return nil, err
	}

	return &item, nil
}

func (s *Service) UpdateItem(
	ctx context.Context,
	userID string,
	itemID int,
	update ItemUpdate,
) error {

	if update.Quantity != nil && *update.Quantity <= 0 {
		return core.NewValidationError("quantity", "must be positive")
	}

	listID, err := s.repo.GetOrCreateList(ctx, userID)
	if err != nil {
		return err
	}

	return s.repo.UpdateItem(ctx, listID, itemID, update)
}

func (s *Service) DeleteItem(ctx context.Context, userID string, itemID int) error {
	listID, err := s.repo.GetOrCreateList(ctx, userID)
	if err != nil {
		return err
	}
	return s.repo.DeleteItem(ctx, listID, itemID)
}

// ClearChecked removes every checked item and reports how many went.
func (s *Service) ClearChecked(ctx context.Context, userID string) (int64, error) {
	listID, err := s.repo.GetOrCreateList(ctx, userID)
	if err != nil {
		return 0, err
	}
	return s.repo.DeleteChecked(ctx, listID)
}
