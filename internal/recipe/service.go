package recipe

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/Pogryziony/OmNomNom/internal/core"
)

var (
	ErrNotFound  = errors.New("recipe not found")
	ErrForbidden = errors.New("not allowed")
)

type Storage interface {
	Upload(ctx context.Context, key string, file *multipart.FileHeader) (string, error)
}

type Service struct {
	repo    Repository
	storage Storage
}

func NewService(repo Repository, storage Storage) *Service {
	return &Service{repo: repo, storage: storage}
}

// LineInput is an ingredient line as submitted by the client.
type LineInput struct {
	Name            string  `json:"name"`
	Quantity        float64 `json:"quantity"`
	QuantityDisplay string  `json:"quantity_display"`
	Unit            string  `json:"unit"`
	Notes           *string `json:"notes"`
	Category        *string `json:"category"`
}

type RecipeInput struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Servings    int         `json:"servings"`
	IsPublic    bool        `json:"is_public"`
	Ingredients []LineInput `json:"ingredients"`
}

// --------------------------------------------------
// Create / Update
// --------------------------------------------------
func (s *Service) Create(
	ctx context.Context,
	ownerID string,
	input RecipeInput,
) (*Recipe, error) {

	lines, err := validateInput(input)
	if err != nil {
		return nil, err
	}

	recipe := &Recipe{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Servings:    input.Servings,
		IsPublic:    input.IsPublic,
		Ingredients: lines,
	}

	if err := s.repo.Create(ctx, recipe); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, recipe.ID)
}

func (s *Service) Update(
	ctx context.Context,
	recipeID, ownerID string,
	input RecipeInput,
) (*Recipe, error) {

	existing, err := s.getOwned(ctx, recipeID, ownerID)
	if err != nil {
		return nil, err
	}

	lines, err := validateInput(input)
	if err != nil {
		return nil, err
	}

	existing.Title = strings.TrimSpace(input.Title)
	existing.Description = input.Description
	existing.Servings = input.Servings
	existing.IsPublic = input.IsPublic
	existing.Ingredients = lines

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, recipeID)
}

// validateInput enforces the ingredient-line invariant: a line carries
// either a positive quantity or display text, never neither.
func validateInput(input RecipeInput) ([]IngredientLine, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, core.NewValidationError("title", "must not be empty")
	}
	if input.Servings <= 0 {
		return nil, core.NewValidationError("servings", "must be a positive integer")
	}
	if len(input.Ingredients) == 0 {
		return nil, core.NewValidationError("ingredients", "at least one ingredient is required")
	}

	lines := make([]IngredientLine, 0, len(input.Ingredients))

	for i, in := range input.Ingredients {
		name := strings.TrimSpace(in.Name)
		if name == "" {
			return nil, core.NewValidationError("ingredients", fmt.Sprintf("line %d: name must not be empty", i))
		}
		if strings.TrimSpace(in.Unit) == "" {
			return nil, core.NewValidationError("ingredients", fmt.Sprintf("line %d: unit must not be empty", i))
		}

		display := strings.TrimSpace(in.QuantityDisplay)
		if display == "" && in.Quantity <= 0 {
			return nil, core.NewValidationError("ingredients", fmt.Sprintf("line %d: quantity must be positive unless quantity_display is set", i))
		}

		lines = append(lines, IngredientLine{
			Name:            strings.ToLower(name),
			DisplayName:     name,
			Quantity:        in.Quantity,
			QuantityDisplay: display,
			Unit:            strings.TrimSpace(in.Unit),
			OrderIndex:      i,
			Notes:           in.Notes,
			Category:        in.Category,
		})
	}

	return lines, nil
}

// --------------------------------------------------
// Read paths
// --------------------------------------------------

// GetForViewer returns a recipe if the viewer owns it or it is public.
func (s *Service) GetForViewer(
	ctx context.Context,
	recipeID, viewerID string,
) (*Recipe, error) {

	recipe, err := s.repo.GetByID(ctx, recipeID)
	if err != nil {
		return nil, ErrNotFound
	}

	if !recipe.IsPublic && recipe.OwnerID != viewerID {
		return nil, ErrForbidden
	}

	return recipe, nil
}

func (s *Service) ListMine(
	ctx context.Context,
	ownerID string,
	limit, offset int,
) ([]*Recipe, error) {
	return s.repo.ListByOwner(ctx, ownerID, limit, offset)
}

// ListPublic serves the public feed.
func (s *Service) ListPublic(
	ctx context.Context,
	limit, offset int,
) ([]*Recipe, error) {
	return s.repo.ListPublic(ctx, limit, offset)
}

func (s *Service) ListIngredients(ctx context.Context) ([]Ingredient, error) {
	return s.repo.ListIngredients(ctx)
}

// --------------------------------------------------
// Mutations requiring ownership
// --------------------------------------------------

func (s *Service) Delete(ctx context.Context, recipeID, ownerID string) error {
	if _, err := s.getOwned(ctx, recipeID, ownerID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, recipeID)
}

func (s *Service) SetPublished(
	ctx context.Context,
	recipeID, ownerID string,
	public bool,
) error {
	if _, err := s.getOwned(ctx, recipeID, ownerID); err != nil {
		return err
	}
	return s.repo.SetPublished(ctx, recipeID, public)
}

// --------------------------------------------------
// Scale (delegates to the pure scaler)
// --------------------------------------------------
func (s *Service) Scale(
	ctx context.Context,
	recipeID, viewerID string,
	desiredServings float64,
) (*ScaledRecipe, error) {

	recipe, err := s.GetForViewer(ctx, recipeID, viewerID)
	if err != nil {
		return nil, err
	}

	return ScaleIngredients(recipe.Servings, recipe.Ingredients, desiredServings)
}

// --------------------------------------------------
// Recipe photo upload
// --------------------------------------------------
func (s *Service) UploadPhoto(
	ctx context.Context,
	recipeID, ownerID string,
	file *multipart.FileHeader,
) (string, error) {

	if _, err := s.getOwned(ctx, recipeID, ownerID); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext == "" {
		return "", core.NewValidationError("image", "invalid file")
	}

	key := fmt.Sprintf(
		"recipes/%s/%s%s",
		recipeID,
		uuid.New().String(),
		ext,
	)

	url, err := s.storage.Upload(ctx, key, file)
	if err != nil {
		return "", err
	}

	if err := s.repo.SetImageURL(ctx, recipeID, url); err != nil {
		return "", err
	}

	return url, nil
}

func (s *Service) getOwned(ctx context.Context, recipeID, ownerID string) (*Recipe, error) {
	recipe, err := s.repo.GetByID(ctx, recipeID)
	if err != nil {
		return nil, ErrNotFound
	}
	if recipe.OwnerID != ownerID {
		return nil, ErrForbidden
	}
	return recipe, nil
}
