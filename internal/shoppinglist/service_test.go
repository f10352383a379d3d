package shoppinglist

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Pogryziony/OmNomNom/internal/core"
)

// --------------------------------------------------
// Mock Repository
// --------------------------------------------------

type MockRepository struct {
	items  map[int]*Item
	nextID int
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		items:  make(map[int]*Item),
		nextID: 1,
	}
}

func (m *MockRepository) GetOrCreateList(ctx context.Context, userID string) (string, error) {
	return "list-" + userID, nil
}

func (m *MockRepository) ListItems(ctx context.Context, listID string) ([]Item, error) {
	var out []Item
	for id := 1; id < m.nextID; id++ {
		if item, ok := m.items[id]; ok && item.ListID == listID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (m *MockRepository) InsertItem(ctx context.Context, item *Item) error {
	item.ID = m.nextID
	m.nextID++
	copied := *item
	m.items[item.ID] = &copied
	return nil
}

func (m *MockRepository) UpdateItemQuantity(ctx context.Context, listID string, itemID int, quantity float64) error {
	item, ok := m.items[itemID]
	if !ok || item.ListID != listID {
		return errors.New("item not found")
	}
	item.Quantity = &quantity
	return nil
}

func (m *MockRepository) UpdateItem(ctx context.Context, listID string, itemID int, update ItemUpdate) error {
	item, ok := m.items[itemID]
	if !ok || item.ListID != listID {
		return errors.New("item not found")
	}
	if update.Name != nil {
		item.Name = *update.Name
	}
	if update.Quantity != nil {
		item.Quantity = update.Quantity
	}
	if update.Unit != nil {
		item.Unit = *update.Unit
	}
	if update.IsChecked != nil {
		item.IsChecked = *update.IsChecked
	}
	return nil
}

func (m *MockRepository) DeleteItem(ctx context.Context, listID string, itemID int) error {
	item, ok := m.items[itemID]
	if !ok || item.ListID != listID {
		return errors.New("item not found")
	}
	delete(m.items, itemID)
	return nil
}

func (m *MockRepository) DeleteChecked(ctx context.Context, listID string) (int64, error) {
	var removed int64
	for id, item := range m.items {
		if item.ListID == listID && item.IsChecked {
			delete(m.items, id)
			removed++
		}
	}
	return removed, nil
}

func (m *MockRepository) ClearList(ctx context.Context, listID string) error {
	for id, item := range m.items {
		if item.ListID == listID {
			delete(m.items, id)
		}
	}
	return nil
}

// --------------------------------------------------
// Mock RecipeReader
// --------------------------------------------------

type MockRecipeReader struct {
	owner string
	lines []core.RecipeLine
}

func (m *MockRecipeReader) OwnsAll(ctx context.Context, userID string, recipeIDs []string) (bool, error) {
	return userID == m.owner, nil
}

func (m *MockRecipeReader) ListIngredientLines(ctx context.Context, recipeIDs []string) ([]core.RecipeLine, error) {
	requested := make(map[string]bool)
	for _, id := range recipeIDs {
		requested[id] = true
	}
	var out []core.RecipeLine
	for _, line := range m.lines {
		if requested[line.RecipeID] {
			out = append(out, line)
		}
	}
	return out, nil
}

// --------------------------------------------------
// TESTS
// --------------------------------------------------

func TestGenerateMergesAcrossRecipes(t *testing.T) {
	reader := &MockRecipeReader{
		owner: "user-1",
		lines: []core.RecipeLine{
			{RecipeID: "recipe-a", IngredientName: "Flour", Quantity: 2, Unit: "cup"},
			{RecipeID: "recipe-b", IngredientName: "flour", Quantity: 1, Unit: "cup"},
			{RecipeID: "recipe-a", IngredientName: "Salt", QuantityDisplay: "to taste", Unit: "tsp"},
		},
	}
	service := NewService(NewMockRepository(), reader)

	result, err := service.Generate(context.Background(), "user-1", []string{"recipe-a", "recipe-b"}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.ItemsAdded != 2 {
		t.Fatalf("expected 2 items added, got %d", result.ItemsAdded)
	}
	if result.ItemsUpdated != 0 {
		t.Fatalf("expected 0 items updated, got %d", result.ItemsUpdated)
	}

	flour := result.Items[0]
	if *flour.Quantity != 3 {
		t.Fatalf("expected merged quantity 3, got %v", *flour.Quantity)
	}
	if flour.SourceRecipeID != nil {
		t.Fatalf("merged item must not carry a source recipe")
	}

	salt := result.Items[1]
	if salt.QuantityDisplay != "to taste" {
		t.Fatalf("expected text item preserved, got %q", salt.QuantityDisplay)
	}
	if salt.SourceRecipeID == nil || *salt.SourceRecipeID != "recipe-a" {
		t.Fatalf("single-recipe item should keep its source")
	}
}

func TestGenerateMergesIntoExistingItems(t *testing.T) {
	repo := NewMockRepository()
	reader := &MockRecipeReader{
		owner: "user-1",
		lines: []core.RecipeLine{
			{RecipeID: "recipe-a", IngredientName: "flour", Quantity: 1.5, Unit: "cup"},
		},
	}
	service := NewService(repo, reader)

	if _, err := service.Generate(context.Background(), "user-1", []string{"recipe-a"}, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := service.Generate(context.Background(), "user-1", []string{"recipe-a"}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.ItemsAdded != 0 || result.ItemsUpdated != 1 {
		t.Fatalf("expected 0 added / 1 updated, got %d / %d", result.ItemsAdded, result.ItemsUpdated)
	}
	if *result.Items[0].Quantity != 3 {
		t.Fatalf("expected 3 after second generation, got %v", *result.Items[0].Quantity)
	}
}

func TestGenerateReplaceExisting(t *testing.T) {
	repo := NewMockRepository()
	reader := &MockRecipeReader{
		owner: "user-1",
		lines: []core.RecipeLine{
			{RecipeID: "recipe-a", IngredientName: "flour", Quantity: 1.5, Unit: "cup"},
		},
	}
	service := NewService(repo, reader)

	if _, err := service.Generate(context.Background(), "user-1", []string{"recipe-a"}, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := service.Generate(context.Background(), "user-1", []string{"recipe-a"}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.ItemsAdded != 1 || result.ItemsUpdated != 0 {
		t.Fatalf("expected 1 added / 0 updated after replace, got %d / %d", result.ItemsAdded, result.ItemsUpdated)
	}
	if len(result.Items) != 1 {
		t.Fatalf("expected 1 item after replace, got %d", len(result.Items))
	}
	if *result.Items[0].Quantity != 1.5 {
		t.Fatalf("expected 1.5 after replace, got %v", *result.Items[0].Quantity)
	}
}

func TestGenerateRejectsEmptyAndOversized(t *testing.T) {
	service := NewService(NewMockRepository(), &MockRecipeReader{owner: "user-1"})

	_, err := service.Generate(context.Background(), "user-1", nil, false)
	var verr *core.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for empty ids, got %v", err)
	}

	ids := make([]string, 51)
	for i := range ids {
		ids[i] = fmt.Sprintf("recipe-%d", i)
	}
	_, err = service.Generate(context.Background(), "user-1", ids, false)
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for >50 ids, got %v", err)
	}
}

func TestGenerateRejectsForeignRecipes(t *testing.T) {
	service := NewService(NewMockRepository(), &MockRecipeReader{owner: "someone-else"})

	_, err := service.Generate(context.Background(), "user-1", []string{"recipe-a"}, false)
	if err != ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestGenerateNeverMergesIntoCheckedItems(t *testing.T) {
	repo := NewMockRepository()
	reader := &MockRecipeReader{
		owner: "user-1",
		lines: []core.RecipeLine{
			{RecipeID: "recipe-a", IngredientName: "flour", Quantity: 1, Unit: "cup"},
		},
	}
	service := NewService(repo, reader)

	if _, err := service.Generate(context.Background(), "user-1", []string{"recipe-a"}, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	checked := true
	if err := service.UpdateItem(context.Background(), "user-1", 1, ItemUpdate{IsChecked: &checked}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := service.Generate(context.Background(), "user-1", []string{"recipe-a"}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.ItemsAdded != 1 || result.ItemsUpdated != 0 {
		t.Fatalf("checked item must not absorb new quantities, got %d / %d", result.ItemsAdded, result.ItemsUpdated)
	}
}

func TestAddItemValidation(t *testing.T) {
	service := NewService(NewMockRepository(), &MockRecipeReader{owner: "user-1"})

	_, err := service.AddItem(context.Background(), "user-1", Item{Name: "", Unit: "cup"})
	var verr *core.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for empty name, got %v", err)
	}

	qty := 0.0
	_, err = service.AddItem(context.Background(), "user-1", Item{Name: "flour", Unit: "cup", Quantity: &qty})
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for zero quantity, got %v", err)
	}

	qty = 2
	item, err := service.AddItem(context.Background(), "user-1", Item{Name: "flour", Unit: "cup", Quantity: &qty})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.SourceRecipeID != nil {
		t.Fatal("manual items must not carry a source recipe")
	}
}

func TestClearChecked(t *testing.T) {
	repo := NewMockRepository()
	service := NewService(repo, &MockRecipeReader{owner: "user-1"})

	qty := 1.0
	a, _ := service.AddItem(context.Background(), "user-1", Item{Name: "flour", Unit: "cup", Quantity: &qty})
	service.AddItem(context.Background(), "user-1", Item{Name: "milk", Unit: "l", Quantity: &qty})

	checked := true
	if err := service.UpdateItem(context.Background(), "user-1", a.ID, ItemUpdate{IsChecked: &checked}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	removed, err := service.ClearChecked(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 item removed, got %d", removed)
	}

	items, _ := service.Items(context.Background(), "user-1")
	if len(items) != 1 || items[0].Name != "milk" {
		t.Fatalf("expected only milk to remain")
	}
}
