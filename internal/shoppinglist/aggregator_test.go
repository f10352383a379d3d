package shoppinglist

import (
	"errors"
	"testing"

	"github.com/Pogryziony/OmNomNom/internal/core"
)

func TestAggregateBasicSum(t *testing.T) {
	lines := []core.RecipeLine{
		{RecipeID: "recipe-a", IngredientName: "flour", Quantity: 2, Unit: "cup"},
		{RecipeID: "recipe-b", IngredientName: "flour", Quantity: 1, Unit: "cup"},
	}

	items, err := Aggregate(lines)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %v", items[0].Quantity)
	}
	if len(items[0].RecipeIDs) != 2 {
		t.Fatalf("expected 2 contributing recipes, got %d", len(items[0].RecipeIDs))
	}
}

func TestAggregateUnitSensitiveGrouping(t *testing.T) {
	lines := []core.RecipeLine{
		{RecipeID: "recipe-a", IngredientName: "milk", Quantity: 2, Unit: "cup"},
		{RecipeID: "recipe-b", IngredientName: "milk", Quantity: 200, Unit: "ml"},
	}

	items, err := Aggregate(lines)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("expected 2 distinct items for different units, got %d", len(items))
	}
}

func TestAggregateNormalizesKey(t *testing.T) {
	lines := []core.RecipeLine{
		{RecipeID: "recipe-a", IngredientName: "  Flour ", Quantity: 2, Unit: "Cup"},
		{RecipeID: "recipe-b", IngredientName: "flour", Quantity: 1, Unit: " cup "},
	}

	items, err := Aggregate(lines)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(items) != 1 {
		t.Fatalf("expected case/whitespace-insensitive merge, got %d items", len(items))
	}
	// Display fields come from the first-seen line.
	if items[0].Name != "  Flour " {
		t.Fatalf("expected first-seen name, got %q", items[0].Name)
	}
	if items[0].Unit != "Cup" {
		t.Fatalf("expected first-seen unit, got %q", items[0].Unit)
	}
}

func TestAggregateOrderIndependent(t *testing.T) {
	a := core.RecipeLine{RecipeID: "recipe-a", IngredientName: "flour", Quantity: 2, Unit: "cup"}
	b := core.RecipeLine{RecipeID: "recipe-b", IngredientName: "sugar", Quantity: 1, Unit: "cup"}

	forward, err := Aggregate([]core.RecipeLine{a, b})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	reverse, err := Aggregate([]core.RecipeLine{b, a})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(forward) != len(reverse) {
		t.Fatalf("expected same item count, got %d vs %d", len(forward), len(reverse))
	}

	sums := func(items []AggregatedItem) map[string]float64 {
		out := make(map[string]float64)
		for _, it := range items {
			out[it.Name+"::"+it.Unit] = it.Quantity
		}
		return out
	}

	f, r := sums(forward), sums(reverse)
	for k, v := range f {
		if r[k] != v {
			t.Fatalf("key %s: %v vs %v", k, v, r[k])
		}
	}
}

func TestAggregateDeterministicOrder(t *testing.T) {
	lines := []core.RecipeLine{
		{RecipeID: "r", IngredientName: "salt", Quantity: 1, Unit: "tsp"},
		{RecipeID: "r", IngredientName: "flour", Quantity: 2, Unit: "cup"},
		{RecipeID: "r", IngredientName: "salt", Quantity: 1, Unit: "tsp"},
	}

	for i := 0; i < 5; i++ {
		items, err := Aggregate(lines)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if items[0].Name != "salt" || items[1].Name != "flour" {
			t.Fatalf("expected first-seen order, got %q then %q", items[0].Name, items[1].Name)
		}
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	items, err := Aggregate(nil)
	if err != nil {
		t.Fatalf("empty input must not error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty result, got %d items", len(items))
	}
}

func TestAggregateTextQuantityNeverMerges(t *testing.T) {
	lines := []core.RecipeLine{
		{RecipeID: "recipe-a", IngredientName: "salt", Quantity: 1, Unit: "tsp"},
		{RecipeID: "recipe-b", IngredientName: "salt", QuantityDisplay: "a pinch", Unit: "tsp"},
		{RecipeID: "recipe-c", IngredientName: "salt", Quantity: 2, Unit: "tsp"},
	}

	items, err := Aggregate(lines)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("expected numeric item + separate text item, got %d", len(items))
	}
	if items[0].Quantity != 3 {
		t.Fatalf("expected numeric lines summed to 3, got %v", items[0].Quantity)
	}
	if items[1].QuantityDisplay != "a pinch" {
		t.Fatalf("expected text item untouched, got %q", items[1].QuantityDisplay)
	}
}

func TestAggregateRoundsFinalSum(t *testing.T) {
	lines := []core.RecipeLine{
		{RecipeID: "a", IngredientName: "butter", Quantity: 0.1, Unit: "kg"},
		{RecipeID: "b", IngredientName: "butter", Quantity: 0.2, Unit: "kg"},
	}

	items, err := Aggregate(lines)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if items[0].Quantity != 0.3 {
		t.Fatalf("expected 0.3 after rounding, got %v", items[0].Quantity)
	}
}

func TestAggregateMalformedLine(t *testing.T) {
	cases := []core.RecipeLine{
		{RecipeID: "a", IngredientName: "", Quantity: 1, Unit: "cup"},
		{RecipeID: "a", IngredientName: "flour", Quantity: 1, Unit: ""},
	}

	for _, line := range cases {
		_, err := Aggregate([]core.RecipeLine{line})

		var verr *core.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	}
}
