package shoppinglist

import (
	"strings"

	"github.com/Pogryziony/OmNomNom/internal/core"
)

// --------------------------------------------------
// Aggregate (PURE — no I/O, no side effects)
// --------------------------------------------------
//
// Lines are grouped by normalized name + unit; matching lines are
// summed. Same name with a different unit stays a separate item: unit
// conversion is out of scope, so "2 cups milk" never merges with
// "200 ml milk". Text-based quantities cannot be summed and always
// become their own item, even when the key matches a numeric line.
// Output order is first-seen, so identical input yields identical output.
func Aggregate(lines []core.RecipeLine) ([]AggregatedItem, error) {
	items := make([]AggregatedItem, 0, len(lines))
	byKey := make(map[string]int)

	for _, line := range lines {
		name := strings.TrimSpace(line.IngredientName)
		unit := strings.TrimSpace(line.Unit)

		if name == "" {
			return nil, core.NewValidationError("ingredient_name", "must not be empty")
		}
		if unit == "" {
			return nil, core.NewValidationError("unit", "must not be empty")
		}

		if strings.TrimSpace(line.QuantityDisplay) != "" {
			items = append(items, AggregatedItem{
				Name:            line.IngredientName,
				QuantityDisplay: line.QuantityDisplay,
				Unit:            line.Unit,
				Category:        line.Category,
				RecipeIDs:       []string{line.RecipeID},
			})
			continue
		}

		key := strings.ToLower(name) + "::" + strings.ToLower(unit)

		if i, ok := byKey[key]; ok {
			items[i].Quantity += line.Quantity
			items[i].RecipeIDs = appendRecipeID(items[i].RecipeIDs, line.RecipeID)
			continue
		}

		byKey[key] = len(items)
		items = append(items, AggregatedItem{
			Name:      line.IngredientName,
			Quantity:  line.Quantity,
			Unit:      line.Unit,
			Category:  line.Category,
			RecipeIDs: []string{line.RecipeID},
		})
	}

	// Round summed quantities once, at the end, so intermediate sums
	// never accumulate rounding error.
	for i := range items {
		if items[i].QuantityDisplay == "" {
			items[i].Quantity = core.Round2(items[i].Quantity)
		}
	}

	return items, nil
}

func appendRecipeID(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}
