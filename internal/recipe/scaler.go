package recipe

import (
	"errors"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/Pogryziony/OmNomNom/internal/core"
)

// NotScaledAdvisory is attached to text-based quantities that read like
// "to taste" or "a pinch", which never scale.
const NotScaledAdvisory = "*Not scaled - adjust to taste"

const maxDesiredServings = 1000

// ErrInvalidServings guards against a recipe row whose servings slipped
// below 1 despite the entity invariant.
var ErrInvalidServings = errors.New("recipe servings must be positive")

// --------------------------------------------------
// Scale ingredients (PURE — no I/O, no side effects)
// --------------------------------------------------
//
// The unrounded factor multiplies each quantity so rounding error never
// compounds; only the reported factor and the per-line results are
// rounded to 2 decimals (half away from zero).
func ScaleIngredients(
	servings int,
	lines []IngredientLine,
	desiredServings float64,
) (*ScaledRecipe, error) {

	if math.IsNaN(desiredServings) || math.IsInf(desiredServings, 0) {
		return nil, core.NewValidationError("desired_servings", "must be a finite number")
	}
	if desiredServings <= 0 || desiredServings > maxDesiredServings {
		return nil, core.NewValidationError("desired_servings", "must be greater than 0 and at most 1000")
	}
	if servings <= 0 {
		return nil, ErrInvalidServings
	}

	factor := desiredServings / float64(servings)

	ordered := make([]IngredientLine, len(lines))
	copy(ordered, lines)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].OrderIndex < ordered[j].OrderIndex
	})

	scaled := make([]ScaledIngredient, 0, len(ordered))

	for _, line := range ordered {
		out := ScaledIngredient{
			Name:        line.Name,
			DisplayName: line.DisplayName,
			Unit:        line.Unit,
			Notes:       line.Notes,
		}

		if strings.TrimSpace(line.QuantityDisplay) != "" {
			// Text quantities pass through exactly as written.
			out.QuantityDisplay = line.QuantityDisplay

			lower := strings.ToLower(line.QuantityDisplay)
			if strings.Contains(lower, "taste") || strings.Contains(lower, "pinch") {
				note := NotScaledAdvisory
				out.Notes = &note
			}
		} else {
			if line.Quantity <= 0 {
				return nil, &core.MalformedIngredientError{IngredientName: line.Name}
			}

			original := line.Quantity
			quantity := core.Round2(line.Quantity * factor)

			out.OriginalQuantity = &original
			out.ScaledQuantity = &quantity
			out.QuantityDisplay = formatQuantity(quantity)
		}

		scaled = append(scaled, out)
	}

	return &ScaledRecipe{
		OriginalServings:  servings,
		DesiredServings:   desiredServings,
		ScalingFactor:     core.Round2(factor),
		ScaledIngredients: scaled,
	}, nil
}

// formatQuantity renders a rounded quantity without trailing zeros
// ("4", not "4.00"; "1.5", not "1.50").
func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}
