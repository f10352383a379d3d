package core

import "fmt"

// ValidationError reports bad input to a core operation.
// The HTTP layer maps it to a 400 naming the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// MalformedIngredientError reports an ingredient line that has neither a
// numeric quantity nor display text. It indicates a data-integrity bug
// upstream, not user error, and maps to a generic 500.
type MalformedIngredientError struct {
	IngredientName string
}

func (e *MalformedIngredientError) Error() string {
	return fmt.Sprintf(
		"ingredient %q has neither quantity nor quantity_display",
		e.IngredientName,
	)
}
