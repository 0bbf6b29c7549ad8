// Package activity implements the activity half of the livslogg
// tracker: quantified records ("drank 500ml of water") appended to a
// CSV log and aggregated for display.
package activity

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/livslogg/livslogg/internal/validation"
)

// Category classifies a tracked activity.
type Category string

// The tracked activity categories. The AI extractor is prompted with
// exactly this set, and the validator rejects anything outside it.
const (
	CategoryWater     Category = "Water"
	CategoryCannabis  Category = "Cannabis"
	CategoryCigarette Category = "Cigarette"
	CategoryAlcohol   Category = "Alcohol"
	CategorySex       Category = "Sex"
	CategoryWalk      Category = "Walk"
	CategoryFood      Category = "Food"
)

// Categories returns the configured category set.
func Categories() []Category {
	return []Category{
		CategoryWater,
		CategoryCannabis,
		CategoryCigarette,
		CategoryAlcohol,
		CategorySex,
		CategoryWalk,
		CategoryFood,
	}
}

// IsValid returns true if the category belongs to the configured set.
// Matching is case-insensitive; stored values use canonical casing.
func (c Category) IsValid() bool {
	_, ok := canonicalCategory(c)
	return ok
}

func canonicalCategory(c Category) (Category, bool) {
	for _, valid := range Categories() {
		if strings.EqualFold(string(c), string(valid)) {
			return valid, true
		}
	}
	return "", false
}

// Activity represents a single quantified record.
type Activity struct {
	// Timestamp is when the activity was logged.
	Timestamp time.Time

	// Name is the activity category.
	Name Category

	// Quantity is the numeric amount. Always positive.
	Quantity float64

	// Unit is the unit of measurement ("ml", "km", "unit").
	Unit string
}

var (
	// ErrUnknownCategory is returned when an activity's category is not
	// in the configured set.
	ErrUnknownCategory = errors.New("unknown activity category")

	// ErrNonPositiveQuantity is returned when quantity is zero or negative.
	ErrNonPositiveQuantity = errors.New("quantity must be positive")

	// ErrEmptyUnit is returned when an activity has no unit.
	ErrEmptyUnit = errors.New("unit cannot be empty")
)

// Validate checks the invariants on an activity record and normalizes
// the category to its canonical casing. Unknown categories are
// rejected, not coerced.
func Validate(a *Activity) error {
	canonical, ok := canonicalCategory(a.Name)
	if !ok {
		return validation.FormatInvalidValueError(ErrUnknownCategory, a.Name, Categories())
	}
	a.Name = canonical
	if a.Quantity <= 0 {
		return fmt.Errorf("%w: got %g", ErrNonPositiveQuantity, a.Quantity)
	}
	if strings.TrimSpace(a.Unit) == "" {
		return ErrEmptyUnit
	}
	return nil
}
