package activity

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		activity Activity
		err      error
	}{
		{
			name:     "valid",
			activity: Activity{Name: CategoryWater, Quantity: 500, Unit: "ml"},
		},
		{
			name:     "unknown category",
			activity: Activity{Name: "Coffee", Quantity: 1, Unit: "cup"},
			err:      ErrUnknownCategory,
		},
		{
			name:     "zero quantity",
			activity: Activity{Name: CategoryWalk, Quantity: 0, Unit: "km"},
			err:      ErrNonPositiveQuantity,
		},
		{
			name:     "negative quantity",
			activity: Activity{Name: CategoryWalk, Quantity: -2, Unit: "km"},
			err:      ErrNonPositiveQuantity,
		},
		{
			name:     "blank unit",
			activity: Activity{Name: CategoryWater, Quantity: 500, Unit: "  "},
			err:      ErrEmptyUnit,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := Validate(&test.activity)
			if !errors.Is(err, test.err) {
				t.Errorf("error = %v, want %v", err, test.err)
			}
		})
	}
}

func TestValidateCanonicalizesCasing(t *testing.T) {
	a := Activity{Name: "water", Quantity: 500, Unit: "ml"}
	if err := Validate(&a); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if a.Name != CategoryWater {
		t.Errorf("name = %q, want %q", a.Name, CategoryWater)
	}
}

func TestCategoryIsValid(t *testing.T) {
	for _, category := range Categories() {
		if !category.IsValid() {
			t.Errorf("%q reported invalid", category)
		}
	}
	if Category("Coffee").IsValid() {
		t.Error("Coffee reported valid")
	}
	if !Category("CIGARETTE").IsValid() {
		t.Error("uppercase variant reported invalid")
	}
}
