package pricing

import "errors"

// Engine error kinds. All are terminal for the call that produced them;
// callers check with errors.Is since results wrap them with context.
var (
	ErrInvalidVatCategory       = errors.New("invalid VAT category")
	ErrInvalidVolumeAssumptions = errors.New("open days and portions per day must be > 0, or override monthly portions")
	ErrPackagingSetNotFound     = errors.New("packaging set not found")
	ErrIngredientNotFound       = errors.New("ingredient not found")
	ErrIncompatibleUnits        = errors.New("unit conversion not possible")
	ErrInvalidTarget            = errors.New("target margin must be greater than 0")
	ErrInvalidMarginPercent     = errors.New("target margin percent must be between 0 and 1")
)
