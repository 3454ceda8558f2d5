package types

import "errors"

// Validation errors: user-correctable input problems, surfaced verbatim.
// The composer fails fast with the first violation it finds.
var (
	ErrEmptyIngredients       = errors.New("recipe must contain at least one ingredient")
	ErrUnknownIngredient      = errors.New("ingredient does not exist in the catalog")
	ErrDuplicateIngredient    = errors.New("recipe contains the same ingredient twice")
	ErrNonPositiveAmount      = errors.New("ingredient amount must be a positive integer")
	ErrEmptyTags              = errors.New("recipe must have at least one tag")
	ErrUnknownTag             = errors.New("tag does not exist in the catalog")
	ErrDuplicateTag           = errors.New("recipe contains the same tag twice")
	ErrNonPositiveCookingTime = errors.New("cooking time must be a positive integer")
	ErrInvalidImage           = errors.New("image payload is not valid base64 data")
)

// Conflict errors.
var (
	ErrAlreadyExists = errors.New("relation already exists")
	ErrSelfFollow    = errors.New("users cannot subscribe to themselves")
)

// Lookup errors.
var (
	ErrRecipeNotFound   = errors.New("recipe not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrRelationNotFound = errors.New("relation not found")
	ErrNotFound         = errors.New("not found")
)

// Authorization errors.
var (
	ErrNotAuthor          = errors.New("only the author can modify a recipe")
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// IsValidationError reports whether err belongs to the composer's
// validation set so the HTTP boundary can map it to a bad request.
func IsValidationError(err error) bool {
	for _, v := range []error{
		ErrEmptyIngredients,
		ErrUnknownIngredient,
		ErrDuplicateIngredient,
		ErrNonPositiveAmount,
		ErrEmptyTags,
		ErrUnknownTag,
		ErrDuplicateTag,
		ErrNonPositiveCookingTime,
		ErrInvalidImage,
	} {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}
