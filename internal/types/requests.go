package types

import "github.com/google/uuid"

type RegisterRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// IngredientLine is one (ingredient, amount) pair of a recipe submission.
type IngredientLine struct {
	ID     uuid.UUID `json:"id"`
	Amount int       `json:"amount"`
}

// RecipeInput is the full recipe submission; a revision carries the same
// shape and replaces the stored ingredient and tag sets entirely.
type RecipeInput struct {
	Name        string           `json:"name" binding:"required"`
	Text        string           `json:"text" binding:"required"`
	Image       string           `json:"image"`
	CookingTime int              `json:"cooking_time"`
	Ingredients []IngredientLine `json:"ingredients"`
	TagIDs      []uuid.UUID      `json:"tags"`
}
