package types

import (
	"time"

	"github.com/google/uuid"
)

// UserView is the public representation of a user, including whether the
// current viewer subscribes to them. Anonymous viewers always see false.
type UserView struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	IsSubscribed bool      `json:"is_subscribed"`
}

type TagView struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Color string    `json:"color"`
	Slug  string    `json:"slug"`
}

// IngredientAmount is a resolved recipe ingredient line.
type IngredientAmount struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	MeasurementUnit string    `json:"measurement_unit"`
	Amount          int       `json:"amount"`
}

// RecipeView is the read model of a recipe: joins resolved against the
// catalogs plus per-viewer favorite/cart flags.
type RecipeView struct {
	ID               uuid.UUID          `json:"id"`
	Tags             []TagView          `json:"tags"`
	Author           UserView           `json:"author"`
	Ingredients      []IngredientAmount `json:"ingredients"`
	IsFavorited      bool               `json:"is_favorited"`
	IsInShoppingCart bool               `json:"is_in_shopping_cart"`
	Name             string             `json:"name"`
	Image            string             `json:"image"`
	Text             string             `json:"text"`
	CookingTime      int                `json:"cooking_time"`
	CreatedAt        time.Time          `json:"created_at"`
}

// RecipeBrief is the short recipe card used in subscription feeds.
type RecipeBrief struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Image       string    `json:"image"`
	CookingTime int       `json:"cooking_time"`
}

// AuthorFeed is one author entry of the subscriptions feed. RecipeCount is
// the author's true recipe total even when Recipes is truncated.
type AuthorFeed struct {
	Author      UserView      `json:"author"`
	Recipes     []RecipeBrief `json:"recipes"`
	RecipeCount int64         `json:"recipes_count"`
}

// ShoppingItem is one aggregated line of a shopping list: the summed amount
// of a single ingredient across every recipe in the cart.
type ShoppingItem struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	TotalAmount     int    `json:"total_amount"`
}

// RecipeFilter narrows recipe listings.
type RecipeFilter struct {
	TagSlugs       []string
	AuthorID       uuid.UUID
	FavoritedOnly  bool
	InShoppingCart bool
}
