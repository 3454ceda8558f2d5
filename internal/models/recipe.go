package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Recipe struct {
	ID          uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	AuthorID    uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"author_id"`
	Name        string         `gorm:"size:200;not null" json:"name"`
	ImageURL    string         `gorm:"size:255" json:"image"`
	Text        string         `gorm:"type:text;not null" json:"text"`
	CookingTime int            `gorm:"not null" json:"cooking_time"`

	Author      User               `gorm:"foreignKey:AuthorID" json:"-"`
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"-"`
	Tags        []RecipeTag        `gorm:"foreignKey:RecipeID" json:"-"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RecipeIngredient is the quantified ingredient line of a recipe.
// One row per (recipe, ingredient); amount is validated positive before insert.
type RecipeIngredient struct {
	ID           uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	RecipeID     uuid.UUID `gorm:"type:varchar(36);not null;index;uniqueIndex:idx_recipe_ingredients_pair" json:"recipe_id"`
	IngredientID uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_recipe_ingredients_pair" json:"ingredient_id"`
	Amount       int       `gorm:"not null" json:"amount"`

	Ingredient Ingredient `gorm:"foreignKey:IngredientID" json:"-"`
}

func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}

func (ri *RecipeIngredient) BeforeCreate(tx *gorm.DB) error {
	if ri.ID == uuid.Nil {
		ri.ID = uuid.New()
	}
	return nil
}

type RecipeTag struct {
	ID       uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	RecipeID uuid.UUID `gorm:"type:varchar(36);not null;index;uniqueIndex:idx_recipe_tags_pair" json:"recipe_id"`
	TagID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_recipe_tags_pair" json:"tag_id"`

	Tag Tag `gorm:"foreignKey:TagID" json:"-"`
}

func (RecipeTag) TableName() string {
	return "recipe_tags"
}

func (rt *RecipeTag) BeforeCreate(tx *gorm.DB) error {
	if rt.ID == uuid.Nil {
		rt.ID = uuid.New()
	}
	return nil
}
