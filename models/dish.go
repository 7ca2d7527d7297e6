package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DishCategory string

const (
	DishBreakfast DishCategory = "breakfast"
	DishLunch     DishCategory = "lunch"
	DishDinner    DishCategory = "dinner"
	DishSnack     DishCategory = "snack"
	DishDessert   DishCategory = "dessert"
)

var DishCategories = []DishCategory{DishBreakfast, DishLunch, DishDinner, DishSnack, DishDessert}

func (c DishCategory) Valid() bool {
	for _, known := range DishCategories {
		if c == known {
			return true
		}
	}
	return false
}

// DishCategoryFor picks the natural dish category for a meal type.
func DishCategoryFor(t MealType) DishCategory {
	switch t {
	case MealBreakfast:
		return DishBreakfast
	case MealLunch:
		return DishLunch
	default:
		return DishDinner
	}
}

type Dish struct {
	ID          string       `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string       `json:"name" gorm:"not null;index"`
	Category    DishCategory `json:"category" gorm:"not null;index"`
	Ingredients []Ingredient `json:"ingredients" gorm:"foreignKey:DishID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time    `json:"createdAt"`
}

func (d *Dish) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

// Duplicate returns an unsaved deep copy with the copy suffix appended to
// the name. Repeated duplication keeps appending the suffix.
func (d *Dish) Duplicate() *Dish {
	dup := &Dish{
		Name:     d.Name + CopySuffix,
		Category: d.Category,
	}
	for _, ing := range d.Ingredients {
		dup.Ingredients = append(dup.Ingredients, ing.Clone())
	}
	return dup
}
