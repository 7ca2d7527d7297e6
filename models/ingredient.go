package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IngredientCategory string

const (
	IngredientProduce   IngredientCategory = "produce"
	IngredientMeat      IngredientCategory = "meat"
	IngredientSeafood   IngredientCategory = "seafood"
	IngredientDairy     IngredientCategory = "dairy"
	IngredientBakery    IngredientCategory = "bakery"
	IngredientPantry    IngredientCategory = "pantry"
	IngredientFrozen    IngredientCategory = "frozen"
	IngredientBeverages IngredientCategory = "beverages"
	IngredientSpices    IngredientCategory = "spices"
	IngredientOther     IngredientCategory = "other"
)

var IngredientCategories = []IngredientCategory{
	IngredientProduce, IngredientMeat, IngredientSeafood, IngredientDairy, IngredientBakery,
	IngredientPantry, IngredientFrozen, IngredientBeverages, IngredientSpices, IngredientOther,
}

func (c IngredientCategory) Valid() bool {
	for _, known := range IngredientCategories {
		if c == known {
			return true
		}
	}
	return false
}

type Ingredient struct {
	ID        string             `json:"id" gorm:"primaryKey;type:varchar(36)"`
	DishID    string             `json:"dishId" gorm:"not null;index;type:varchar(36)"`
	Name      string             `json:"name" gorm:"not null"`
	Quantity  float64            `json:"quantity" gorm:"not null"`
	Unit      string             `json:"unit"`
	Category  IngredientCategory `json:"category" gorm:"not null"`
	CreatedAt time.Time          `json:"createdAt"`
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// Clone copies the ingredient's content without its identity or owner.
func (i Ingredient) Clone() Ingredient {
	return Ingredient{
		Name:     i.Name,
		Quantity: i.Quantity,
		Unit:     i.Unit,
		Category: i.Category,
	}
}
