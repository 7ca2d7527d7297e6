package repository

import "gorm.io/gorm"

var (
	_ MenuRepository       = (*MenuStore)(nil)
	_ MealRepository       = (*MealStore)(nil)
	_ DishRepository       = (*DishStore)(nil)
	_ IngredientRepository = (*IngredientStore)(nil)
)

// NewGorm wires every repository to the same database handle.
func NewGorm(db *gorm.DB) Repositories {
	return Repositories{
		Menus:       NewMenuStore(db),
		Meals:       NewMealStore(db),
		Dishes:      NewDishStore(db),
		Ingredients: NewIngredientStore(db),
	}
}
