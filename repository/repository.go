// Package repository declares the persistence contracts of the menu planner
// and implements them on top of gorm. Reads of missing rows return nil, nil.
package repository

import (
	"context"
	"strings"

	"vacation-menu-api/models"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// MenuFilter narrows and pages the menu listing.
type MenuFilter struct {
	Search string
	Date   *models.Date
	Page   int
	Limit  int
}

// Normalize applies paging defaults and caps the page size.
func (f MenuFilter) Normalize() MenuFilter {
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	return f
}

func (f MenuFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// Matches applies the search and date filters to a single menu.
func (f MenuFilter) Matches(m *models.Menu) bool {
	if f.Search != "" && !strings.Contains(strings.ToLower(m.Title), strings.ToLower(f.Search)) {
		return false
	}
	if f.Date != nil && !m.Contains(*f.Date) {
		return false
	}
	return true
}

type DishFilter struct {
	Search   string
	Category models.DishCategory
}

func (f DishFilter) Matches(d *models.Dish) bool {
	if f.Search != "" && !strings.Contains(strings.ToLower(d.Name), strings.ToLower(f.Search)) {
		return false
	}
	if f.Category != "" && d.Category != f.Category {
		return false
	}
	return true
}

// MenuRepository persists menus. Create also stores menu.Meals and their
// dish references; Update writes scalar fields only.
type MenuRepository interface {
	Create(ctx context.Context, menu *models.Menu) error
	FindByID(ctx context.Context, id string) (*models.Menu, error)
	FindAll(ctx context.Context, filter MenuFilter) ([]models.Menu, int64, error)
	Update(ctx context.Context, menu *models.Menu) error
	Delete(ctx context.Context, id string) error
}

// MealRepository persists meals scoped to their menu. Update rewrites the
// dish references only when replaceDishes is set.
type MealRepository interface {
	Create(ctx context.Context, meal *models.Meal) error
	FindByID(ctx context.Context, menuID, mealID string) (*models.Meal, error)
	FindByMenu(ctx context.Context, menuID string) ([]models.Meal, error)
	Update(ctx context.Context, meal *models.Meal, replaceDishes bool) error
	Delete(ctx context.Context, menuID, mealID string) error
}

// DishRepository persists dishes with their ingredients. Update replaces
// the whole ingredient list when replaceIngredients is set. Delete also
// drops the dish from every meal referencing it.
type DishRepository interface {
	Create(ctx context.Context, dish *models.Dish) error
	FindByID(ctx context.Context, id string) (*models.Dish, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.Dish, error)
	FindAll(ctx context.Context, filter DishFilter) ([]models.Dish, error)
	Update(ctx context.Context, dish *models.Dish, replaceIngredients bool) error
	Delete(ctx context.Context, id string) error
}

// IngredientRepository persists ingredients scoped to their dish. An
// ingredient looked up under another dish is reported as missing.
type IngredientRepository interface {
	Create(ctx context.Context, ingredient *models.Ingredient) error
	FindByID(ctx context.Context, dishID, id string) (*models.Ingredient, error)
	Update(ctx context.Context, ingredient *models.Ingredient) error
	Delete(ctx context.Context, dishID, id string) error
}

// Repositories bundles every repository a service layer needs.
type Repositories struct {
	Menus       MenuRepository
	Meals       MealRepository
	Dishes      DishRepository
	Ingredients IngredientRepository
}

// likePattern builds a case-insensitive LIKE pattern with wildcards escaped.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(s)) + "%"
}
