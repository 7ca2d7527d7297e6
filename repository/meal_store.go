package repository

import (
	"context"
	"errors"
	"fmt"

	"vacation-menu-api/models"

	"gorm.io/gorm"
)

type MealStore struct {
	db *gorm.DB
}

func NewMealStore(db *gorm.DB) *MealStore {
	return &MealStore{db: db}
}

func (s *MealStore) Create(ctx context.Context, meal *models.Meal) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return createMeal(tx, meal)
	})
	if err != nil {
		return fmt.Errorf("create meal: %w", err)
	}
	return loadMealDishes(s.db.WithContext(ctx), []*models.Meal{meal})
}

func (s *MealStore) FindByID(ctx context.Context, menuID, mealID string) (*models.Meal, error) {
	var meal models.Meal
	err := s.db.WithContext(ctx).
		Where("id = ? AND menu_id = ?", mealID, menuID).
		First(&meal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get meal: %w", err)
	}
	if err := loadMealDishes(s.db.WithContext(ctx), []*models.Meal{&meal}); err != nil {
		return nil, err
	}
	return &meal, nil
}

func (s *MealStore) FindByMenu(ctx context.Context, menuID string) ([]models.Meal, error) {
	meals, err := findMealsByMenu(s.db.WithContext(ctx), menuID)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	return meals, nil
}

func (s *MealStore) Update(ctx context.Context, meal *models.Meal, replaceDishes bool) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(meal).Select("Date", "Type").Updates(meal).Error; err != nil {
			return err
		}
		if replaceDishes {
			return writeMealDishes(tx, meal.ID, meal.DishIDs)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("update meal: %w", err)
	}
	return loadMealDishes(s.db.WithContext(ctx), []*models.Meal{meal})
}

func (s *MealStore) Delete(ctx context.Context, menuID, mealID string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meal_id = ?", mealID).Delete(&models.MealDish{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ? AND menu_id = ?", mealID, menuID).Delete(&models.Meal{}).Error
	})
	if err != nil {
		return fmt.Errorf("delete meal: %w", err)
	}
	return nil
}

func createMeal(tx *gorm.DB, meal *models.Meal) error {
	meal.DishIDs = models.UniqueIDs(meal.DishIDs)
	if err := tx.Create(meal).Error; err != nil {
		return err
	}
	return writeMealDishes(tx, meal.ID, meal.DishIDs)
}

func findMealsByMenu(db *gorm.DB, menuID string) ([]models.Meal, error) {
	var meals []models.Meal
	if err := db.Where("menu_id = ?", menuID).Order("rowid").Find(&meals).Error; err != nil {
		return nil, err
	}
	ptrs := make([]*models.Meal, len(meals))
	for i := range meals {
		ptrs[i] = &meals[i]
	}
	if err := loadMealDishes(db, ptrs); err != nil {
		return nil, err
	}
	return meals, nil
}

// writeMealDishes replaces the dish references of a meal, keeping order.
func writeMealDishes(tx *gorm.DB, mealID string, dishIDs []string) error {
	if err := tx.Where("meal_id = ?", mealID).Delete(&models.MealDish{}).Error; err != nil {
		return err
	}
	ids := models.UniqueIDs(dishIDs)
	if len(ids) == 0 {
		return nil
	}
	links := make([]models.MealDish, len(ids))
	for i, id := range ids {
		links[i] = models.MealDish{MealID: mealID, DishID: id, Position: i}
	}
	return tx.Create(&links).Error
}

// loadMealDishes fills DishIDs and Dishes (with ingredients) for the meals.
func loadMealDishes(db *gorm.DB, meals []*models.Meal) error {
	if len(meals) == 0 {
		return nil
	}
	mealIDs := make([]string, len(meals))
	for i, m := range meals {
		mealIDs[i] = m.ID
	}

	var links []models.MealDish
	err := db.Where("meal_id IN ?", mealIDs).Order("meal_id, position").Find(&links).Error
	if err != nil {
		return fmt.Errorf("load meal dishes: %w", err)
	}

	byMeal := make(map[string][]string, len(meals))
	var dishIDs []string
	for _, l := range links {
		byMeal[l.MealID] = append(byMeal[l.MealID], l.DishID)
		dishIDs = append(dishIDs, l.DishID)
	}

	dishes, err := findDishesByIDs(db, dishIDs)
	if err != nil {
		return fmt.Errorf("load meal dishes: %w", err)
	}
	byID := make(map[string]models.Dish, len(dishes))
	for _, d := range dishes {
		byID[d.ID] = d
	}

	for _, m := range meals {
		m.DishIDs = []string{}
		m.Dishes = []models.Dish{}
		for _, id := range byMeal[m.ID] {
			d, ok := byID[id]
			if !ok {
				continue
			}
			m.DishIDs = append(m.DishIDs, id)
			m.Dishes = append(m.Dishes, d)
		}
	}
	return nil
}
