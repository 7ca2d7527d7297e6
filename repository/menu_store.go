package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vacation-menu-api/models"

	"gorm.io/gorm"
)

type MenuStore struct {
	db *gorm.DB
}

func NewMenuStore(db *gorm.DB) *MenuStore {
	return &MenuStore{db: db}
}

// Create inserts the menu and its meals in one transaction.
func (s *MenuStore) Create(ctx context.Context, menu *models.Menu) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Meals").Create(menu).Error; err != nil {
			return err
		}
		for i := range menu.Meals {
			meal := &menu.Meals[i]
			meal.ID = ""
			meal.MenuID = menu.ID
			if err := createMeal(tx, meal); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("create menu: %w", err)
	}

	meals, err := findMealsByMenu(s.db.WithContext(ctx), menu.ID)
	if err != nil {
		return fmt.Errorf("create menu: %w", err)
	}
	menu.Meals = meals
	return nil
}

func (s *MenuStore) FindByID(ctx context.Context, id string) (*models.Menu, error) {
	db := s.db.WithContext(ctx)

	var menu models.Menu
	err := db.First(&menu, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get menu: %w", err)
	}

	menu.Meals, err = findMealsByMenu(db, menu.ID)
	if err != nil {
		return nil, fmt.Errorf("get menu meals: %w", err)
	}
	return &menu, nil
}

// FindAll returns one page of menus, newest first, and the total match count.
// Listed menus carry no meals.
func (s *MenuStore) FindAll(ctx context.Context, filter MenuFilter) ([]models.Menu, int64, error) {
	filter = filter.Normalize()
	db := s.db.WithContext(ctx)

	scope := func(q *gorm.DB) *gorm.DB {
		if filter.Search != "" {
			q = q.Where(`LOWER(title) LIKE ? ESCAPE '\'`, likePattern(filter.Search))
		}
		if filter.Date != nil {
			d := filter.Date.String()
			q = q.Where("check_in <= ? AND check_out >= ?", d, d)
		}
		return q
	}

	var total int64
	if err := db.Model(&models.Menu{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count menus: %w", err)
	}

	menus := []models.Menu{}
	err := db.Scopes(scope).
		Order("created_at DESC, rowid DESC").
		Limit(filter.Limit).
		Offset(filter.Offset()).
		Find(&menus).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list menus: %w", err)
	}
	return menus, total, nil
}

func (s *MenuStore) Update(ctx context.Context, menu *models.Menu) error {
	menu.UpdatedAt = time.Now()
	err := s.db.WithContext(ctx).Model(menu).
		Select("Title", "CheckIn", "CheckOut", "Adults", "Children", "Restrictions", "Preferences", "UpdatedAt").
		Updates(menu).Error
	if err != nil {
		return fmt.Errorf("update menu: %w", err)
	}
	return nil
}

// Delete removes the menu together with its meals and their dish references.
func (s *MenuStore) Delete(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var mealIDs []string
		if err := tx.Model(&models.Meal{}).Where("menu_id = ?", id).Pluck("id", &mealIDs).Error; err != nil {
			return err
		}
		if len(mealIDs) > 0 {
			if err := tx.Where("meal_id IN ?", mealIDs).Delete(&models.MealDish{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("menu_id = ?", id).Delete(&models.Meal{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Menu{}).Error
	})
	if err != nil {
		return fmt.Errorf("delete menu: %w", err)
	}
	return nil
}
