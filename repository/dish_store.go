package repository

import (
	"context"
	"errors"
	"fmt"

	"vacation-menu-api/models"

	"gorm.io/gorm"
)

type DishStore struct {
	db *gorm.DB
}

func NewDishStore(db *gorm.DB) *DishStore {
	return &DishStore{db: db}
}

func orderedIngredients(db *gorm.DB) *gorm.DB {
	return db.Order("rowid")
}

func (s *DishStore) Create(ctx context.Context, dish *models.Dish) error {
	for i := range dish.Ingredients {
		dish.Ingredients[i].ID = ""
	}
	if err := s.db.WithContext(ctx).Create(dish).Error; err != nil {
		return fmt.Errorf("create dish: %w", err)
	}
	if dish.Ingredients == nil {
		dish.Ingredients = []models.Ingredient{}
	}
	return nil
}

func (s *DishStore) FindByID(ctx context.Context, id string) (*models.Dish, error) {
	var dish models.Dish
	err := s.db.WithContext(ctx).
		Preload("Ingredients", orderedIngredients).
		First(&dish, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get dish: %w", err)
	}
	return &dish, nil
}

// FindByIDs returns the existing dishes among ids, in the order of ids.
func (s *DishStore) FindByIDs(ctx context.Context, ids []string) ([]models.Dish, error) {
	dishes, err := findDishesByIDs(s.db.WithContext(ctx), ids)
	if err != nil {
		return nil, fmt.Errorf("get dishes: %w", err)
	}
	return dishes, nil
}

func (s *DishStore) FindAll(ctx context.Context, filter DishFilter) ([]models.Dish, error) {
	q := s.db.WithContext(ctx).Preload("Ingredients", orderedIngredients)
	if filter.Search != "" {
		q = q.Where(`LOWER(name) LIKE ? ESCAPE '\'`, likePattern(filter.Search))
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}

	dishes := []models.Dish{}
	if err := q.Order("name, rowid").Find(&dishes).Error; err != nil {
		return nil, fmt.Errorf("list dishes: %w", err)
	}
	return dishes, nil
}

func (s *DishStore) Update(ctx context.Context, dish *models.Dish, replaceIngredients bool) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(dish).Select("Name", "Category").Updates(dish).Error; err != nil {
			return err
		}
		if !replaceIngredients {
			return nil
		}
		if err := tx.Where("dish_id = ?", dish.ID).Delete(&models.Ingredient{}).Error; err != nil {
			return err
		}
		if len(dish.Ingredients) == 0 {
			return nil
		}
		for i := range dish.Ingredients {
			dish.Ingredients[i].ID = ""
			dish.Ingredients[i].DishID = dish.ID
		}
		return tx.Create(&dish.Ingredients).Error
	})
	if err != nil {
		return fmt.Errorf("update dish: %w", err)
	}
	return nil
}

// Delete removes the dish, its ingredients and every meal reference to it.
func (s *DishStore) Delete(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("dish_id = ?", id).Delete(&models.MealDish{}).Error; err != nil {
			return err
		}
		if err := tx.Where("dish_id = ?", id).Delete(&models.Ingredient{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Dish{}).Error
	})
	if err != nil {
		return fmt.Errorf("delete dish: %w", err)
	}
	return nil
}

func findDishesByIDs(db *gorm.DB, ids []string) ([]models.Dish, error) {
	ids = models.UniqueIDs(ids)
	if len(ids) == 0 {
		return []models.Dish{}, nil
	}
	var found []models.Dish
	err := db.Preload("Ingredients", orderedIngredients).Where("id IN ?", ids).Find(&found).Error
	if err != nil {
		return nil, err
	}

	byID := make(map[string]models.Dish, len(found))
	for _, d := range found {
		byID[d.ID] = d
	}
	dishes := make([]models.Dish, 0, len(found))
	for _, id := range ids {
		if d, ok := byID[id]; ok {
			dishes = append(dishes, d)
		}
	}
	return dishes, nil
}
