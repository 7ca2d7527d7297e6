package repository

import (
	"context"
	"errors"
	"fmt"

	"vacation-menu-api/models"

	"gorm.io/gorm"
)

type IngredientStore struct {
	db *gorm.DB
}

func NewIngredientStore(db *gorm.DB) *IngredientStore {
	return &IngredientStore{db: db}
}

func (s *IngredientStore) Create(ctx context.Context, ingredient *models.Ingredient) error {
	ingredient.ID = ""
	if err := s.db.WithContext(ctx).Create(ingredient).Error; err != nil {
		return fmt.Errorf("create ingredient: %w", err)
	}
	return nil
}

func (s *IngredientStore) FindByID(ctx context.Context, dishID, id string) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	err := s.db.WithContext(ctx).
		Where("id = ? AND dish_id = ?", id, dishID).
		First(&ingredient).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get ingredient: %w", err)
	}
	return &ingredient, nil
}

func (s *IngredientStore) Update(ctx context.Context, ingredient *models.Ingredient) error {
	err := s.db.WithContext(ctx).Model(ingredient).
		Where("dish_id = ?", ingredient.DishID).
		Select("Name", "Quantity", "Unit", "Category").
		Updates(ingredient).Error
	if err != nil {
		return fmt.Errorf("update ingredient: %w", err)
	}
	return nil
}

func (s *IngredientStore) Delete(ctx context.Context, dishID, id string) error {
	err := s.db.WithContext(ctx).
		Where("id = ? AND dish_id = ?", id, dishID).
		Delete(&models.Ingredient{}).Error
	if err != nil {
		return fmt.Errorf("delete ingredient: %w", err)
	}
	return nil
}
