package services

import (
	"context"
	"log/slog"
	"strings"

	"vacation-menu-api/apperrors"
	"vacation-menu-api/models"
	"vacation-menu-api/repository"
)

type IngredientInput struct {
	Name     string
	Quantity float64
	Unit     string
	Category models.IngredientCategory
}

// toModel builds an unsaved ingredient, inferring the category from the name
// when none was given.
func (in IngredientInput) toModel() models.Ingredient {
	category := in.Category
	if category == "" {
		category = models.CategorizeIngredient(in.Name)
	}
	return models.Ingredient{
		Name:     strings.TrimSpace(in.Name),
		Quantity: in.Quantity,
		Unit:     strings.TrimSpace(in.Unit),
		Category: category,
	}
}

func (in IngredientInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return apperrors.Validation("invalid ingredient", "name: is required")
	}
	if in.Quantity <= 0 {
		return apperrors.Validation("invalid ingredient", "quantity: must be greater than 0")
	}
	if in.Category != "" && !in.Category.Valid() {
		return apperrors.Validation("invalid ingredient", "category: unknown ingredient category")
	}
	return nil
}

type CreateDishInput struct {
	Name        string
	Category    models.DishCategory
	Ingredients []IngredientInput
}

type UpdateDishInput struct {
	Name        *string
	Category    *models.DishCategory
	Ingredients *[]IngredientInput
}

type UpdateIngredientInput struct {
	Name     *string
	Quantity *float64
	Unit     *string
	Category *models.IngredientCategory
}

type DishService struct {
	dishes      repository.DishRepository
	ingredients repository.IngredientRepository
	logger      *slog.Logger
}

func NewDishService(repos repository.Repositories, logger *slog.Logger) *DishService {
	return &DishService{
		dishes:      repos.Dishes,
		ingredients: repos.Ingredients,
		logger:      logger.With("component", "dish_service"),
	}
}

func toIngredients(inputs []IngredientInput) ([]models.Ingredient, error) {
	out := make([]models.Ingredient, 0, len(inputs))
	for _, in := range inputs {
		if err := in.validate(); err != nil {
			return nil, err
		}
		out = append(out, in.toModel())
	}
	return out, nil
}

func (s *DishService) Create(ctx context.Context, in CreateDishInput) (*models.Dish, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperrors.Validation("invalid dish", "name: is required")
	}
	if !in.Category.Valid() {
		return nil, apperrors.Validation("invalid dish", "category: unknown dish category")
	}
	ingredients, err := toIngredients(in.Ingredients)
	if err != nil {
		return nil, err
	}

	dish := &models.Dish{Name: name, Category: in.Category, Ingredients: ingredients}
	if err := s.dishes.Create(ctx, dish); err != nil {
		return nil, err
	}
	s.logger.Info("dish created", "dish_id", dish.ID, "ingredients", len(dish.Ingredients))
	return dish, nil
}

// CreateFromSuggestion persists a provider suggestion as a dish with ingredients.
func (s *DishService) CreateFromSuggestion(ctx context.Context, suggestion models.SuggestedDish, mealType models.MealType) (*models.Dish, error) {
	dish := suggestion.ToDish(mealType)
	if dish.Name == "" {
		return nil, apperrors.Validation("invalid dish", "name: is required")
	}
	if err := s.dishes.Create(ctx, dish); err != nil {
		return nil, err
	}
	s.logger.Info("dish created from suggestion", "dish_id", dish.ID, "name", dish.Name)
	return dish, nil
}

func (s *DishService) Get(ctx context.Context, id string) (*models.Dish, error) {
	dish, err := s.dishes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if dish == nil {
		return nil, apperrors.NotFound("dish %s not found", id)
	}
	return dish, nil
}

func (s *DishService) List(ctx context.Context, filter repository.DishFilter) ([]models.Dish, error) {
	if filter.Category != "" && !filter.Category.Valid() {
		return nil, apperrors.Validation("invalid filter", "category: unknown dish category")
	}
	return s.dishes.FindAll(ctx, filter)
}

func (s *DishService) Update(ctx context.Context, id string, in UpdateDishInput) (*models.Dish, error) {
	dish, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, apperrors.Validation("invalid dish", "name: must not be empty")
		}
		dish.Name = name
	}
	if in.Category != nil {
		if !in.Category.Valid() {
			return nil, apperrors.Validation("invalid dish", "category: unknown dish category")
		}
		dish.Category = *in.Category
	}
	if in.Ingredients != nil {
		ingredients, err := toIngredients(*in.Ingredients)
		if err != nil {
			return nil, err
		}
		dish.Ingredients = ingredients
	}

	if err := s.dishes.Update(ctx, dish, in.Ingredients != nil); err != nil {
		return nil, err
	}
	s.logger.Info("dish updated", "dish_id", id, "replaced_ingredients", in.Ingredients != nil)
	return s.Get(ctx, id)
}

// Duplicate stores a deep copy of the dish under a suffixed name.
func (s *DishService) Duplicate(ctx context.Context, id string) (*models.Dish, error) {
	source, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	dup := source.Duplicate()
	if err := s.dishes.Create(ctx, dup); err != nil {
		return nil, err
	}
	s.logger.Info("dish duplicated", "source_id", id, "dish_id", dup.ID)
	return dup, nil
}

func (s *DishService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.dishes.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("dish deleted", "dish_id", id)
	return nil
}

func (s *DishService) AddIngredient(ctx context.Context, dishID string, in IngredientInput) (*models.Ingredient, error) {
	if _, err := s.Get(ctx, dishID); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	ing := in.toModel()
	ing.DishID = dishID
	if err := s.ingredients.Create(ctx, &ing); err != nil {
		return nil, err
	}
	return &ing, nil
}

func (s *DishService) ingredient(ctx context.Context, dishID, id string) (*models.Ingredient, error) {
	if _, err := s.Get(ctx, dishID); err != nil {
		return nil, err
	}
	ing, err := s.ingredients.FindByID(ctx, dishID, id)
	if err != nil {
		return nil, err
	}
	if ing == nil {
		return nil, apperrors.NotFound("ingredient %s not found in dish %s", id, dishID)
	}
	return ing, nil
}

func (s *DishService) UpdateIngredient(ctx context.Context, dishID, id string, in UpdateIngredientInput) (*models.Ingredient, error) {
	ing, err := s.ingredient(ctx, dishID, id)
	if err != nil {
		return nil, err
	}

	merged := IngredientInput{Name: ing.Name, Quantity: ing.Quantity, Unit: ing.Unit, Category: ing.Category}
	if in.Name != nil {
		merged.Name = *in.Name
	}
	if in.Quantity != nil {
		merged.Quantity = *in.Quantity
	}
	if in.Unit != nil {
		merged.Unit = *in.Unit
	}
	if in.Category != nil {
		merged.Category = *in.Category
	}
	if err := merged.validate(); err != nil {
		return nil, err
	}

	updated := merged.toModel()
	updated.ID = ing.ID
	updated.DishID = ing.DishID
	updated.CreatedAt = ing.CreatedAt
	if err := s.ingredients.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *DishService) DeleteIngredient(ctx context.Context, dishID, id string) error {
	if _, err := s.ingredient(ctx, dishID, id); err != nil {
		return err
	}
	return s.ingredients.Delete(ctx, dishID, id)
}
