package services

import (
	"context"
	"log/slog"

	"vacation-menu-api/apperrors"
	"vacation-menu-api/models"
	"vacation-menu-api/repository"
)

type CreateMealInput struct {
	Date    models.Date
	Type    models.MealType
	DishIDs []string
}

type UpdateMealInput struct {
	Date    *models.Date
	Type    *models.MealType
	DishIDs *[]string
}

type MealService struct {
	menus  repository.MenuRepository
	meals  repository.MealRepository
	dishes repository.DishRepository
	logger *slog.Logger
}

func NewMealService(repos repository.Repositories, logger *slog.Logger) *MealService {
	return &MealService{
		menus:  repos.Menus,
		meals:  repos.Meals,
		dishes: repos.Dishes,
		logger: logger.With("component", "meal_service"),
	}
}

func (s *MealService) menu(ctx context.Context, menuID string) (*models.Menu, error) {
	menu, err := s.menus.FindByID(ctx, menuID)
	if err != nil {
		return nil, err
	}
	if menu == nil {
		return nil, apperrors.NotFound("menu %s not found", menuID)
	}
	return menu, nil
}

func checkMealDate(menu *models.Menu, date models.Date) error {
	if !menu.Contains(date) {
		return apperrors.InvalidDate("meal date %s is outside the stay period %s to %s", date, menu.CheckIn, menu.CheckOut)
	}
	return nil
}

// checkDishes rejects an empty list and ids that do not name a stored dish.
func (s *MealService) checkDishes(ctx context.Context, ids []string) ([]string, error) {
	ids = models.UniqueIDs(ids)
	if len(ids) == 0 {
		return nil, apperrors.Validation("a meal needs at least one dish", "dishIds: must contain at least one dish id")
	}
	found, err := s.dishes.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(found) != len(ids) {
		known := make(map[string]bool, len(found))
		for _, d := range found {
			known[d.ID] = true
		}
		for _, id := range ids {
			if !known[id] {
				return nil, apperrors.NotFound("dish %s not found", id)
			}
		}
	}
	return ids, nil
}

func (s *MealService) Create(ctx context.Context, menuID string, in CreateMealInput) (*models.Meal, error) {
	menu, err := s.menu(ctx, menuID)
	if err != nil {
		return nil, err
	}
	if len(models.UniqueIDs(in.DishIDs)) == 0 {
		return nil, apperrors.Validation("a meal needs at least one dish", "dishIds: must contain at least one dish id")
	}
	if !in.Type.Valid() {
		return nil, apperrors.Validation("invalid meal type", "type: must be one of breakfast, lunch, dinner")
	}
	if err := checkMealDate(menu, in.Date); err != nil {
		return nil, err
	}
	ids, err := s.checkDishes(ctx, in.DishIDs)
	if err != nil {
		return nil, err
	}

	meal := &models.Meal{MenuID: menu.ID, Date: in.Date, Type: in.Type, DishIDs: ids}
	if err := s.meals.Create(ctx, meal); err != nil {
		return nil, err
	}
	s.logger.Info("meal created", "menu_id", menu.ID, "meal_id", meal.ID, "date", meal.Date.String(), "type", meal.Type)
	return meal, nil
}

func (s *MealService) Get(ctx context.Context, menuID, mealID string) (*models.Meal, error) {
	if _, err := s.menu(ctx, menuID); err != nil {
		return nil, err
	}
	return s.find(ctx, menuID, mealID)
}

func (s *MealService) find(ctx context.Context, menuID, mealID string) (*models.Meal, error) {
	meal, err := s.meals.FindByID(ctx, menuID, mealID)
	if err != nil {
		return nil, err
	}
	if meal == nil {
		return nil, apperrors.NotFound("meal %s not found in menu %s", mealID, menuID)
	}
	return meal, nil
}

func (s *MealService) List(ctx context.Context, menuID string) ([]models.Meal, error) {
	if _, err := s.menu(ctx, menuID); err != nil {
		return nil, err
	}
	return s.meals.FindByMenu(ctx, menuID)
}

func (s *MealService) Update(ctx context.Context, menuID, mealID string, in UpdateMealInput) (*models.Meal, error) {
	menu, err := s.menu(ctx, menuID)
	if err != nil {
		return nil, err
	}
	meal, err := s.find(ctx, menuID, mealID)
	if err != nil {
		return nil, err
	}

	if in.Date != nil {
		if err := checkMealDate(menu, *in.Date); err != nil {
			return nil, err
		}
		meal.Date = *in.Date
	}
	if in.Type != nil {
		if !in.Type.Valid() {
			return nil, apperrors.Validation("invalid meal type", "type: must be one of breakfast, lunch, dinner")
		}
		meal.Type = *in.Type
	}
	if in.DishIDs != nil {
		ids, err := s.checkDishes(ctx, *in.DishIDs)
		if err != nil {
			return nil, err
		}
		meal.DishIDs = ids
	}

	if err := s.meals.Update(ctx, meal, in.DishIDs != nil); err != nil {
		return nil, err
	}
	s.logger.Info("meal updated", "menu_id", menuID, "meal_id", mealID)
	return s.find(ctx, menuID, mealID)
}

func (s *MealService) Delete(ctx context.Context, menuID, mealID string) error {
	if _, err := s.menu(ctx, menuID); err != nil {
		return err
	}
	if _, err := s.find(ctx, menuID, mealID); err != nil {
		return err
	}
	if err := s.meals.Delete(ctx, menuID, mealID); err != nil {
		return err
	}
	s.logger.Info("meal deleted", "menu_id", menuID, "meal_id", mealID)
	return nil
}
