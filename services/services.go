package services

import (
	"log/slog"

	"vacation-menu-api/repository"
)

// Services groups the use cases handed to the HTTP layer.
type Services struct {
	Menus       *MenuService
	Meals       *MealService
	Dishes      *DishService
	Suggestions *SuggestionService
}

func New(repos repository.Repositories, gateway SuggestionGateway, logger *slog.Logger) *Services {
	meals := NewMealService(repos, logger)
	dishes := NewDishService(repos, logger)
	return &Services{
		Menus:       NewMenuService(repos.Menus, logger),
		Meals:       meals,
		Dishes:      dishes,
		Suggestions: NewSuggestionService(repos, meals, dishes, gateway, logger),
	}
}
