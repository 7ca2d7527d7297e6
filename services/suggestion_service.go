package services

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"vacation-menu-api/ai"
	"vacation-menu-api/apperrors"
	"vacation-menu-api/models"
	"vacation-menu-api/repository"

	"golang.org/x/sync/errgroup"
)

// SuggestionGateway is the provider-facing half of the suggestion flow.
type SuggestionGateway interface {
	Suggest(ctx context.Context, req ai.SuggestRequest) (*ai.SuggestResult, error)
	SuggestVariation(ctx context.Context, req ai.VariationRequest) (*ai.VariationResult, error)
}

type SuggestInput struct {
	Date models.Date
	Type models.MealType
	// ExcludeDishes is only used when regenerating.
	ExcludeDishes []string
}

type VariationInput struct {
	Date     models.Date
	Type     models.MealType
	DishID   string
	DishName string
}

type AcceptSuggestionsInput struct {
	Date   models.Date
	Type   models.MealType
	Dishes []models.SuggestedDish
}

type AcceptVariationInput struct {
	ReplaceDishID string
	Dish          models.SuggestedDish
}

// AcceptedSuggestions is the meal created from accepted suggestions and
// the dishes created for it.
type AcceptedSuggestions struct {
	Meal   *models.Meal  `json:"meal"`
	Dishes []models.Dish `json:"dishes"`
}

type AcceptedVariation struct {
	Meal           *models.Meal `json:"meal"`
	Dish           *models.Dish `json:"dish"`
	ReplacedDishID string       `json:"replacedDishId"`
}

type SuggestionService struct {
	menus   repository.MenuRepository
	meals   *MealService
	dishes  *DishService
	gateway SuggestionGateway
	logger  *slog.Logger
}

func NewSuggestionService(repos repository.Repositories, meals *MealService, dishes *DishService, gateway SuggestionGateway, logger *slog.Logger) *SuggestionService {
	return &SuggestionService{
		menus:   repos.Menus,
		meals:   meals,
		dishes:  dishes,
		gateway: gateway,
		logger:  logger.With("component", "suggestion_service"),
	}
}

// menuFor loads the menu and checks that date falls in its stay period.
func (s *SuggestionService) menuFor(ctx context.Context, menuID string, date models.Date) (*models.Menu, error) {
	menu, err := s.menus.FindByID(ctx, menuID)
	if err != nil {
		return nil, err
	}
	if menu == nil {
		return nil, apperrors.NotFound("menu %s not found", menuID)
	}
	if err := checkMealDate(menu, date); err != nil {
		return nil, err
	}
	return menu, nil
}

func (s *SuggestionService) Suggest(ctx context.Context, menuID string, in SuggestInput) (*ai.SuggestResult, error) {
	menu, err := s.menuFor(ctx, menuID, in.Date)
	if err != nil {
		return nil, err
	}
	return s.gateway.Suggest(ctx, ai.SuggestRequest{
		Context:  models.NewSuggestionContext(menu),
		Date:     in.Date,
		MealType: in.Type,
	})
}

// Regenerate asks again while telling the provider which dishes to avoid.
func (s *SuggestionService) Regenerate(ctx context.Context, menuID string, in SuggestInput) (*ai.SuggestResult, error) {
	menu, err := s.menuFor(ctx, menuID, in.Date)
	if err != nil {
		return nil, err
	}
	var exclude []string
	for _, name := range in.ExcludeDishes {
		if name = strings.TrimSpace(name); name != "" {
			exclude = append(exclude, name)
		}
	}
	return s.gateway.Suggest(ctx, ai.SuggestRequest{
		Context:  models.NewSuggestionContext(menu),
		Date:     in.Date,
		MealType: in.Type,
		Exclude:  exclude,
	})
}

func (s *SuggestionService) SuggestVariation(ctx context.Context, menuID string, in VariationInput) (*ai.VariationResult, error) {
	if in.DishID == "" && strings.TrimSpace(in.DishName) == "" {
		return nil, apperrors.Validation("a dish is required", "dishId: either dishId or dishName must be provided")
	}
	menu, err := s.menuFor(ctx, menuID, in.Date)
	if err != nil {
		return nil, err
	}

	req := ai.VariationRequest{
		Context:  models.NewSuggestionContext(menu),
		Date:     in.Date,
		MealType: in.Type,
		DishName: strings.TrimSpace(in.DishName),
	}
	if in.DishID != "" {
		dish, err := s.dishes.Get(ctx, in.DishID)
		if err != nil {
			return nil, err
		}
		req.Dish = dish
	}
	return s.gateway.SuggestVariation(ctx, req)
}

// AcceptSuggestions creates one dish per suggestion concurrently, then a
// single meal referencing all of them.
func (s *SuggestionService) AcceptSuggestions(ctx context.Context, menuID string, in AcceptSuggestionsInput) (*AcceptedSuggestions, error) {
	if len(in.Dishes) == 0 {
		return nil, apperrors.Validation("at least one dish must be accepted", "dishes: must not be empty")
	}
	if !in.Type.Valid() {
		return nil, apperrors.Validation("invalid meal type", "type: must be one of breakfast, lunch, dinner")
	}
	if _, err := s.menuFor(ctx, menuID, in.Date); err != nil {
		return nil, err
	}

	created := make([]*models.Dish, len(in.Dishes))
	g, gctx := errgroup.WithContext(ctx)
	for i, suggestion := range in.Dishes {
		g.Go(func() error {
			dish, err := s.dishes.CreateFromSuggestion(gctx, suggestion, in.Type)
			if err != nil {
				return err
			}
			created[i] = dish
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Error("accept suggestions: dish creation failed", "menu_id", menuID, "error", err)
		return nil, err
	}

	ids := make([]string, len(created))
	dishes := make([]models.Dish, len(created))
	for i, d := range created {
		ids[i] = d.ID
		dishes[i] = *d
	}

	meal, err := s.meals.Create(ctx, menuID, CreateMealInput{Date: in.Date, Type: in.Type, DishIDs: ids})
	if err != nil {
		return nil, err
	}
	s.logger.Info("suggestions accepted", "menu_id", menuID, "meal_id", meal.ID, "dishes", len(ids))
	return &AcceptedSuggestions{Meal: meal, Dishes: dishes}, nil
}

// AcceptVariation stores the chosen variation and swaps it in for the
// replaced dish, keeping the meal's other dishes and their order.
func (s *SuggestionService) AcceptVariation(ctx context.Context, menuID, mealID string, in AcceptVariationInput) (*AcceptedVariation, error) {
	meal, err := s.meals.Get(ctx, menuID, mealID)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(meal.DishIDs, in.ReplaceDishID) {
		return nil, apperrors.NotFound("dish %s is not part of meal %s", in.ReplaceDishID, mealID)
	}

	dish, err := s.dishes.CreateFromSuggestion(ctx, in.Dish, meal.Type)
	if err != nil {
		return nil, err
	}

	ids, _ := models.ReplaceDishID(meal.DishIDs, in.ReplaceDishID, dish.ID)
	updated, err := s.meals.Update(ctx, menuID, mealID, UpdateMealInput{DishIDs: &ids})
	if err != nil {
		return nil, err
	}
	s.logger.Info("variation accepted", "menu_id", menuID, "meal_id", mealID, "replaced", in.ReplaceDishID, "dish_id", dish.ID)
	return &AcceptedVariation{Meal: updated, Dish: dish, ReplacedDishID: in.ReplaceDishID}, nil
}
