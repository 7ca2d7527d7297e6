// Package services holds the use cases of the menu planner. Services take
// repositories through their constructors and return *apperrors.Error values
// for every failure a client can act on.
package services

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"vacation-menu-api/apperrors"
	"vacation-menu-api/models"
	"vacation-menu-api/repository"

	"gorm.io/datatypes"
)

type CreateMenuInput struct {
	Title        string
	CheckIn      models.Date
	CheckOut     models.Date
	Adults       int
	Children     *int
	Restrictions []string
	Preferences  *string
}

// UpdateMenuInput carries only the fields a client sent. Preferences uses
// Nullable so an explicit null clears it.
type UpdateMenuInput struct {
	Title        *string
	CheckIn      *models.Date
	CheckOut     *models.Date
	Adults       *int
	Children     *int
	Restrictions *[]string
	Preferences  models.Nullable[string]
}

// MenuPage is one page of the menu listing.
type MenuPage struct {
	Data       []models.Menu `json:"data"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"totalPages"`
}

type MenuService struct {
	menus  repository.MenuRepository
	logger *slog.Logger
}

func NewMenuService(menus repository.MenuRepository, logger *slog.Logger) *MenuService {
	return &MenuService{menus: menus, logger: logger.With("component", "menu_service")}
}

func (s *MenuService) Create(ctx context.Context, in CreateMenuInput) (*models.Menu, error) {
	if in.CheckOut.Before(in.CheckIn.Time) {
		return nil, apperrors.InvalidDate("check-out date must not be before check-in date")
	}
	if in.Adults < 1 {
		return nil, apperrors.DomainRule("a menu needs at least one adult")
	}

	menu := &models.Menu{
		Title:        strings.TrimSpace(in.Title),
		CheckIn:      in.CheckIn,
		CheckOut:     in.CheckOut,
		Adults:       in.Adults,
		Restrictions: cleanRestrictions(in.Restrictions),
		Preferences:  in.Preferences,
	}
	if in.Children != nil {
		menu.Children = *in.Children
	}

	if err := s.menus.Create(ctx, menu); err != nil {
		return nil, err
	}
	s.logger.Info("menu created", "menu_id", menu.ID, "check_in", menu.CheckIn.String(), "check_out", menu.CheckOut.String())
	return menu, nil
}

func (s *MenuService) Get(ctx context.Context, id string) (*models.Menu, error) {
	menu, err := s.menus.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if menu == nil {
		return nil, apperrors.NotFound("menu %s not found", id)
	}
	return menu, nil
}

func (s *MenuService) List(ctx context.Context, filter repository.MenuFilter) (*MenuPage, error) {
	filter = filter.Normalize()
	menus, total, err := s.menus.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &MenuPage{
		Data:       menus,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}, nil
}

// Update applies the supplied fields. Any rejected update leaves the stored
// menu untouched.
func (s *MenuService) Update(ctx context.Context, id string, in UpdateMenuInput) (*models.Menu, error) {
	menu, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.CheckIn != nil && in.CheckOut != nil && !in.CheckOut.After(in.CheckIn.Time) {
		return nil, apperrors.InvalidDate("check-out date must be after check-in date")
	}

	checkIn, checkOut := menu.CheckIn, menu.CheckOut
	if in.CheckIn != nil {
		checkIn = *in.CheckIn
	}
	if in.CheckOut != nil {
		checkOut = *in.CheckOut
	}
	if checkOut.Before(checkIn.Time) {
		return nil, apperrors.InvalidDate("check-out date must not be before check-in date")
	}
	if in.Adults != nil && *in.Adults < 1 {
		return nil, apperrors.DomainRule("a menu needs at least one adult")
	}
	if in.Children != nil && *in.Children < 0 {
		return nil, apperrors.DomainRule("children cannot be negative")
	}
	if days := checkIn.DaysUntil(checkOut); days > models.MaxStayDays {
		return nil, apperrors.DomainRule("stay period cannot exceed %d days (got %d)", models.MaxStayDays, days)
	}
	if stranded := models.MealsOutside(menu.Meals, checkIn, checkOut); len(stranded) > 0 {
		return nil, apperrors.DomainRule("cannot change dates: %d meal(s) would fall outside the new stay period", len(stranded))
	}

	if in.Title != nil {
		menu.Title = strings.TrimSpace(*in.Title)
	}
	menu.CheckIn, menu.CheckOut = checkIn, checkOut
	if in.Adults != nil {
		menu.Adults = *in.Adults
	}
	if in.Children != nil {
		menu.Children = *in.Children
	}
	if in.Restrictions != nil {
		menu.Restrictions = cleanRestrictions(*in.Restrictions)
	}
	if in.Preferences.Set {
		menu.Preferences = in.Preferences.Value
	}

	if err := s.menus.Update(ctx, menu); err != nil {
		return nil, err
	}
	s.logger.Info("menu updated", "menu_id", menu.ID)
	return s.Get(ctx, id)
}

// Duplicate copies the menu and its meals. Dishes are shared, not copied.
func (s *MenuService) Duplicate(ctx context.Context, id string) (*models.Menu, error) {
	source, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	dup := source.Duplicate()
	if err := s.menus.Create(ctx, dup); err != nil {
		return nil, err
	}
	s.logger.Info("menu duplicated", "source_id", source.ID, "menu_id", dup.ID, "meals", len(dup.Meals))
	return s.Get(ctx, dup.ID)
}

func (s *MenuService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.menus.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("menu deleted", "menu_id", id)
	return nil
}

func cleanRestrictions(in []string) datatypes.JSONSlice[string] {
	out := datatypes.JSONSlice[string]{}
	seen := map[string]bool{}
	for _, r := range in {
		r = strings.TrimSpace(r)
		key := strings.ToLower(r)
		if r == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}
