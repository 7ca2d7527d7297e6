package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// SuggestionState is the lifecycle of one request to the suggestion provider.
type SuggestionState string

const (
	SuggestionIdle        SuggestionState = "IDLE"
	SuggestionRequesting  SuggestionState = "REQUESTING"
	SuggestionParsed      SuggestionState = "PARSED"
	SuggestionUnavailable SuggestionState = "UNAVAILABLE"
)

type SuggestedIngredient struct {
	Name     string             `json:"name" binding:"required"`
	Quantity float64            `json:"quantity" binding:"gt=0"`
	Unit     string             `json:"unit"`
	Category IngredientCategory `json:"category" binding:"omitempty,ingredientcategory"`
}

// UnmarshalJSON also accepts quantities written as strings ("1.5").
func (s *SuggestedIngredient) UnmarshalJSON(data []byte) error {
	type alias SuggestedIngredient
	var raw struct {
		alias
		Quantity any `json:"quantity"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = SuggestedIngredient(raw.alias)
	switch q := raw.Quantity.(type) {
	case float64:
		s.Quantity = q
	case string:
		s.Quantity, _ = strconv.ParseFloat(strings.TrimSpace(q), 64)
	}
	return nil
}

// SuggestedDish is a dish definition proposed by the provider and not yet persisted.
type SuggestedDish struct {
	Name        string                `json:"name" binding:"required"`
	Category    DishCategory          `json:"category" binding:"omitempty,dishcategory"`
	Description string                `json:"description,omitempty"`
	Ingredients []SuggestedIngredient `json:"ingredients" binding:"dive"`
}

// ToDish converts the suggestion into an unsaved Dish. Missing categories are
// inferred from the meal type and the ingredient names.
func (s SuggestedDish) ToDish(mealType MealType) *Dish {
	category := s.Category
	if !category.Valid() {
		category = DishCategoryFor(mealType)
	}
	dish := &Dish{
		Name:        strings.TrimSpace(s.Name),
		Category:    category,
		Ingredients: []Ingredient{},
	}
	for _, si := range s.Ingredients {
		cat := si.Category
		if !cat.Valid() {
			cat = CategorizeIngredient(si.Name)
		}
		dish.Ingredients = append(dish.Ingredients, Ingredient{
			Name:     strings.TrimSpace(si.Name),
			Quantity: si.Quantity,
			Unit:     si.Unit,
			Category: cat,
		})
	}
	return dish
}

type PlannedMeal struct {
	Date   Date     `json:"date"`
	Type   MealType `json:"type"`
	Dishes []string `json:"dishes"`
}

// SuggestionContext is the menu summary handed to the suggestion provider.
type SuggestionContext struct {
	MenuID        string        `json:"menuId"`
	Title         string        `json:"title"`
	Adults        int           `json:"adults"`
	Children      int           `json:"children"`
	TotalPeople   int           `json:"totalPeople"`
	Restrictions  []string      `json:"restrictions"`
	Preferences   *string       `json:"preferences"`
	CheckIn       Date          `json:"checkIn"`
	CheckOut      Date          `json:"checkOut"`
	ExistingMeals []PlannedMeal `json:"existingMeals"`
}

// NewSuggestionContext summarizes a menu loaded with its meals and dishes.
func NewSuggestionContext(menu *Menu) SuggestionContext {
	ctx := SuggestionContext{
		MenuID:        menu.ID,
		Title:         menu.Title,
		Adults:        menu.Adults,
		Children:      menu.Children,
		TotalPeople:   menu.TotalPeople(),
		Restrictions:  append([]string{}, menu.Restrictions...),
		Preferences:   menu.Preferences,
		CheckIn:       menu.CheckIn,
		CheckOut:      menu.CheckOut,
		ExistingMeals: []PlannedMeal{},
	}
	for _, meal := range menu.Meals {
		planned := PlannedMeal{Date: meal.Date, Type: meal.Type, Dishes: []string{}}
		for _, d := range meal.Dishes {
			planned.Dishes = append(planned.Dishes, d.Name)
		}
		ctx.ExistingMeals = append(ctx.ExistingMeals, planned)
	}
	return ctx
}
