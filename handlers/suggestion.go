package handlers

import (
	"net/http"

	"vacation-menu-api/models"
	"vacation-menu-api/services"
	"vacation-menu-api/statemachine"

	"github.com/gin-gonic/gin"
)

// ── AI suggestions ───────────────────────────────────────────────────────────

type SuggestRequest struct {
	Date *models.Date    `json:"date" binding:"required"`
	Type models.MealType `json:"type" binding:"required,mealtype"`
}

type RegenerateRequest struct {
	Date          *models.Date    `json:"date" binding:"required"`
	Type          models.MealType `json:"type" binding:"required,mealtype"`
	ExcludeDishes []string        `json:"excludeDishes"`
}

type VariationRequest struct {
	Date     *models.Date    `json:"date" binding:"required"`
	Type     models.MealType `json:"type" binding:"required,mealtype"`
	DishID   string          `json:"dishId"`
	DishName string          `json:"dishName"`
}

type AcceptSuggestionsRequest struct {
	Date   *models.Date           `json:"date" binding:"required"`
	Type   models.MealType        `json:"type" binding:"required,mealtype"`
	Dishes []models.SuggestedDish `json:"dishes" binding:"required,min=1,dive"`
}

type AcceptVariationRequest struct {
	ReplaceDishID string               `json:"replaceDishId" binding:"required"`
	Dish          models.SuggestedDish `json:"dish"`
}

// Suggest asks the provider for dishes for one meal of the menu
func (h *Handler) Suggest(c *gin.Context) {
	var req SuggestRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.svc.Suggestions.Suggest(c.Request.Context(), c.Param("id"), services.SuggestInput{
		Date: *req.Date,
		Type: req.Type,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Regenerate asks again, steering away from dishes already proposed
func (h *Handler) Regenerate(c *gin.Context) {
	var req RegenerateRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.svc.Suggestions.Regenerate(c.Request.Context(), c.Param("id"), services.SuggestInput{
		Date:          *req.Date,
		Type:          req.Type,
		ExcludeDishes: req.ExcludeDishes,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) SuggestVariation(c *gin.Context) {
	var req VariationRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.svc.Suggestions.SuggestVariation(c.Request.Context(), c.Param("id"), services.VariationInput{
		Date:     *req.Date,
		Type:     req.Type,
		DishID:   req.DishID,
		DishName: req.DishName,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// AcceptSuggestions stores the chosen dishes and plans a meal with them
func (h *Handler) AcceptSuggestions(c *gin.Context) {
	var req AcceptSuggestionsRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.svc.Suggestions.AcceptSuggestions(c.Request.Context(), c.Param("id"), services.AcceptSuggestionsInput{
		Date:   *req.Date,
		Type:   req.Type,
		Dishes: req.Dishes,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Suggestions accepted", "meal": res.Meal, "dishes": res.Dishes})
}

// AcceptVariation swaps a dish of the meal for the chosen variation
func (h *Handler) AcceptVariation(c *gin.Context) {
	var req AcceptVariationRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.svc.Suggestions.AcceptVariation(c.Request.Context(), c.Param("id"), c.Param("mealId"), services.AcceptVariationInput{
		ReplaceDishID: req.ReplaceDishID,
		Dish:          req.Dish,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":        "Variation accepted",
		"meal":           res.Meal,
		"dish":           res.Dish,
		"replacedDishId": res.ReplacedDishID,
	})
}

// GetStateMachineInfo returns the suggestion request lifecycle (for docs)
func GetStateMachineInfo(c *gin.Context) {
	var terminal []models.SuggestionState
	for _, s := range []models.SuggestionState{
		models.SuggestionIdle, models.SuggestionRequesting, models.SuggestionParsed, models.SuggestionUnavailable,
	} {
		if statemachine.IsTerminal(s) {
			terminal = append(terminal, s)
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   statemachine.GetAllTransitions(),
		"terminal_states": terminal,
		"description":     "AI Suggestion Request Lifecycle State Machine",
	})
}
