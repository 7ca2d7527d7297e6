package handlers

import (
	"net/http"

	"vacation-menu-api/models"
	"vacation-menu-api/services"

	"github.com/gin-gonic/gin"
)

type CreateMealRequest struct {
	Date    *models.Date    `json:"date" binding:"required"`
	Type    models.MealType `json:"type" binding:"required,mealtype"`
	DishIDs []string        `json:"dishIds" binding:"required,min=1"`
}

type UpdateMealRequest struct {
	Date    *models.Date     `json:"date"`
	Type    *models.MealType `json:"type" binding:"omitempty,mealtype"`
	DishIDs *[]string        `json:"dishIds"`
}

func (h *Handler) CreateMeal(c *gin.Context) {
	var req CreateMealRequest
	if !bindJSON(c, &req) {
		return
	}

	meal, err := h.svc.Meals.Create(c.Request.Context(), c.Param("id"), services.CreateMealInput{
		Date:    *req.Date,
		Type:    req.Type,
		DishIDs: req.DishIDs,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Meal created", "meal": meal})
}

func (h *Handler) ListMeals(c *gin.Context) {
	meals, err := h.svc.Meals.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meals": meals, "count": len(meals)})
}

func (h *Handler) GetMeal(c *gin.Context) {
	meal, err := h.svc.Meals.Get(c.Request.Context(), c.Param("id"), c.Param("mealId"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meal": meal})
}

// UpdateMeal changes date, type or dishes; a dish list replaces the old one
func (h *Handler) UpdateMeal(c *gin.Context) {
	var req UpdateMealRequest
	if !bindJSON(c, &req) {
		return
	}

	meal, err := h.svc.Meals.Update(c.Request.Context(), c.Param("id"), c.Param("mealId"), services.UpdateMealInput{
		Date:    req.Date,
		Type:    req.Type,
		DishIDs: req.DishIDs,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Meal updated", "meal": meal})
}

func (h *Handler) DeleteMeal(c *gin.Context) {
	if err := h.svc.Meals.Delete(c.Request.Context(), c.Param("id"), c.Param("mealId")); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Meal deleted"})
}
