package handlers

import (
	"net/http"

	"vacation-menu-api/middleware"
	"vacation-menu-api/models"
	"vacation-menu-api/repository"
	"vacation-menu-api/services"

	"github.com/gin-gonic/gin"
)

// ── Dishes ───────────────────────────────────────────────────────────────────

type IngredientRequest struct {
	Name     string                    `json:"name" binding:"required"`
	Quantity float64                   `json:"quantity" binding:"required,gt=0"`
	Unit     string                    `json:"unit"`
	Category models.IngredientCategory `json:"category" binding:"omitempty,ingredientcategory"`
}

func (r IngredientRequest) input() services.IngredientInput {
	return services.IngredientInput{Name: r.Name, Quantity: r.Quantity, Unit: r.Unit, Category: r.Category}
}

func ingredientInputs(reqs []IngredientRequest) []services.IngredientInput {
	out := make([]services.IngredientInput, len(reqs))
	for i, r := range reqs {
		out[i] = r.input()
	}
	return out
}

type CreateDishRequest struct {
	Name        string              `json:"name" binding:"required"`
	Category    models.DishCategory `json:"category" binding:"required,dishcategory"`
	Ingredients []IngredientRequest `json:"ingredients" binding:"omitempty,dive"`
}

type UpdateDishRequest struct {
	Name        *string              `json:"name" binding:"omitempty,min=1"`
	Category    *models.DishCategory `json:"category" binding:"omitempty,dishcategory"`
	Ingredients *[]IngredientRequest `json:"ingredients" binding:"omitempty,dive"`
}

type ListDishesQuery struct {
	Search   string              `form:"search"`
	Category models.DishCategory `form:"category" binding:"omitempty,dishcategory"`
}

func (h *Handler) CreateDish(c *gin.Context) {
	var req CreateDishRequest
	if !bindJSON(c, &req) {
		return
	}

	dish, err := h.svc.Dishes.Create(c.Request.Context(), services.CreateDishInput{
		Name:        req.Name,
		Category:    req.Category,
		Ingredients: ingredientInputs(req.Ingredients),
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Dish created", "dish": dish})
}

// ListDishes filters by name substring and category
func (h *Handler) ListDishes(c *gin.Context) {
	var q ListDishesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		_ = c.Error(middleware.BindError(err))
		return
	}

	dishes, err := h.svc.Dishes.List(c.Request.Context(), repository.DishFilter{Search: q.Search, Category: q.Category})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dishes": dishes, "count": len(dishes)})
}

func (h *Handler) GetDish(c *gin.Context) {
	dish, err := h.svc.Dishes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dish": dish})
}

// UpdateDish applies a partial update; ingredients, when sent, replace the whole list
func (h *Handler) UpdateDish(c *gin.Context) {
	var req UpdateDishRequest
	if !bindJSON(c, &req) {
		return
	}

	in := services.UpdateDishInput{Name: req.Name, Category: req.Category}
	if req.Ingredients != nil {
		inputs := ingredientInputs(*req.Ingredients)
		in.Ingredients = &inputs
	}
	dish, err := h.svc.Dishes.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Dish updated", "dish": dish})
}

func (h *Handler) DuplicateDish(c *gin.Context) {
	dish, err := h.svc.Dishes.Duplicate(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Dish duplicated", "dish": dish})
}

func (h *Handler) DeleteDish(c *gin.Context) {
	if err := h.svc.Dishes.Delete(c.Request.Context(), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Dish deleted"})
}

// ── Ingredients ──────────────────────────────────────────────────────────────

type UpdateIngredientRequest struct {
	Name     *string                    `json:"name" binding:"omitempty,min=1"`
	Quantity *float64                   `json:"quantity" binding:"omitempty,gt=0"`
	Unit     *string                    `json:"unit"`
	Category *models.IngredientCategory `json:"category" binding:"omitempty,ingredientcategory"`
}

func (h *Handler) AddIngredient(c *gin.Context) {
	var req IngredientRequest
	if !bindJSON(c, &req) {
		return
	}

	ing, err := h.svc.Dishes.AddIngredient(c.Request.Context(), c.Param("id"), req.input())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Ingredient added", "ingredient": ing})
}

func (h *Handler) UpdateIngredient(c *gin.Context) {
	var req UpdateIngredientRequest
	if !bindJSON(c, &req) {
		return
	}

	ing, err := h.svc.Dishes.UpdateIngredient(c.Request.Context(), c.Param("id"), c.Param("ingredientId"), services.UpdateIngredientInput{
		Name:     req.Name,
		Quantity: req.Quantity,
		Unit:     req.Unit,
		Category: req.Category,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ingredient updated", "ingredient": ing})
}

func (h *Handler) DeleteIngredient(c *gin.Context) {
	if err := h.svc.Dishes.DeleteIngredient(c.Request.Context(), c.Param("id"), c.Param("ingredientId")); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ingredient deleted"})
}
