// Package handlers exposes the menu planner over HTTP. Handlers bind and
// validate JSON, call one service method and push any failure to the error
// middleware with c.Error.
package handlers

import (
	"net/http"

	"vacation-menu-api/middleware"
	"vacation-menu-api/models"
	"vacation-menu-api/services"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	svc *services.Services
}

func New(svc *services.Services) *Handler {
	return &Handler{svc: svc}
}

// RegisterValidators adds the enum tags used by the request structs to gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("mealtype", func(fl validator.FieldLevel) bool {
		return models.MealType(fl.Field().String()).Valid()
	}); err != nil {
		return err
	}
	if err := v.RegisterValidation("dishcategory", func(fl validator.FieldLevel) bool {
		return models.DishCategory(fl.Field().String()).Valid()
	}); err != nil {
		return err
	}
	return v.RegisterValidation("ingredientcategory", func(fl validator.FieldLevel) bool {
		return models.IngredientCategory(fl.Field().String()).Valid()
	})
}

// bindJSON decodes the body into req and records a 400 on failure.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		_ = c.Error(middleware.BindError(err))
		return false
	}
	return true
}

// Health reports liveness.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "Vacation Menu Planner API",
		"version": "1.0.0",
	})
}
