package routes

import (
	"vacation-menu-api/handlers"
	"vacation-menu-api/middleware"

	"github.com/gin-gonic/gin"
)

// Options controls the optional guards around the API.
type Options struct {
	// JWTSecret enables bearer authentication on /api when non-empty.
	JWTSecret string
	// AILimiter throttles the endpoints that call the suggestion provider.
	AILimiter *middleware.RateLimiter
}

func SetupRoutes(r *gin.Engine, h *handlers.Handler, opts Options) {
	r.GET("/health", handlers.Health)

	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// State machine info (for docs/Postman)
		public.GET("/suggestions/state-machine", handlers.GetStateMachineInfo)
	}

	api := r.Group("/api")
	if opts.JWTSecret != "" {
		api.Use(middleware.JWTAuth(opts.JWTSecret))
	}

	// ── Menus & meals ──────────────────────────────────────────────
	menus := api.Group("/menus")
	{
		menus.GET("", h.ListMenus)
		menus.POST("", h.CreateMenu)
		menus.GET("/:id", h.GetMenu)
		menus.PATCH("/:id", h.UpdateMenu)
		menus.DELETE("/:id", h.DeleteMenu)
		menus.POST("/:id/duplicate", h.DuplicateMenu)

		menus.GET("/:id/meals", h.ListMeals)
		menus.POST("/:id/meals", h.CreateMeal)
		menus.GET("/:id/meals/:mealId", h.GetMeal)
		menus.PATCH("/:id/meals/:mealId", h.UpdateMeal)
		menus.DELETE("/:id/meals/:mealId", h.DeleteMeal)
	}

	// ── AI suggestions ─────────────────────────────────────────────
	ai := api.Group("/menus")
	if opts.AILimiter != nil {
		ai.Use(middleware.RateLimit(opts.AILimiter))
	}
	{
		ai.POST("/:id/suggestions", h.Suggest)
		ai.POST("/:id/suggestions/regenerate", h.Regenerate)
		ai.POST("/:id/suggestions/variation", h.SuggestVariation)
		ai.POST("/:id/suggestions/accept", h.AcceptSuggestions)
		ai.POST("/:id/meals/:mealId/variation/accept", h.AcceptVariation)
	}

	// ── Dishes & ingredients ───────────────────────────────────────
	dishes := api.Group("/dishes")
	{
		dishes.GET("", h.ListDishes)
		dishes.POST("", h.CreateDish)
		dishes.GET("/:id", h.GetDish)
		dishes.PATCH("/:id", h.UpdateDish)
		dishes.DELETE("/:id", h.DeleteDish)
		dishes.POST("/:id/duplicate", h.DuplicateDish)

		dishes.POST("/:id/ingredients", h.AddIngredient)
		dishes.PATCH("/:id/ingredients/:ingredientId", h.UpdateIngredient)
		dishes.DELETE("/:id/ingredients/:ingredientId", h.DeleteIngredient)
	}
}

// NewRouter builds the engine with the shared middleware stack and all routes.
func NewRouter(h *handlers.Handler, opts Options, mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(mw...)
	SetupRoutes(r, h, opts)
	return r
}
