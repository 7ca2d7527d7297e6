package handlers

import (
	"net/http"

	"vacation-menu-api/apperrors"
	"vacation-menu-api/middleware"
	"vacation-menu-api/models"
	"vacation-menu-api/repository"
	"vacation-menu-api/services"

	"github.com/gin-gonic/gin"
)

type CreateMenuRequest struct {
	Title        string       `json:"title" binding:"required,min=3"`
	CheckIn      *models.Date `json:"checkIn" binding:"required"`
	CheckOut     *models.Date `json:"checkOut" binding:"required"`
	Adults       int          `json:"adults" binding:"required,min=1"`
	Children     *int         `json:"children" binding:"omitempty,min=0"`
	Restrictions []string     `json:"restrictions"`
	Preferences  *string      `json:"preferences"`
}

// UpdateMenuRequest leaves party-size and date rules to the service so they
// surface as domain errors.
type UpdateMenuRequest struct {
	Title        *string                 `json:"title" binding:"omitempty,min=3"`
	CheckIn      *models.Date            `json:"checkIn"`
	CheckOut     *models.Date            `json:"checkOut"`
	Adults       *int                    `json:"adults"`
	Children     *int                    `json:"children"`
	Restrictions *[]string               `json:"restrictions"`
	Preferences  models.Nullable[string] `json:"preferences"`
}

type ListMenusQuery struct {
	Search string `form:"search"`
	Date   string `form:"date"`
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1"`
}

// CreateMenu creates a menu for a stay
func (h *Handler) CreateMenu(c *gin.Context) {
	var req CreateMenuRequest
	if !bindJSON(c, &req) {
		return
	}

	menu, err := h.svc.Menus.Create(c.Request.Context(), services.CreateMenuInput{
		Title:        req.Title,
		CheckIn:      *req.CheckIn,
		CheckOut:     *req.CheckOut,
		Adults:       req.Adults,
		Children:     req.Children,
		Restrictions: req.Restrictions,
		Preferences:  req.Preferences,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Menu created", "menu": menu})
}

// ListMenus returns one page of menus, newest first
func (h *Handler) ListMenus(c *gin.Context) {
	var q ListMenusQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		_ = c.Error(middleware.BindError(err))
		return
	}

	filter := repository.MenuFilter{Search: q.Search, Page: q.Page, Limit: q.Limit}
	if q.Date != "" {
		d, err := models.ParseDate(q.Date)
		if err != nil {
			_ = c.Error(apperrors.InvalidDate("date must be formatted as YYYY-MM-DD"))
			return
		}
		filter.Date = &d
	}

	page, err := h.svc.Menus.List(c.Request.Context(), filter)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetMenu returns a menu with its meals and their dishes
func (h *Handler) GetMenu(c *gin.Context) {
	menu, err := h.svc.Menus.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"menu": menu})
}

// UpdateMenu applies a partial update
func (h *Handler) UpdateMenu(c *gin.Context) {
	var req UpdateMenuRequest
	if !bindJSON(c, &req) {
		return
	}

	menu, err := h.svc.Menus.Update(c.Request.Context(), c.Param("id"), services.UpdateMenuInput{
		Title:        req.Title,
		CheckIn:      req.CheckIn,
		CheckOut:     req.CheckOut,
		Adults:       req.Adults,
		Children:     req.Children,
		Restrictions: req.Restrictions,
		Preferences:  req.Preferences,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu updated", "menu": menu})
}

func (h *Handler) DuplicateMenu(c *gin.Context) {
	menu, err := h.svc.Menus.Duplicate(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Menu duplicated", "menu": menu})
}

func (h *Handler) DeleteMenu(c *gin.Context) {
	if err := h.svc.Menus.Delete(c.Request.Context(), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu deleted"})
}
