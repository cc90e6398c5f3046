package controllers

import (
	"errors"
	"strconv"

	"github.com/Ludvin7x/lemon-api/entity"
	"github.com/Ludvin7x/lemon-api/pkg/resp"
	"github.com/Ludvin7x/lemon-api/repository"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MenuController serves public browsing plus manager-only mutation of
// categories and menu items. Route-level middleware enforces the latter.
type MenuController struct{ Repo *repository.MenuRepository }

func NewMenuController(r *repository.MenuRepository) *MenuController {
	return &MenuController{Repo: r}
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		resp.BadRequest(c, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// ---------------- Categories ----------------

type categoryRequest struct {
	Slug  string `json:"slug" binding:"required"`
	Title string `json:"title" binding:"required"`
}

// GET /categories
func (h *MenuController) ListCategories(c *gin.Context) {
	cats, err := h.Repo.ListCategories()
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, cats)
}

// POST /categories
func (h *MenuController) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	cat := entity.Category{Slug: req.Slug, Title: req.Title}
	if err := h.Repo.CreateCategory(&cat); err != nil {
		resp.Conflict(c, "category already exists")
		return
	}
	resp.Created(c, cat)
}

// PUT /categories/:id
func (h *MenuController) UpdateCategory(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	cat, err := h.Repo.GetCategory(id)
	if err != nil {
		resp.NotFound(c, "category not found")
		return
	}
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	cat.Slug = req.Slug
	cat.Title = req.Title
	if err := h.Repo.SaveCategory(cat); err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, cat)
}

// DELETE /categories/:id
func (h *MenuController) DeleteCategory(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.Repo.DeleteCategory(id); err != nil {
		writeError(c, err)
		return
	}
	resp.NoContent(c)
}

// ---------------- Menu items ----------------

type menuItemRequest struct {
	Title      string          `json:"title" binding:"required"`
	Price      decimal.Decimal `json:"price" binding:"required"`
	Featured   bool            `json:"featured"`
	CategoryID uint            `json:"categoryId" binding:"required"`
}

// GET /menu-items?category=&featured=
func (h *MenuController) ListMenuItems(c *gin.Context) {
	var f repository.MenuItemFilter
	if v := c.Query("category"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			resp.BadRequest(c, "invalid category filter")
			return
		}
		cid := uint(id)
		f.CategoryID = &cid
	}
	if v := c.Query("featured"); v != "" {
		featured := v == "true" || v == "1"
		f.Featured = &featured
	}

	items, err := h.Repo.ListMenuItems(f)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, items)
}

// GET /menu-items/:id
func (h *MenuController) GetMenuItem(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	item, err := h.Repo.GetMenuItem(id)
	if err != nil {
		resp.NotFound(c, "menu item not found")
		return
	}
	resp.OK(c, item)
}

// POST /menu-items
func (h *MenuController) CreateMenuItem(c *gin.Context) {
	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if req.Price.IsNegative() {
		resp.BadRequest(c, "price must not be negative")
		return
	}
	if _, err := h.Repo.GetCategory(req.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "category not found")
			return
		}
		writeError(c, err)
		return
	}

	item := entity.MenuItem{
		Title:      req.Title,
		Price:      req.Price,
		Featured:   req.Featured,
		CategoryID: req.CategoryID,
	}
	if err := h.Repo.CreateMenuItem(&item); err != nil {
		writeError(c, err)
		return
	}
	resp.Created(c, item)
}

// PUT /menu-items/:id
// Price edits only reach future cart lines; existing lines keep their snapshot.
func (h *MenuController) UpdateMenuItem(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	item, err := h.Repo.GetMenuItem(id)
	if err != nil {
		resp.NotFound(c, "menu item not found")
		return
	}
	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if req.Price.IsNegative() {
		resp.BadRequest(c, "price must not be negative")
		return
	}

	item.Title = req.Title
	item.Price = req.Price
	item.Featured = req.Featured
	item.CategoryID = req.CategoryID
	if err := h.Repo.SaveMenuItem(item); err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, item)
}

// DELETE /menu-items/:id
func (h *MenuController) DeleteMenuItem(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.Repo.DeleteMenuItem(id); err != nil {
		writeError(c, err)
		return
	}
	resp.NoContent(c)
}
