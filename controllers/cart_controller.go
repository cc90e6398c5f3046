package controllers

import (
	"github.com/Ludvin7x/lemon-api/middlewares"
	"github.com/Ludvin7x/lemon-api/pkg/resp"
	"github.com/Ludvin7x/lemon-api/services"
	"github.com/gin-gonic/gin"
)

// Cart routes are always scoped to the authenticated owner; no role grants
// access to someone else's cart.
type CartController struct{ Svc *services.CartService }

func NewCartController(s *services.CartService) *CartController { return &CartController{Svc: s} }

type addToCartRequest struct {
	MenuItemID uint `json:"menuItemId" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required"`
}

type updateCartRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// GET /cart/menu-items
func (h *CartController) List(c *gin.Context) {
	p, ok := middlewares.CurrentPrincipal(c)
	if !ok {
		resp.Unauthorized(c, "unauthorized")
		return
	}
	items, total, err := h.Svc.List(p.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items, "total": total})
}

// POST /cart/menu-items
func (h *CartController) Add(c *gin.Context) {
	p, ok := middlewares.CurrentPrincipal(c)
	if !ok {
		resp.Unauthorized(c, "unauthorized")
		return
	}
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	line, err := h.Svc.Add(p.UserID, req.MenuItemID, req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.Created(c, line)
}

// PUT /cart/menu-items/:id
func (h *CartController) Update(c *gin.Context) {
	p, ok := middlewares.CurrentPrincipal(c)
	if !ok {
		resp.Unauthorized(c, "unauthorized")
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req updateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	line, err := h.Svc.Update(p.UserID, id, req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, line)
}

// DELETE /cart/menu-items/:id
func (h *CartController) Remove(c *gin.Context) {
	p, ok := middlewares.CurrentPrincipal(c)
	if !ok {
		resp.Unauthorized(c, "unauthorized")
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.Svc.Remove(p.UserID, id); err != nil {
		writeError(c, err)
		return
	}
	resp.NoContent(c)
}

// DELETE /cart/menu-items
func (h *CartController) Clear(c *gin.Context) {
	p, ok := middlewares.CurrentPrincipal(c)
	if !ok {
		resp.Unauthorized(c, "unauthorized")
		return
	}
	if err := h.Svc.Clear(p.UserID); err != nil {
		writeError(c, err)
		return
	}
	resp.NoContent(c)
}
