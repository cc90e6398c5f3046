package controllers

import (
	"github.com/Ludvin7x/lemon-api/middlewares"
	"github.com/Ludvin7x/lemon-api/pkg/resp"
	"github.com/Ludvin7x/lemon-api/services"
	"github.com/gin-gonic/gin"
)

type OrderController struct{ Svc *services.OrderService }

func NewOrderController(s *services.OrderService) *OrderController { return &OrderController{Svc: s} }

// POST /orders — converts the caller's cart into an order.
func (h *OrderController) Create(c *gin.Context) {
	p, ok := middlewares.CurrentPrincipal(c)
	if !ok {
		resp.Unauthorized(c, "unauthorized")
		return
	}
	order, err := h.Svc.CreateFromCart(p.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.Created(c, order)
}

// GET /orders?status=&ordering=
func (h *OrderController) List(c *gin.Context) {
	p, ok := middlewares.CurrentPrincipal(c)
	if !ok {
		resp.Unauthorized(c, "unauthorized")
		return
	}
	f := services.ListFilter{
		Status:  c.Query("status"),
		OrderBy: c.Query("ordering"),
	}
	orders, err := h.Svc.List(p, f)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, orders)
}

// GET /orders/:id
func (h *OrderController) Detail(c *gin.Context) {
	p, ok := middlewares.CurrentPrincipal(c)
	if !ok {
		resp.Unauthorized(c, "unauthorized")
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}
	order, err := h.Svc.Get(p, id)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, order)
}

// PATCH /orders/:id — body keys are inspected by the service so field-level
// policy (delivery crew: status only) rejects before any change.
func (h *OrderController) Update(c *gin.Context) {
	p, ok := middlewares.CurrentPrincipal(c)
	if !ok {
		resp.Unauthorized(c, "unauthorized")
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}
	var patch services.UpdatePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	order, err := h.Svc.Update(p, id, patch)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, order)
}

// DELETE /orders/:id
func (h *OrderController) Delete(c *gin.Context) {
	p, ok := middlewares.CurrentPrincipal(c)
	if !ok {
		resp.Unauthorized(c, "unauthorized")
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(p, id); err != nil {
		writeError(c, err)
		return
	}
	resp.NoContent(c)
}

type assignCrewRequest struct {
	DeliveryCrew uint `json:"delivery_crew" binding:"required"`
}

// PUT /orders/:id/delivery-crew
func (h *OrderController) AssignDeliveryCrew(c *gin.Context) {
	p, ok := middlewares.CurrentPrincipal(c)
	if !ok {
		resp.Unauthorized(c, "unauthorized")
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req assignCrewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	order, err := h.Svc.AssignDeliveryCrew(p, id, req.DeliveryCrew)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, order)
}
