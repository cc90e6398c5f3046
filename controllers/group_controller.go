package controllers

import (
	"github.com/Ludvin7x/lemon-api/entity"
	"github.com/Ludvin7x/lemon-api/middlewares"
	"github.com/Ludvin7x/lemon-api/pkg/resp"
	"github.com/Ludvin7x/lemon-api/services"
	"github.com/gin-gonic/gin"
)

// GroupController exposes membership of the Manager and Delivery crew
// groups under /groups/:group/users.
type GroupController struct{ Svc *services.GroupService }

func NewGroupController(s *services.GroupService) *GroupController { return &GroupController{Svc: s} }

// groupName maps the URL segment onto the seeded group name. Only the two
// managed groups are addressable.
func groupName(c *gin.Context) (string, bool) {
	switch c.Param("group") {
	case "manager":
		return entity.GroupManager, true
	case "delivery-crew":
		return entity.GroupDeliveryCrew, true
	}
	resp.NotFound(c, "unknown group")
	return "", false
}

// GET /groups/:group/users
func (h *GroupController) Members(c *gin.Context) {
	p, ok := middlewares.CurrentPrincipal(c)
	if !ok {
		resp.Unauthorized(c, "unauthorized")
		return
	}
	name, ok := groupName(c)
	if !ok {
		return
	}
	users, err := h.Svc.ListMembers(p, name)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]gin.H, 0, len(users))
	for _, u := range users {
		out = append(out, gin.H{"id": u.ID, "username": u.Username, "email": u.Email})
	}
	resp.OK(c, out)
}

type memberRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

// POST /groups/:group/users
func (h *GroupController) Add(c *gin.Context) {
	p, ok := middlewares.CurrentPrincipal(c)
	if !ok {
		resp.Unauthorized(c, "unauthorized")
		return
	}
	name, ok := groupName(c)
	if !ok {
		return
	}
	var req memberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Svc.AddMember(p, name, req.UserID); err != nil {
		writeError(c, err)
		return
	}
	resp.Created(c, gin.H{"detail": "user added to group"})
}

// DELETE /groups/:group/users/:id
func (h *GroupController) Remove(c *gin.Context) {
	p, ok := middlewares.CurrentPrincipal(c)
	if !ok {
		resp.Unauthorized(c, "unauthorized")
		return
	}
	name, ok := groupName(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.Svc.RemoveMember(p, name, id); err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, gin.H{"detail": "user removed from group"})
}
