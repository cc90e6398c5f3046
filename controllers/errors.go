package controllers

import (
	"errors"
	"log"

	"github.com/Ludvin7x/lemon-api/pkg/resp"
	"github.com/Ludvin7x/lemon-api/services"
	"github.com/gin-gonic/gin"
)

// writeError maps the service error taxonomy onto HTTP statuses. Anything
// unrecognized is logged and reported generically.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrEmptyCart):
		resp.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrPermission):
		resp.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrNotFound):
		resp.NotFound(c, err.Error())
	case errors.Is(err, services.ErrConflict):
		resp.Conflict(c, err.Error())
	default:
		log.Printf("internal error: %v", err)
		resp.ServerError(c)
	}
}
