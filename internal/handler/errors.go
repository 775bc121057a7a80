// Package handler maps HTTP requests onto the service layer and shapes
// JSON responses.
package handler

import (
	"errors"
	"net/http"

	"leadsdesk/internal/auth"
	"leadsdesk/internal/errs"
	"leadsdesk/internal/middleware"
	"leadsdesk/internal/model"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto status codes. Internal failures
// never leak their message to the client.
func respondError(c *gin.Context, err error) {
	var forbidden *auth.ForbiddenError
	switch {
	case errors.As(err, &forbidden):
		resp := model.NewErrorResponse("You don't have permission to perform this action")
		for _, perm := range forbidden.Required {
			resp.RequiredPermissions = append(resp.RequiredPermissions, string(perm))
		}
		c.JSON(http.StatusForbidden, resp)
	case errors.Is(err, auth.ErrForbidden):
		c.JSON(http.StatusForbidden, model.NewErrorResponse("Not authorized to access this resource"))
	case errors.Is(err, errs.ErrNotFound):
		c.JSON(http.StatusNotFound, model.NewErrorResponse("Resource not found"))
	case errors.Is(err, errs.ErrAlreadyExists):
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error()))
	case errors.Is(err, errs.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error()))
	case errors.Is(err, auth.ErrInvalidResetToken):
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Invalid or expired reset token"))
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, model.NewErrorResponse("Invalid email or password"))
	case errors.Is(err, auth.ErrUnauthenticated), errors.Is(err, auth.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, model.NewErrorResponse("Not authorized, token failed"))
	case errors.Is(err, errs.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, model.NewErrorResponse("Too many attempts, please try again later"))
	case errors.Is(err, errs.ErrDeliveryFailed):
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse("Email could not be sent"))
	default:
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse("Server error"))
	}
}

// respondBindError reports request body validation failures.
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error()))
}

// principalOrAbort fetches the resolved principal; it replies 401 when
// the middleware chain never ran.
func principalOrAbort(c *gin.Context) (auth.Principal, bool) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, model.NewErrorResponse("Not authorized, token failed"))
	}
	return p, ok
}
