package handlers

import (
	"errors"
	"log"
	"net/http"

	"stackit/internal/middleware"
	"stackit/internal/services"
	"stackit/internal/utils"
	"stackit/internal/validation"

	"github.com/gin-gonic/gin"
)

const internalErrorMessage = "Internal server error"

// classify maps a service error to its HTTP status and client message.
// Anything unrecognised becomes an opaque 500.
func classify(err error) (int, string) {
	var verr *validation.Error
	var perr *services.PermissionError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Message
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, services.ErrUnauthenticated):
		return http.StatusUnauthorized, err.Error()
	case errors.As(err, &perr):
		return http.StatusForbidden, perr.Message
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound, err.Error()
	default:
		return http.StatusInternalServerError, internalErrorMessage
	}
}

func logIfInternal(c *gin.Context, code int, err error) {
	if code == http.StatusInternalServerError {
		log.Printf("[HTTP] %s %s (request %s): %v",
			c.Request.Method, c.FullPath(), c.GetString(middleware.RequestIDKey), err)
	}
}

// respondError writes the JSON error body for API routes.
func respondError(c *gin.Context, err error) {
	code, msg := classify(err)
	logIfInternal(c, code, err)
	c.AbortWithStatusJSON(code, gin.H{"error": msg})
}

// renderError is the page counterpart of respondError.
func renderError(c *gin.Context, err error) {
	code, msg := classify(err)
	logIfInternal(c, code, err)
	RenderError(c, code, msg)
	c.Abort()
}

// NotFound answers unknown routes.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": services.ErrNotFound.Error()})
}

// pathID parses the :id parameter. Non-numeric ids are reported as missing.
func pathID(c *gin.Context) (uint, bool) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		respondError(c, services.ErrNotFound)
	}
	return id, ok
}
