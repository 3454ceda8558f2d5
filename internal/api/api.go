package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/platefeed/backend/internal/types"
)

// respondError translates the typed domain errors to status codes in one
// place: 400 validation, 401 credentials, 403 authorship, 404 lookups,
// 409 conflicts. Anything else is an internal fault.
func respondError(c *gin.Context, err error) {
	switch {
	case types.IsValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, types.ErrAlreadyExists) || errors.Is(err, types.ErrSelfFollow):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, types.ErrRecipeNotFound) ||
		errors.Is(err, types.ErrUserNotFound) ||
		errors.Is(err, types.ErrRelationNotFound) ||
		errors.Is(err, types.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, types.ErrNotAuthor):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, types.ErrInvalidCredentials) || errors.Is(err, types.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		log.Printf("Error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
