package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oubata/HealThea/internal/commerce"
	pkgerrors "github.com/oubata/HealThea/pkg/errors"
)

// writeError maps domain errors onto HTTP statuses
func writeError(c *gin.Context, err error) {
	var notFound *pkgerrors.ErrNotFound
	var unauthorized *pkgerrors.ErrUnauthorized
	var conflict *pkgerrors.ErrConflict
	var validation *pkgerrors.ErrValidation
	var transition *pkgerrors.ErrInvalidStepTransition
	var empty *pkgerrors.ErrCartEmpty

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &unauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &validation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  err.Error(),
			"fields": validation.Fields,
		})
	case errors.As(err, &transition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &empty):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case commerce.IsUnauthorized(err):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case commerce.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": "commerce backend error", "details": err.Error()})
	}
}
