package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mertcaneren0/arkyatirim/internal/models"
)

// respondError maps service errors onto the REST error taxonomy: field-level
// 400 for validation failures, 404 for missing records, generic 500 for
// storage failures (full detail is logged via the gin error list, the client
// sees nothing specific).
func respondError(c *gin.Context, err error, notFoundMessage string) {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "fields": verr.Fields})
		return
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMessage})
		return
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
