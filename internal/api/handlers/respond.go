package handlers

import (
	"errors"
	"net/http"

	"froot-boot-api-server/internal/hal"
	"froot-boot-api-server/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// HALResponse is the response envelope: a map of relation links plus the
// embedded resource projections.
type HALResponse struct {
	Links    map[string]hal.Link    `json:"_links"`
	Embedded map[string]interface{} `json:"_embedded,omitempty"`
}

// Resource is a plain projection of entity fields, itself carrying
// nested links (at least _links.self).
type Resource map[string]interface{}

// writeError translates store and service errors into the HTTP error
// taxonomy: 400 validation, 404 not found, 409 duplicate key, 500 rest.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "The requested resource was not found."})
	case errors.Is(err, store.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": "A resource with this unique value already exists."})
	case store.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logrus.WithError(err).Error("unhandled error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// abortError is writeError plus halting the handler chain, for use in
// param-loading middleware.
func abortError(c *gin.Context, err error) {
	writeError(c, err)
	c.Abort()
}
