package handlers

import (
	"net/http"

	"froot-boot-api-server/internal/hal"

	"github.com/gin-gonic/gin"
)

// RootHandler serves the API entry point: links to every top-level
// resource collection.
type RootHandler struct {
	BasePath string
}

func (h *RootHandler) Get(c *gin.Context) {
	b := hal.NewBuilder(c.Request, h.BasePath)

	c.JSON(http.StatusOK, HALResponse{
		Links: map[string]hal.Link{
			"self":      {Href: b.Base(), Method: http.MethodGet, Title: "API entry point"},
			"locations": {Href: b.Base() + "/locations", Method: http.MethodGet, Title: "Get ALL locations"},
			"members":   {Href: b.Base() + "/members", Method: http.MethodGet, Title: "Get ALL members"},
			"webhooks":  {Href: b.Base() + "/webhooks", Method: http.MethodGet, Title: "Get ALL webhooks"},
		},
	})
}
