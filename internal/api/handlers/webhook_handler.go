package handlers

import (
	"net/http"

	"froot-boot-api-server/internal/hal"
	"froot-boot-api-server/internal/models"
	"froot-boot-api-server/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

type WebHookHandler struct {
	WebHooks *service.Service[models.WebHook]
	BasePath string
}

type RegisterWebHookRequest struct {
	URL   string `json:"url" binding:"required,url"`
	Event string `json:"event" binding:"required"`
}

func (h *WebHookHandler) builder(c *gin.Context) hal.Builder {
	return hal.NewBuilder(c.Request, h.BasePath+"/webhooks")
}

// Register subscribes a URL to an event tag.
func (h *WebHookHandler) Register(c *gin.Context) {
	var req RegisterWebHookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hook, err := h.WebHooks.Insert(c.Request.Context(), bson.M{"url": req.URL, "event": req.Event})
	if err != nil {
		writeError(c, err)
		return
	}

	b := h.builder(c)
	id := hook.ID.Hex()

	c.Header("Location", b.PlainResource(id).Href)
	c.JSON(http.StatusCreated, HALResponse{
		Links: map[string]hal.Link{
			"self":       b.ResourceByID(id, hook.URL),
			"get":        b.BaseURL(),
			"unregister": b.Delete(id, hook.URL),
		},
		Embedded: map[string]interface{}{
			"webhook": Resource{
				"id":    id,
				"url":   hook.URL,
				"event": hook.Event,
				"_links": map[string]hal.Link{
					"self": b.PlainResource(id),
				},
			},
		},
	})
}

// FindAll returns all registered webhooks.
func (h *WebHookHandler) FindAll(c *gin.Context) {
	hooks, err := h.WebHooks.Get(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	b := h.builder(c)
	embedded := make([]Resource, 0, len(hooks))
	for _, hook := range hooks {
		id := hook.ID.Hex()
		embedded = append(embedded, Resource{
			"id":    id,
			"url":   hook.URL,
			"event": hook.Event,
			"_links": map[string]hal.Link{
				"self":       b.PlainResource(id),
				"unregister": b.Delete(id, hook.URL),
			},
		})
	}

	c.JSON(http.StatusOK, HALResponse{
		Links: map[string]hal.Link{
			"self":     b.BaseURL(),
			"register": b.Create(),
		},
		Embedded: map[string]interface{}{
			"webhooks": embedded,
		},
	})
}

// Unregister removes a webhook subscription by id. 204 on success.
func (h *WebHookHandler) Unregister(c *gin.Context) {
	if _, err := h.WebHooks.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
