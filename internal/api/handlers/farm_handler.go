package handlers

import (
	"net/http"

	"froot-boot-api-server/internal/hal"
	"froot-boot-api-server/internal/models"
	"froot-boot-api-server/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

const ctxFarm = "farm"

// FarmHandler serves farms nested under a member:
// /members/:id/farms/:farmId.
type FarmHandler struct {
	Farms    *service.Service[models.Farm]
	BasePath string
}

type CreateFarmRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *FarmHandler) builder(c *gin.Context) hal.Builder {
	return hal.NewBuilder(c.Request, h.BasePath+"/members")
}

// LoadFarm resolves the :farmId route param and puts the farm into the
// request context. Runs after LoadMember in the chain. 404 on miss.
func (h *FarmHandler) LoadFarm() gin.HandlerFunc {
	return func(c *gin.Context) {
		farm, err := h.Farms.GetByID(c.Request.Context(), c.Param("farmId"))
		if err != nil {
			abortError(c, err)
			return
		}
		c.Set(ctxFarm, farm)
		c.Next()
	}
}

func (h *FarmHandler) embedFarm(b hal.Builder, memberID string, farm models.Farm) Resource {
	return Resource{
		"id":     farm.ID.Hex(),
		"name":   farm.Name,
		"member": farm.Member,
		"_links": map[string]hal.Link{
			"self": b.NestedResourceByID(memberID, "farms", farm.ID.Hex()),
		},
	}
}

// Find returns a single farm with its hypermedia links.
func (h *FarmHandler) Find(c *gin.Context) {
	member := c.MustGet(ctxMember).(models.Member)
	farm := c.MustGet(ctxFarm).(models.Farm)

	b := h.builder(c)
	memberID := member.ID.Hex()
	farmID := farm.ID.Hex()

	c.JSON(http.StatusOK, HALResponse{
		Links: map[string]hal.Link{
			"self":     b.NestedResourceByID(memberID, "farms", farmID),
			"get":      b.NestedResource(memberID, "farms"),
			"create":   b.CreateNested(memberID, "farms"),
			"update":   b.UpdateNested(farm.Name, memberID, "farms", farmID),
			"delete":   b.DeleteNested(farm.Name, memberID, "farms", farmID),
			"products": b.DoubleNestedResource(memberID, "farms", farmID, "products"),
		},
		Embedded: map[string]interface{}{
			"farm": h.embedFarm(b, memberID, farm),
		},
	})
}

// Create creates a farm under the loaded member. The member reference is
// taken from the url chain, not the body.
func (h *FarmHandler) Create(c *gin.Context) {
	member := c.MustGet(ctxMember).(models.Member)

	var req CreateFarmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	memberID := member.ID.Hex()
	farm, err := h.Farms.Insert(c.Request.Context(), bson.M{"name": req.Name, "member": memberID})
	if err != nil {
		writeError(c, err)
		return
	}

	b := h.builder(c)
	farmID := farm.ID.Hex()

	c.Header("Location", b.NestedResourceByID(memberID, "farms", farmID).Href)
	c.JSON(http.StatusCreated, HALResponse{
		Links: map[string]hal.Link{
			"self":   b.NestedResourceByID(memberID, "farms", farmID),
			"get":    b.NestedResource(memberID, "farms"),
			"update": b.UpdateNested(farm.Name, memberID, "farms", farmID),
			"delete": b.DeleteNested(farm.Name, memberID, "farms", farmID),
		},
		Embedded: map[string]interface{}{
			"farm": h.embedFarm(b, memberID, farm),
		},
	})
}

// Update replaces the loaded farm; Patch merges into it.
func (h *FarmHandler) Update(c *gin.Context) {
	h.write(c, false)
}

func (h *FarmHandler) Patch(c *gin.Context) {
	h.write(c, true)
}

func (h *FarmHandler) write(c *gin.Context, partial bool) {
	member := c.MustGet(ctxMember).(models.Member)
	farm := c.MustGet(ctxFarm).(models.Farm)

	var data bson.M
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var (
		updated models.Farm
		err     error
	)
	if partial {
		updated, err = h.Farms.Update(c.Request.Context(), farm.ID.Hex(), data)
	} else {
		updated, err = h.Farms.Replace(c.Request.Context(), farm.ID.Hex(), data)
	}
	if err != nil {
		writeError(c, err)
		return
	}

	b := h.builder(c)
	memberID := member.ID.Hex()
	farmID := updated.ID.Hex()

	c.JSON(http.StatusOK, HALResponse{
		Links: map[string]hal.Link{
			"self":   b.NestedResourceByID(memberID, "farms", farmID),
			"get":    b.NestedResource(memberID, "farms"),
			"delete": b.DeleteNested(updated.Name, memberID, "farms", farmID),
		},
		Embedded: map[string]interface{}{
			"farm": h.embedFarm(b, memberID, updated),
		},
	})
}

// Delete removes the loaded farm. 204, collection links only.
func (h *FarmHandler) Delete(c *gin.Context) {
	farm := c.MustGet(ctxFarm).(models.Farm)

	if _, err := h.Farms.Delete(c.Request.Context(), farm.ID.Hex()); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
