package handlers

import (
	"errors"
	"net/http"

	"froot-boot-api-server/internal/hal"
	"froot-boot-api-server/internal/models"
	"froot-boot-api-server/internal/service"
	"froot-boot-api-server/internal/store"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

const ctxLocation = "location"

type LocationHandler struct {
	Locations *service.Service[models.Location]
	Members   *service.Service[models.Member]
	BasePath  string
}

type CreateLocationRequest struct {
	City string `json:"city" binding:"required"`
	Slug string `json:"slug"`
}

func (h *LocationHandler) builder(c *gin.Context) hal.Builder {
	return hal.NewBuilder(c.Request, h.BasePath+"/locations")
}

// urlName is the addressable key of a location in links: the slug when
// present, the id otherwise.
func urlName(location models.Location) string {
	if location.Slug != "" {
		return location.Slug
	}
	return location.ID.Hex()
}

// LoadLocation resolves the :key route param as an id first and a slug
// second, and puts the location into the request context. 404 on miss.
func (h *LocationHandler) LoadLocation() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Param("key")

		location, err := h.Locations.GetByID(c.Request.Context(), key)
		if errors.Is(err, store.ErrNotFound) {
			location, err = h.Locations.GetResourceByFilter(c.Request.Context(), bson.M{"slug": key})
		}
		if err != nil {
			abortError(c, err)
			return
		}

		c.Set(ctxLocation, location)
		c.Next()
	}
}

func (h *LocationHandler) embedLocation(b hal.Builder, location models.Location) Resource {
	return Resource{
		"id":   location.ID.Hex(),
		"city": location.City,
		"slug": location.Slug,
		"_links": map[string]hal.Link{
			"self": b.PlainResource(urlName(location)),
		},
	}
}

// Find returns a single location with its hypermedia links.
func (h *LocationHandler) Find(c *gin.Context) {
	location := c.MustGet(ctxLocation).(models.Location)
	b := h.builder(c)
	name := urlName(location)

	c.JSON(http.StatusOK, HALResponse{
		Links: map[string]hal.Link{
			"self":    b.ResourceByName(name),
			"get":     b.BaseURL(),
			"update":  b.UpdateByName(name),
			"delete":  b.DeleteByName(name),
			"members": b.NestedResourceByName(name, "members"),
		},
		Embedded: map[string]interface{}{
			"location": h.embedLocation(b, location),
		},
	})
}

// FindAll returns all locations.
func (h *LocationHandler) FindAll(c *gin.Context) {
	locations, err := h.Locations.Get(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	b := h.builder(c)
	embedded := make([]Resource, 0, len(locations))
	for _, location := range locations {
		name := urlName(location)
		embedded = append(embedded, Resource{
			"id":   location.ID.Hex(),
			"city": location.City,
			"slug": location.Slug,
			"_links": map[string]hal.Link{
				"self":    b.PlainResource(name),
				"getById": b.ResourceByName(name),
				"update":  b.UpdateByName(name),
				"delete":  b.DeleteByName(name),
				"members": b.NestedResourceByName(name, "members"),
			},
		})
	}

	c.JSON(http.StatusOK, HALResponse{
		Links: map[string]hal.Link{
			"self":   b.BaseURL(),
			"create": b.Create(),
		},
		Embedded: map[string]interface{}{
			"locations": embedded,
		},
	})
}

// FindMembersByLocation returns the members referencing this location.
// The reference is an advisory string, filtered as given in the url.
func (h *LocationHandler) FindMembersByLocation(c *gin.Context) {
	key := c.Param("key")

	members, err := h.Members.GetAllResourcesByFilter(c.Request.Context(), bson.M{"location": key})
	if err != nil {
		writeError(c, err)
		return
	}

	b := h.builder(c)
	membersBase := hal.NewBuilder(c.Request, h.BasePath+"/members")

	embedded := make([]Resource, 0, len(members))
	for _, member := range members {
		embedded = append(embedded, Resource{
			"id":   member.ID.Hex(),
			"name": member.Name,
			"_links": map[string]hal.Link{
				"self": membersBase.PlainResource(member.ID.Hex()),
			},
		})
	}

	c.JSON(http.StatusOK, HALResponse{
		Links: map[string]hal.Link{
			"self":   b.NestedResourceByName(key, "members"),
			"create": b.Create(),
		},
		Embedded: map[string]interface{}{
			"members": embedded,
		},
	})
}

// Create creates a location. The slug is derived from the city when not
// supplied. Duplicate cities map to a 409.
func (h *LocationHandler) Create(c *gin.Context) {
	var req CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slug := req.Slug
	if slug == "" {
		slug = hal.Slug(req.City)
	}

	location, err := h.Locations.Insert(c.Request.Context(), bson.M{"city": req.City, "slug": slug})
	if err != nil {
		writeError(c, err)
		return
	}

	b := h.builder(c)
	name := urlName(location)

	c.Header("Location", b.PlainResource(name).Href)
	c.JSON(http.StatusCreated, HALResponse{
		Links: map[string]hal.Link{
			"self":   b.ResourceByName(name),
			"get":    b.BaseURL(),
			"update": b.UpdateByName(name),
			"delete": b.DeleteByName(name),
		},
		Embedded: map[string]interface{}{
			"location": h.embedLocation(b, location),
		},
	})
}

// Update replaces the loaded location. The raw body is passed through so
// disallowed properties are rejected by the store's allow-list.
func (h *LocationHandler) Update(c *gin.Context) {
	location := c.MustGet(ctxLocation).(models.Location)

	var data bson.M
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if city, ok := data["city"].(string); ok {
		if _, hasSlug := data["slug"]; !hasSlug {
			data["slug"] = hal.Slug(city)
		}
	}

	updated, err := h.Locations.Replace(c.Request.Context(), location.ID.Hex(), data)
	if err != nil {
		writeError(c, err)
		return
	}

	b := h.builder(c)
	name := urlName(updated)

	c.JSON(http.StatusOK, HALResponse{
		Links: map[string]hal.Link{
			"self":   b.ResourceByName(name),
			"get":    b.BaseURL(),
			"delete": b.DeleteByName(name),
		},
		Embedded: map[string]interface{}{
			"location": h.embedLocation(b, updated),
		},
	})
}

// Delete removes the loaded location. 204, collection links only.
func (h *LocationHandler) Delete(c *gin.Context) {
	location := c.MustGet(ctxLocation).(models.Location)

	if _, err := h.Locations.Delete(c.Request.Context(), location.ID.Hex()); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
