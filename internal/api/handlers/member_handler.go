package handlers

import (
	"net/http"
	"strconv"

	"froot-boot-api-server/internal/auth"
	"froot-boot-api-server/internal/hal"
	"froot-boot-api-server/internal/models"
	"froot-boot-api-server/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
)

const ctxMember = "member"

// Pagination defaults for the member listing.
const (
	defaultPage    = 1
	defaultPerPage = 5
)

type MemberHandler struct {
	Members  *service.Service[models.Member]
	Farms    *service.Service[models.Farm]
	Tokens   *auth.TokenIssuer
	BasePath string
}

type CreateMemberRequest struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location"`
	Phone    string `json:"phone" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *MemberHandler) builder(c *gin.Context) hal.Builder {
	return hal.NewBuilder(c.Request, h.BasePath+"/members")
}

// LoadMember resolves the :id route param and puts the member into the
// request context. 404 on miss.
func (h *MemberHandler) LoadMember() gin.HandlerFunc {
	return func(c *gin.Context) {
		member, err := h.Members.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			abortError(c, err)
			return
		}
		c.Set(ctxMember, member)
		c.Next()
	}
}

// Login verifies email and password and issues a bearer token. Every
// credential failure answers the same 401 so callers cannot probe which
// emails exist.
func (h *MemberHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member, err := h.Members.GetResourceByFilter(c.Request.Context(), bson.M{"email": req.Email})
	if err != nil || !auth.CheckPasswordHash(req.Password, member.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := h.Tokens.Generate(member.ID.Hex(), member.Name, member.Location, member.Phone, member.Email)
	if err != nil {
		logrus.WithError(err).Error("failed to sign access token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"user_id":      member.ID.Hex(),
		"name":         member.Name,
		"message":      "You are logged in",
	})
}

func (h *MemberHandler) embedMember(b hal.Builder, member models.Member) Resource {
	return Resource{
		"id":   member.ID.Hex(),
		"name": member.Name,
		"_links": map[string]hal.Link{
			"self": b.PlainResource(member.ID.Hex()),
		},
	}
}

// Find returns a single member with its hypermedia links.
func (h *MemberHandler) Find(c *gin.Context) {
	member := c.MustGet(ctxMember).(models.Member)
	b := h.builder(c)
	id := member.ID.Hex()

	c.JSON(http.StatusOK, HALResponse{
		Links: map[string]hal.Link{
			"self":   b.ResourceByID(id, member.Name),
			"get":    b.BaseURL(),
			"update": b.Update(id, member.Name),
			"delete": b.Delete(id, member.Name),
			"farms":  b.NestedResource(id, "farms"),
		},
		Embedded: map[string]interface{}{
			"member": h.embedMember(b, member),
		},
	})
}

// FindAll returns a page of members. Query params: page (default 1) and
// perPage (default 5). prev/next links appear only when in range.
func (h *MemberHandler) FindAll(c *gin.Context) {
	page := queryInt(c, "page", defaultPage)
	perPage := queryInt(c, "perPage", defaultPerPage)

	result, err := h.Members.Paginate(c.Request.Context(), nil, page, perPage)
	if err != nil {
		writeError(c, err)
		return
	}

	b := h.builder(c)
	embedded := make([]Resource, 0, len(result.Items))
	for _, member := range result.Items {
		id := member.ID.Hex()
		embedded = append(embedded, Resource{
			"id":   id,
			"name": member.Name,
			"_links": map[string]hal.Link{
				"self":    b.PlainResource(id),
				"getById": b.ResourceByID(id, member.Name),
				"update":  b.Update(id, member.Name),
				"delete":  b.Delete(id, member.Name),
				"farms":   b.NestedResource(id, "farms"),
			},
		})
	}

	links := map[string]hal.Link{
		"self":   b.BaseURL(),
		"create": b.Create(),
	}
	if result.Page > 1 && result.Page <= result.TotalPages {
		links["prev"] = hal.Link{Href: b.PageURL(result.Page-1, result.PerPage), Method: http.MethodGet, Title: "Previous page"}
	}
	if result.Page < result.TotalPages {
		links["next"] = hal.Link{Href: b.PageURL(result.Page+1, result.PerPage), Method: http.MethodGet, Title: "Next page"}
	}

	c.JSON(http.StatusOK, HALResponse{
		Links: links,
		Embedded: map[string]interface{}{
			"members":    embedded,
			"page":       result.Page,
			"perPage":    result.PerPage,
			"totalPages": result.TotalPages,
			"total":      result.Total,
		},
	})
}

// FindFarmsByMember returns the loaded member's farms.
func (h *MemberHandler) FindFarmsByMember(c *gin.Context) {
	member := c.MustGet(ctxMember).(models.Member)
	memberID := member.ID.Hex()

	farms, err := h.Farms.GetAllResourcesByFilter(c.Request.Context(), bson.M{"member": memberID})
	if err != nil {
		writeError(c, err)
		return
	}

	b := h.builder(c)
	embedded := make([]Resource, 0, len(farms))
	for _, farm := range farms {
		embedded = append(embedded, Resource{
			"id":     farm.ID.Hex(),
			"name":   farm.Name,
			"member": farm.Member,
			"_links": map[string]hal.Link{
				"self": b.NestedResourceByID(memberID, "farms", farm.ID.Hex()),
			},
		})
	}

	c.JSON(http.StatusOK, HALResponse{
		Links: map[string]hal.Link{
			"self":   b.NestedResource(memberID, "farms"),
			"create": b.CreateNested(memberID, "farms"),
		},
		Embedded: map[string]interface{}{
			"farms": embedded,
		},
	})
}

// Create registers a member. The password is hashed by the store before
// the write; duplicate emails map to a 409.
func (h *MemberHandler) Create(c *gin.Context) {
	var req CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	data := bson.M{
		"name":     req.Name,
		"phone":    req.Phone,
		"email":    req.Email,
		"password": req.Password,
	}
	if req.Location != "" {
		data["location"] = req.Location
	}

	member, err := h.Members.Insert(c.Request.Context(), data)
	if err != nil {
		writeError(c, err)
		return
	}

	b := h.builder(c)
	id := member.ID.Hex()

	c.Header("Location", b.PlainResource(id).Href)
	c.JSON(http.StatusCreated, HALResponse{
		Links: map[string]hal.Link{
			"self":   b.ResourceByID(id, member.Name),
			"get":    b.BaseURL(),
			"update": b.Update(id, member.Name),
			"delete": b.Delete(id, member.Name),
		},
		Embedded: map[string]interface{}{
			"member": h.embedMember(b, member),
		},
	})
}

// Update replaces the loaded member (full overwrite of supplied fields).
// A supplied password is rehashed by the store.
func (h *MemberHandler) Update(c *gin.Context) {
	h.write(c, false)
}

// Patch merges the supplied fields into the loaded member.
func (h *MemberHandler) Patch(c *gin.Context) {
	h.write(c, true)
}

func (h *MemberHandler) write(c *gin.Context, partial bool) {
	member := c.MustGet(ctxMember).(models.Member)

	var data bson.M
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var (
		updated models.Member
		err     error
	)
	if partial {
		updated, err = h.Members.Update(c.Request.Context(), member.ID.Hex(), data)
	} else {
		updated, err = h.Members.Replace(c.Request.Context(), member.ID.Hex(), data)
	}
	if err != nil {
		writeError(c, err)
		return
	}

	b := h.builder(c)
	id := updated.ID.Hex()

	c.JSON(http.StatusOK, HALResponse{
		Links: map[string]hal.Link{
			"self":   b.ResourceByID(id, updated.Name),
			"get":    b.BaseURL(),
			"delete": b.Delete(id, updated.Name),
		},
		Embedded: map[string]interface{}{
			"member": h.embedMember(b, updated),
		},
	})
}

// Delete removes the loaded member. 204, collection links only.
func (h *MemberHandler) Delete(c *gin.Context) {
	member := c.MustGet(ctxMember).(models.Member)

	if _, err := h.Members.Delete(c.Request.Context(), member.ID.Hex()); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// queryInt reads a positive integer query param, falling back to def on
// absence or garbage.
func queryInt(c *gin.Context, name string, def int64) int64 {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 1 {
		return def
	}
	return n
}
