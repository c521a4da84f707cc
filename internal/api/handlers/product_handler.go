package handlers

import (
	"net/http"
	"path/filepath"

	"froot-boot-api-server/internal/events"
	"froot-boot-api-server/internal/hal"
	"froot-boot-api-server/internal/models"
	"froot-boot-api-server/internal/s3"
	"froot-boot-api-server/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

const ctxProduct = "product"

// ProductHandler serves products double-nested under member and farm:
// /members/:id/farms/:farmId/products/:productId.
type ProductHandler struct {
	Products *service.Service[models.Product]
	Bus      *events.Bus
	Uploader *s3.Uploader
	BasePath string
}

type CreateProductRequest struct {
	Name    string   `json:"name" binding:"required"`
	Price   *float64 `json:"price" binding:"required"`
	Soldout *bool    `json:"soldout" binding:"required"`
}

func (h *ProductHandler) builder(c *gin.Context) hal.Builder {
	return hal.NewBuilder(c.Request, h.BasePath+"/members")
}

// LoadProduct resolves the :productId route param and puts the product
// into the request context. 404 on miss.
func (h *ProductHandler) LoadProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := h.Products.GetByID(c.Request.Context(), c.Param("productId"))
		if err != nil {
			abortError(c, err)
			return
		}
		c.Set(ctxProduct, product)
		c.Next()
	}
}

// soldoutChanged fires the soldout event when a write left the product
// sold out. The fan-out runs on the bus, off the request path.
func (h *ProductHandler) soldoutChanged(product models.Product) {
	if product.Soldout && h.Bus != nil {
		h.Bus.PublishProductSoldout()
	}
}

func (h *ProductHandler) embedProduct(b hal.Builder, memberID, farmID string, product models.Product) Resource {
	return Resource{
		"id":       product.ID.Hex(),
		"name":     product.Name,
		"producer": product.Producer,
		"price":    product.Price,
		"soldout":  product.Soldout,
		"photoUrl": product.PhotoURL,
		"_links": map[string]hal.Link{
			"self": b.DoubleNestedResourceByID(memberID, "farms", farmID, "products", product.ID.Hex()),
		},
	}
}

// Find returns a single product with its hypermedia links.
func (h *ProductHandler) Find(c *gin.Context) {
	member := c.MustGet(ctxMember).(models.Member)
	farm := c.MustGet(ctxFarm).(models.Farm)
	product := c.MustGet(ctxProduct).(models.Product)

	b := h.builder(c)
	memberID := member.ID.Hex()
	farmID := farm.ID.Hex()
	productID := product.ID.Hex()

	c.JSON(http.StatusOK, HALResponse{
		Links: map[string]hal.Link{
			"self":   b.DoubleNestedResourceByID(memberID, "farms", farmID, "products", productID),
			"get":    b.DoubleNestedResource(memberID, "farms", farmID, "products"),
			"create": b.CreateNested(memberID, "farms", farmID, "products"),
			"update": b.UpdateNested(product.Name, memberID, "farms", farmID, "products", productID),
			"delete": b.DeleteNested(product.Name, memberID, "farms", farmID, "products", productID),
		},
		Embedded: map[string]interface{}{
			"product": h.embedProduct(b, memberID, farmID, product),
		},
	})
}

// FindProductsByFarm returns the loaded farm's products.
func (h *ProductHandler) FindProductsByFarm(c *gin.Context) {
	member := c.MustGet(ctxMember).(models.Member)
	farm := c.MustGet(ctxFarm).(models.Farm)

	memberID := member.ID.Hex()
	farmID := farm.ID.Hex()

	products, err := h.Products.GetAllResourcesByFilter(c.Request.Context(), bson.M{"producer": farmID})
	if err != nil {
		writeError(c, err)
		return
	}

	b := h.builder(c)
	embedded := make([]Resource, 0, len(products))
	for _, product := range products {
		embedded = append(embedded, h.embedProduct(b, memberID, farmID, product))
	}

	c.JSON(http.StatusOK, HALResponse{
		Links: map[string]hal.Link{
			"self":   b.DoubleNestedResource(memberID, "farms", farmID, "products"),
			"create": b.CreateNested(memberID, "farms", farmID, "products"),
		},
		Embedded: map[string]interface{}{
			"products": embedded,
		},
	})
}

// Create creates a product under the loaded farm. The producer reference
// is taken from the url chain. A product created sold out triggers the
// webhook notification.
func (h *ProductHandler) Create(c *gin.Context) {
	member := c.MustGet(ctxMember).(models.Member)
	farm := c.MustGet(ctxFarm).(models.Farm)

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	memberID := member.ID.Hex()
	farmID := farm.ID.Hex()

	product, err := h.Products.Insert(c.Request.Context(), bson.M{
		"name":     req.Name,
		"producer": farmID,
		"price":    *req.Price,
		"soldout":  *req.Soldout,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	h.soldoutChanged(product)

	b := h.builder(c)
	productID := product.ID.Hex()

	c.Header("Location", b.DoubleNestedResourceByID(memberID, "farms", farmID, "products", productID).Href)
	c.JSON(http.StatusCreated, HALResponse{
		Links: map[string]hal.Link{
			"self":   b.DoubleNestedResourceByID(memberID, "farms", farmID, "products", productID),
			"get":    b.DoubleNestedResource(memberID, "farms", farmID, "products"),
			"update": b.UpdateNested(product.Name, memberID, "farms", farmID, "products", productID),
			"delete": b.DeleteNested(product.Name, memberID, "farms", farmID, "products", productID),
		},
		Embedded: map[string]interface{}{
			"product": h.embedProduct(b, memberID, farmID, product),
		},
	})
}

// Update replaces the loaded product; Patch merges into it. Either way a
// write that leaves the product sold out notifies registered webhooks.
func (h *ProductHandler) Update(c *gin.Context) {
	h.write(c, false)
}

func (h *ProductHandler) Patch(c *gin.Context) {
	h.write(c, true)
}

func (h *ProductHandler) write(c *gin.Context, partial bool) {
	member := c.MustGet(ctxMember).(models.Member)
	farm := c.MustGet(ctxFarm).(models.Farm)
	product := c.MustGet(ctxProduct).(models.Product)

	var data bson.M
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var (
		updated models.Product
		err     error
	)
	if partial {
		updated, err = h.Products.Update(c.Request.Context(), product.ID.Hex(), data)
	} else {
		updated, err = h.Products.Replace(c.Request.Context(), product.ID.Hex(), data)
	}
	if err != nil {
		writeError(c, err)
		return
	}

	h.soldoutChanged(updated)

	b := h.builder(c)
	memberID := member.ID.Hex()
	farmID := farm.ID.Hex()
	productID := updated.ID.Hex()

	c.JSON(http.StatusOK, HALResponse{
		Links: map[string]hal.Link{
			"self":   b.DoubleNestedResourceByID(memberID, "farms", farmID, "products", productID),
			"get":    b.DoubleNestedResource(memberID, "farms", farmID, "products"),
			"delete": b.DeleteNested(updated.Name, memberID, "farms", farmID, "products", productID),
		},
		Embedded: map[string]interface{}{
			"product": h.embedProduct(b, memberID, farmID, updated),
		},
	})
}

// Delete removes the loaded product. 204, collection links only.
func (h *ProductHandler) Delete(c *gin.Context) {
	product := c.MustGet(ctxProduct).(models.Product)

	if _, err := h.Products.Delete(c.Request.Context(), product.ID.Hex()); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UploadPhoto stores a product photo in S3 and saves its public URL on
// the product document.
func (h *ProductHandler) UploadPhoto(c *gin.Context) {
	member := c.MustGet(ctxMember).(models.Member)
	farm := c.MustGet(ctxFarm).(models.Farm)
	product := c.MustGet(ctxProduct).(models.Product)

	if h.Uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Photo storage is not configured"})
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A photo file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectKey := "products/" + uuid.New().String() + filepath.Ext(fileHeader.Filename)
	url, err := h.Uploader.UploadFile(c.Request.Context(), file, objectKey, contentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload photo"})
		return
	}

	updated, err := h.Products.Update(c.Request.Context(), product.ID.Hex(), bson.M{"photoUrl": url})
	if err != nil {
		writeError(c, err)
		return
	}

	b := h.builder(c)
	c.JSON(http.StatusOK, HALResponse{
		Links: map[string]hal.Link{
			"self": b.DoubleNestedResourceByID(member.ID.Hex(), "farms", farm.ID.Hex(), "products", updated.ID.Hex()),
		},
		Embedded: map[string]interface{}{
			"product": h.embedProduct(b, member.ID.Hex(), farm.ID.Hex(), updated),
		},
	})
}
