package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/tlsy/handicrafts/internal/application/catalog"
	"github.com/tlsy/handicrafts/internal/interfaces/http/middleware"
)

// ProductHandler serves the public catalog and the admin product endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// ListPublic returns available products filtered by ?category= and ?q=
// GET /api/v1/products
func (h *ProductHandler) ListPublic(c *gin.Context) {
	products, err := h.productService.ListPublic(c.Request.Context(),
		c.Query("category"), c.Query("q"), middleware.GetLocale(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// ListFeatured returns the featured products shown on the home page
// GET /api/v1/products/featured
func (h *ProductHandler) ListFeatured(c *gin.Context) {
	products, err := h.productService.ListFeatured(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// GetPublic returns one available product
// GET /api/v1/products/:id
func (h *ProductHandler) GetPublic(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}
	product, err := h.productService.GetPublic(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// List returns a page of all products for the admin table
// GET /api/v1/admin/products
func (h *ProductHandler) List(c *gin.Context) {
	var query catalogapp.ListProductsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.ValidationError(c, err)
		return
	}

	page, err := h.productService.List(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetByID returns a product regardless of availability
// GET /api/v1/admin/products/:id
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}
	product, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Create adds a product
// POST /api/v1/admin/products
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	product, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// Update replaces a product's editable fields
// PUT /api/v1/admin/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	var req catalogapp.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	product, err := h.productService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Delete removes a product and its images
// DELETE /api/v1/admin/products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}
	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ToggleFeatured flips the featured flag
// POST /api/v1/admin/products/:id/toggle-featured
func (h *ProductHandler) ToggleFeatured(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}
	product, err := h.productService.ToggleFeatured(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}
