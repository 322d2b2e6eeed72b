package marketplaceserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	catalogmapper "github.com/Apurer/go-gin-marketplace/internal/domains/catalog/adapters/http/mapper"
	catalogtypes "github.com/Apurer/go-gin-marketplace/internal/domains/catalog/application/types"
	catalogports "github.com/Apurer/go-gin-marketplace/internal/domains/catalog/ports"
	apierrors "github.com/Apurer/go-gin-marketplace/internal/shared/errors"
)

// IdempotencyKeyHeader deduplicates product creation retries.
const IdempotencyKeyHeader = "Idempotency-Key"

// CategoryRequest creates a seller category.
type CategoryRequest struct {
	Name string `json:"name" binding:"required,max=80"`
}

// ImageUploadRequest asks for a presigned upload URL.
type ImageUploadRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"contentType,omitempty"`
}

// AttachImageRequest confirms an uploaded object key.
type AttachImageRequest struct {
	Key string `json:"key" binding:"required"`
}

// ImageUploadResponse describes where and how to upload.
type ImageUploadResponse struct {
	URL       string `json:"url"`
	Method    string `json:"method"`
	Key       string `json:"key"`
	PublicURL string `json:"publicUrl"`
	ExpiresAt string `json:"expiresAt"`
}

type CatalogAPI struct {
	service catalogports.Service
}

func NewCatalogAPI(service catalogports.Service) CatalogAPI {
	return CatalogAPI{service: service}
}

// Get /api/products
func (api *CatalogAPI) ListProducts(c *gin.Context) {
	categoryID := c.Query("categoryId")
	if categoryID == "" {
		categoryID = c.Query("category")
	}
	products, err := api.service.ListProducts(c.Request.Context(), catalogports.ProductFilter{
		CategoryID: categoryID,
		StoreID:    c.Query("storeId"),
		Search:     c.Query("search"),
		ActiveOnly: true,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromProjections(products))
}

// Get /api/products/:id
func (api *CatalogAPI) GetProduct(c *gin.Context) {
	id := c.Param("id")
	product, err := api.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !product.Entity.IsActive {
		respondProblem(c, apierrors.NewNotFoundProblem("product", id))
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromProjection(product))
}

// Get /api/categories
func (api *CatalogAPI) ListCategories(c *gin.Context) {
	categories, err := api.service.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainCategories(categories))
}

// Post /api/seller/categories
func (api *CatalogAPI) CreateCategory(c *gin.Context) {
	var body CategoryRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	category, err := api.service.CreateCategory(c.Request.Context(), body.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, catalogmapper.FromDomainCategory(category))
}

// Get /api/seller/products
func (api *CatalogAPI) ListSellerProducts(c *gin.Context) {
	principal, _ := PrincipalFrom(c)
	products, err := api.service.ListSellerProducts(c.Request.Context(), principal.StoreID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromProjections(products))
}

// Post /api/seller/products
func (api *CatalogAPI) CreateProduct(c *gin.Context) {
	var body catalogmapper.MutationProduct
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	principal, _ := PrincipalFrom(c)
	product, err := api.service.CreateProduct(c.Request.Context(), catalogtypes.CreateProductInput{
		StoreID:              principal.StoreID,
		IdempotencyKey:       strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader)),
		ProductMutationInput: catalogmapper.ToMutationInput(body),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, catalogmapper.FromProjection(product))
}

// Put /api/seller/products?id=
func (api *CatalogAPI) UpdateProduct(c *gin.Context) {
	id, ok := productIDQuery(c)
	if !ok {
		return
	}
	var body catalogmapper.MutationProduct
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	principal, _ := PrincipalFrom(c)
	product, err := api.service.UpdateProduct(c.Request.Context(), catalogtypes.UpdateProductInput{
		StoreID:              principal.StoreID,
		ID:                   id,
		ProductMutationInput: catalogmapper.ToMutationInput(body),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromProjection(product))
}

// Delete /api/seller/products?id=
func (api *CatalogAPI) DeleteProduct(c *gin.Context) {
	id, ok := productIDQuery(c)
	if !ok {
		return
	}
	principal, _ := PrincipalFrom(c)
	if err := api.service.DeleteProduct(c.Request.Context(), principal.StoreID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Produit supprimé"})
}

// Post /api/seller/products/:id/images
func (api *CatalogAPI) RequestImageUpload(c *gin.Context) {
	var body ImageUploadRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	principal, _ := PrincipalFrom(c)
	upload, err := api.service.RequestImageUpload(c.Request.Context(), catalogtypes.ImageUploadInput{
		StoreID:     principal.StoreID,
		ProductID:   c.Param("id"),
		Filename:    body.Filename,
		ContentType: body.ContentType,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ImageUploadResponse{
		URL:       upload.URL,
		Method:    upload.Method,
		Key:       upload.Key,
		PublicURL: upload.PublicURL,
		ExpiresAt: upload.ExpiresAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	})
}

// Put /api/seller/products/:id/images
func (api *CatalogAPI) AttachImage(c *gin.Context) {
	var body AttachImageRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	principal, _ := PrincipalFrom(c)
	product, err := api.service.AttachImage(c.Request.Context(), principal.StoreID, c.Param("id"), body.Key)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromProjection(product))
}

func productIDQuery(c *gin.Context) (string, bool) {
	id := strings.TrimSpace(c.Query("id"))
	if id == "" {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail("product id is required"))
		return "", false
	}
	return id, true
}
