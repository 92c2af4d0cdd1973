package handlers

import (
	"fmt"
	"net/http"

	"rbac-dashboard/internal/apperr"
	"rbac-dashboard/internal/database"
	"rbac-dashboard/internal/middleware"
	"rbac-dashboard/internal/store"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	Store *store.ProductStore
}

func NewProductHandler(s *store.ProductStore) *ProductHandler { return &ProductHandler{Store: s} }

func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.Store.List()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

type createProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Validation("invalid request body"))
		return
	}

	product, err := h.Store.Create(store.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
	})
	if err != nil {
		fail(c, err)
		return
	}

	h.audit(c, product.ID, "create", "created product "+product.Name)
	c.JSON(http.StatusCreated, product)
}

type updateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		fail(c, err)
		return
	}

	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Validation("invalid request body"))
		return
	}

	product, err := h.Store.Update(id, store.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
	})
	if err != nil {
		fail(c, err)
		return
	}

	h.audit(c, product.ID, "update", "updated product "+product.Name)
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		fail(c, err)
		return
	}

	if err := h.Store.Delete(id); err != nil {
		fail(c, err)
		return
	}

	h.audit(c, id, "delete", fmt.Sprintf("deleted product %d", id))
	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}

func (h *ProductHandler) audit(c *gin.Context, productID uint, action, details string) {
	var userID uint
	if id := middleware.CurrentIdentity(c); id != nil {
		userID = id.UserID
	}
	database.CreateAuditLog(h.Store.DB, userID, "product", productID, action, details)
}
