package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/exceedauto/exceedauto-api/internal/catalog"
)

// CreateBrandInput defines the JSON input for creating a brand
type CreateBrandInput struct {
	Name string `json:"name" binding:"required"`
}

// GetAllBrands is the handler for GET /api/brands
func (h *Handlers) GetAllBrands(c *gin.Context) {
	brands, err := h.Catalog.ListBrands()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	c.JSON(http.StatusOK, brands)
}

// CreateBrand is the handler for POST /api/brands
func (h *Handlers) CreateBrand(c *gin.Context) {
	var input CreateBrandInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Brand name required"})
		return
	}

	brand, err := h.Catalog.CreateBrand(input.Name)
	if err != nil {
		var conflict *catalog.ConflictError
		if errors.As(err, &conflict) {
			// Hand the surviving brand back so the dashboard can pick it
			// up instead of retrying blindly.
			c.JSON(http.StatusConflict, gin.H{
				"error": "Brand already exists",
				"brand": conflict.Brand,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create brand"})
		return
	}

	c.JSON(http.StatusCreated, brand)
}

// DeleteBrand is the handler for DELETE /api/brands/:id
// Deleting a brand removes every car it owns, including their images.
func (h *Handlers) DeleteBrand(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Brand not found"})
		return
	}

	if err := h.Catalog.DeleteBrand(id); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Brand not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete brand"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Brand deleted"})
}
