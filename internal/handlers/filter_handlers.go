package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetFilters is the handler for GET /api/filters
// It returns everything the browse page needs to build its filter bar:
// the brand list plus the distinct body types, fuel types and
// transmissions present in the catalog right now.
func (h *Handlers) GetFilters(c *gin.Context) {
	brands, err := h.Catalog.ListBrands()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}

	values, err := h.Catalog.DistinctFilterValues()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"brands":        brands,
		"body_types":    values.BodyTypes,
		"fuel_types":    values.FuelTypes,
		"transmissions": values.Transmissions,
	})
}
