package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/exceedauto/exceedauto-api/internal/catalog"
)

// GetAllCars is the handler for GET /api/cars
// Filters are a conjunction: every query parameter that is present
// narrows the result, absent parameters do not constrain anything.
func (h *Handlers) GetAllCars(c *gin.Context) {
	var filter catalog.CarFilter

	if v := c.Query("brand_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.BrandID = &id
		}
	}
	filter.BodyType = c.Query("body_type")
	filter.FuelType = c.Query("fuel_type")
	filter.Transmission = c.Query("transmission")
	if v := c.Query("min_price"); v != "" {
		if price, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinPrice = &price
		}
	}
	if v := c.Query("max_price"); v != "" {
		if price, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxPrice = &price
		}
	}
	filter.Featured = c.Query("featured") == "true"

	cars, err := h.Catalog.ListCars(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	c.JSON(http.StatusOK, cars)
}

// GetCar is the handler for GET /api/cars/:id
func (h *Handlers) GetCar(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Car not found"})
		return
	}

	car, err := h.Catalog.GetCar(id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Car not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	c.JSON(http.StatusOK, car)
}

// CreateCar is the handler for POST /api/cars (multipart form).
// The brand may arrive as brand_id or as brand_name; an unknown name is
// created on the fly. The first uploaded image becomes the car's primary
// photo.
func (h *Handlers) CreateCar(c *gin.Context) {
	var input catalog.CreateCarInput

	if v := c.PostForm("brand_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			input.BrandID = &id
		}
	}
	input.BrandName = c.PostForm("brand_name")

	input.Model = c.PostForm("model")
	if input.Model == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Model is required"})
		return
	}

	year, err := strconv.Atoi(c.PostForm("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid year is required"})
		return
	}
	input.Year = year

	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid price is required"})
		return
	}
	input.Price = price

	if v := c.PostForm("mileage"); v != "" {
		if mileage, err := strconv.Atoi(v); err == nil {
			input.Mileage = &mileage
		}
	}
	input.FuelType = optionalForm(c, "fuel_type")
	input.Transmission = optionalForm(c, "transmission")
	input.BodyType = optionalForm(c, "body_type")
	input.Color = optionalForm(c, "color")
	input.Engine = optionalForm(c, "engine")
	input.Description = optionalForm(c, "description")
	input.Featured = strings.EqualFold(c.PostForm("featured"), "true")

	images, closeAll, err := formImages(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image upload"})
		return
	}
	defer closeAll()

	car, err := h.Catalog.CreateCar(input, images)
	if err != nil {
		if errors.Is(err, catalog.ErrBrandRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Brand is required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create car"})
		return
	}

	c.JSON(http.StatusCreated, car)
}

// UpdateCar is the handler for PUT /api/cars/:id (multipart form).
// This is a sparse patch: only fields present and non-empty in the form
// are applied, so the dashboard can submit just what changed. The flip
// side is that an empty string can never clear a field, and neither
// "price=0" nor "featured=" behave as updates; that matches how the
// dashboard has always used the endpoint. New images are appended and
// never become primary.
func (h *Handlers) UpdateCar(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Car not found"})
		return
	}

	var patch catalog.CarPatch

	if v := c.PostForm("brand_id"); v != "" {
		if brandID, err := strconv.ParseInt(v, 10, 64); err == nil {
			patch.BrandID = &brandID
		}
	}
	patch.BrandName = c.PostForm("brand_name")

	patch.Model = optionalForm(c, "model")
	if v := c.PostForm("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Valid year is required"})
			return
		}
		patch.Year = &year
	}
	if v := c.PostForm("price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Valid price is required"})
			return
		}
		patch.Price = &price
	}
	if v := c.PostForm("mileage"); v != "" {
		mileage, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Valid mileage is required"})
			return
		}
		patch.Mileage = &mileage
	}
	patch.FuelType = optionalForm(c, "fuel_type")
	patch.Transmission = optionalForm(c, "transmission")
	patch.BodyType = optionalForm(c, "body_type")
	patch.Color = optionalForm(c, "color")
	patch.Engine = optionalForm(c, "engine")
	patch.Description = optionalForm(c, "description")
	if v := c.PostForm("featured"); v != "" {
		featured := strings.EqualFold(v, "true")
		patch.Featured = &featured
	}

	images, closeAll, err := formImages(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image upload"})
		return
	}
	defer closeAll()

	car, err := h.Catalog.UpdateCar(id, patch, images)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Car not found"})
		case errors.Is(err, catalog.ErrBrandRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Brand is required"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update car"})
		}
		return
	}

	c.JSON(http.StatusOK, car)
}

// DeleteCar is the handler for DELETE /api/cars/:id
func (h *Handlers) DeleteCar(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Car not found"})
		return
	}

	if err := h.Catalog.DeleteCar(id); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Car not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete car"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Car deleted"})
}

// DeleteCarImage is the handler for DELETE /api/cars/:id/images/:image_id
func (h *Handlers) DeleteCarImage(c *gin.Context) {
	carID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		return
	}
	imageID, err := strconv.ParseInt(c.Param("image_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		return
	}

	if err := h.Catalog.DeleteCarImage(carID, imageID); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Image deleted"})
}

// optionalForm returns a pointer to the form value, or nil when the field
// is absent or empty.
func optionalForm(c *gin.Context, field string) *string {
	if v := c.PostForm(field); v != "" {
		return &v
	}
	return nil
}

// formImages collects the "images" files of a multipart request. The
// returned closer must be deferred; it releases the opened file handles
// once the store has consumed them.
func formImages(c *gin.Context) ([]catalog.ImageUpload, func(), error) {
	closeAll := func() {}

	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, closeAll, nil
		}
		return nil, closeAll, err
	}

	var opened []multipart.File
	closeAll = func() {
		for _, f := range opened {
			f.Close()
		}
	}

	var images []catalog.ImageUpload
	for _, fh := range form.File["images"] {
		f, err := fh.Open()
		if err != nil {
			return nil, closeAll, err
		}
		opened = append(opened, f)
		images = append(images, catalog.ImageUpload{
			Filename: fh.Filename,
			Reader:   f,
		})
	}
	return images, closeAll, nil
}
