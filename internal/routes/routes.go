package routes

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/exceedauto/exceedauto-api/internal/handlers"
	"github.com/exceedauto/exceedauto-api/internal/middleware"
)

// CORSMiddleware lets the React frontend talk to the API. The origin is
// configurable so the deployed site and local development both work.
func CORSMiddleware() gin.HandlerFunc {
	origin := os.Getenv("FRONTEND_ORIGIN")
	if origin == "" {
		origin = "*"
	}

	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		// Preflight OPTIONS requests get an empty 204.
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// SetupRouter wires every endpoint. Reads are public; everything that
// mutates the catalog sits behind the session middleware.
func SetupRouter(h *handlers.Handlers, uploadsDir string) *gin.Engine {
	router := gin.Default()

	router.Use(CORSMiddleware())

	api := router.Group("/api")
	{
		// --- Ping Route (Public) ---
		api.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		// --- Auth Routes ---
		api.POST("/auth/login", h.Login)

		// --- Public Catalog Routes ---
		api.GET("/brands", h.GetAllBrands)
		api.GET("/cars", h.GetAllCars)
		api.GET("/cars/:id", h.GetCar)
		api.GET("/filters", h.GetFilters)

		// --- Contact Form (Public) ---
		api.POST("/contact", h.SendContactEmail)

		// --- Uploaded Images (Public) ---
		api.Static("/uploads", uploadsDir)

		// --- Protected Routes (Admin Session Required) ---
		auth := api.Group("/")
		auth.Use(middleware.AuthMiddleware(h.Sessions))
		{
			auth.POST("/auth/logout", h.Logout)
			auth.GET("/auth/verify", h.VerifyToken)

			auth.POST("/brands", h.CreateBrand)
			auth.DELETE("/brands/:id", h.DeleteBrand)

			auth.POST("/cars", h.CreateCar)
			auth.PUT("/cars/:id", h.UpdateCar)
			auth.DELETE("/cars/:id", h.DeleteCar)
			auth.DELETE("/cars/:id/images/:image_id", h.DeleteCarImage)
		}
	}

	return router
}
