package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"github.com/JohirU-coder/landlord-property-service/internal/logger"
	"github.com/JohirU-coder/landlord-property-service/internal/middleware"
)

type RouterDeps struct {
	Info        ServiceInfo
	Properties  PropertyService
	Photos      PhotoService // nil disables the photo routes
	CORSOrigins []string
}

// NewRouter wires every route and middleware and returns the handler to
// serve.
func NewRouter(deps RouterDeps) http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(logger.Log))

	NewSystemHandler(deps.Info, deps.Properties).RegisterRoutes(r)
	NewPropertyHandler(deps.Properties).RegisterRoutes(r)
	if deps.Photos != nil {
		NewPhotoHandler(deps.Photos).RegisterRoutes(r)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: "route " + c.Request.Method + " " + c.Request.URL.Path + " does not exist",
		})
	})

	c := cors.New(cors.Options{
		AllowedOrigins: deps.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	})
	return c.Handler(r)
}
