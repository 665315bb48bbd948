package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ServiceInfo is what the info endpoints report about the running process.
type ServiceInfo struct {
	Name                   string
	Version                string
	Environment            string
	DatabaseConfigured     bool
	PhotoStorageConfigured bool
}

type Endpoint struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

var endpoints = []Endpoint{
	{http.MethodGet, "/health", "Liveness check"},
	{http.MethodGet, "/", "Service directory"},
	{http.MethodGet, "/test", "Configuration smoke check"},
	{http.MethodGet, "/setup-database", "Create the properties table if it does not exist"},
	{http.MethodPost, "/properties", "Create a property listing"},
	{http.MethodGet, "/properties", "Search properties with filters, sorting and pagination"},
	{http.MethodGet, "/properties/stats", "Aggregate property statistics"},
	{http.MethodGet, "/properties/:id", "Fetch one property with its landlord"},
}

var photoEndpoints = []Endpoint{
	{http.MethodPost, "/properties/:id/photo", "Upload a photo for a property"},
	{http.MethodGet, "/properties/:id/photo", "Download the latest photo of a property"},
}

// SystemHandler serves health, directory, smoke-test and schema setup.
type SystemHandler struct {
	Info ServiceInfo
	Svc  PropertyService
	Now  func() time.Time
}

func NewSystemHandler(info ServiceInfo, svc PropertyService) *SystemHandler {
	return &SystemHandler{Info: info, Svc: svc, Now: time.Now}
}

func (h *SystemHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.Health)
	r.GET("/", h.Directory)
	r.GET("/test", h.Test)
	r.GET("/setup-database", h.SetupDatabase)
}

func (h *SystemHandler) timestamp() string {
	return h.Now().UTC().Format(time.RFC3339)
}

// GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   h.Info.Name,
		"timestamp": h.timestamp(),
		"version":   h.Info.Version,
	})
}

// GET /
func (h *SystemHandler) Directory(c *gin.Context) {
	list := endpoints
	if h.Info.PhotoStorageConfigured {
		list = append(append([]Endpoint{}, endpoints...), photoEndpoints...)
	}
	c.JSON(http.StatusOK, gin.H{
		"service":   h.Info.Name,
		"version":   h.Info.Version,
		"endpoints": list,
	})
}

// GET /test reports configuration presence only, never values.
func (h *SystemHandler) Test(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":                  "Property API is running",
		"environment":              h.Info.Environment,
		"database_configured":      h.Info.DatabaseConfigured,
		"photo_storage_configured": h.Info.PhotoStorageConfigured,
		"timestamp":                h.timestamp(),
	})
}

// GET /setup-database
func (h *SystemHandler) SetupDatabase(c *gin.Context) {
	if err := h.Svc.SetupDatabase(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Database setup completed successfully",
		"table":   "properties",
	})
}
