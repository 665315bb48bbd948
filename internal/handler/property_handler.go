package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JohirU-coder/landlord-property-service/internal/model"
	"github.com/JohirU-coder/landlord-property-service/internal/service"
	"github.com/JohirU-coder/landlord-property-service/internal/validation"
)

type PropertyService interface {
	SetupDatabase(ctx context.Context) error
	CreateProperty(ctx context.Context, req *model.CreatePropertyRequest) (*model.Property, error)
	GetProperty(ctx context.Context, id int64) (*model.PropertyDetail, error)
	SearchProperties(ctx context.Context, params model.SearchParams) (*model.SearchResult, error)
	Stats(ctx context.Context) (*model.PropertyStats, error)
}

// PropertyHandler serves the /properties endpoints.
type PropertyHandler struct {
	Svc PropertyService
}

func NewPropertyHandler(svc PropertyService) *PropertyHandler {
	return &PropertyHandler{Svc: svc}
}

func (h *PropertyHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/properties", h.SearchProperties)
	r.GET("/properties/stats", h.GetStats)
	r.GET("/properties/:id", h.GetPropertyByID)
	r.POST("/properties", h.CreateProperty)
}

type createPropertyResponse struct {
	Message  string          `json:"message"`
	Property *model.Property `json:"property"`
}

// POST /properties
func (h *PropertyHandler) CreateProperty(c *gin.Context) {
	var req model.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, service.ErrCodeInvalidPayload, "request body must be a valid JSON property")
		return
	}
	if err := validation.CreateProperty(&req); err != nil {
		respondError(c, err)
		return
	}

	p, err := h.Svc.CreateProperty(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, createPropertyResponse{
		Message:  "Property created successfully",
		Property: p,
	})
}

// GET /properties/:id
func (h *PropertyHandler) GetPropertyByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	p, err := h.Svc.GetProperty(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"property": p})
}

// GET /properties?city=...&min_rent=...&sort_by=...&limit=...&offset=...
func (h *PropertyHandler) SearchProperties(c *gin.Context) {
	params, err := validation.SearchParams(c.Request.URL.Query())
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.Svc.SearchProperties(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GET /properties/stats
func (h *PropertyHandler) GetStats(c *gin.Context) {
	stats, err := h.Svc.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"statistics": stats})
}
