package handlers

import (
	"net/http"

	"depositshield_backend/internal/services"
	"depositshield_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type PropertyHandler struct {
	*BaseHandler
	propertyService services.PropertyService
}

func NewPropertyHandler(base *BaseHandler, propertyService services.PropertyService) *PropertyHandler {
	return &PropertyHandler{
		BaseHandler:     base,
		propertyService: propertyService,
	}
}

func (h *PropertyHandler) RegisterRoutes(rg *gin.RouterGroup, guards RouteGuards) {
	properties := rg.Group("/properties")
	properties.Use(guards.Auth)
	{
		properties.POST("", h.CreateProperty)
		properties.GET("", h.ListProperties)
		properties.GET("/:id", h.GetProperty)
		properties.PUT("/:id", h.UpdateProperty)
		properties.DELETE("/:id", h.DeleteProperty)
		properties.GET("/:id/reports", h.ListPropertyReports)
	}
}

func (h *PropertyHandler) CreateProperty(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePropertyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	property, err := h.propertyService.CreateProperty(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.PropertyResponse{Message: "Property created successfully", Property: property})
}

func (h *PropertyHandler) ListProperties(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	properties, err := h.propertyService.ListProperties(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PropertyListResponse{Message: "Properties retrieved successfully", Properties: properties})
}

func (h *PropertyHandler) GetProperty(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	propertyID, ok := h.paramID(c, "id")
	if !ok {
		return
	}

	property, err := h.propertyService.GetProperty(h.GetDB(c), userID, propertyID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PropertyResponse{Message: "Property retrieved successfully", Property: property})
}

func (h *PropertyHandler) UpdateProperty(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	propertyID, ok := h.paramID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdatePropertyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	property, err := h.propertyService.UpdateProperty(h.GetDB(c), userID, propertyID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PropertyResponse{Message: "Property updated successfully", Property: property})
}

func (h *PropertyHandler) DeleteProperty(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	propertyID, ok := h.paramID(c, "id")
	if !ok {
		return
	}

	if err := h.propertyService.DeleteProperty(c.Request.Context(), h.GetDB(c), userID, propertyID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Property deleted successfully"})
}

func (h *PropertyHandler) ListPropertyReports(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	propertyID, ok := h.paramID(c, "id")
	if !ok {
		return
	}

	reports, err := h.propertyService.ListPropertyReports(h.GetDB(c), userID, propertyID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ReportListResponse{Message: "Reports retrieved successfully", Reports: reports})
}
