package handlers

import (
	"net/http"
	"strconv"

	"depositshield_backend/internal/services"
	"depositshield_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	*BaseHandler
	reportService services.ReportService
	shareService  services.ShareService
}

func NewReportHandler(base *BaseHandler, reportService services.ReportService, shareService services.ShareService) *ReportHandler {
	return &ReportHandler{
		BaseHandler:   base,
		reportService: reportService,
		shareService:  shareService,
	}
}

// RegisterRoutes mounts /reports. The share link and the approval
// decisions also accept anonymous callers holding the report uuid.
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup, guards RouteGuards) {
	reports := rg.Group("/reports")
	{
		reports.GET("/uuid/:uuid", guards.RateLimit, guards.OptionalAuth, h.GetSharedReport)
		reports.POST("/:id/approve", guards.RateLimit, guards.OptionalAuth, h.ApproveReport)
		reports.POST("/:id/reject", guards.RateLimit, guards.OptionalAuth, h.RejectReport)

		reports.POST("", guards.Auth, h.CreateReport)
		reports.GET("", guards.Auth, h.ListReports)
		reports.GET("/property/:propertyId", guards.Auth, h.ListReportsByProperty)
		reports.GET("/:id", guards.Auth, h.GetReport)
		reports.PUT("/:id", guards.Auth, h.UpdateReport)
		reports.DELETE("/:id", guards.Auth, h.DeleteReport)
		reports.POST("/:id/archive", guards.Auth, h.ArchiveReport)
		reports.POST("/:id/notify", guards.Auth, h.NotifyReport)
	}
}

func (h *ReportHandler) CreateReport(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateReportRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	report, err := h.reportService.CreateReport(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ReportResponse{Message: "Report created successfully", Report: report})
}

func (h *ReportHandler) ListReports(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var query dto.ListReportsQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	reports, err := h.reportService.ListReports(h.GetDB(c), userID, query.IncludeArchived)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ReportListResponse{Message: "Reports retrieved successfully", Reports: reports})
}

func (h *ReportHandler) ListReportsByProperty(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	propertyID, ok := h.paramID(c, "propertyId")
	if !ok {
		return
	}

	reports, err := h.reportService.ListReportsByProperty(h.GetDB(c), userID, propertyID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ReportListResponse{Message: "Reports retrieved successfully", Reports: reports})
}

func (h *ReportHandler) GetReport(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	reportID, ok := h.paramID(c, "id")
	if !ok {
		return
	}

	shared, err := h.reportService.GetReport(h.GetDB(c), userID, reportID, h.BaseURL(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SharedReportResponse{Message: "Report retrieved successfully", SharedReport: shared})
}

func (h *ReportHandler) GetSharedReport(c *gin.Context) {
	shared, err := h.shareService.Resolve(h.GetDB(c), c.Param("uuid"), OptionalUserID(c), h.BaseURL(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SharedReportResponse{Message: "Report retrieved successfully", SharedReport: shared})
}

func (h *ReportHandler) UpdateReport(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	reportID, ok := h.paramID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateReportRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	report, err := h.reportService.UpdateReport(h.GetDB(c), userID, reportID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ReportResponse{Message: "Report updated successfully", Report: report})
}

func (h *ReportHandler) DeleteReport(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	reportID, ok := h.paramID(c, "id")
	if !ok {
		return
	}

	if err := h.reportService.DeleteReport(c.Request.Context(), h.GetDB(c), userID, reportID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Report deleted successfully"})
}

func (h *ReportHandler) ArchiveReport(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	reportID, ok := h.paramID(c, "id")
	if !ok {
		return
	}

	report, err := h.reportService.ArchiveReport(h.GetDB(c), userID, reportID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ReportResponse{Message: "Report archived successfully", Report: report})
}

func (h *ReportHandler) ApproveReport(c *gin.Context) {
	reportID, ok := h.paramID(c, "id")
	if !ok {
		return
	}

	var req dto.ApproveReportRequest
	if !h.BindAndValidate_OptionalJSON(c, &req) {
		return
	}

	resp, err := h.reportService.ApproveReport(c.Request.Context(), h.GetDB(c), OptionalUserID(c), reportID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RejectReport takes the quick flag from ?quick=true or the body.
func (h *ReportHandler) RejectReport(c *gin.Context) {
	reportID, ok := h.paramID(c, "id")
	if !ok {
		return
	}

	var req dto.RejectReportRequest
	if !h.BindAndValidate_OptionalJSON(c, &req) {
		return
	}
	if quick, err := strconv.ParseBool(c.Query("quick")); err == nil && quick {
		req.Quick = true
	}

	resp, err := h.reportService.RejectReport(c.Request.Context(), h.GetDB(c), OptionalUserID(c), reportID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportHandler) NotifyReport(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	reportID, ok := h.paramID(c, "id")
	if !ok {
		return
	}

	var req dto.NotifyReportRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.reportService.NotifyReport(c.Request.Context(), h.GetDB(c), userID, reportID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
