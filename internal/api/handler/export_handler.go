package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/dto"
	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/service"
	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler serves the downloadable artifacts.
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// AttendanceRecap downloads the monthly attendance workbook. A guru always
// gets their own recap; an admin may pass teacher_id for anyone.
// GET /api/v1/export/attendance-recap?year=2026&month=8
func (h *ExportHandler) AttendanceRecap(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.AttendanceRecapRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}
	if req.TeacherID == "" || !IsAdmin(c) {
		req.TeacherID = userID
	}

	buf, filename, err := h.exportSvc.AttendanceRecap(c.Request.Context(), &req)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	serveDownload(c, filename, xlsxContentType, buf.Bytes())
}

// ScheduleICS downloads the caller's recurring schedule as an iCalendar file.
// GET /api/v1/export/schedule.ics
func (h *ExportHandler) ScheduleICS(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	teacherID := userID
	if q := c.Query("teacher_id"); q != "" && IsAdmin(c) {
		teacherID = q
	}

	data, filename, err := h.exportSvc.ScheduleICS(c.Request.Context(), teacherID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	serveDownload(c, filename, "text/calendar", data)
}

func serveDownload(c *gin.Context, filename, contentType string, data []byte) {
	encoded := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encoded)
	c.Data(http.StatusOK, contentType, data)
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 18001, "teacher not found")
	default:
		response.InternalError(c)
	}
}
