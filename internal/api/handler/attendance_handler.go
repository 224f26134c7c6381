package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/dto"
	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/service"
	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/pkg/response"
)

// AttendanceHandler serves the check-in and check-out endpoints.
type AttendanceHandler struct {
	attendanceSvc service.AttendanceService
}

// NewAttendanceHandler creates an AttendanceHandler.
func NewAttendanceHandler(attendanceSvc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceSvc: attendanceSvc}
}

// CheckIn records a check-in for one of today's effective sessions.
// POST /api/v1/attendance/check-in
func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.RecordAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	result, err := h.attendanceSvc.CheckIn(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.Created(c, result)
}

// CheckOut records a check-out for one of today's effective sessions.
// POST /api/v1/attendance/check-out
func (h *AttendanceHandler) CheckOut(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.RecordAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	result, err := h.attendanceSvc.CheckOut(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.Created(c, result)
}

// ListMineToday returns the caller's events for the current date.
// GET /api/v1/attendance/mine/today
func (h *AttendanceHandler) ListMineToday(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	list, err := h.attendanceSvc.ListMineToday(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, list)
}

// List returns attendance events with filters (admin).
// GET /api/v1/attendance
func (h *AttendanceHandler) List(c *gin.Context) {
	var req dto.AttendanceListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	list, total, err := h.attendanceSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.Page, req.PageSize)
}

func (h *AttendanceHandler) handleAttendanceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotScheduled):
		response.BadRequest(c, 15001, "session is not on today's schedule")
	case errors.Is(err, service.ErrAlreadyCheckedIn):
		response.Conflict(c, 15002, "check-in already recorded")
	case errors.Is(err, service.ErrAlreadyCheckedOut):
		response.Conflict(c, 15003, "check-out already recorded")
	case errors.Is(err, service.ErrCheckInRequired):
		response.BadRequest(c, 15004, "check-out requires a prior check-in")
	case errors.Is(err, service.ErrOutsideWindow):
		response.BadRequest(c, 15005, "outside the attendance window")
	default:
		response.InternalError(c)
	}
}
