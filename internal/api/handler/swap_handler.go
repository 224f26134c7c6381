package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/dto"
	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/service"
	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/pkg/response"
)

// SwapHandler serves the schedule-swap workflow endpoints.
type SwapHandler struct {
	swapSvc service.SwapService
}

// NewSwapHandler creates a SwapHandler.
func NewSwapHandler(swapSvc service.SwapService) *SwapHandler {
	return &SwapHandler{swapSvc: swapSvc}
}

// Create submits a new swap request.
// POST /api/v1/swaps
func (h *SwapHandler) Create(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateSwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	result, err := h.swapSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleSwapError(c, err)
		return
	}

	response.Created(c, result)
}

// Get returns one swap request.
// GET /api/v1/swaps/:id
func (h *SwapHandler) Get(c *gin.Context) {
	result, err := h.swapSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleSwapError(c, err)
		return
	}

	response.OK(c, result)
}

// ListMine returns swaps where the caller is requester or counterpart.
// GET /api/v1/swaps/mine
func (h *SwapHandler) ListMine(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SwapListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	list, total, err := h.swapSvc.ListMine(c.Request.Context(), userID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.Page, req.PageSize)
}

// List returns all swaps (admin).
// GET /api/v1/swaps
func (h *SwapHandler) List(c *gin.Context) {
	var req dto.SwapListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	list, total, err := h.swapSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.Page, req.PageSize)
}

// Respond records a counterpart's accept or decline.
// POST /api/v1/swaps/:id/respond
func (h *SwapHandler) Respond(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.RespondSwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	result, err := h.swapSvc.Respond(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.handleSwapError(c, err)
		return
	}

	response.OK(c, result)
}

// Approve finalizes a fully accepted swap (admin).
// POST /api/v1/swaps/:id/approve
func (h *SwapHandler) Approve(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.swapSvc.Approve(c.Request.Context(), c.Param("id"), callerID)
	if err != nil {
		h.handleSwapError(c, err)
		return
	}

	response.OK(c, result)
}

// Reject declines a pending swap (admin).
// POST /api/v1/swaps/:id/reject
func (h *SwapHandler) Reject(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.RejectSwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	result, err := h.swapSvc.Reject(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.handleSwapError(c, err)
		return
	}

	response.OK(c, result)
}

// Cancel withdraws the caller's own pending swap.
// POST /api/v1/swaps/:id/cancel
func (h *SwapHandler) Cancel(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.swapSvc.Cancel(c.Request.Context(), c.Param("id"), callerID)
	if err != nil {
		h.handleSwapError(c, err)
		return
	}

	response.OK(c, result)
}

func (h *SwapHandler) handleSwapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSwapNotFound):
		response.NotFound(c, 14001, "swap request not found")
	case errors.Is(err, service.ErrSwapNotPending):
		response.Conflict(c, 14002, "swap request is not pending")
	case errors.Is(err, service.ErrSwapNotOwnEntry):
		response.Forbidden(c, 14003, "requester entry does not belong to you")
	case errors.Is(err, service.ErrSwapCounterpartEntry):
		response.BadRequest(c, 14004, "counterpart entry does not belong to that teacher")
	case errors.Is(err, service.ErrSwapNotParticipant):
		response.Forbidden(c, 14005, "you are not a participant of this swap")
	case errors.Is(err, service.ErrSwapAlreadyResponded):
		response.Conflict(c, 14006, "counterpart has already responded")
	case errors.Is(err, service.ErrSwapNotAllAccepted):
		response.Conflict(c, 14007, "not every counterpart has accepted yet")
	case errors.Is(err, service.ErrSwapDateInPast):
		response.BadRequest(c, 14008, "swap dates must not be in the past")
	case errors.Is(err, service.ErrSwapNotCancellable):
		response.Conflict(c, 14009, "only a pending swap can be cancelled by its requester")
	default:
		response.InternalError(c)
	}
}
