package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/dto"
	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/service"
	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/pkg/response"
)

// SettingHandler serves the global settings endpoints.
type SettingHandler struct {
	settingSvc service.SettingService
}

// NewSettingHandler creates a SettingHandler.
func NewSettingHandler(settingSvc service.SettingService) *SettingHandler {
	return &SettingHandler{settingSvc: settingSvc}
}

// Get returns the global settings.
// GET /api/v1/settings
func (h *SettingHandler) Get(c *gin.Context) {
	result, err := h.settingSvc.Get(c.Request.Context())
	if err != nil {
		h.handleSettingError(c, err)
		return
	}

	response.OK(c, result)
}

// Update edits the global settings (admin).
// PUT /api/v1/settings
func (h *SettingHandler) Update(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	result, err := h.settingSvc.Update(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleSettingError(c, err)
		return
	}

	response.OK(c, result)
}

func (h *SettingHandler) handleSettingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSettingNotFound):
		response.NotFound(c, 16001, "global settings not initialized")
	default:
		response.InternalError(c)
	}
}
