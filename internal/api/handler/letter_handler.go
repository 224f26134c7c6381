package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/dto"
	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/service"
	pkgerrors "github.com/fibidydev01-sys/administrasi-pkbm-sub001/pkg/errors"
	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/pkg/response"
)

// LetterHandler serves the letter-template and outgoing-letter endpoints.
type LetterHandler struct {
	letterSvc service.LetterService
}

// NewLetterHandler creates a LetterHandler.
func NewLetterHandler(letterSvc service.LetterService) *LetterHandler {
	return &LetterHandler{letterSvc: letterSvc}
}

// ── templates ──

// CreateTemplate adds a letter blueprint (admin).
// POST /api/v1/letter-templates
func (h *LetterHandler) CreateTemplate(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateLetterTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	result, err := h.letterSvc.CreateTemplate(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleLetterError(c, err)
		return
	}

	response.Created(c, result)
}

// UpdateTemplate edits a blueprint (admin).
// PUT /api/v1/letter-templates/:id
func (h *LetterHandler) UpdateTemplate(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateLetterTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	result, err := h.letterSvc.UpdateTemplate(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.handleLetterError(c, err)
		return
	}

	response.OK(c, result)
}

// DeleteTemplate soft-deletes a blueprint (admin).
// DELETE /api/v1/letter-templates/:id
func (h *LetterHandler) DeleteTemplate(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.letterSvc.DeleteTemplate(c.Request.Context(), c.Param("id"), callerID); err != nil {
		h.handleLetterError(c, err)
		return
	}

	response.OK(c, nil)
}

// ListTemplates returns blueprints with pagination.
// GET /api/v1/letter-templates
func (h *LetterHandler) ListTemplates(c *gin.Context) {
	var req dto.PaginationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	list, total, err := h.letterSvc.ListTemplates(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.Page, req.PageSize)
}

// ── letters ──

// Create drafts a letter from a template.
// POST /api/v1/letters
func (h *LetterHandler) Create(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateLetterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	result, err := h.letterSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleLetterError(c, err)
		return
	}

	response.Created(c, result)
}

// Get returns one letter.
// GET /api/v1/letters/:id
func (h *LetterHandler) Get(c *gin.Context) {
	result, err := h.letterSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleLetterError(c, err)
		return
	}

	response.OK(c, result)
}

// List returns letters with pagination.
// GET /api/v1/letters
func (h *LetterHandler) List(c *gin.Context) {
	var req dto.LetterListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	list, total, err := h.letterSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.Page, req.PageSize)
}

// Update edits a draft letter.
// PUT /api/v1/letters/:id
func (h *LetterHandler) Update(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateLetterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	result, err := h.letterSvc.Update(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.handleLetterError(c, err)
		return
	}

	response.OK(c, result)
}

// Approve assigns the letter number and verification token (admin).
// POST /api/v1/letters/:id/approve
func (h *LetterHandler) Approve(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.letterSvc.Approve(c.Request.Context(), c.Param("id"), callerID)
	if err != nil {
		h.handleLetterError(c, err)
		return
	}

	response.OK(c, result)
}

// Send marks an approved letter as sent (admin).
// POST /api/v1/letters/:id/send
func (h *LetterHandler) Send(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.letterSvc.Send(c.Request.Context(), c.Param("id"), callerID)
	if err != nil {
		h.handleLetterError(c, err)
		return
	}

	response.OK(c, result)
}

// QRCode streams the verification QR as PNG.
// GET /api/v1/letters/:id/qr
func (h *LetterHandler) QRCode(c *gin.Context) {
	png, err := h.letterSvc.QRCode(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleLetterError(c, err)
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

// Verify is the public authenticity check behind the QR code.
// GET /api/v1/verify/:token
func (h *LetterHandler) Verify(c *gin.Context) {
	result, err := h.letterSvc.Verify(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

func (h *LetterHandler) handleLetterError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTemplateNotFound):
		response.NotFound(c, 17001, "letter template not found")
	case errors.Is(err, service.ErrTemplateInvalid):
		response.BadRequest(c, 17002, "template body is not a valid template")
	case errors.Is(err, service.ErrTemplateInactive):
		response.BadRequest(c, 17003, "letter template is inactive")
	case errors.Is(err, service.ErrLetterNotFound):
		response.NotFound(c, 17004, "letter not found")
	case errors.Is(err, service.ErrLetterNotDraft):
		response.Conflict(c, 17005, "letter is not a draft")
	case errors.Is(err, service.ErrLetterNotApproved):
		response.Conflict(c, 17006, "letter is not approved")
	case errors.Is(err, service.ErrLetterNoToken):
		response.Conflict(c, 17007, "letter has no verification token yet")
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 17008, "letter was modified by someone else, reload and retry")
	default:
		response.InternalError(c)
	}
}
