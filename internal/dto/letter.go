package dto

import "encoding/json"

// ── template requests ──

// CreateLetterTemplateRequest adds a letter blueprint (admin only).
type CreateLetterTemplateRequest struct {
	Name    string          `json:"name"    binding:"required,min=2,max=100"`
	Code    string          `json:"code"    binding:"required,min=2,max=20,uppercase"`
	Subject string          `json:"subject" binding:"required,min=2,max=200"`
	Body    string          `json:"body"    binding:"required"`
	Fields  json.RawMessage `json:"fields"  binding:"omitempty"`
}

// UpdateLetterTemplateRequest edits a blueprint; nil fields are left unchanged.
type UpdateLetterTemplateRequest struct {
	Name     *string         `json:"name"      binding:"omitempty,min=2,max=100"`
	Subject  *string         `json:"subject"   binding:"omitempty,min=2,max=200"`
	Body     *string         `json:"body"`
	Fields   json.RawMessage `json:"fields"    binding:"omitempty"`
	IsActive *bool           `json:"is_active"`
}

// ── letter requests ──

// CreateLetterRequest drafts a letter from a template.
type CreateLetterRequest struct {
	TemplateID  string            `json:"template_id"  binding:"required,uuid"`
	Recipient   string            `json:"recipient"    binding:"required,min=2,max=200"`
	FieldValues map[string]string `json:"field_values" binding:"omitempty"`
}

// UpdateLetterRequest edits a draft; nil fields are left unchanged.
type UpdateLetterRequest struct {
	Recipient   *string           `json:"recipient"    binding:"omitempty,min=2,max=200"`
	FieldValues map[string]string `json:"field_values" binding:"omitempty"`
	Version     int               `json:"version"      binding:"required,min=1"`
}

// LetterListRequest filters the letter list.
type LetterListRequest struct {
	Status string `form:"status" binding:"omitempty,oneof=draft approved sent"`
	PaginationRequest
}

// ── responses ──

// LetterTemplateResponse is one blueprint.
type LetterTemplateResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Code     string          `json:"code"`
	Subject  string          `json:"subject"`
	Body     string          `json:"body"`
	Fields   json.RawMessage `json:"fields,omitempty"`
	IsActive bool            `json:"is_active"`
}

// LetterResponse is the full view of one letter.
type LetterResponse struct {
	ID          string            `json:"id"`
	TemplateID  string            `json:"template_id"`
	Number      string            `json:"number,omitempty"`
	Subject     string            `json:"subject"`
	Recipient   string            `json:"recipient"`
	Body        string            `json:"body"`
	FieldValues map[string]string `json:"field_values,omitempty"`
	Status      string            `json:"status"`
	IssuedDate  string            `json:"issued_date,omitempty"`
	Version     int               `json:"version"`
	CreatedAt   string            `json:"created_at"`
}

// LetterVerificationResponse is the public authenticity summary.
type LetterVerificationResponse struct {
	Valid      bool   `json:"valid"`
	Number     string `json:"number,omitempty"`
	Subject    string `json:"subject,omitempty"`
	Recipient  string `json:"recipient,omitempty"`
	IssuedDate string `json:"issued_date,omitempty"`
	Foundation string `json:"foundation,omitempty"`
}
