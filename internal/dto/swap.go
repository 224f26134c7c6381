package dto

// ── requests ──

// SwapCounterpartInput is one receiving side of a new swap request.
type SwapCounterpartInput struct {
	TeacherID string `json:"teacher_id" binding:"required,uuid"`
	EntryID   string `json:"entry_id"   binding:"required,uuid"`
}

// CreateSwapRequest submits a swap: the caller gives RequesterEntryID away on
// SwapOutDate and covers every counterpart entry on TargetDate.
type CreateSwapRequest struct {
	RequesterEntryID string                 `json:"requester_entry_id" binding:"required,uuid"`
	SwapOutDate      string                 `json:"swap_out_date"      binding:"required,datetime=2006-01-02"`
	TargetDate       string                 `json:"target_date"        binding:"required,datetime=2006-01-02"`
	Reason           string                 `json:"reason"             binding:"omitempty,max=500"`
	Counterparts     []SwapCounterpartInput `json:"counterparts"       binding:"required,min=1,dive"`
}

// RespondSwapRequest records a counterpart teacher's accept/decline.
type RespondSwapRequest struct {
	Accept bool `json:"accept"`
}

// RejectSwapRequest records an admin rejection.
type RejectSwapRequest struct {
	Reason string `json:"reason" binding:"required,min=2,max=500"`
}

// SwapListRequest filters the swap list.
type SwapListRequest struct {
	Status string `form:"status" binding:"omitempty,oneof=pending approved rejected cancelled"`
	PaginationRequest
}

// ── responses ──

// SwapCounterpartResponse is one receiving side of a swap.
type SwapCounterpartResponse struct {
	ID          string                 `json:"id"`
	Teacher     *TeacherBrief          `json:"teacher,omitempty"`
	Entry       *ScheduleEntryResponse `json:"entry,omitempty"`
	Accepted    *bool                  `json:"accepted,omitempty"`
	RespondedAt string                 `json:"responded_at,omitempty"`
}

// SwapRequestResponse is the full view of a swap request.
type SwapRequestResponse struct {
	ID             string                    `json:"id"`
	Requester      *TeacherBrief             `json:"requester,omitempty"`
	RequesterEntry *ScheduleEntryResponse    `json:"requester_entry,omitempty"`
	SwapOutDate    string                    `json:"swap_out_date"`
	TargetDate     string                    `json:"target_date"`
	Reason         string                    `json:"reason,omitempty"`
	Status         string                    `json:"status"`
	RejectReason   string                    `json:"reject_reason,omitempty"`
	Counterparts   []SwapCounterpartResponse `json:"counterparts"`
	CreatedAt      string                    `json:"created_at"`
}
