package dto

// ── requests ──

// CreateScheduleEntryRequest adds a recurring weekly slot (admin only).
type CreateScheduleEntryRequest struct {
	TeacherID string `json:"teacher_id"  binding:"required,uuid"`
	DayOfWeek int    `json:"day_of_week" binding:"required,min=1,max=7"`
	StartTime string `json:"start_time"  binding:"required,hhmm"`
	EndTime   string `json:"end_time"    binding:"required,hhmm"`
	Subject   string `json:"subject"     binding:"omitempty,max=100"`
	Location  string `json:"location"    binding:"omitempty,max=200"`
}

// UpdateScheduleEntryRequest edits a slot; nil fields are left unchanged.
type UpdateScheduleEntryRequest struct {
	DayOfWeek *int    `json:"day_of_week" binding:"omitempty,min=1,max=7"`
	StartTime *string `json:"start_time"  binding:"omitempty,hhmm"`
	EndTime   *string `json:"end_time"    binding:"omitempty,hhmm"`
	Subject   *string `json:"subject"     binding:"omitempty,max=100"`
	Location  *string `json:"location"    binding:"omitempty,max=200"`
	IsActive  *bool   `json:"is_active"`
}

// ScheduleListRequest filters the admin schedule list.
type ScheduleListRequest struct {
	TeacherID string `form:"teacher_id"  binding:"omitempty,uuid"`
	DayOfWeek *int   `form:"day_of_week" binding:"omitempty,min=1,max=7"`
	PaginationRequest
}

// ── responses ──

// ScheduleEntryResponse is one recurring slot.
type ScheduleEntryResponse struct {
	ID        string        `json:"id"`
	TeacherID string        `json:"teacher_id"`
	Teacher   *TeacherBrief `json:"teacher,omitempty"`
	DayOfWeek int           `json:"day_of_week"`
	StartTime string        `json:"start_time"`
	EndTime   string        `json:"end_time"`
	Subject   string        `json:"subject,omitempty"`
	Location  string        `json:"location,omitempty"`
	IsActive  bool          `json:"is_active"`
}

// TeacherBrief is the short teacher identity embedded in other responses.
type TeacherBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	NIP  string `json:"nip"`
}

// TodayScheduleResponse is the effective schedule for the current date.
// Degraded is true when the swap lookup failed and the list is the plain
// recurring schedule (fail-open).
type TodayScheduleResponse struct {
	Date     string                 `json:"date"`
	Degraded bool                   `json:"degraded"`
	Sessions []TodaySessionResponse `json:"sessions"`
}

// TodaySessionResponse is one effective session with its attendance window.
type TodaySessionResponse struct {
	Entry       ScheduleEntryResponse `json:"entry"`
	ViaSwap     bool                  `json:"via_swap"`
	SwapID      string                `json:"swap_id,omitempty"`
	FromTeacher string                `json:"from_teacher,omitempty"`
	Window      WindowStateResponse   `json:"window"`
}

// WindowStateResponse is the computed attendance window for one session.
type WindowStateResponse struct {
	CanCheckIn   bool   `json:"can_check_in"`
	CanCheckOut  bool   `json:"can_check_out"`
	HasCheckIn   bool   `json:"has_check_in"`
	HasCheckOut  bool   `json:"has_check_out"`
	WithinWindow bool   `json:"within_window"`
	WindowStart  string `json:"window_start,omitempty"`
	WindowEnd    string `json:"window_end,omitempty"`
	Status       string `json:"status"`
	Message      string `json:"message"`
}
