package dto

// ── requests ──

// RecordAttendanceRequest records a check-in or check-out for one of today's
// effective sessions. Coordinates come from the client's geolocation.
type RecordAttendanceRequest struct {
	EntryID   string   `json:"entry_id"  binding:"required,uuid"`
	Latitude  *float64 `json:"latitude"  binding:"omitempty,min=-90,max=90"`
	Longitude *float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`
	Note      string   `json:"note"      binding:"omitempty,max=200"`
}

// AttendanceListRequest filters the admin attendance list.
type AttendanceListRequest struct {
	TeacherID string `form:"teacher_id" binding:"omitempty,uuid"`
	Date      string `form:"date"       binding:"omitempty,datetime=2006-01-02"`
	PaginationRequest
}

// AttendanceRecapRequest selects the month for the Excel recap.
type AttendanceRecapRequest struct {
	TeacherID string `form:"teacher_id" binding:"omitempty,uuid"` // admin only; defaults to the caller
	Year      int    `form:"year"       binding:"required,min=2000,max=2100"`
	Month     int    `form:"month"      binding:"required,min=1,max=12"`
}

// ── responses ──

// AttendanceEventResponse is one recorded event.
type AttendanceEventResponse struct {
	ID         string        `json:"id"`
	TeacherID  string        `json:"teacher_id"`
	Teacher    *TeacherBrief `json:"teacher,omitempty"`
	EntryID    string        `json:"entry_id"`
	Date       string        `json:"date"`
	Type       string        `json:"type"`
	RecordedAt string        `json:"recorded_at"`
	Latitude   *float64      `json:"latitude,omitempty"`
	Longitude  *float64      `json:"longitude,omitempty"`
	Auto       bool          `json:"auto"`
	Note       string        `json:"note,omitempty"`
}
