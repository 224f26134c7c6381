package model

import "time"

// Swap request statuses.
const (
	SwapStatusPending   = "pending"
	SwapStatusApproved  = "approved"
	SwapStatusRejected  = "rejected"
	SwapStatusCancelled = "cancelled"
)

// SwapRequest is an exchange of teaching slots between two dates, maps to
// swap_requests. The requester gives their own entry away on SwapOutDate and
// covers every counterpart entry on TargetDate; each counterpart teacher does
// the inverse.
type SwapRequest struct {
	SwapRequestID    string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"swap_request_id"`
	RequesterID      string     `gorm:"type:uuid;not null;index"                       json:"requester_id"`
	RequesterEntryID string     `gorm:"type:uuid;not null"                             json:"requester_entry_id"`
	SwapOutDate      time.Time  `gorm:"type:date;not null"                             json:"swap_out_date"`
	TargetDate       time.Time  `gorm:"type:date;not null"                             json:"target_date"`
	Reason           string     `gorm:"type:varchar(500)"                              json:"reason,omitempty"`
	Status           string     `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"` // pending | approved | rejected | cancelled
	ApprovedAt       *time.Time `json:"approved_at,omitempty"`
	ApprovedBy       *string    `gorm:"type:uuid"                                      json:"approved_by,omitempty"`
	RejectReason     string     `gorm:"type:varchar(500)"                              json:"reject_reason,omitempty"`
	VersionedModel

	Requester      *User             `gorm:"foreignKey:RequesterID;references:UserID"       json:"requester,omitempty"`
	RequesterEntry *ScheduleEntry    `gorm:"foreignKey:RequesterEntryID;references:EntryID" json:"requester_entry,omitempty"`
	Counterparts   []SwapCounterpart `gorm:"foreignKey:SwapRequestID"                       json:"counterparts,omitempty"`
}

// TableName sets the table name.
func (SwapRequest) TableName() string { return "swap_requests" }

// SwapCounterpart is one receiving side of a swap, maps to swap_counterparts.
type SwapCounterpart struct {
	CounterpartID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"counterpart_id"`
	SwapRequestID string     `gorm:"type:uuid;not null;index"                       json:"swap_request_id"`
	TeacherID     string     `gorm:"type:uuid;not null"                             json:"teacher_id"`
	EntryID       string     `gorm:"type:uuid;not null"                             json:"entry_id"`
	Accepted      *bool      `json:"accepted,omitempty"` // nil until the counterpart responds
	RespondedAt   *time.Time `json:"responded_at,omitempty"`
	BaseModel

	Teacher *User          `gorm:"foreignKey:TeacherID;references:UserID" json:"teacher,omitempty"`
	Entry   *ScheduleEntry `gorm:"foreignKey:EntryID;references:EntryID"  json:"entry,omitempty"`
}

// TableName sets the table name.
func (SwapCounterpart) TableName() string { return "swap_counterparts" }
