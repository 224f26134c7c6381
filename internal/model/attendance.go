package model

import "time"

// Attendance event types.
const (
	AttendanceCheckIn  = "check_in"
	AttendanceCheckOut = "check_out"
)

// AttendanceEvent is one recorded check-in or check-out, maps to
// attendance_events. At most one event exists per (teacher, entry, date, type);
// the unique index enforces it regardless of application races.
type AttendanceEvent struct {
	EventID    string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"                      json:"event_id"`
	TeacherID  string    `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_once,priority:1"        json:"teacher_id"`
	EntryID    string    `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_once,priority:2"        json:"entry_id"`
	Date       time.Time `gorm:"type:date;not null;uniqueIndex:uq_attendance_once,priority:3"        json:"date"`
	Type       string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_attendance_once,priority:4" json:"type"` // check_in | check_out
	RecordedAt time.Time `gorm:"not null"                                                            json:"recorded_at"`
	Latitude   *float64  `json:"latitude,omitempty"`
	Longitude  *float64  `json:"longitude,omitempty"`
	Auto       bool      `gorm:"not null;default:false"                                              json:"auto"` // written by the end-of-day sweeper
	Note       string    `gorm:"type:varchar(200)"                                                   json:"note,omitempty"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                                  json:"created_at"`

	Teacher *User          `gorm:"foreignKey:TeacherID;references:UserID" json:"teacher,omitempty"`
	Entry   *ScheduleEntry `gorm:"foreignKey:EntryID;references:EntryID"  json:"entry,omitempty"`
}

// TableName sets the table name.
func (AttendanceEvent) TableName() string { return "attendance_events" }
