package model

// ScheduleEntry is one recurring weekly teaching slot, maps to schedule_entries.
// Day-of-week follows ISO 8601: 1=Monday … 7=Sunday. Times are zero-padded
// 24-hour "HH:MM" strings, so lexicographic order equals chronological order.
type ScheduleEntry struct {
	EntryID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"entry_id"`
	TeacherID string `gorm:"type:uuid;not null;index"                       json:"teacher_id"`
	DayOfWeek int    `gorm:"type:smallint;not null"                         json:"day_of_week"`
	StartTime string `gorm:"type:char(5);not null"                          json:"start_time"`
	EndTime   string `gorm:"type:char(5);not null"                          json:"end_time"`
	Subject   string `gorm:"type:varchar(100)"                              json:"subject,omitempty"`
	Location  string `gorm:"type:varchar(200)"                              json:"location,omitempty"`
	IsActive  bool   `gorm:"not null;default:true"                          json:"is_active"`
	SoftDeleteModel

	Teacher *User `gorm:"foreignKey:TeacherID;references:UserID" json:"teacher,omitempty"`
}

// TableName sets the table name.
func (ScheduleEntry) TableName() string { return "schedule_entries" }
