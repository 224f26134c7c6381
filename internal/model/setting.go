package model

// GlobalSetting is the single-row settings table, maps to global_settings.
// Grace minutes widen each session's attendance window on both sides.
type GlobalSetting struct {
	Singleton                 bool   `gorm:"primaryKey;default:true"                      json:"-"`
	CheckInGraceMinutes       int    `gorm:"not null;default:15"                          json:"check_in_grace_minutes"`
	CheckOutGraceMinutes      int    `gorm:"not null;default:10"                          json:"check_out_grace_minutes"`
	RequireCheckInForCheckOut bool   `gorm:"not null;default:true"                        json:"require_check_in_for_check_out"`
	AutoCheckOutTime          string `gorm:"type:char(5);not null;default:'21:00'"        json:"auto_check_out_time"` // daily sweeper run time, "HH:MM"
	FoundationName            string `gorm:"type:varchar(200);not null;default:'PKBM'"    json:"foundation_name"`
	LetterCity                string `gorm:"type:varchar(100);not null;default:'Jakarta'" json:"letter_city"`
	BaseModel
}

// TableName sets the table name.
func (GlobalSetting) TableName() string { return "global_settings" }
