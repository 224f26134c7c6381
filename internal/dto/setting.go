package dto

// UpdateSettingRequest edits the global settings; nil fields are left
// unchanged.
type UpdateSettingRequest struct {
	CheckInGraceMinutes       *int    `json:"check_in_grace_minutes"        binding:"omitempty,min=0,max=240"`
	CheckOutGraceMinutes      *int    `json:"check_out_grace_minutes"       binding:"omitempty,min=0,max=240"`
	RequireCheckInForCheckOut *bool   `json:"require_check_in_for_check_out"`
	AutoCheckOutTime          *string `json:"auto_check_out_time"           binding:"omitempty,hhmm"`
	FoundationName            *string `json:"foundation_name"               binding:"omitempty,min=2,max=200"`
	LetterCity                *string `json:"letter_city"                   binding:"omitempty,min=2,max=100"`
}
