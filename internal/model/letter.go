package model

import (
	"time"

	"gorm.io/datatypes"
)

// Letter statuses.
const (
	LetterStatusDraft    = "draft"
	LetterStatusApproved = "approved"
	LetterStatusSent     = "sent"
)

// LetterTemplate is a reusable outgoing-letter blueprint, maps to
// letter_templates. Body is a text/template source; Fields describes the
// placeholders the form UI must collect (name, label, type).
type LetterTemplate struct {
	TemplateID string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"template_id"`
	Name       string         `gorm:"type:varchar(100);not null"                     json:"name"`
	Code       string         `gorm:"type:varchar(20);not null"                      json:"code"` // category code used in letter numbers
	Subject    string         `gorm:"type:varchar(200);not null"                     json:"subject"`
	Body       string         `gorm:"type:text;not null"                             json:"body"`
	Fields     datatypes.JSON `gorm:"type:jsonb"                                     json:"fields,omitempty"`
	IsActive   bool           `gorm:"not null;default:true"                          json:"is_active"`
	SoftDeleteModel
}

// TableName sets the table name.
func (LetterTemplate) TableName() string { return "letter_templates" }

// Letter is one outgoing letter, maps to letters. Number and VerifyToken are
// assigned on approval; Sequence counts per template code per calendar year.
type Letter struct {
	LetterID    string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"letter_id"`
	TemplateID  string         `gorm:"type:uuid;not null"                             json:"template_id"`
	Number      string         `gorm:"type:varchar(50)"                               json:"number,omitempty"`
	Sequence    int            `gorm:"not null;default:0"                             json:"sequence"`
	Year        int            `gorm:"not null;default:0"                             json:"year"`
	Subject     string         `gorm:"type:varchar(200);not null"                     json:"subject"`
	Recipient   string         `gorm:"type:varchar(200);not null"                     json:"recipient"`
	Body        string         `gorm:"type:text;not null"                             json:"body"` // rendered from the template
	FieldValues datatypes.JSON `gorm:"type:jsonb"                                     json:"field_values,omitempty"`
	Status      string         `gorm:"type:varchar(20);not null;default:'draft'"      json:"status"` // draft | approved | sent
	IssuedDate  *time.Time     `gorm:"type:date"                                      json:"issued_date,omitempty"`
	VerifyToken string         `gorm:"type:uuid"                                      json:"-"`
	VersionedModel

	Template *LetterTemplate `gorm:"foreignKey:TemplateID;references:TemplateID" json:"template,omitempty"`
}

// TableName sets the table name.
func (Letter) TableName() string { return "letters" }
