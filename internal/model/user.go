package model

// User roles.
const (
	RoleAdmin = "admin"
	RoleGuru  = "guru"
)

// User is a foundation staff account, maps to users.
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name         string `gorm:"type:varchar(100);not null"                     json:"name"`
	NIP          string `gorm:"column:nip;type:varchar(30);not null"           json:"nip"` // employee number, login identifier
	Email        string `gorm:"type:varchar(255)"                              json:"email,omitempty"`
	Phone        string `gorm:"type:varchar(30)"                               json:"phone,omitempty"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string `gorm:"type:varchar(20);not null;default:'guru'"       json:"role"` // admin | guru
	IsActive     bool   `gorm:"not null;default:true"                          json:"is_active"`
	SoftDeleteModel
}

// TableName sets the table name.
func (User) TableName() string { return "users" }
