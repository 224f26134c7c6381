package dto

// ── requests ──

// CreateUserRequest registers a new account (admin only).
type CreateUserRequest struct {
	Name     string `json:"name"     binding:"required,min=2,max=100"`
	NIP      string `json:"nip"      binding:"required,min=3,max=30"`
	Email    string `json:"email"    binding:"omitempty,email"`
	Phone    string `json:"phone"    binding:"omitempty,max=30"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Role     string `json:"role"     binding:"required,oneof=admin guru"`
}

// UpdateUserRequest edits an account; nil fields are left unchanged.
type UpdateUserRequest struct {
	Name     *string `json:"name"      binding:"omitempty,min=2,max=100"`
	Email    *string `json:"email"     binding:"omitempty,email"`
	Phone    *string `json:"phone"     binding:"omitempty,max=30"`
	Role     *string `json:"role"      binding:"omitempty,oneof=admin guru"`
	IsActive *bool   `json:"is_active"`
}

// ResetPasswordRequest sets a new password for another account (admin only).
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

// UserListRequest filters the user list.
type UserListRequest struct {
	Role   string `form:"role"   binding:"omitempty,oneof=admin guru"`
	Search string `form:"search" binding:"omitempty,max=100"`
	PaginationRequest
}

// ── responses ──

// UserResponse is the public view of an account.
type UserResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	NIP      string `json:"nip"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}
