package request

type UserCreateRequest struct {
	Name          string `json:"name" validate:"required,min=2,max=100"`
	Email         string `json:"email" validate:"required,email,max=255"`
	Password      string `json:"password" validate:"required,min=8,max=72"`
	IsAdmin       bool   `json:"is_admin"`
	IsActive      *bool  `json:"is_active,omitempty"`
	EmailVerified bool   `json:"email_verified"`
}

type UserUpdateRequest struct {
	Name          *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Email         *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Password      *string `json:"password,omitempty" validate:"omitempty,min=8,max=72"`
	IsAdmin       *bool   `json:"is_admin,omitempty"`
	IsActive      *bool   `json:"is_active,omitempty"`
	EmailVerified *bool   `json:"email_verified,omitempty"`
}
