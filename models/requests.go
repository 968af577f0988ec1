package models

// CredentialsRequest is the body of register and login.
type CredentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ConfirmRequest carries a registration token when confirming via POST.
type ConfirmRequest struct {
	Token string `json:"token" validate:"required"`
}

// RefreshRequest is the body of the refresh endpoint.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// ProfileUpdate is a partial update of the account's own credentials.
// Nil fields are left unchanged.
type ProfileUpdate struct {
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Password *string `json:"password,omitempty"`
}

// ActiveRequest toggles the active flag of an account.
type ActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

// RolesRequest replaces the role set of an account.
type RolesRequest struct {
	Roles []string `json:"roles" validate:"required,min=1,dive,required"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
