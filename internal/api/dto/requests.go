package dto

// LoginRequest payload for dispatcher login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CreateUserRequest payload for provisioning accounts (admin only).
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=admin chief disponent analyst"`
}

// ShiftRequest payload for creating or updating a shift.
type ShiftRequest struct {
	Date         string `json:"date" validate:"required,datetime=2006-01-02"`
	Start        string `json:"start" validate:"required,datetime=15:04"`
	End          string `json:"end" validate:"required,datetime=15:04"`
	Type         string `json:"type" validate:"required"`
	WorkLocation string `json:"workLocation" validate:"required"`
}

// AssignRequest payload for assigning a shift.
type AssignRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ApplyRequest payload for applying for a shift. Email may be omitted
// when the caller's token already carries one.
type ApplyRequest struct {
	Email string `json:"email" validate:"omitempty,email"`
}

// TemplateRequest payload for shift template writes.
type TemplateRequest struct {
	Name         string `json:"name" validate:"required"`
	Start        string `json:"start" validate:"required,datetime=15:04"`
	End          string `json:"end" validate:"required,datetime=15:04"`
	Type         string `json:"type" validate:"required"`
	WorkLocation string `json:"workLocation" validate:"required"`
}

// PreferenceRequest payload for the email opt-out flag.
type PreferenceRequest struct {
	EmailNotifications *bool `json:"emailNotifications" validate:"required"`
}
