package dto

// RegisterUserRequest is sent by the front-end after its own sign-in flow.
type RegisterUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"omitempty,max=120"`
	PhotoURL string `json:"photoURL" validate:"omitempty,url"`
}

// RegisterUserResult mirrors the insert outcome; InsertedID is nil when the user already existed.
type RegisterUserResult struct {
	Message    string  `json:"message,omitempty"`
	InsertedID *string `json:"insertedId"`
	Created    bool    `json:"-"`
}

// SetRoleRequest assigns a role to a user, creating the user when missing.
type SetRoleRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"omitempty,max=120"`
	Role  string `json:"role" validate:"required,oneof=student instructor admin"`
}

// RoleCheck answers the admin and instructor lookups.
type RoleCheck struct {
	Admin      *bool `json:"admin,omitempty"`
	Instructor *bool `json:"instructor,omitempty"`
}
