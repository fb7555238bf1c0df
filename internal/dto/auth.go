package dto

// TokenRequest asks for an identity token for the signed-in user.
type TokenRequest struct {
	Email string `json:"email" validate:"required,email"`
}
