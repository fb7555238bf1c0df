package dto

// CreateClassRequest is submitted by an instructor. Instructor identity comes from the token.
type CreateClassRequest struct {
	Name           string  `json:"name" validate:"required,max=120"`
	Image          string  `json:"image" validate:"omitempty,url"`
	Price          float64 `json:"price" validate:"gte=0"`
	AvailableSeats int     `json:"availableSeats" validate:"gte=0,lte=10000"`
}

// UpdateClassStatusRequest moderates a class.
type UpdateClassStatusRequest struct {
	Status   string `json:"status" validate:"required,oneof=approved rejected pending"`
	Feedback string `json:"feedback" validate:"omitempty,max=500"`
}
