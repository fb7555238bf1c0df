package dto

// PaymentIntentRequest asks the processor for a client secret covering price (major units).
type PaymentIntentRequest struct {
	Price float64 `json:"price" validate:"gt=0"`
}

// ClassItem is the selection snapshot embedded in a payment payload.
type ClassItem struct {
	ID             string  `json:"id" validate:"required"`
	ClassID        string  `json:"classId" validate:"required"`
	Name           string  `json:"name"`
	Image          string  `json:"image"`
	InstructorName string  `json:"instructorName"`
	Price          float64 `json:"price" validate:"gte=0"`
}

// PaymentRequest completes a payment and enrolls the caller.
type PaymentRequest struct {
	Email         string    `json:"email" validate:"omitempty,email"`
	TransactionID string    `json:"transactionId" validate:"required,max=255"`
	Price         float64   `json:"price" validate:"gte=0"`
	ClassItem     ClassItem `json:"classItem"`
}
