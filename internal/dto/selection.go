package dto

// SelectClassRequest adds a class to a student's selections.
type SelectClassRequest struct {
	ClassID      string `json:"classId" validate:"required"`
	StudentEmail string `json:"studentEmail" validate:"required,email"`
}

// DeleteResult reports how many rows a delete removed.
type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}
