package models

import "time"

// SelectedClass is a student's pending intent to enroll in a class.
type SelectedClass struct {
	ID             string    `db:"id" json:"id"`
	StudentEmail   string    `db:"student_email" json:"studentEmail"`
	ClassID        string    `db:"class_id" json:"classId"`
	ClassName      string    `db:"class_name" json:"name"`
	Image          string    `db:"image" json:"image"`
	InstructorName string    `db:"instructor_name" json:"instructorName"`
	Price          float64   `db:"price" json:"price"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
}
