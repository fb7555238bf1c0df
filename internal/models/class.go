package models

import "time"

// ClassStatus tracks the moderation state of a class offering.
type ClassStatus string

const (
	ClassStatusPending  ClassStatus = "pending"
	ClassStatusApproved ClassStatus = "approved"
	ClassStatusRejected ClassStatus = "rejected"
)

// HomeClassesLimit caps the number of classes shown on the landing page.
const HomeClassesLimit = 6

// ClassOffering is a class instructors publish and students enroll into.
type ClassOffering struct {
	ID               string      `db:"id" json:"id"`
	Name             string      `db:"name" json:"name"`
	Slug             string      `db:"slug" json:"slug"`
	Image            string      `db:"image" json:"image"`
	InstructorName   string      `db:"instructor_name" json:"instructorName"`
	InstructorEmail  string      `db:"instructor_email" json:"instructorEmail"`
	Price            float64     `db:"price" json:"price"`
	AvailableSeats   int         `db:"available_seats" json:"availableSeats"`
	EnrolledStudents int         `db:"enrolled_students" json:"enrolledStudents"`
	Status           ClassStatus `db:"status" json:"status"`
	Feedback         string      `db:"feedback" json:"feedback,omitempty"`
	CreatedAt        time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time   `db:"updated_at" json:"updatedAt"`
}
