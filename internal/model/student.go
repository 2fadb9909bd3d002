package model

import (
	"time"

	"github.com/google/uuid"
)

// Student sex values persisted by the server. The intake form also offers
// "Other"; requests carrying it are rejected with a validation error.
const (
	SexMale   = "Male"
	SexFemale = "Female"
)

const (
	MinGradeLevel = 7
	MaxGradeLevel = 12
)

// Student represents a student demographic record.
type Student struct {
	TenantID               string    `json:"-" db:"tenant_id"`
	ID                     uuid.UUID `json:"id" db:"id"`
	FullName               string    `json:"full_name" db:"full_name"`
	GradeLevel             int       `json:"grade_level" db:"grade_level"`
	Section                string    `json:"section" db:"section"`
	Sex                    string    `json:"sex" db:"sex"`
	DOB                    Date      `json:"dob" db:"dob"`
	ContactNumber          string    `json:"contact_number" db:"contact_number"`
	Address                string    `json:"address" db:"address"`
	EmergencyContactPerson string    `json:"emergency_contact_person" db:"emergency_contact_person"`
	EmergencyContactNumber string    `json:"emergency_contact_number" db:"emergency_contact_number"`
	ProfileImageURL        *string   `json:"profile_image_url" db:"profile_image_url"`
	CreatedAt              time.Time `json:"created_at" db:"created_at"`
}

// StudentWithLastVisit annotates a student with the most recent visit date
// for roster views.
type StudentWithLastVisit struct {
	Student
	LastVisit *Date `json:"last_visit" db:"last_visit"`
}

// CreateStudentRequest represents student creation parameters.
type CreateStudentRequest struct {
	FullName               string  `json:"full_name" binding:"required"`
	GradeLevel             int     `json:"grade_level" binding:"required"`
	Section                string  `json:"section" binding:"required"`
	Sex                    string  `json:"sex" binding:"required"`
	DOB                    string  `json:"dob" binding:"required"`
	ContactNumber          string  `json:"contact_number"`
	Address                string  `json:"address"`
	EmergencyContactPerson string  `json:"emergency_contact_person"`
	EmergencyContactNumber string  `json:"emergency_contact_number"`
	ProfileImageURL        *string `json:"profile_image_url"`
}

// UpdateStudentRequest is a partial update; nil fields keep their previous
// values.
type UpdateStudentRequest struct {
	FullName               *string `json:"full_name"`
	GradeLevel             *int    `json:"grade_level"`
	Section                *string `json:"section"`
	Sex                    *string `json:"sex"`
	DOB                    *string `json:"dob"`
	ContactNumber          *string `json:"contact_number"`
	Address                *string `json:"address"`
	EmergencyContactPerson *string `json:"emergency_contact_person"`
	EmergencyContactNumber *string `json:"emergency_contact_number"`
	ProfileImageURL        *string `json:"profile_image_url"`
}
