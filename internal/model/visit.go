package model

import (
	"time"

	"github.com/google/uuid"
)

// Visit dispositions
const (
	DispositionReturnedToClass  = "Returned to Class"
	DispositionSentHome         = "Sent Home"
	DispositionReferredToHosp   = "Referred to Hospital"
	DispositionUnderObservation = "Under Observation"
)

// Visit represents a clinic visit encounter.
type Visit struct {
	TenantID        string    `json:"-" db:"tenant_id"`
	ID              uuid.UUID `json:"id" db:"id"`
	StudentID       uuid.UUID `json:"student_id" db:"student_id"`
	VisitDate       Date      `json:"visit_date" db:"visit_date"`
	TimeIn          string    `json:"time_in" db:"time_in"`
	ChiefComplaint  string    `json:"chief_complaint" db:"chief_complaint"`
	Systolic        *int      `json:"systolic" db:"systolic"`
	Diastolic       *int      `json:"diastolic" db:"diastolic"`
	Temperature     *float64  `json:"temperature" db:"temperature"`
	Assessment      string    `json:"assessment" db:"assessment"`
	Intervention    string    `json:"intervention" db:"intervention"`
	MedicationGiven string    `json:"medication_given" db:"medication_given"`
	Disposition     string    `json:"disposition" db:"disposition"`
	NurseName       string    `json:"nurse_name" db:"nurse_name"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// VisitWithStudent joins visit rows with student display fields.
type VisitWithStudent struct {
	Visit
	FullName   string `json:"full_name" db:"full_name"`
	GradeLevel int    `json:"grade_level" db:"grade_level"`
	Section    string `json:"section" db:"section"`
	Sex        string `json:"sex" db:"sex"`
}

// CreateVisitRequest represents visit creation parameters. BloodPressure may
// carry a combined "120/80" reading, which overrides Systolic/Diastolic.
type CreateVisitRequest struct {
	StudentID       string   `json:"student_id" binding:"required"`
	VisitDate       string   `json:"visit_date" binding:"required"`
	TimeIn          string   `json:"time_in"`
	ChiefComplaint  string   `json:"chief_complaint"`
	BloodPressure   string   `json:"blood_pressure"`
	Systolic        *int     `json:"systolic"`
	Diastolic       *int     `json:"diastolic"`
	Temperature     *float64 `json:"temperature"`
	Assessment      string   `json:"assessment"`
	Intervention    string   `json:"intervention"`
	MedicationGiven string   `json:"medication_given"`
	Disposition     string   `json:"disposition"`
	NurseName       string   `json:"nurse_name"`
}

// UpdateVisitRequest represents visit update parameters.
type UpdateVisitRequest struct {
	VisitDate       string   `json:"visit_date" binding:"required"`
	TimeIn          string   `json:"time_in"`
	ChiefComplaint  string   `json:"chief_complaint"`
	BloodPressure   string   `json:"blood_pressure"`
	Systolic        *int     `json:"systolic"`
	Diastolic       *int     `json:"diastolic"`
	Temperature     *float64 `json:"temperature"`
	Assessment      string   `json:"assessment"`
	Intervention    string   `json:"intervention"`
	MedicationGiven string   `json:"medication_given"`
	Disposition     string   `json:"disposition"`
	NurseName       string   `json:"nurse_name"`
}
