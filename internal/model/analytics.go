package model

// DashboardStats holds the tenant dashboard aggregates.
type DashboardStats struct {
	TotalStudents   int    `json:"totalStudents"`
	VisitsToday     int    `json:"visitsToday"`
	VisitsThisMonth int    `json:"visitsThisMonth"`
	CommonIllness   string `json:"commonIllness"`
}

// IllnessFrequency is one row of the chief-complaint frequency breakdown.
type IllnessFrequency struct {
	ChiefComplaint string `json:"chief_complaint" db:"chief_complaint"`
	Count          int    `json:"count" db:"count"`
}
