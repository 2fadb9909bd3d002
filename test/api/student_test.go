package api_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestStudent(t *testing.T) (string, string) {
	t.Helper()

	name := fmt.Sprintf("Test Student %d", time.Now().UnixNano())
	resp := makeRequest(http.MethodPost, "/students", map[string]interface{}{
		"full_name":                name,
		"grade_level":              9,
		"section":                  "Sampaguita",
		"sex":                      "Male",
		"dob":                      "2012-01-15",
		"contact_number":           "09171234567",
		"address":                  "Quezon City",
		"emergency_contact_person": "Maria Dela Cruz",
		"emergency_contact_number": "09179876543",
	}, authToken)
	require.Equal(t, http.StatusCreated, resp.Code, "create student: %s", resp.Body)

	id, _ := resp.Map(t)["id"].(string)
	require.NotEmpty(t, id)
	t.Cleanup(func() {
		makeRequest(http.MethodDelete, "/students/"+id, nil, authToken)
	})
	return id, name
}

func TestStudentFlow(t *testing.T) {
	requireServer(t)

	id, name := createTestStudent(t)

	getResp := makeRequest(http.MethodGet, "/students/"+id, nil, authToken)
	require.Equal(t, http.StatusOK, getResp.Code)
	student := getResp.Map(t)
	assert.Equal(t, name, student["full_name"])
	assert.Equal(t, float64(9), student["grade_level"])
	assert.Equal(t, "2012-01-15", student["dob"])

	// Partial update: only the grade changes.
	updateResp := makeRequest(http.MethodPut, "/students/"+id, map[string]interface{}{
		"grade_level": 10,
	}, authToken)
	require.Equal(t, http.StatusOK, updateResp.Code, "update student: %s", updateResp.Body)
	updated := updateResp.Map(t)
	assert.Equal(t, float64(10), updated["grade_level"])
	assert.Equal(t, name, updated["full_name"])
	assert.Equal(t, "Sampaguita", updated["section"])
}

func TestStudentValidation(t *testing.T) {
	requireServer(t)

	base := map[string]interface{}{
		"full_name":   "Invalid Student",
		"grade_level": 9,
		"section":     "Rosal",
		"sex":         "Female",
		"dob":         "2011-03-20",
	}

	tests := []struct {
		name    string
		field   string
		value   interface{}
		message string
	}{
		{"grade too low", "grade_level", 6, "Grade level must be between 7 and 12"},
		{"grade too high", "grade_level", 13, "Grade level must be between 7 and 12"},
		{"sex other", "sex", "Other", "Invalid sex value. Must be Male or Female"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := map[string]interface{}{}
			for k, v := range base {
				body[k] = v
			}
			body[tt.field] = tt.value

			resp := makeRequest(http.MethodPost, "/students", body, authToken)
			assert.Equal(t, http.StatusBadRequest, resp.Code)
			assert.Equal(t, tt.message, resp.ErrorMessage())
		})
	}
}

func TestStudentDeleteCascadesVisits(t *testing.T) {
	requireServer(t)

	id, _ := createTestStudent(t)

	visitResp := makeRequest(http.MethodPost, "/visits", map[string]interface{}{
		"student_id":      id,
		"visit_date":      time.Now().Format("2006-01-02"),
		"time_in":         "09:30",
		"chief_complaint": "Headache",
		"disposition":     "Returned to Class",
	}, authToken)
	require.Equal(t, http.StatusCreated, visitResp.Code, "create visit: %s", visitResp.Body)

	deleteResp := makeRequest(http.MethodDelete, "/students/"+id, nil, authToken)
	require.Equal(t, http.StatusOK, deleteResp.Code)
	assert.Equal(t, "Student deleted successfully", deleteResp.Map(t)["message"])

	getResp := makeRequest(http.MethodGet, "/students/"+id, nil, authToken)
	assert.Equal(t, http.StatusNotFound, getResp.Code)

	// The visit went with the student.
	visitsResp := makeRequest(http.MethodGet, fmt.Sprintf("/students/%s/visits", id), nil, authToken)
	if visitsResp.Code == http.StatusOK {
		assert.Empty(t, visitsResp.Slice(t))
	}
}
