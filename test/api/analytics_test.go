package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardStats(t *testing.T) {
	requireServer(t)

	resp := makeRequest(http.MethodGet, "/analytics/stats", nil, authToken)
	require.Equal(t, http.StatusOK, resp.Code)

	stats := resp.Map(t)
	for _, key := range []string{"totalStudents", "visitsToday", "visitsThisMonth", "commonIllness"} {
		assert.Contains(t, stats, key)
	}
	assert.NotEmpty(t, stats["commonIllness"], `commonIllness is "N/A" when there is no data, never empty`)
}

func TestIllnessFrequency(t *testing.T) {
	requireServer(t)

	resp := makeRequest(http.MethodGet, "/analytics/illness-frequency", nil, authToken)
	require.Equal(t, http.StatusOK, resp.Code)

	rows := resp.Slice(t)
	assert.LessOrEqual(t, len(rows), 10)
	for _, item := range rows {
		row, ok := item.(map[string]interface{})
		require.True(t, ok)
		assert.Contains(t, row, "chief_complaint")
		assert.Contains(t, row, "count")
	}
}
