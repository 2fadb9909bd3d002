package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ateriyan143-bot/school-clinic/internal/model"
)

type fakeAnalyticsRepo struct {
	students     int
	visitsByDate map[string]int
	visitsSince  map[string]int
	topComplaint string
	frequency    []*model.IllnessFrequency

	calls int
}

func (f *fakeAnalyticsRepo) CountStudents(_ context.Context, _ string) (int, error) {
	f.calls++
	return f.students, nil
}

func (f *fakeAnalyticsRepo) CountVisitsOn(_ context.Context, _ string, date model.Date) (int, error) {
	return f.visitsByDate[date.String()], nil
}

func (f *fakeAnalyticsRepo) CountVisitsSince(_ context.Context, _ string, date model.Date) (int, error) {
	return f.visitsSince[date.String()], nil
}

func (f *fakeAnalyticsRepo) TopChiefComplaintSince(_ context.Context, _ string, _ model.Date) (string, error) {
	return f.topComplaint, nil
}

func (f *fakeAnalyticsRepo) IllnessFrequency(_ context.Context, _ string, limit int) ([]*model.IllnessFrequency, error) {
	if len(f.frequency) > limit {
		return f.frequency[:limit], nil
	}
	return f.frequency, nil
}

const testTenant = "default-tenant"

func TestStats(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		students: 42,
		visitsByDate: map[string]int{
			"2026-08-30": 3,
		},
		visitsSince: map[string]int{
			"2026-08-01": 17,
		},
		topComplaint: "Headache",
	}
	svc := NewService(repo)
	svc.now = func() time.Time {
		return time.Date(2026, time.August, 30, 10, 0, 0, 0, time.UTC)
	}

	stats, err := svc.Stats(context.Background(), testTenant)
	require.NoError(t, err)

	assert.Equal(t, 42, stats.TotalStudents)
	assert.Equal(t, 3, stats.VisitsToday)
	assert.Equal(t, 17, stats.VisitsThisMonth)
	assert.Equal(t, "Headache", stats.CommonIllness)
}

func TestStatsEmptyTenant(t *testing.T) {
	svc := NewService(&fakeAnalyticsRepo{})
	svc.now = func() time.Time {
		return time.Date(2026, time.August, 30, 10, 0, 0, 0, time.UTC)
	}

	stats, err := svc.Stats(context.Background(), testTenant)
	require.NoError(t, err)

	assert.Equal(t, 0, stats.TotalStudents)
	assert.Equal(t, 0, stats.VisitsToday)
	assert.Equal(t, 0, stats.VisitsThisMonth)
	assert.Equal(t, "N/A", stats.CommonIllness)
}

func TestStatsCached(t *testing.T) {
	repo := &fakeAnalyticsRepo{students: 5}
	svc := NewService(repo)

	_, err := svc.Stats(context.Background(), testTenant)
	require.NoError(t, err)

	repo.students = 99
	stats, err := svc.Stats(context.Background(), testTenant)
	require.NoError(t, err)

	assert.Equal(t, 5, stats.TotalStudents, "second read within the TTL hits the cache")
	assert.Equal(t, 1, repo.calls)
}

func TestStatsCachePerTenant(t *testing.T) {
	repo := &fakeAnalyticsRepo{students: 5}
	svc := NewService(repo)

	_, err := svc.Stats(context.Background(), "tenant-a")
	require.NoError(t, err)

	repo.students = 9
	stats, err := svc.Stats(context.Background(), "tenant-b")
	require.NoError(t, err)

	assert.Equal(t, 9, stats.TotalStudents, "other tenants are not served from the cache")
}

func TestIllnessFrequency(t *testing.T) {
	rows := make([]*model.IllnessFrequency, 0, 12)
	for i := 0; i < 12; i++ {
		rows = append(rows, &model.IllnessFrequency{ChiefComplaint: "Complaint", Count: 12 - i})
	}
	svc := NewService(&fakeAnalyticsRepo{frequency: rows})

	got, err := svc.IllnessFrequency(context.Background(), testTenant)
	require.NoError(t, err)
	assert.Len(t, got, frequencyLimit)
}
