package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ateriyan143-bot/school-clinic/internal/model"
	"github.com/ateriyan143-bot/school-clinic/internal/repository"
)

type analyticsRepository struct {
	db *sqlx.DB
}

func NewAnalyticsRepository(db *sqlx.DB) repository.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) CountStudents(ctx context.Context, tenantID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM students WHERE tenant_id = $1`, tenantID)
	if err != nil {
		return 0, fmt.Errorf("failed to count students: %w", err)
	}
	return count, nil
}

func (r *analyticsRepository) CountVisitsOn(ctx context.Context, tenantID string, date model.Date) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM clinic_visits WHERE tenant_id = $1 AND visit_date = $2`,
		tenantID, date)
	if err != nil {
		return 0, fmt.Errorf("failed to count visits: %w", err)
	}
	return count, nil
}

func (r *analyticsRepository) CountVisitsSince(ctx context.Context, tenantID string, date model.Date) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM clinic_visits WHERE tenant_id = $1 AND visit_date >= $2`,
		tenantID, date)
	if err != nil {
		return 0, fmt.Errorf("failed to count visits: %w", err)
	}
	return count, nil
}

// TopChiefComplaintSince returns the most frequent chief complaint on or
// after the given date, or "" when there are no visits.
func (r *analyticsRepository) TopChiefComplaintSince(ctx context.Context, tenantID string, date model.Date) (string, error) {
	var complaint string
	err := r.db.GetContext(ctx, &complaint,
		`SELECT chief_complaint FROM clinic_visits
		 WHERE tenant_id = $1 AND visit_date >= $2
		 GROUP BY chief_complaint
		 ORDER BY COUNT(*) DESC
		 LIMIT 1`,
		tenantID, date)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get top chief complaint: %w", err)
	}
	return complaint, nil
}

func (r *analyticsRepository) IllnessFrequency(ctx context.Context, tenantID string, limit int) ([]*model.IllnessFrequency, error) {
	rows := []*model.IllnessFrequency{}
	err := r.db.SelectContext(ctx, &rows,
		`SELECT chief_complaint, COUNT(*) AS count FROM clinic_visits
		 WHERE tenant_id = $1
		 GROUP BY chief_complaint
		 ORDER BY count DESC
		 LIMIT $2`,
		tenantID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get illness frequency: %w", err)
	}
	return rows, nil
}
