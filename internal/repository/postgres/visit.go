package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ateriyan143-bot/school-clinic/internal/model"
	"github.com/ateriyan143-bot/school-clinic/internal/repository"
	"github.com/ateriyan143-bot/school-clinic/pkg/apperr"
)

type visitRepository struct {
	db *sqlx.DB
}

func NewVisitRepository(db *sqlx.DB) repository.VisitRepository {
	return &visitRepository{db: db}
}

func (r *visitRepository) Create(ctx context.Context, visit *model.Visit) error {
	query := `
		INSERT INTO clinic_visits (
			tenant_id, id, student_id, visit_date, time_in, chief_complaint,
			systolic, diastolic, temperature, assessment, intervention,
			medication_given, disposition, nurse_name, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	visit.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		visit.TenantID,
		visit.ID,
		visit.StudentID,
		visit.VisitDate,
		visit.TimeIn,
		visit.ChiefComplaint,
		visit.Systolic,
		visit.Diastolic,
		visit.Temperature,
		visit.Assessment,
		visit.Intervention,
		visit.MedicationGiven,
		visit.Disposition,
		visit.NurseName,
		visit.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create visit: %w", err)
	}
	return nil
}

func (r *visitRepository) Get(ctx context.Context, tenantID string, id uuid.UUID) (*model.Visit, error) {
	query := `SELECT * FROM clinic_visits WHERE tenant_id = $1 AND id = $2`
	var visit model.Visit
	err := r.db.GetContext(ctx, &visit, query, tenantID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("visit")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get visit: %w", err)
	}
	return &visit, nil
}

func (r *visitRepository) ListByStudent(ctx context.Context, tenantID string, studentID uuid.UUID) ([]*model.Visit, error) {
	query := `
		SELECT * FROM clinic_visits
		WHERE tenant_id = $1 AND student_id = $2
		ORDER BY visit_date DESC, time_in DESC
	`
	visits := []*model.Visit{}
	if err := r.db.SelectContext(ctx, &visits, query, tenantID, studentID); err != nil {
		return nil, fmt.Errorf("failed to list visits: %w", err)
	}
	return visits, nil
}

func (r *visitRepository) ListWithStudents(ctx context.Context, tenantID string) ([]*model.VisitWithStudent, error) {
	query := `
		SELECT v.*, s.full_name, s.grade_level, s.section, s.sex
		FROM clinic_visits v
		JOIN students s ON v.tenant_id = s.tenant_id AND v.student_id = s.id
		WHERE v.tenant_id = $1
		ORDER BY v.visit_date DESC, v.time_in DESC
	`
	visits := []*model.VisitWithStudent{}
	if err := r.db.SelectContext(ctx, &visits, query, tenantID); err != nil {
		return nil, fmt.Errorf("failed to list visits: %w", err)
	}
	return visits, nil
}

func (r *visitRepository) Update(ctx context.Context, visit *model.Visit) error {
	query := `
		UPDATE clinic_visits
		SET visit_date = $1, time_in = $2, chief_complaint = $3, systolic = $4,
			diastolic = $5, temperature = $6, assessment = $7, intervention = $8,
			medication_given = $9, disposition = $10, nurse_name = $11
		WHERE tenant_id = $12 AND id = $13
	`
	res, err := r.db.ExecContext(ctx, query,
		visit.VisitDate,
		visit.TimeIn,
		visit.ChiefComplaint,
		visit.Systolic,
		visit.Diastolic,
		visit.Temperature,
		visit.Assessment,
		visit.Intervention,
		visit.MedicationGiven,
		visit.Disposition,
		visit.NurseName,
		visit.TenantID,
		visit.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update visit: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return apperr.NotFound("visit")
	}
	return nil
}
