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

type studentRepository struct {
	db *sqlx.DB
}

func NewStudentRepository(db *sqlx.DB) repository.StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Create(ctx context.Context, student *model.Student) error {
	query := `
		INSERT INTO students (
			tenant_id, id, full_name, grade_level, section, sex, dob,
			contact_number, address, emergency_contact_person, emergency_contact_number,
			profile_image_url, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	student.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		student.TenantID,
		student.ID,
		student.FullName,
		student.GradeLevel,
		student.Section,
		student.Sex,
		student.DOB,
		student.ContactNumber,
		student.Address,
		student.EmergencyContactPerson,
		student.EmergencyContactNumber,
		student.ProfileImageURL,
		student.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create student: %w", err)
	}
	return nil
}

func (r *studentRepository) Get(ctx context.Context, tenantID string, id uuid.UUID) (*model.Student, error) {
	query := `SELECT * FROM students WHERE tenant_id = $1 AND id = $2`
	var student model.Student
	err := r.db.GetContext(ctx, &student, query, tenantID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("student")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	return &student, nil
}

func (r *studentRepository) List(ctx context.Context, tenantID string) ([]*model.StudentWithLastVisit, error) {
	query := `
		SELECT s.*,
			(SELECT MAX(v.visit_date) FROM clinic_visits v
			 WHERE v.tenant_id = s.tenant_id AND v.student_id = s.id) AS last_visit
		FROM students s
		WHERE s.tenant_id = $1
		ORDER BY s.full_name ASC
	`
	students := []*model.StudentWithLastVisit{}
	if err := r.db.SelectContext(ctx, &students, query, tenantID); err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return students, nil
}

func (r *studentRepository) Update(ctx context.Context, student *model.Student) error {
	query := `
		UPDATE students
		SET full_name = $1, grade_level = $2, section = $3, sex = $4, dob = $5,
			contact_number = $6, address = $7, emergency_contact_person = $8,
			emergency_contact_number = $9, profile_image_url = $10
		WHERE tenant_id = $11 AND id = $12
	`
	res, err := r.db.ExecContext(ctx, query,
		student.FullName,
		student.GradeLevel,
		student.Section,
		student.Sex,
		student.DOB,
		student.ContactNumber,
		student.Address,
		student.EmergencyContactPerson,
		student.EmergencyContactNumber,
		student.ProfileImageURL,
		student.TenantID,
		student.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update student: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return apperr.NotFound("student")
	}
	return nil
}

// Delete removes the student row; the foreign key cascades to clinic_visits.
func (r *studentRepository) Delete(ctx context.Context, tenantID string, id uuid.UUID) error {
	query := `DELETE FROM students WHERE tenant_id = $1 AND id = $2`
	res, err := r.db.ExecContext(ctx, query, tenantID, id)
	if err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return apperr.NotFound("student")
	}
	return nil
}
