package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/ateriyan143-bot/school-clinic/internal/model"
	"github.com/ateriyan143-bot/school-clinic/pkg/security"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS clinic_users (
		tenant_id TEXT NOT NULL,
		id UUID NOT NULL,
		first_name TEXT NOT NULL,
		middle_name TEXT,
		last_name TEXT NOT NULL,
		dob DATE NOT NULL,
		address TEXT NOT NULL,
		email TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		role VARCHAR(10) NOT NULL CHECK (role IN ('Nurse', 'Admin')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		profile_image_url TEXT,
		PRIMARY KEY (tenant_id, id)
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_clinic_users_tenant_email
		ON clinic_users (tenant_id, LOWER(email))`,
	`CREATE TABLE IF NOT EXISTS students (
		tenant_id TEXT NOT NULL,
		id UUID NOT NULL,
		full_name TEXT NOT NULL,
		grade_level INT NOT NULL CHECK (grade_level BETWEEN 7 AND 12),
		section TEXT NOT NULL,
		sex VARCHAR(10) NOT NULL CHECK (sex IN ('Male', 'Female')),
		dob DATE NOT NULL,
		contact_number TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		emergency_contact_person TEXT NOT NULL DEFAULT '',
		emergency_contact_number TEXT NOT NULL DEFAULT '',
		profile_image_url TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (tenant_id, id)
	)`,
	`CREATE TABLE IF NOT EXISTS clinic_visits (
		tenant_id TEXT NOT NULL,
		id UUID NOT NULL,
		student_id UUID NOT NULL,
		visit_date DATE NOT NULL,
		time_in TEXT NOT NULL DEFAULT '',
		chief_complaint TEXT NOT NULL DEFAULT '',
		systolic INT,
		diastolic INT,
		temperature NUMERIC(4,1),
		assessment TEXT NOT NULL DEFAULT '',
		intervention TEXT NOT NULL DEFAULT '',
		medication_given TEXT NOT NULL DEFAULT '',
		disposition TEXT NOT NULL DEFAULT '',
		nurse_name TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (tenant_id, id),
		FOREIGN KEY (tenant_id, student_id)
			REFERENCES students (tenant_id, id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_clinic_visits_student
		ON clinic_visits (tenant_id, student_id)`,
	`CREATE INDEX IF NOT EXISTS idx_clinic_visits_date
		ON clinic_visits (tenant_id, visit_date)`,
}

// Migrate applies the schema idempotently. It runs before the server accepts
// traffic; there is no lazy initialization path.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// EnsureBootstrapAdmin seeds the configured admin account for the tenant if
// it does not exist yet.
func EnsureBootstrapAdmin(ctx context.Context, db *sqlx.DB, hasher security.PasswordHasher, tenantID, email, password string) error {
	var exists bool
	err := db.GetContext(ctx, &exists,
		`SELECT EXISTS (
			SELECT 1 FROM clinic_users WHERE tenant_id = $1 AND LOWER(email) = LOWER($2)
		)`, tenantID, email)
	if err != nil {
		return fmt.Errorf("failed to check bootstrap admin: %w", err)
	}
	if exists {
		return nil
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash bootstrap password: %w", err)
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO clinic_users (
			tenant_id, id, first_name, middle_name, last_name, dob, address, email, password_hash, role
		) VALUES ($1, $2, 'System', NULL, 'Administrator', '1990-01-01', 'N/A', $3, $4, $5)`,
		tenantID, uuid.New(), email, hash, model.RoleAdmin)
	if err != nil {
		return fmt.Errorf("failed to seed bootstrap admin: %w", err)
	}

	log.Info().Str("tenant_id", tenantID).Str("email", email).Msg("seeded bootstrap admin account")
	return nil
}
