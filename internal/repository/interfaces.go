package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ateriyan143-bot/school-clinic/internal/model"
)

type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	Get(ctx context.Context, tenantID string, id uuid.UUID) (*model.Account, error)
	GetByEmail(ctx context.Context, tenantID, email string) (*model.Account, error)
	List(ctx context.Context, tenantID string) ([]*model.Account, error)
	Update(ctx context.Context, account *model.Account) error
	UpdatePasswordHash(ctx context.Context, tenantID string, id uuid.UUID, hash string) error
	Delete(ctx context.Context, tenantID string, id uuid.UUID) error
	EmailInUse(ctx context.Context, tenantID, email string, excludeID uuid.UUID) (bool, error)
}

type StudentRepository interface {
	Create(ctx context.Context, student *model.Student) error
	Get(ctx context.Context, tenantID string, id uuid.UUID) (*model.Student, error)
	List(ctx context.Context, tenantID string) ([]*model.StudentWithLastVisit, error)
	Update(ctx context.Context, student *model.Student) error
	Delete(ctx context.Context, tenantID string, id uuid.UUID) error
}

type VisitRepository interface {
	Create(ctx context.Context, visit *model.Visit) error
	Get(ctx context.Context, tenantID string, id uuid.UUID) (*model.Visit, error)
	ListByStudent(ctx context.Context, tenantID string, studentID uuid.UUID) ([]*model.Visit, error)
	ListWithStudents(ctx context.Context, tenantID string) ([]*model.VisitWithStudent, error)
	Update(ctx context.Context, visit *model.Visit) error
}

type AnalyticsRepository interface {
	CountStudents(ctx context.Context, tenantID string) (int, error)
	CountVisitsOn(ctx context.Context, tenantID string, date model.Date) (int, error)
	CountVisitsSince(ctx context.Context, tenantID string, date model.Date) (int, error)
	TopChiefComplaintSince(ctx context.Context, tenantID string, date model.Date) (string, error)
	IllnessFrequency(ctx context.Context, tenantID string, limit int) ([]*model.IllnessFrequency, error)
}
