package visit

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/ateriyan143-bot/school-clinic/internal/model"
	"github.com/ateriyan143-bot/school-clinic/internal/repository"
	"github.com/ateriyan143-bot/school-clinic/pkg/apperr"
)

type Service struct {
	visitRepo   repository.VisitRepository
	studentRepo repository.StudentRepository
}

func NewService(visitRepo repository.VisitRepository, studentRepo repository.StudentRepository) *Service {
	return &Service{
		visitRepo:   visitRepo,
		studentRepo: studentRepo,
	}
}

// parseBloodPressure splits a combined "120/80" reading into systolic and
// diastolic values, overriding separately supplied fields when present.
func parseBloodPressure(combined string, systolic, diastolic *int) (*int, *int) {
	sysStr, diaStr, ok := strings.Cut(combined, "/")
	if !ok {
		return systolic, diastolic
	}

	sys, errSys := strconv.Atoi(strings.TrimSpace(sysStr))
	dia, errDia := strconv.Atoi(strings.TrimSpace(diaStr))
	if errSys != nil || errDia != nil {
		return systolic, diastolic
	}
	return &sys, &dia
}

func (s *Service) ListWithStudents(ctx context.Context, tenantID string) ([]*model.VisitWithStudent, error) {
	visits, err := s.visitRepo.ListWithStudents(ctx, tenantID)
	if err != nil {
		return nil, apperr.Internal("failed to fetch visits", err)
	}
	return visits, nil
}

func (s *Service) ListByStudent(ctx context.Context, tenantID string, studentID uuid.UUID) ([]*model.Visit, error) {
	visits, err := s.visitRepo.ListByStudent(ctx, tenantID, studentID)
	if err != nil {
		return nil, apperr.Internal("failed to fetch visits", err)
	}
	return visits, nil
}

func (s *Service) Create(ctx context.Context, tenantID string, req *model.CreateVisitRequest) (*model.Visit, error) {
	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		return nil, apperr.Validation("Invalid student ID")
	}

	// The referenced student must exist within the same tenant.
	if _, err := s.studentRepo.Get(ctx, tenantID, studentID); err != nil {
		return nil, apperr.From(err, "failed to create visit")
	}

	visitDate, err := model.ParseDate(req.VisitDate)
	if err != nil {
		return nil, apperr.Validation("Invalid visit date")
	}

	systolic, diastolic := parseBloodPressure(req.BloodPressure, req.Systolic, req.Diastolic)

	visit := &model.Visit{
		TenantID:        tenantID,
		ID:              uuid.New(),
		StudentID:       studentID,
		VisitDate:       visitDate,
		TimeIn:          req.TimeIn,
		ChiefComplaint:  req.ChiefComplaint,
		Systolic:        systolic,
		Diastolic:       diastolic,
		Temperature:     req.Temperature,
		Assessment:      req.Assessment,
		Intervention:    req.Intervention,
		MedicationGiven: req.MedicationGiven,
		Disposition:     req.Disposition,
		NurseName:       req.NurseName,
	}

	if err := s.visitRepo.Create(ctx, visit); err != nil {
		return nil, apperr.Internal("failed to create visit", err)
	}
	return visit, nil
}

func (s *Service) Update(ctx context.Context, tenantID string, id uuid.UUID, req *model.UpdateVisitRequest) (*model.Visit, error) {
	visit, err := s.visitRepo.Get(ctx, tenantID, id)
	if err != nil {
		return nil, apperr.From(err, "failed to update visit")
	}

	visitDate, err := model.ParseDate(req.VisitDate)
	if err != nil {
		return nil, apperr.Validation("Invalid visit date")
	}

	systolic, diastolic := parseBloodPressure(req.BloodPressure, req.Systolic, req.Diastolic)

	visit.VisitDate = visitDate
	visit.TimeIn = req.TimeIn
	visit.ChiefComplaint = req.ChiefComplaint
	visit.Systolic = systolic
	visit.Diastolic = diastolic
	visit.Temperature = req.Temperature
	visit.Assessment = req.Assessment
	visit.Intervention = req.Intervention
	visit.MedicationGiven = req.MedicationGiven
	visit.Disposition = req.Disposition
	visit.NurseName = req.NurseName

	if err := s.visitRepo.Update(ctx, visit); err != nil {
		return nil, apperr.From(err, "failed to update visit")
	}
	return visit, nil
}
