package student

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/ateriyan143-bot/school-clinic/internal/model"
	"github.com/ateriyan143-bot/school-clinic/internal/repository"
	"github.com/ateriyan143-bot/school-clinic/pkg/apperr"
)

type Service struct {
	studentRepo repository.StudentRepository
}

func NewService(studentRepo repository.StudentRepository) *Service {
	return &Service{studentRepo: studentRepo}
}

func validateGradeLevel(grade int) error {
	if grade < model.MinGradeLevel || grade > model.MaxGradeLevel {
		return apperr.Validation("Grade level must be between 7 and 12")
	}
	return nil
}

// validateSex accepts only the persisted domain; the intake form's "Other"
// option is rejected rather than silently coerced.
func validateSex(sex string) error {
	if sex != model.SexMale && sex != model.SexFemale {
		return apperr.Validation("Invalid sex value. Must be Male or Female")
	}
	return nil
}

func (s *Service) List(ctx context.Context, tenantID string) ([]*model.StudentWithLastVisit, error) {
	students, err := s.studentRepo.List(ctx, tenantID)
	if err != nil {
		return nil, apperr.Internal("failed to fetch students", err)
	}
	return students, nil
}

func (s *Service) Get(ctx context.Context, tenantID string, id uuid.UUID) (*model.Student, error) {
	student, err := s.studentRepo.Get(ctx, tenantID, id)
	if err != nil {
		return nil, apperr.From(err, "failed to fetch student")
	}
	return student, nil
}

func (s *Service) Create(ctx context.Context, tenantID string, req *model.CreateStudentRequest) (*model.Student, error) {
	if err := validateGradeLevel(req.GradeLevel); err != nil {
		return nil, err
	}
	if err := validateSex(req.Sex); err != nil {
		return nil, err
	}

	dob, err := model.ParseDate(req.DOB)
	if err != nil {
		return nil, apperr.Validation("Invalid date of birth")
	}

	imageURL, err := model.NormalizeImageDataURL(req.ProfileImageURL)
	if err != nil {
		return nil, err
	}

	student := &model.Student{
		TenantID:               tenantID,
		ID:                     uuid.New(),
		FullName:               strings.TrimSpace(req.FullName),
		GradeLevel:             req.GradeLevel,
		Section:                req.Section,
		Sex:                    req.Sex,
		DOB:                    dob,
		ContactNumber:          req.ContactNumber,
		Address:                req.Address,
		EmergencyContactPerson: req.EmergencyContactPerson,
		EmergencyContactNumber: req.EmergencyContactNumber,
		ProfileImageURL:        imageURL,
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, apperr.Internal("failed to create student", err)
	}
	return student, nil
}

// Update is a partial merge: fields absent from the request keep their stored
// values, then the merged record is re-validated before writing.
func (s *Service) Update(ctx context.Context, tenantID string, id uuid.UUID, req *model.UpdateStudentRequest) (*model.Student, error) {
	student, err := s.studentRepo.Get(ctx, tenantID, id)
	if err != nil {
		return nil, apperr.From(err, "failed to update student")
	}

	if req.FullName != nil {
		student.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.GradeLevel != nil {
		student.GradeLevel = *req.GradeLevel
	}
	if req.Section != nil {
		student.Section = *req.Section
	}
	if req.Sex != nil {
		student.Sex = *req.Sex
	}
	if req.DOB != nil {
		dob, err := model.ParseDate(*req.DOB)
		if err != nil {
			return nil, apperr.Validation("Invalid date of birth")
		}
		student.DOB = dob
	}
	if req.ContactNumber != nil {
		student.ContactNumber = *req.ContactNumber
	}
	if req.Address != nil {
		student.Address = *req.Address
	}
	if req.EmergencyContactPerson != nil {
		student.EmergencyContactPerson = *req.EmergencyContactPerson
	}
	if req.EmergencyContactNumber != nil {
		student.EmergencyContactNumber = *req.EmergencyContactNumber
	}
	if req.ProfileImageURL != nil {
		student.ProfileImageURL = req.ProfileImageURL
	}

	if student.FullName == "" || student.Section == "" || student.DOB.IsZero() {
		return nil, apperr.Validation("Missing required student fields")
	}
	if err := validateSex(student.Sex); err != nil {
		return nil, err
	}
	if err := validateGradeLevel(student.GradeLevel); err != nil {
		return nil, err
	}

	imageURL, err := model.NormalizeImageDataURL(student.ProfileImageURL)
	if err != nil {
		return nil, err
	}
	student.ProfileImageURL = imageURL

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, apperr.From(err, "failed to update student")
	}
	return student, nil
}

// Delete removes the student; visits cascade at the storage layer.
func (s *Service) Delete(ctx context.Context, tenantID string, id uuid.UUID) error {
	if err := s.studentRepo.Delete(ctx, tenantID, id); err != nil {
		return apperr.From(err, "failed to delete student")
	}
	return nil
}
