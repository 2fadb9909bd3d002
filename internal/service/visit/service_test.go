package visit

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ateriyan143-bot/school-clinic/internal/model"
	"github.com/ateriyan143-bot/school-clinic/pkg/apperr"
)

type fakeVisitRepo struct {
	visits map[uuid.UUID]*model.Visit
}

func newFakeVisitRepo() *fakeVisitRepo {
	return &fakeVisitRepo{visits: make(map[uuid.UUID]*model.Visit)}
}

func (f *fakeVisitRepo) Create(_ context.Context, visit *model.Visit) error {
	stored := *visit
	f.visits[visit.ID] = &stored
	return nil
}

func (f *fakeVisitRepo) Get(_ context.Context, tenantID string, id uuid.UUID) (*model.Visit, error) {
	visit, ok := f.visits[id]
	if !ok || visit.TenantID != tenantID {
		return nil, apperr.NotFound("visit")
	}
	copied := *visit
	return &copied, nil
}

func (f *fakeVisitRepo) ListByStudent(_ context.Context, tenantID string, studentID uuid.UUID) ([]*model.Visit, error) {
	var out []*model.Visit
	for _, visit := range f.visits {
		if visit.TenantID == tenantID && visit.StudentID == studentID {
			copied := *visit
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeVisitRepo) ListWithStudents(_ context.Context, tenantID string) ([]*model.VisitWithStudent, error) {
	var out []*model.VisitWithStudent
	for _, visit := range f.visits {
		if visit.TenantID == tenantID {
			out = append(out, &model.VisitWithStudent{Visit: *visit})
		}
	}
	return out, nil
}

func (f *fakeVisitRepo) Update(_ context.Context, visit *model.Visit) error {
	if _, ok := f.visits[visit.ID]; !ok {
		return apperr.NotFound("visit")
	}
	stored := *visit
	f.visits[visit.ID] = &stored
	return nil
}

type fakeStudentRepo struct {
	students map[uuid.UUID]*model.Student
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{students: make(map[uuid.UUID]*model.Student)}
}

func (f *fakeStudentRepo) Create(_ context.Context, student *model.Student) error {
	stored := *student
	f.students[student.ID] = &stored
	return nil
}

func (f *fakeStudentRepo) Get(_ context.Context, tenantID string, id uuid.UUID) (*model.Student, error) {
	student, ok := f.students[id]
	if !ok || student.TenantID != tenantID {
		return nil, apperr.NotFound("student")
	}
	copied := *student
	return &copied, nil
}

func (f *fakeStudentRepo) List(_ context.Context, _ string) ([]*model.StudentWithLastVisit, error) {
	return nil, nil
}

func (f *fakeStudentRepo) Update(_ context.Context, student *model.Student) error {
	if _, ok := f.students[student.ID]; !ok {
		return apperr.NotFound("student")
	}
	stored := *student
	f.students[student.ID] = &stored
	return nil
}

func (f *fakeStudentRepo) Delete(_ context.Context, _ string, id uuid.UUID) error {
	delete(f.students, id)
	return nil
}

const testTenant = "default-tenant"

func intPtr(v int) *int { return &v }

func TestParseBloodPressure(t *testing.T) {
	tests := []struct {
		name      string
		combined  string
		systolic  *int
		diastolic *int
		wantSys   *int
		wantDia   *int
	}{
		{"combined overrides separate fields", "130/85", intPtr(120), intPtr(80), intPtr(130), intPtr(85)},
		{"combined with spaces", " 110 / 70 ", nil, nil, intPtr(110), intPtr(70)},
		{"empty keeps separate fields", "", intPtr(120), intPtr(80), intPtr(120), intPtr(80)},
		{"no slash keeps separate fields", "120", intPtr(100), intPtr(60), intPtr(100), intPtr(60)},
		{"non-numeric keeps separate fields", "high/low", intPtr(120), intPtr(80), intPtr(120), intPtr(80)},
		{"empty with no fallback", "", nil, nil, nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys, dia := parseBloodPressure(tt.combined, tt.systolic, tt.diastolic)
			if tt.wantSys == nil {
				assert.Nil(t, sys)
			} else {
				require.NotNil(t, sys)
				assert.Equal(t, *tt.wantSys, *sys)
			}
			if tt.wantDia == nil {
				assert.Nil(t, dia)
			} else {
				require.NotNil(t, dia)
				assert.Equal(t, *tt.wantDia, *dia)
			}
		})
	}
}

func seedStudent(repo *fakeStudentRepo) *model.Student {
	student := &model.Student{
		TenantID:   testTenant,
		ID:         uuid.New(),
		FullName:   "Juan Dela Cruz",
		GradeLevel: 9,
		Section:    "Sampaguita",
		Sex:        model.SexMale,
	}
	repo.students[student.ID] = student
	return student
}

func TestCreateVisit(t *testing.T) {
	studentRepo := newFakeStudentRepo()
	visitRepo := newFakeVisitRepo()
	svc := NewService(visitRepo, studentRepo)
	student := seedStudent(studentRepo)

	visit, err := svc.Create(context.Background(), testTenant, &model.CreateVisitRequest{
		StudentID:      student.ID.String(),
		VisitDate:      "2026-08-29",
		TimeIn:         "09:30",
		ChiefComplaint: "Headache",
		BloodPressure:  "130/85",
		Systolic:       intPtr(120),
		Diastolic:      intPtr(80),
		Disposition:    model.DispositionReturnedToClass,
		NurseName:      "Nurse Reyes",
	})
	require.NoError(t, err)

	assert.Equal(t, student.ID, visit.StudentID)
	assert.Equal(t, "2026-08-29", visit.VisitDate.String())
	require.NotNil(t, visit.Systolic)
	require.NotNil(t, visit.Diastolic)
	assert.Equal(t, 130, *visit.Systolic)
	assert.Equal(t, 85, *visit.Diastolic)
	assert.Contains(t, visitRepo.visits, visit.ID)
}

func TestCreateVisitUnknownStudent(t *testing.T) {
	svc := NewService(newFakeVisitRepo(), newFakeStudentRepo())

	_, err := svc.Create(context.Background(), testTenant, &model.CreateVisitRequest{
		StudentID: uuid.New().String(),
		VisitDate: "2026-08-29",
	})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	_, err = svc.Create(context.Background(), testTenant, &model.CreateVisitRequest{
		StudentID: "not-a-uuid",
		VisitDate: "2026-08-29",
	})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestCreateVisitInvalidDate(t *testing.T) {
	studentRepo := newFakeStudentRepo()
	svc := NewService(newFakeVisitRepo(), studentRepo)
	student := seedStudent(studentRepo)

	_, err := svc.Create(context.Background(), testTenant, &model.CreateVisitRequest{
		StudentID: student.ID.String(),
		VisitDate: "29-08-2026",
	})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestUpdateVisit(t *testing.T) {
	studentRepo := newFakeStudentRepo()
	visitRepo := newFakeVisitRepo()
	svc := NewService(visitRepo, studentRepo)
	student := seedStudent(studentRepo)

	created, err := svc.Create(context.Background(), testTenant, &model.CreateVisitRequest{
		StudentID:   student.ID.String(),
		VisitDate:   "2026-08-29",
		Disposition: model.DispositionUnderObservation,
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), testTenant, created.ID, &model.UpdateVisitRequest{
		VisitDate:     "2026-08-29",
		TimeIn:        "10:15",
		BloodPressure: "110/70",
		Disposition:   model.DispositionSentHome,
	})
	require.NoError(t, err)

	assert.Equal(t, model.DispositionSentHome, updated.Disposition)
	require.NotNil(t, updated.Systolic)
	assert.Equal(t, 110, *updated.Systolic)
	assert.Equal(t, student.ID, updated.StudentID, "update never moves a visit to another student")

	_, err = svc.Update(context.Background(), testTenant, uuid.New(), &model.UpdateVisitRequest{VisitDate: "2026-08-29"})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestListByStudentScopedToTenant(t *testing.T) {
	studentRepo := newFakeStudentRepo()
	visitRepo := newFakeVisitRepo()
	svc := NewService(visitRepo, studentRepo)
	student := seedStudent(studentRepo)

	visitRepo.visits[uuid.New()] = &model.Visit{TenantID: testTenant, ID: uuid.New(), StudentID: student.ID}
	foreign := uuid.New()
	visitRepo.visits[foreign] = &model.Visit{TenantID: "other-tenant", ID: foreign, StudentID: student.ID}

	visits, err := svc.ListByStudent(context.Background(), testTenant, student.ID)
	require.NoError(t, err)
	assert.Len(t, visits, 1)
}
