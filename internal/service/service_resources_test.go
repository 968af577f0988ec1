package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-repa/internal/auth"
	"github.com/MKhiriev/go-repa/internal/config"
	"github.com/MKhiriev/go-repa/internal/mock"
	"github.com/MKhiriev/go-repa/internal/store"
	"github.com/MKhiriev/go-repa/internal/validators"
	"github.com/MKhiriev/go-repa/models"
)

var owner = auth.Principal{ID: "u-1", Roles: []models.Role{{Name: models.RoleUser}}}

func validTraining(course string) models.Training {
	return models.Training{
		CourseName:      course,
		Institution:     "Film School",
		CertificateType: "certificate",
		StudyLevel:      "course",
		KnowledgeArea:   "cinematography",
		Country:         "AR",
		City:            "Buenos Aires",
	}
}

func withOwner(t models.Training, id int64, userID string) models.Training {
	t.ID = id
	t.UserID = userID
	return t
}

// ─────────────────────────────────────────────
// Trainings
// ─────────────────────────────────────────────

func TestTrainingService_ScopesToPrincipal(t *testing.T) {
	f := newAuthFixture(t, config.Limits{})
	svc := NewTrainingService(f.trainings, validators.NewRequestValidator())
	ctx := context.Background()

	f.trainings.EXPECT().CreateTraining(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tr models.Training) (models.Training, error) {
			assert.Equal(t, "u-1", tr.UserID)
			assert.Zero(t, tr.ID)
			tr.ID = 7
			return tr, nil
		})
	created, err := svc.CreateTraining(ctx, owner, withOwner(validTraining("Lighting"), 99, "someone-else"))
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)

	f.trainings.EXPECT().GetTraining(gomock.Any(), int64(8), "u-1").Return(models.Training{}, store.ErrTrainingNotFound)
	_, err = svc.GetTraining(ctx, owner, 8)
	requireKind(t, err, ErrNotFound)

	f.trainings.EXPECT().UpdateTraining(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tr models.Training) (models.Training, error) {
			assert.Equal(t, int64(7), tr.ID)
			assert.Equal(t, "u-1", tr.UserID)
			return tr, nil
		})
	_, err = svc.UpdateTraining(ctx, owner, 7, validTraining("Lighting II"))
	require.NoError(t, err)

	f.trainings.EXPECT().DeleteTraining(gomock.Any(), int64(7), "u-1").Return(nil)
	assert.NoError(t, svc.DeleteTraining(ctx, owner, 7))

	f.trainings.EXPECT().ListTrainings(gomock.Any(), "u-1").Return([]models.Training{}, nil)
	list, err := svc.ListTrainings(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTrainingService_Validation(t *testing.T) {
	f := newAuthFixture(t, config.Limits{})
	svc := NewTrainingService(f.trainings, validators.NewRequestValidator())

	_, err := svc.CreateTraining(context.Background(), owner, models.Training{})
	requireKind(t, err, ErrValidation)

	_, err = svc.GetTraining(context.Background(), owner, 0)
	assert.ErrorIs(t, err, ErrInvalidID)
}

// ─────────────────────────────────────────────
// Works
// ─────────────────────────────────────────────

func TestWorkService_WritesInTransaction(t *testing.T) {
	f := newAuthFixture(t, config.Limits{})
	svc := NewWorkService(f.storages, validators.NewRequestValidator())
	ctx := context.Background()

	work := models.Work{Title: "Short film", Roles: []models.WorkRole{{Name: "director"}}, Tasks: []models.WorkTask{{Name: "editing"}}}

	f.works.EXPECT().CreateWork(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, w models.Work) (models.Work, error) {
			assert.Equal(t, "u-1", w.UserID)
			w.ID = 3
			return w, nil
		})
	created, err := svc.CreateWork(ctx, owner, work)
	require.NoError(t, err)
	assert.Equal(t, int64(3), created.ID)

	f.works.EXPECT().UpdateWork(gomock.Any(), gomock.Any()).Return(models.Work{}, store.ErrWorkNotFound)
	_, err = svc.UpdateWork(ctx, owner, 3, work)
	assert.ErrorIs(t, err, ErrWorkNotFound)

	_, err = svc.CreateWork(ctx, owner, models.Work{})
	requireKind(t, err, ErrValidation)
}

func TestWorkService_Lookups(t *testing.T) {
	f := newAuthFixture(t, config.Limits{})
	svc := NewWorkService(f.storages, validators.NewRequestValidator())

	f.works.EXPECT().ListWorkRoles(gomock.Any()).Return([]models.WorkRole{{ID: 1, Name: "director"}}, nil)
	f.works.EXPECT().ListWorkTasks(gomock.Any()).Return([]models.WorkTask{{ID: 1, Name: "editing"}}, nil)

	roles, err := svc.ListWorkRoles(context.Background())
	require.NoError(t, err)
	assert.Len(t, roles, 1)

	tasks, err := svc.ListWorkTasks(context.Background())
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

// ─────────────────────────────────────────────
// Persons
// ─────────────────────────────────────────────

func TestPersonService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	persons := mock.NewMockPersonRepository(ctrl)
	validator := mock.NewMockValidator(ctrl)
	svc := NewPersonService(persons, validator)

	validator.EXPECT().Validate(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	persons.EXPECT().CreatePerson(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p models.Person) (models.Person, error) {
			assert.Equal(t, "ana@example.com", p.UserEmail)
			p.ID = 1
			return p, nil
		})

	created, err := svc.CreatePerson(context.Background(), models.Person{UserEmail: " ANA@example.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	persons.EXPECT().CreatePerson(gomock.Any(), gomock.Any()).Return(models.Person{}, store.ErrUserNotFound)
	_, err = svc.CreatePerson(context.Background(), models.Person{UserEmail: "ghost@example.com"})
	assert.ErrorIs(t, err, ErrPersonUnknownEmail)

	_, err = svc.CreatePerson(context.Background(), models.Person{})
	assert.ErrorIs(t, err, ErrPersonUnknownEmail)
}

func TestPersonService_UpdateConflictAndDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	persons := mock.NewMockPersonRepository(ctrl)
	validator := mock.NewMockValidator(ctrl)
	svc := NewPersonService(persons, validator)

	validator.EXPECT().Validate(gomock.Any(), gomock.Any()).Return(nil)
	persons.EXPECT().UpdatePerson(gomock.Any(), gomock.Any()).Return(models.Person{}, store.ErrPersonAlreadyExists)
	_, err := svc.UpdatePerson(context.Background(), 4, models.Person{TaxID: "dup"})
	requireKind(t, err, ErrConflict)

	persons.EXPECT().DeletePerson(gomock.Any(), int64(4)).Return(store.ErrPersonNotFound)
	assert.ErrorIs(t, svc.DeletePerson(context.Background(), 4), ErrPersonNotFound)

	assert.ErrorIs(t, svc.DeletePerson(context.Background(), -1), ErrInvalidID)
}
