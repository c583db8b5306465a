// Copyright (C) 2024 the polintern authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package project

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/polintern/backend/internal/core"
	"github.com/polintern/backend/internal/database"
	"github.com/polintern/backend/internal/database/models"
	"github.com/polintern/backend/internal/database/repositories"
	"github.com/polintern/backend/internal/pubsub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type projectRepositoryMock struct {
	mock.Mock
	database.Repository[uuid.UUID, models.Project, core.DB]
}

func (m *projectRepositoryMock) Read(id uuid.UUID) (models.Project, error) {
	args := m.Called(id)
	return args.Get(0).(models.Project), args.Error(1)
}

func (m *projectRepositoryMock) Create(tx core.DB, t *models.Project) error {
	args := m.Called(tx, t)
	return args.Error(0)
}

func (m *projectRepositoryMock) Save(tx core.DB, t *models.Project) error {
	args := m.Called(tx, t)
	return args.Error(0)
}

func (m *projectRepositoryMock) Delete(tx core.DB, id uuid.UUID) error {
	args := m.Called(tx, id)
	return args.Error(0)
}

func (m *projectRepositoryMock) ReadWithApplications(id uuid.UUID) (models.Project, error) {
	args := m.Called(id)
	return args.Get(0).(models.Project), args.Error(1)
}

func (m *projectRepositoryMock) GetByCreator(creatorID uuid.UUID) ([]models.Project, error) {
	args := m.Called(creatorID)
	return args.Get(0).([]models.Project), args.Error(1)
}

func (m *projectRepositoryMock) GetLatest(limit int) ([]models.Project, error) {
	args := m.Called(limit)
	return args.Get(0).([]models.Project), args.Error(1)
}

func (m *projectRepositoryMock) Search(query repositories.ProjectQuery, pageInfo core.PageInfo) (core.Paged[models.Project], error) {
	args := m.Called(query, pageInfo)
	return args.Get(0).(core.Paged[models.Project]), args.Error(1)
}

type applicationRepositoryMock struct {
	mock.Mock
}

func (m *applicationRepositoryMock) GetByProjectID(projectID uuid.UUID) ([]models.Application, error) {
	args := m.Called(projectID)
	return args.Get(0).([]models.Application), args.Error(1)
}

func (m *applicationRepositoryMock) GetAppliedProjects(applicantID uuid.UUID) ([]models.Project, error) {
	args := m.Called(applicantID)
	return args.Get(0).([]models.Project), args.Error(1)
}

type userRepositoryMock struct {
	mock.Mock
}

func (m *userRepositoryMock) List(ids []uuid.UUID) ([]models.User, error) {
	args := m.Called(ids)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *userRepositoryMock) HasBookmark(userID uuid.UUID, projectID uuid.UUID) (bool, error) {
	args := m.Called(userID, projectID)
	return args.Bool(0), args.Error(1)
}

func (m *userRepositoryMock) AddBookmark(userID uuid.UUID, projectID uuid.UUID) error {
	args := m.Called(userID, projectID)
	return args.Error(0)
}

func (m *userRepositoryMock) RemoveBookmark(userID uuid.UUID, projectID uuid.UUID) error {
	args := m.Called(userID, projectID)
	return args.Error(0)
}

// captureBroker records published messages instead of touching postgres.
type captureBroker struct {
	mu       sync.Mutex
	messages []pubsub.Message
	err      error
}

func (b *captureBroker) Publish(_ context.Context, message pubsub.Message) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return b.err
	}
	b.messages = append(b.messages, message)
	return nil
}

func (b *captureBroker) Subscribe(pubsub.Channel) (<-chan map[string]any, error) {
	return make(chan map[string]any), nil
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	return httpErr.Code
}

func TestSetStatusTransitions(t *testing.T) {
	creator := models.User{Model: models.Model{ID: uuid.New()}, IsPolitician: true}

	tests := []struct {
		name     string
		current  models.ProjectStatus
		target   models.ProjectStatus
		wantCode int
	}{
		{"open can be closed", models.ProjectStatusOpen, models.ProjectStatusClosed, 0},
		{"closed can be reopened", models.ProjectStatusClosed, models.ProjectStatusOpen, 0},
		{"closed can be completed", models.ProjectStatusClosed, models.ProjectStatusCompleted, 0},
		{"open cannot be completed", models.ProjectStatusOpen, models.ProjectStatusCompleted, 400},
		{"completed cannot be reopened", models.ProjectStatusCompleted, models.ProjectStatusOpen, 400},
		{"completed cannot be closed", models.ProjectStatusCompleted, models.ProjectStatusClosed, 400},
		{"unknown status is rejected", models.ProjectStatusOpen, models.ProjectStatus("archived"), 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			projectID := uuid.New()
			project := models.Project{
				Model:     models.Model{ID: projectID},
				Title:     "Praktikum im Landtag",
				Status:    tt.current,
				CreatorID: creator.ID,
			}

			projectRepository := &projectRepositoryMock{}
			projectRepository.On("Read", projectID).Return(project, nil)
			projectRepository.On("Save", mock.Anything, mock.Anything).Return(nil)

			applicationRepository := &applicationRepositoryMock{}
			applicationRepository.On("GetByProjectID", projectID).Return([]models.Application{}, nil)

			svc := NewService(projectRepository, applicationRepository, &userRepositoryMock{}, &captureBroker{})

			updated, err := svc.SetStatus(creator, projectID, tt.target)
			if tt.wantCode == 0 {
				require.NoError(t, err)
				assert.Equal(t, tt.target, updated.Status)
				projectRepository.AssertCalled(t, "Save", mock.Anything, mock.Anything)
			} else {
				assert.Equal(t, tt.wantCode, httpCode(t, err))
				projectRepository.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestSetStatusNoopKeepsStatus(t *testing.T) {
	creator := models.User{Model: models.Model{ID: uuid.New()}}
	projectID := uuid.New()
	project := models.Project{Model: models.Model{ID: projectID}, Status: models.ProjectStatusOpen, CreatorID: creator.ID}

	projectRepository := &projectRepositoryMock{}
	projectRepository.On("Read", projectID).Return(project, nil)

	svc := NewService(projectRepository, &applicationRepositoryMock{}, &userRepositoryMock{}, &captureBroker{})

	updated, err := svc.SetStatus(creator, projectID, models.ProjectStatusOpen)
	require.NoError(t, err)
	assert.Equal(t, models.ProjectStatusOpen, updated.Status)
	projectRepository.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSetStatusOnlyCreator(t *testing.T) {
	projectID := uuid.New()
	project := models.Project{Model: models.Model{ID: projectID}, Status: models.ProjectStatusOpen, CreatorID: uuid.New()}

	projectRepository := &projectRepositoryMock{}
	projectRepository.On("Read", projectID).Return(project, nil)

	svc := NewService(projectRepository, &applicationRepositoryMock{}, &userRepositoryMock{}, &captureBroker{})

	_, err := svc.SetStatus(models.User{Model: models.Model{ID: uuid.New()}}, projectID, models.ProjectStatusClosed)
	assert.Equal(t, 401, httpCode(t, err))
}

func TestSetStatusMissingProject(t *testing.T) {
	projectID := uuid.New()

	projectRepository := &projectRepositoryMock{}
	projectRepository.On("Read", projectID).Return(models.Project{}, gorm.ErrRecordNotFound)

	svc := NewService(projectRepository, &applicationRepositoryMock{}, &userRepositoryMock{}, &captureBroker{})

	_, err := svc.SetStatus(models.User{Model: models.Model{ID: uuid.New()}}, projectID, models.ProjectStatusClosed)
	assert.Equal(t, 404, httpCode(t, err))
}

func TestSetStatusNotifiesEveryApplicant(t *testing.T) {
	creator := models.User{Model: models.Model{ID: uuid.New()}}
	projectID := uuid.New()
	project := models.Project{
		Model:     models.Model{ID: projectID},
		Title:     "Mitarbeit im Wahlkreisbuero",
		Status:    models.ProjectStatusClosed,
		CreatorID: creator.ID,
	}

	applicants := []models.User{
		{Model: models.Model{ID: uuid.New()}, Email: "anna@example.org"},
		{Model: models.Model{ID: uuid.New()}, Email: "ben@example.org"},
	}
	applications := []models.Application{
		{Model: models.Model{ID: uuid.New()}, ApplicantID: applicants[0].ID, ProjectID: projectID},
		{Model: models.Model{ID: uuid.New()}, ApplicantID: applicants[1].ID, ProjectID: projectID},
	}

	projectRepository := &projectRepositoryMock{}
	projectRepository.On("Read", projectID).Return(project, nil)
	projectRepository.On("Save", mock.Anything, mock.Anything).Return(nil)

	applicationRepository := &applicationRepositoryMock{}
	applicationRepository.On("GetByProjectID", projectID).Return(applications, nil)

	userRepository := &userRepositoryMock{}
	userRepository.On("List", mock.Anything).Return(applicants, nil)

	broker := &captureBroker{}
	svc := NewService(projectRepository, applicationRepository, userRepository, broker)

	_, err := svc.SetStatus(creator, projectID, models.ProjectStatusCompleted)
	require.NoError(t, err)

	require.Len(t, broker.messages, 2)
	for i, message := range broker.messages {
		assert.Equal(t, pubsub.ProjectStatusChannel, message.GetChannel())
		payload := message.GetPayload()
		assert.Equal(t, projectID.String(), payload["projectId"])
		assert.Equal(t, "Mitarbeit im Wahlkreisbuero", payload["projectTitle"])
		assert.Equal(t, "completed", payload["status"])
		assert.Equal(t, applicants[i].ID.String(), payload["applicantId"])
		assert.Equal(t, applicants[i].Email, payload["email"])
	}
}

func TestSetStatusSurvivesBrokerFailure(t *testing.T) {
	creator := models.User{Model: models.Model{ID: uuid.New()}}
	projectID := uuid.New()
	project := models.Project{Model: models.Model{ID: projectID}, Status: models.ProjectStatusOpen, CreatorID: creator.ID}

	applications := []models.Application{{Model: models.Model{ID: uuid.New()}, ApplicantID: uuid.New(), ProjectID: projectID}}

	projectRepository := &projectRepositoryMock{}
	projectRepository.On("Read", projectID).Return(project, nil)
	projectRepository.On("Save", mock.Anything, mock.Anything).Return(nil)

	applicationRepository := &applicationRepositoryMock{}
	applicationRepository.On("GetByProjectID", projectID).Return(applications, nil)

	userRepository := &userRepositoryMock{}
	userRepository.On("List", mock.Anything).Return([]models.User{{Model: models.Model{ID: uuid.New()}}}, nil)

	broker := &captureBroker{err: assert.AnError}
	svc := NewService(projectRepository, applicationRepository, userRepository, broker)

	updated, err := svc.SetStatus(creator, projectID, models.ProjectStatusClosed)
	require.NoError(t, err)
	assert.Equal(t, models.ProjectStatusClosed, updated.Status)
}
