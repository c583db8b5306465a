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
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/polintern/backend/internal/core"
	"github.com/polintern/backend/internal/database"
	"github.com/polintern/backend/internal/database/models"
	"github.com/polintern/backend/internal/database/repositories"
	"github.com/polintern/backend/internal/monitoring"
	"github.com/polintern/backend/internal/pubsub"
	"github.com/polintern/backend/internal/utils"
)

type projectRepository interface {
	database.Repository[uuid.UUID, models.Project, core.DB]
	ReadWithApplications(id uuid.UUID) (models.Project, error)
	GetByCreator(creatorID uuid.UUID) ([]models.Project, error)
	GetLatest(limit int) ([]models.Project, error)
	Search(query repositories.ProjectQuery, pageInfo core.PageInfo) (core.Paged[models.Project], error)
}

type applicationRepository interface {
	GetByProjectID(projectID uuid.UUID) ([]models.Application, error)
	GetAppliedProjects(applicantID uuid.UUID) ([]models.Project, error)
}

type userRepository interface {
	List(ids []uuid.UUID) ([]models.User, error)
	HasBookmark(userID uuid.UUID, projectID uuid.UUID) (bool, error)
	AddBookmark(userID uuid.UUID, projectID uuid.UUID) error
	RemoveBookmark(userID uuid.UUID, projectID uuid.UUID) error
}

type service struct {
	projectRepository     projectRepository
	applicationRepository applicationRepository
	userRepository        userRepository
	broker                pubsub.Broker
}

func NewService(projectRepository projectRepository, applicationRepository applicationRepository, userRepository userRepository, broker pubsub.Broker) *service {
	return &service{
		projectRepository:     projectRepository,
		applicationRepository: applicationRepository,
		userRepository:        userRepository,
		broker:                broker,
	}
}

// checkStatusTransition enforces the project lifecycle. Open and closed can
// be swapped freely, completed is only reachable from closed and is
// terminal.
func checkStatusTransition(current models.ProjectStatus, target models.ProjectStatus) error {
	if !target.Valid() {
		return echo.NewHTTPError(400, "unrecognised project status")
	}
	if current == models.ProjectStatusCompleted && target != models.ProjectStatusCompleted {
		return echo.NewHTTPError(400, "project is already completed")
	}
	if target == models.ProjectStatusCompleted && current != models.ProjectStatusClosed {
		return echo.NewHTTPError(400, "project can only be completed when it is closed")
	}
	return nil
}

// SetStatus moves a project through its lifecycle. Applicants are notified
// about the change, but a notification that cannot be handed off never
// fails the request.
func (s *service) SetStatus(user models.User, projectID uuid.UUID, target models.ProjectStatus) (models.Project, error) {
	project, err := s.projectRepository.Read(projectID)
	if err != nil {
		return models.Project{}, echo.NewHTTPError(404, "could not find project").WithInternal(err)
	}

	if project.CreatorID != user.ID {
		return models.Project{}, echo.NewHTTPError(401, "only the creator can change the project status")
	}

	if err := checkStatusTransition(project.Status, target); err != nil {
		return models.Project{}, err
	}

	if project.Status == target {
		return project, nil
	}

	project.Status = target
	if err := s.projectRepository.Save(nil, &project); err != nil {
		return models.Project{}, echo.NewHTTPError(500, "could not update project status").WithInternal(err)
	}

	monitoring.StatusTransitions.WithLabelValues(string(target)).Inc()
	s.NotifyApplicants(project)

	return project, nil
}

// NotifyApplicants publishes one status message per applicant of the
// project. Failures are logged and swallowed.
func (s *service) NotifyApplicants(project models.Project) {
	applications, err := s.applicationRepository.GetByProjectID(project.ID)
	if err != nil {
		slog.Error("could not load applications for notification", "err", err, "projectId", project.ID)
		return
	}
	if len(applications) == 0 {
		return
	}

	applicants, err := s.userRepository.List(utils.Map(applications, func(a models.Application) uuid.UUID {
		return a.ApplicantID
	}))
	if err != nil {
		slog.Error("could not load applicants for notification", "err", err, "projectId", project.ID)
		return
	}

	for _, applicant := range applicants {
		err := s.broker.Publish(context.Background(), pubsub.NewSimpleMessage(pubsub.ProjectStatusChannel, map[string]any{
			"projectId":    project.ID.String(),
			"projectTitle": project.Title,
			"status":       string(project.Status),
			"applicantId":  applicant.ID.String(),
			"email":        applicant.Email,
		}))
		if err != nil {
			slog.Error("could not publish status notification", "err", err, "projectId", project.ID, "applicantId", applicant.ID)
		}
	}
}
