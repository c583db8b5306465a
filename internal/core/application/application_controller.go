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

package application

import (
	"errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/polintern/backend/internal/core"
	"github.com/polintern/backend/internal/database"
	"github.com/polintern/backend/internal/database/models"
	"github.com/polintern/backend/internal/monitoring"
	"gorm.io/gorm"
)

type applicationRepository interface {
	database.Repository[uuid.UUID, models.Application, core.DB]
	GetByApplicantAndProject(applicantID uuid.UUID, projectID uuid.UUID) (models.Application, error)
}

type projectRepository interface {
	Read(id uuid.UUID) (models.Project, error)
}

type Controller struct {
	applicationRepository applicationRepository
	projectRepository     projectRepository
}

func NewHTTPController(applicationRepository applicationRepository, projectRepository projectRepository) *Controller {
	return &Controller{
		applicationRepository: applicationRepository,
		projectRepository:     projectRepository,
	}
}

// Apply toggles an application. A student applying twice withdraws the
// first application instead of getting a conflict.
func (c *Controller) Apply(ctx core.Context) error {
	user := core.GetUser(ctx)
	if user.IsPolitician {
		return echo.NewHTTPError(401, "politicians cannot apply for projects")
	}

	projectID, err := core.GetProjectID(ctx)
	if err != nil {
		return echo.NewHTTPError(400, "invalid project id").WithInternal(err)
	}
	id, err := uuid.Parse(projectID)
	if err != nil {
		return echo.NewHTTPError(400, "invalid project id").WithInternal(err)
	}

	project, err := c.projectRepository.Read(id)
	if err != nil {
		return echo.NewHTTPError(404, "could not find project").WithInternal(err)
	}

	existing, err := c.applicationRepository.GetByApplicantAndProject(user.ID, project.ID)
	if err == nil {
		if err := c.applicationRepository.Delete(nil, existing.ID); err != nil {
			return echo.NewHTTPError(500, "could not withdraw application").WithInternal(err)
		}
		monitoring.ApplicationsWithdrawn.Inc()
		return ctx.JSON(200, removedResponse{Message: "removed", Application: existing})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(500, "could not read application").WithInternal(err)
	}

	var req applyRequest
	if err := ctx.Bind(&req); err != nil && !errors.Is(err, echo.ErrUnsupportedMediaType) {
		return echo.NewHTTPError(400, "could not parse request").WithInternal(err)
	}

	application := req.toModel(user.ID, project.ID)
	if !application.AnswersCover(project.Questions) {
		return echo.NewHTTPError(400, "missing answers to at least one question")
	}

	if err := c.applicationRepository.Create(nil, &application); err != nil {
		if database.IsDuplicateKeyError(err) {
			return echo.NewHTTPError(400, "application already exists").WithInternal(err)
		}
		return echo.NewHTTPError(500, "could not create application").WithInternal(err)
	}

	monitoring.ApplicationsSubmitted.Inc()
	return ctx.JSON(201, application)
}
