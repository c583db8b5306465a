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
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/polintern/backend/internal/core"
	"github.com/polintern/backend/internal/database/models"
	"github.com/polintern/backend/internal/monitoring"
)

const latestProjectCount = 8

type projectService interface {
	SetStatus(user models.User, projectID uuid.UUID, target models.ProjectStatus) (models.Project, error)
	NotifyApplicants(project models.Project)
}

type Controller struct {
	projectRepository     projectRepository
	applicationRepository applicationRepository
	userRepository        userRepository
	projectService        projectService
	fileController        *fileController
}

func NewHTTPController(projectRepository projectRepository, applicationRepository applicationRepository, userRepository userRepository, projectService projectService, fileController *fileController) *Controller {
	return &Controller{
		projectRepository:     projectRepository,
		applicationRepository: applicationRepository,
		userRepository:        userRepository,
		projectService:        projectService,
		fileController:        fileController,
	}
}

func projectIDFromContext(ctx core.Context) (uuid.UUID, error) {
	projectID, err := core.GetProjectID(ctx)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(400, "invalid project id").WithInternal(err)
	}
	id, err := uuid.Parse(projectID)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(400, "invalid project id").WithInternal(err)
	}
	return id, nil
}

// Read returns a single project. The creator additionally gets the
// applications nested into the response, everybody else only sees the
// project itself.
func (c *Controller) Read(ctx core.Context) error {
	id, err := projectIDFromContext(ctx)
	if err != nil {
		return err
	}

	project, err := c.projectRepository.Read(id)
	if err != nil {
		return echo.NewHTTPError(404, "could not find project").WithInternal(err)
	}

	user := core.GetUser(ctx)
	if project.CreatorID == user.ID {
		project, err = c.projectRepository.ReadWithApplications(id)
		if err != nil {
			return echo.NewHTTPError(500, "could not load applications").WithInternal(err)
		}
	}

	return ctx.JSON(200, project)
}

// Latest returns the most recently created projects for the landing page.
func (c *Controller) Latest(ctx core.Context) error {
	projects, err := c.projectRepository.GetLatest(latestProjectCount)
	if err != nil {
		return echo.NewHTTPError(500, "could not load latest projects").WithInternal(err)
	}
	return ctx.JSON(200, projects)
}

// List is the search endpoint. With at least one recognised parameter it
// runs a paginated search, without any it falls back to the caller's own
// projects: the ones a politician created, the ones a student applied to.
func (c *Controller) List(ctx core.Context) error {
	params := ctx.QueryParams()
	user := core.GetUser(ctx)

	if !hasSearchParams(params) {
		var projects []models.Project
		var err error
		if user.IsPolitician {
			projects, err = c.projectRepository.GetByCreator(user.ID)
		} else {
			projects, err = c.applicationRepository.GetAppliedProjects(user.ID)
		}
		if err != nil {
			return echo.NewHTTPError(500, "could not load projects").WithInternal(err)
		}
		return ctx.JSON(200, projects)
	}

	query, pageInfo, err := parseSearchQuery(params)
	if err != nil {
		return err
	}

	paged, err := c.projectRepository.Search(query, pageInfo)
	if err != nil {
		return echo.NewHTTPError(500, "could not search projects").WithInternal(err)
	}
	return ctx.JSON(200, paged)
}

// Create inserts a new project. The id is allocated before the optional
// file upload so the blob key is stable even when the insert fails.
func (c *Controller) Create(ctx core.Context) error {
	user := core.GetUser(ctx)
	if !user.IsPolitician {
		return echo.NewHTTPError(403, "only politicians can create projects")
	}

	params, err := ctx.FormParams()
	if err != nil {
		return echo.NewHTTPError(400, "could not parse form").WithInternal(err)
	}

	form, err := parseProjectForm(params)
	if err != nil {
		return err
	}
	if form.Title == nil || *form.Title == "" {
		return echo.NewHTTPError(400, "title is required")
	}
	if form.Status != nil && *form.Status == models.ProjectStatusCompleted {
		return echo.NewHTTPError(400, "project cannot be created as completed")
	}

	project := models.Project{
		Model:     models.Model{ID: uuid.New()},
		CreatorID: user.ID,
		Status:    models.ProjectStatusOpen,
		Nature:    models.ProjectNatureInternship,
		From:      time.Now(),
	}
	if _, err := form.applyToModel(&project); err != nil {
		return err
	}

	fileName, err := c.fileController.saveFile(ctx, project.ID)
	if err != nil {
		return err
	}
	project.FileName = fileName

	if err := c.projectRepository.Create(nil, &project); err != nil {
		c.fileController.deleteFile(ctx.Request().Context(), project)
		return echo.NewHTTPError(500, "could not create project").WithInternal(err)
	}

	monitoring.ProjectsCreated.Inc()
	return ctx.JSON(201, project)
}

// Update patches the mutable fields of a project and answers with exactly
// the fields it changed. Lockdown fields in the request are dropped, a
// replaced file gets its old blob garbage collected.
func (c *Controller) Update(ctx core.Context) error {
	id, err := projectIDFromContext(ctx)
	if err != nil {
		return err
	}

	project, err := c.projectRepository.Read(id)
	if err != nil {
		return echo.NewHTTPError(404, "could not find project").WithInternal(err)
	}

	user := core.GetUser(ctx)
	if project.CreatorID != user.ID {
		return echo.NewHTTPError(401, "only the creator can update the project")
	}

	params, err := ctx.FormParams()
	if err != nil {
		return echo.NewHTTPError(400, "could not parse form").WithInternal(err)
	}

	form, err := parseProjectForm(params)
	if err != nil {
		return err
	}
	if form.Status != nil {
		if err := checkStatusTransition(project.Status, *form.Status); err != nil {
			return err
		}
	}

	previousStatus := project.Status
	previousFile := project

	updated, err := form.applyToModel(&project)
	if err != nil {
		return err
	}

	fileName, err := c.fileController.saveFile(ctx, project.ID)
	if err != nil {
		return err
	}
	if fileName != nil {
		if previousFile.FileName != nil && *previousFile.FileName != *fileName {
			c.fileController.deleteFile(ctx.Request().Context(), previousFile)
		}
		project.FileName = fileName
		updated["file"] = *fileName
	}

	if err := c.projectRepository.Save(nil, &project); err != nil {
		return echo.NewHTTPError(500, "could not update project").WithInternal(err)
	}

	if form.Status != nil && *form.Status != previousStatus {
		monitoring.StatusTransitions.WithLabelValues(string(*form.Status)).Inc()
		c.projectService.NotifyApplicants(project)
	}

	return ctx.JSON(200, updated)
}

// Delete removes a project together with its applications and its file.
func (c *Controller) Delete(ctx core.Context) error {
	id, err := projectIDFromContext(ctx)
	if err != nil {
		return err
	}

	project, err := c.projectRepository.Read(id)
	if err != nil {
		return echo.NewHTTPError(404, "could not find project").WithInternal(err)
	}

	user := core.GetUser(ctx)
	if project.CreatorID != user.ID {
		return echo.NewHTTPError(401, "only the creator can delete the project")
	}

	if err := c.projectRepository.Delete(nil, project.ID); err != nil {
		return echo.NewHTTPError(500, "could not delete project").WithInternal(err)
	}

	c.fileController.deleteFile(ctx.Request().Context(), project)

	return ctx.JSON(200, map[string]string{"status": "deleted"})
}

func (c *Controller) setStatus(ctx core.Context, target models.ProjectStatus) error {
	id, err := projectIDFromContext(ctx)
	if err != nil {
		return err
	}

	project, err := c.projectService.SetStatus(core.GetUser(ctx), id, target)
	if err != nil {
		return err
	}
	return ctx.JSON(200, project)
}

func (c *Controller) Open(ctx core.Context) error {
	return c.setStatus(ctx, models.ProjectStatusOpen)
}

func (c *Controller) Close(ctx core.Context) error {
	return c.setStatus(ctx, models.ProjectStatusClosed)
}

func (c *Controller) Complete(ctx core.Context) error {
	return c.setStatus(ctx, models.ProjectStatusCompleted)
}

// Bookmark toggles the bookmark of the caller on a project.
func (c *Controller) Bookmark(ctx core.Context) error {
	if core.GetUser(ctx).IsPolitician {
		return echo.NewHTTPError(401, "only students can bookmark projects")
	}

	id, err := projectIDFromContext(ctx)
	if err != nil {
		return err
	}

	if _, err := c.projectRepository.Read(id); err != nil {
		return echo.NewHTTPError(404, "could not find project").WithInternal(err)
	}

	user := core.GetUser(ctx)
	bookmarked, err := c.userRepository.HasBookmark(user.ID, id)
	if err != nil {
		return echo.NewHTTPError(500, "could not read bookmarks").WithInternal(err)
	}

	if bookmarked {
		if err := c.userRepository.RemoveBookmark(user.ID, id); err != nil {
			return echo.NewHTTPError(500, "could not remove bookmark").WithInternal(err)
		}
		return ctx.JSON(200, map[string]string{"message": "bookmark removed"})
	}

	if err := c.userRepository.AddBookmark(user.ID, id); err != nil {
		return echo.NewHTTPError(500, "could not add bookmark").WithInternal(err)
	}
	return ctx.JSON(201, map[string]string{"message": "bookmark added"})
}
