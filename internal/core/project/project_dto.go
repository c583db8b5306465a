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
	"net/url"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/polintern/backend/internal/core"
	"github.com/polintern/backend/internal/database/models"
	"github.com/polintern/backend/internal/utils"
)

// projectForm holds the mutable project fields of a multipart request. The
// lockdown fields (id, creator, timestamps, file) are never read from the
// form: a client sending them sees them silently dropped, not rejected. The
// file is handled separately by the upload path.
type projectForm struct {
	Title       *string `validate:"omitempty,min=1"`
	Description *string
	Status      *models.ProjectStatus
	From        *time.Time
	To          *time.Time
	Nature      *models.ProjectNature
	State       *string
	Topic       []string
	Salary      *float64 `validate:"omitempty,gte=0"`
	Questions   []string
}

func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}

// parseProjectForm picks the known mutable fields out of the form values
// and validates them. Unknown fields are ignored.
func parseProjectForm(params url.Values) (projectForm, error) {
	var form projectForm

	if params.Has("title") {
		form.Title = core.Ptr(params.Get("title"))
	}
	if params.Has("description") {
		form.Description = core.Ptr(params.Get("description"))
	}
	if params.Has("status") {
		status := models.ProjectStatus(params.Get("status"))
		if !status.Valid() {
			return form, echo.NewHTTPError(400, "unrecognised project status")
		}
		form.Status = &status
	}
	if params.Has("from") {
		from, err := parseDate(params.Get("from"))
		if err != nil {
			return form, echo.NewHTTPError(400, "could not parse from date").WithInternal(err)
		}
		form.From = &from
	}
	if params.Has("to") {
		to, err := parseDate(params.Get("to"))
		if err != nil {
			return form, echo.NewHTTPError(400, "could not parse to date").WithInternal(err)
		}
		form.To = &to
	}
	if params.Has("nature") {
		nature := models.ProjectNature(params.Get("nature"))
		if !nature.Valid() {
			return form, echo.NewHTTPError(400, "unrecognised project nature")
		}
		form.Nature = &nature
	}
	if params.Has("state") {
		state := params.Get("state")
		if !utils.Contains(models.GermanStates, state) {
			return form, echo.NewHTTPError(400, "unrecognised state")
		}
		form.State = &state
	}
	if params.Has("topic") {
		form.Topic = params["topic"]
	}
	if params.Has("salary") {
		salary, err := strconv.ParseFloat(params.Get("salary"), 64)
		if err != nil {
			return form, echo.NewHTTPError(400, "salary must be a number").WithInternal(err)
		}
		form.Salary = &salary
	}
	if params.Has("questions") {
		form.Questions = params["questions"]
	}

	if err := core.V.Struct(form); err != nil {
		return form, echo.NewHTTPError(400, err.Error())
	}

	return form, nil
}

// applyToModel writes the present fields onto the model and returns the
// names of the fields it touched, which is what the update endpoint echoes
// back. The from/to ordering invariant is checked on the merged result so a
// partial update cannot invert an existing range.
func (f projectForm) applyToModel(project *models.Project) (map[string]any, error) {
	updated := map[string]any{}

	if f.Title != nil {
		project.Title = *f.Title
		updated["title"] = *f.Title
	}
	if f.Description != nil {
		project.Description = *f.Description
		updated["description"] = *f.Description
	}
	if f.Status != nil {
		project.Status = *f.Status
		updated["status"] = *f.Status
	}
	if f.From != nil {
		project.From = *f.From
		updated["from"] = *f.From
	}
	if f.To != nil {
		project.To = f.To
		updated["to"] = *f.To
	}
	if f.Nature != nil {
		project.Nature = *f.Nature
		updated["nature"] = *f.Nature
	}
	if f.State != nil {
		project.State = f.State
		updated["state"] = *f.State
	}
	if f.Topic != nil {
		project.Topic = f.Topic
		updated["topic"] = f.Topic
	}
	if f.Salary != nil {
		project.Salary = *f.Salary
		updated["salary"] = *f.Salary
	}
	if f.Questions != nil {
		project.Questions = f.Questions
		updated["questions"] = f.Questions
	}

	if project.To != nil && !project.From.Before(*project.To) {
		return nil, echo.NewHTTPError(400, "from date must be before to date")
	}

	return updated, nil
}
