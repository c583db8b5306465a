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
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/polintern/backend/internal/core"
	"github.com/polintern/backend/internal/database/models"
	"github.com/polintern/backend/internal/database/repositories"
)

// searchParams is the set of query parameters the search endpoint knows
// about. Anything else is ignored, and a request carrying none of these
// falls back to the caller's own projects.
var searchParams = []string{"title", "status", "nature", "tags", "salary", "from", "page"}

func hasSearchParams(params url.Values) bool {
	for _, key := range searchParams {
		if params.Has(key) {
			return true
		}
	}
	return false
}

// parseSearchQuery validates the recognised parameters and builds the
// repository query from them. A malformed value is a client error, not an
// empty result set.
func parseSearchQuery(params url.Values) (repositories.ProjectQuery, core.PageInfo, error) {
	var query repositories.ProjectQuery
	pageInfo := core.NewPageInfo(1)

	if params.Has("title") {
		query.Title = core.Ptr(params.Get("title"))
	}
	if params.Has("status") {
		status := models.ProjectStatus(params.Get("status"))
		if !status.Valid() {
			return query, pageInfo, echo.NewHTTPError(400, "unrecognised project status")
		}
		query.Status = &status
	}
	if params.Has("nature") {
		nature := models.ProjectNature(params.Get("nature"))
		if !nature.Valid() {
			return query, pageInfo, echo.NewHTTPError(400, "unrecognised project nature")
		}
		query.Nature = &nature
	}
	if params.Has("tags") {
		for _, value := range params["tags"] {
			for _, tag := range strings.Split(value, ",") {
				if tag = strings.TrimSpace(tag); tag != "" {
					query.Tags = append(query.Tags, tag)
				}
			}
		}
	}
	if params.Has("salary") {
		salary, err := strconv.ParseFloat(params.Get("salary"), 64)
		if err != nil || salary < 0 {
			return query, pageInfo, echo.NewHTTPError(400, "salary must be a non-negative number")
		}
		query.Salary = &salary
	}
	if params.Has("from") {
		from, err := parseDate(params.Get("from"))
		if err != nil {
			return query, pageInfo, echo.NewHTTPError(400, "could not parse from date").WithInternal(err)
		}
		query.From = &from
	}
	if params.Has("page") {
		page, err := strconv.Atoi(params.Get("page"))
		if err != nil || page < 1 {
			return query, pageInfo, echo.NewHTTPError(400, "page must be a positive integer")
		}
		pageInfo = core.NewPageInfo(page)
	}

	return query, pageInfo, nil
}
