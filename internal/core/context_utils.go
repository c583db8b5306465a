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
package core

import (
	"fmt"

	"github.com/polintern/backend/internal/database/models"
)

func SetUser(ctx Context, user models.User) {
	ctx.Set("user", user)
}

// GetUser returns the authenticated user. The session middleware guarantees
// it is present on every route below the session group, so a missing user is
// a programming error, not a request error.
func GetUser(ctx Context) models.User {
	return ctx.Get("user").(models.User)
}

func GetParam(ctx Context, param string) string {
	v := ctx.Param(param)
	if v == "" {
		fallback := ctx.Get(param)
		if fallback == nil {
			return ""
		}
		return fallback.(string)
	}
	return v
}

func GetProjectID(ctx Context) (string, error) {
	projectID := GetParam(ctx, "projectID")
	if projectID == "" {
		return "", fmt.Errorf("could not get project id")
	}
	return projectID, nil
}

type PageInfo struct {
	PageSize int `json:"pageSize"`
	Page     int `json:"page"`
}

func (p PageInfo) ApplyOnDB(db DB) DB {
	return db.Offset((p.Page - 1) * p.PageSize).Limit(p.PageSize)
}

type Paged[T any] struct {
	Results []T `json:"results"`
	// total is the number of full pages, not the number of rows. The web
	// client treats it as the highest page index it may still request.
	Total int64 `json:"total"`
}

func NewPaged[T any](total int64, results []T) Paged[T] {
	return Paged[T]{
		Results: results,
		Total:   total,
	}
}

// NewPageInfo clamps the page to 1 and fixes the page size to 10 entries,
// matching what the web client renders per page.
func NewPageInfo(page int) PageInfo {
	if page <= 0 {
		page = 1
	}

	return PageInfo{
		Page:     page,
		PageSize: 10,
	}
}
