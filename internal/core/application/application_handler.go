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
	"github.com/polintern/backend/internal/core"
	"github.com/polintern/backend/internal/database/repositories"
)

// RegisterHTTPHandler wires the application routes onto the server group.
func RegisterHTTPHandler(db core.DB, server core.Server) core.Server {
	applicationRepository := repositories.NewApplicationRepository(db)
	projectRepository := repositories.NewProjectRepository(db)

	controller := NewHTTPController(applicationRepository, projectRepository)

	server.POST("/projects/:projectID/apply/", controller.Apply)

	return server
}
