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
	"github.com/polintern/backend/internal/core"
	"github.com/polintern/backend/internal/database/repositories"
	"github.com/polintern/backend/internal/objectstore"
	"github.com/polintern/backend/internal/pubsub"
)

// RegisterHTTPHandler wires the project routes onto the server group.
func RegisterHTTPHandler(db core.DB, server core.Server, broker pubsub.Broker, store objectstore.Store) core.Server {
	projectRepository := repositories.NewProjectRepository(db)
	applicationRepository := repositories.NewApplicationRepository(db)
	userRepository := repositories.NewUserRepository(db)

	projectService := NewService(projectRepository, applicationRepository, userRepository, broker)
	fileController := NewFileController(store, projectRepository)
	controller := NewHTTPController(projectRepository, applicationRepository, userRepository, projectService, fileController)

	projectRouter := server.Group("/projects")
	projectRouter.GET("/", controller.List)
	projectRouter.POST("/", controller.Create)
	projectRouter.GET("/latest/", controller.Latest)

	projectRouter.GET("/:projectID/", controller.Read)
	projectRouter.PATCH("/:projectID/", controller.Update)
	projectRouter.DELETE("/:projectID/", controller.Delete)

	projectRouter.POST("/:projectID/open/", controller.Open)
	projectRouter.POST("/:projectID/close/", controller.Close)
	projectRouter.POST("/:projectID/complete/", controller.Complete)

	projectRouter.POST("/:projectID/bookmark/", controller.Bookmark)
	projectRouter.GET("/:projectID/file/", fileController.Serve)

	return projectRouter
}
