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

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
	"github.com/polintern/backend/internal/core"
	"github.com/polintern/backend/internal/core/application"
	"github.com/polintern/backend/internal/core/project"
	"github.com/polintern/backend/internal/database"
	"github.com/polintern/backend/internal/database/models"
	"github.com/polintern/backend/internal/database/repositories"
	"github.com/polintern/backend/internal/echohttp"
	"github.com/polintern/backend/internal/middleware"
	"github.com/polintern/backend/internal/notification"
	"github.com/polintern/backend/internal/objectstore"
	"github.com/polintern/backend/internal/pubsub"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	core.InitLogger()
	if err := core.LoadConfig(); err != nil {
		slog.Error("could not load config", "err", err)
	}

	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:           dsn,
			EnableTracing: false,
		})
		if err != nil {
			slog.Error("could not initialize sentry", "err", err)
		}
	}

	db, err := database.NewConnection(
		os.Getenv("POSTGRES_HOST"),
		os.Getenv("POSTGRES_USER"),
		os.Getenv("POSTGRES_PASSWORD"),
		os.Getenv("POSTGRES_DB"),
		os.Getenv("POSTGRES_PORT"),
	)
	if err != nil {
		panic(err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Project{}, &models.Application{}); err != nil {
		panic(err)
	}

	broker, err := pubsub.BrokerFactory()
	if err != nil {
		panic(err)
	}

	dispatcher := notification.NewDispatcher(broker, notification.NotifierFactory())
	if err := dispatcher.Start(context.Background()); err != nil {
		panic(err)
	}

	store, err := objectstore.FromEnv(context.Background())
	if err != nil {
		panic(err)
	}
	slog.Info("blob storage initialized", "driver", store.Driver())

	e := echohttp.Server()
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	apiV1 := e.Group("/api/v1")
	apiV1.Use(middleware.SessionMiddleware(repositories.NewUserRepository(db)))

	project.RegisterHTTPHandler(db, apiV1, broker, store)
	application.RegisterHTTPHandler(db, apiV1)

	slog.Error("server stopped", "err", e.Start(":8080"))
}
