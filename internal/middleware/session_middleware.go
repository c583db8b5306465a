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

package middleware

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/polintern/backend/internal/core"
	"github.com/polintern/backend/internal/database/models"
)

type userRepository interface {
	Read(id uuid.UUID) (models.User, error)
}

// SessionMiddleware resolves the authenticated user. Authentication itself
// terminates upstream (auth proxy), which forwards the verified identity in
// the X-User-ID header. The middleware only loads the corresponding user
// record and rejects requests without a resolvable identity.
func SessionMiddleware(userRepository userRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header.Get("X-User-ID")
			if header == "" {
				return echo.NewHTTPError(401, "no user identity provided")
			}

			userID, err := uuid.Parse(header)
			if err != nil {
				return echo.NewHTTPError(401, "invalid user identity").WithInternal(err)
			}

			user, err := userRepository.Read(userID)
			if err != nil {
				slog.Warn("could not load user for session", "userID", userID, "err", err)
				return echo.NewHTTPError(401, "unknown user").WithInternal(err)
			}

			core.SetUser(ctx, user)
			return next(ctx)
		}
	}
}
