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
	"errors"
	"log/slog"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/labstack/echo/v4"
	"github.com/polintern/backend/internal/core"
	"github.com/polintern/backend/internal/database/models"
	"github.com/polintern/backend/internal/objectstore"
)

// allowedFileTypes is the media type allow-list for project attachments.
var allowedFileTypes = []string{"jpeg", "jpg", "png", "gif", "pdf"}

func allowedFileType(contentType string) bool {
	for _, t := range allowedFileTypes {
		if strings.Contains(contentType, t) {
			return true
		}
	}
	return false
}

// sanitizeFileName slugifies the name but keeps the extension, so
// "Lebenslauf (final).PDF" becomes "lebenslauf-final.pdf".
func sanitizeFileName(name string) string {
	ext := path.Ext(name)
	base := strings.TrimSuffix(path.Base(name), ext)
	return slug.Make(base) + strings.ToLower(ext)
}

type fileController struct {
	store             objectstore.Store
	projectRepository projectRepository
}

func NewFileController(store objectstore.Store, projectRepository projectRepository) *fileController {
	return &fileController{
		store:             store,
		projectRepository: projectRepository,
	}
}

func blobKey(projectID uuid.UUID, fileName string) string {
	return projectID.String() + "/" + fileName
}

// saveFile stores the "file" part of a multipart request under the project
// id and returns the stored name. A request without a file part is not an
// error, it just returns nil.
func (f *fileController) saveFile(ctx core.Context, projectID uuid.UUID) (*string, error) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, echo.NewHTTPError(400, "could not read file").WithInternal(err)
	}

	contentType := fileHeader.Header.Get(echo.HeaderContentType)
	if !allowedFileType(contentType) {
		return nil, echo.NewHTTPError(400, "unsupported file type")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, echo.NewHTTPError(400, "could not read file").WithInternal(err)
	}
	defer src.Close()

	fileName := sanitizeFileName(fileHeader.Filename)
	if _, err := f.store.Put(ctx.Request().Context(), blobKey(projectID, fileName), src, contentType); err != nil {
		return nil, echo.NewHTTPError(500, "could not store file").WithInternal(err)
	}

	return &fileName, nil
}

// deleteFile removes the project's blob. Losing the blob is never worth
// failing the surrounding request over, so errors are only logged.
func (f *fileController) deleteFile(ctx context.Context, project models.Project) {
	if project.FileName == nil {
		return
	}
	if err := f.store.Delete(ctx, blobKey(project.ID, *project.FileName)); err != nil {
		slog.Error("could not delete project file", "err", err, "projectId", project.ID, "file", *project.FileName)
	}
}

// Serve streams the project's attachment back to the client.
func (f *fileController) Serve(ctx core.Context) error {
	projectID, err := core.GetProjectID(ctx)
	if err != nil {
		return echo.NewHTTPError(400, "invalid project id").WithInternal(err)
	}

	id, err := uuid.Parse(projectID)
	if err != nil {
		return echo.NewHTTPError(400, "invalid project id").WithInternal(err)
	}

	project, err := f.projectRepository.Read(id)
	if err != nil {
		return echo.NewHTTPError(404, "could not find project").WithInternal(err)
	}

	if project.FileName == nil {
		return echo.NewHTTPError(404, "project has no file")
	}

	info, reader, err := f.store.Get(ctx.Request().Context(), blobKey(project.ID, *project.FileName))
	if err != nil {
		return echo.NewHTTPError(404, "could not find project file").WithInternal(err)
	}
	defer reader.Close()

	contentType := info.ContentType
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	if info.Size > 0 {
		ctx.Response().Header().Set(echo.HeaderContentLength, strconv.FormatInt(info.Size, 10))
	}

	return ctx.Stream(200, contentType, reader)
}
