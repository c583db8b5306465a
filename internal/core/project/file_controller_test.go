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
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/polintern/backend/internal/core"
	"github.com/polintern/backend/internal/database/models"
	"github.com/polintern/backend/internal/objectstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowedFileType(t *testing.T) {
	assert.True(t, allowedFileType("image/jpeg"))
	assert.True(t, allowedFileType("image/png"))
	assert.True(t, allowedFileType("image/gif"))
	assert.True(t, allowedFileType("application/pdf"))
	assert.False(t, allowedFileType("application/x-sh"))
	assert.False(t, allowedFileType("text/html"))
	assert.False(t, allowedFileType(""))
}

func TestSanitizeFileName(t *testing.T) {
	assert.Equal(t, "lebenslauf-final.pdf", sanitizeFileName("Lebenslauf (final).PDF"))
	assert.Equal(t, "foto.jpg", sanitizeFileName("Foto.jpg"))
	assert.Equal(t, "a-b.png", sanitizeFileName("../../a b.png"))
}

func TestServeStreamsAttachment(t *testing.T) {
	store, err := objectstore.NewDisk(t.TempDir())
	require.NoError(t, err)

	projectID := uuid.New()
	fileName := "beschreibung.pdf"
	_, err = store.Put(context.Background(), blobKey(projectID, fileName), strings.NewReader("%PDF-1.4"), "application/pdf")
	require.NoError(t, err)

	projectRepository := &projectRepositoryMock{}
	projectRepository.On("Read", projectID).Return(models.Project{
		Model:    models.Model{ID: projectID},
		FileName: core.Ptr(fileName),
	}, nil)

	fileController := NewFileController(store, projectRepository)

	ctx, rec := newTestContext(http.MethodGet, "/projects/"+projectID.String()+"/file/", nil, "", models.User{Model: models.Model{ID: uuid.New()}})
	withProjectID(ctx, projectID)

	require.NoError(t, fileController.Serve(ctx))
	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, "%PDF-1.4", rec.Body.String())
}

func TestServeWithoutAttachment(t *testing.T) {
	store, err := objectstore.NewDisk(t.TempDir())
	require.NoError(t, err)

	projectID := uuid.New()
	projectRepository := &projectRepositoryMock{}
	projectRepository.On("Read", projectID).Return(models.Project{Model: models.Model{ID: projectID}}, nil)

	fileController := NewFileController(store, projectRepository)

	ctx, _ := newTestContext(http.MethodGet, "/projects/"+projectID.String()+"/file/", nil, "", models.User{Model: models.Model{ID: uuid.New()}})
	withProjectID(ctx, projectID)

	err = fileController.Serve(ctx)
	assert.Equal(t, 404, httpCode(t, err))
}
