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
	"github.com/google/uuid"
	"github.com/polintern/backend/internal/database/models"
)

type applyRequest struct {
	Answers map[string]any `json:"answers"`
}

func (r applyRequest) toModel(applicantID uuid.UUID, projectID uuid.UUID) models.Application {
	answers := r.Answers
	if answers == nil {
		answers = map[string]any{}
	}
	return models.Application{
		ApplicantID: applicantID,
		ProjectID:   projectID,
		Answers:     answers,
	}
}

// removedResponse flattens the withdrawn application into the response next
// to the message field.
type removedResponse struct {
	Message string `json:"message"`
	models.Application
}
