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

package repositories

import (
	"github.com/google/uuid"
	"github.com/polintern/backend/internal/database"
	"github.com/polintern/backend/internal/database/models"
	"gorm.io/gorm"
)

type applicationRepository struct {
	db *gorm.DB
	database.Repository[uuid.UUID, models.Application, *gorm.DB]
}

func NewApplicationRepository(db *gorm.DB) *applicationRepository {
	return &applicationRepository{
		db:         db,
		Repository: database.NewGormRepository[uuid.UUID, models.Application](db),
	}
}

func (g *applicationRepository) GetByProjectID(projectID uuid.UUID) ([]models.Application, error) {
	var applications []models.Application
	err := g.db.Where("project_id = ?", projectID).Find(&applications).Error
	return applications, err
}

// GetByApplicantAndProject returns gorm.ErrRecordNotFound if the applicant
// has not applied to the project.
func (g *applicationRepository) GetByApplicantAndProject(applicantID, projectID uuid.UUID) (models.Application, error) {
	var application models.Application
	err := g.db.Where("applicant_id = ? AND project_id = ?", applicantID, projectID).First(&application).Error
	return application, err
}

func (g *applicationRepository) GetAppliedProjects(applicantID uuid.UUID) ([]models.Project, error) {
	var projects []models.Project
	err := g.db.Model(&models.Application{}).
		Select("projects.*").
		Joins("JOIN projects ON projects.id = applications.project_id").
		Where("applications.applicant_id = ?", applicantID).
		Find(&projects).Error
	return projects, err
}
