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
	"time"

	"github.com/google/uuid"
	"github.com/polintern/backend/internal/core"
	"github.com/polintern/backend/internal/database"
	"github.com/polintern/backend/internal/database/models"
	"gorm.io/gorm"
)

// ProjectQuery is a validated search specification. Nil fields are not part
// of the filter. Only the query validator constructs these from untrusted
// input, the repository trusts them.
type ProjectQuery struct {
	Title  *string
	Status *models.ProjectStatus
	Nature *models.ProjectNature
	Tags   []string
	Salary *float64
	From   *time.Time
}

type projectRepository struct {
	db *gorm.DB
	database.Repository[uuid.UUID, models.Project, *gorm.DB]
}

func NewProjectRepository(db *gorm.DB) *projectRepository {
	return &projectRepository{
		db:         db,
		Repository: database.NewGormRepository[uuid.UUID, models.Project](db),
	}
}

func (g *projectRepository) ReadWithApplications(id uuid.UUID) (models.Project, error) {
	var project models.Project
	err := g.db.Preload("Applications").First(&project, "id = ?", id).Error
	return project, err
}

func (g *projectRepository) GetByCreator(creatorID uuid.UUID) ([]models.Project, error) {
	var projects []models.Project
	err := g.db.Where("creator_id = ?", creatorID).Find(&projects).Error
	return projects, err
}

func (g *projectRepository) GetLatest(limit int) ([]models.Project, error) {
	var projects []models.Project
	err := g.db.Order("created_at desc").Limit(limit).Find(&projects).Error
	return projects, err
}

func (g *projectRepository) applyQuery(query ProjectQuery) *gorm.DB {
	db := g.db.Model(&models.Project{})
	if query.Title != nil {
		db = db.Where("title ILIKE ?", "%"+*query.Title+"%")
	}
	if query.Status != nil {
		db = db.Where("status = ?", *query.Status)
	}
	if query.Nature != nil {
		db = db.Where("nature = ?", *query.Nature)
	}
	for _, tag := range query.Tags {
		db = db.Where("? = ANY(topic)", tag)
	}
	if query.Salary != nil {
		db = db.Where("salary >= ?", *query.Salary)
	}
	if query.From != nil {
		db = db.Where(`"from" >= ?`, *query.From)
	}
	return db
}

// pageCount keeps the floor contract of the paged response: 15 matches at
// page size 10 report 1, the highest page index the client may still
// request after the first.
func pageCount(count int64, pageInfo core.PageInfo) int64 {
	return count / int64(pageInfo.PageSize)
}

// Search runs the validated query with pagination. Pagination is best
// effort: a project created between two page fetches shifts the windows,
// there is no snapshot isolation across requests.
func (g *projectRepository) Search(query ProjectQuery, pageInfo core.PageInfo) (core.Paged[models.Project], error) {
	var count int64
	if err := g.applyQuery(query).Count(&count).Error; err != nil {
		return core.Paged[models.Project]{}, err
	}

	var projects []models.Project
	err := pageInfo.ApplyOnDB(g.applyQuery(query).Order("created_at desc")).Find(&projects).Error
	if err != nil {
		return core.Paged[models.Project]{}, err
	}

	return core.NewPaged(pageCount(count, pageInfo), projects), nil
}
