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

type userRepository struct {
	db *gorm.DB
	database.Repository[uuid.UUID, models.User, *gorm.DB]
}

func NewUserRepository(db *gorm.DB) *userRepository {
	return &userRepository{
		db:         db,
		Repository: database.NewGormRepository[uuid.UUID, models.User](db),
	}
}

func (g *userRepository) HasBookmark(userID, projectID uuid.UUID) (bool, error) {
	var count int64
	err := g.db.Table("user_bookmarks").
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Count(&count).Error
	return count > 0, err
}

func (g *userRepository) AddBookmark(userID, projectID uuid.UUID) error {
	return g.db.Model(&models.User{Model: models.Model{ID: userID}}).
		Association("Bookmarks").
		Append(&models.Project{Model: models.Model{ID: projectID}})
}

func (g *userRepository) RemoveBookmark(userID, projectID uuid.UUID) error {
	return g.db.Model(&models.User{Model: models.Model{ID: userID}}).
		Association("Bookmarks").
		Delete(&models.Project{Model: models.Model{ID: projectID}})
}
