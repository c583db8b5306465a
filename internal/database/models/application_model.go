package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Application struct {
	Model
	ApplicantID uuid.UUID `json:"applicant" gorm:"type:uuid;uniqueIndex:idx_applicant_project;not null"`
	ProjectID   uuid.UUID `json:"project" gorm:"type:uuid;uniqueIndex:idx_applicant_project;not null"`

	// answers maps a project question verbatim to the applicant's answer
	Answers datatypes.JSONMap `json:"answers" gorm:"type:jsonb;default:'{}';not null"`
}

func (m Application) TableName() string {
	return "applications"
}

// AnswersCover reports whether every question has an answer key. Empty
// answers are allowed, missing keys are not.
func (m Application) AnswersCover(questions []string) bool {
	for _, question := range questions {
		if _, ok := m.Answers[question]; !ok {
			return false
		}
	}
	return true
}
