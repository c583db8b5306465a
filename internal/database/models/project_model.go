package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type ProjectStatus string

const (
	ProjectStatusOpen      ProjectStatus = "open"
	ProjectStatusClosed    ProjectStatus = "closed"
	ProjectStatusCompleted ProjectStatus = "completed"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusOpen, ProjectStatusClosed, ProjectStatusCompleted:
		return true
	}
	return false
}

type ProjectNature string

const (
	ProjectNatureInternship     ProjectNature = "internship"
	ProjectNatureWorkingStudent ProjectNature = "workingStudent"
	ProjectNatureVolunteering   ProjectNature = "volunteering"
)

func (n ProjectNature) Valid() bool {
	switch n {
	case ProjectNatureInternship, ProjectNatureWorkingStudent, ProjectNatureVolunteering:
		return true
	}
	return false
}

// GermanStates is the set of accepted values for the optional State field.
var GermanStates = []string{
	"Baden-Württemberg", "Bayern", "Berlin", "Brandenburg", "Bremen",
	"Hamburg", "Hessen", "Mecklenburg-Vorpommern", "Niedersachsen",
	"Nordrhein-Westfalen", "Rheinland-Pfalz", "Saarland", "Sachsen",
	"Sachsen-Anhalt", "Schleswig-Holstein", "Thüringen",
}

type Project struct {
	Model
	Title       string        `json:"title" gorm:"type:text;not null"`
	Description string        `json:"description" gorm:"type:text"`
	Status      ProjectStatus `json:"status" gorm:"type:text;default:'open';not null"`

	// name of the attached blob inside the project namespace of the object
	// store, nil if nothing is attached
	FileName *string `json:"file,omitempty" gorm:"type:text"`

	CreatorID uuid.UUID `json:"creator" gorm:"type:uuid;not null"`

	From time.Time  `json:"from"`
	To   *time.Time `json:"to,omitempty"`

	Nature ProjectNature `json:"nature" gorm:"type:text;default:'internship';not null"`
	State  *string       `json:"state,omitempty" gorm:"type:text"`

	Topic     pq.StringArray `json:"topic" gorm:"type:text[]"`
	Salary    float64        `json:"salary" gorm:"default:0;not null"`
	Questions pq.StringArray `json:"questions" gorm:"type:text[]"`

	Applications []Application `json:"applications,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE;"`
}

func (m Project) TableName() string {
	return "projects"
}
