package models

type User struct {
	Model
	Name  string `json:"name" gorm:"type:text"`
	Email string `json:"email" gorm:"type:text;uniqueIndex;not null"`

	// politicians create and manage projects, students apply to them and
	// bookmark them. There is no third role.
	IsPolitician bool `json:"isPolitician" gorm:"default:false;not null"`

	Bookmarks []Project `json:"bookmarks,omitempty" gorm:"many2many:user_bookmarks;constraint:OnDelete:CASCADE;"`
}

func (m User) TableName() string {
	return "users"
}
