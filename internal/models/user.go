package models

// UserModel is an author account. Authentication flows beyond token login
// live outside this service; the model exists so ownership checks and
// author display names have a local source of truth.
type UserModel struct {
	Base
	Email       string `json:"email"        gorm:"uniqueIndex;not null"`
	Password    string `json:"-"            gorm:"not null"`
	DisplayName string `json:"display_name"`
}

func (UserModel) TableName() string { return "users" }
