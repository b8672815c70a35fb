package models

type AdminAccount struct {
	BaseModel

	Username     string `json:"username" gorm:"uniqueIndex" validate:"required,alphanum"`
	PasswordHash string `json:"-"`
}
