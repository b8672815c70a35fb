package models

import "gorm.io/datatypes"

type Venue struct {
	BaseModel

	Name string  `json:"name" validate:"required"`
	Slug *string `json:"slug" gorm:"uniqueIndex"`

	// Bcrypt hash of the kiosk unlock password; nil means the venue
	// presents the choice screen without a gate.
	PasswordHash *string `json:"-"`

	Metadata datatypes.JSONMap `json:"metadata"`

	Responses []ResponseRecord `json:"responses,omitempty" gorm:"foreignKey:VenueID"`
}

func (v Venue) HasPassword() bool {
	return v.PasswordHash != nil && len(*v.PasswordHash) > 0
}
