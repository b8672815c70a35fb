package models

type SourceOption struct {
	BaseModel

	Key       string `json:"key" gorm:"uniqueIndex" validate:"required,lowercase"`
	Label     string `json:"label" validate:"required"`
	Icon      string `json:"icon"`
	SortOrder int    `json:"sort_order"`
	Active    bool   `json:"active"`
}
