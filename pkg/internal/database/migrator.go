package database

import (
	"github.com/sweepref/guestsource/pkg/internal/models"
	"gorm.io/gorm"
)

var AutoMaintainRange = []any{
	&models.Venue{},
	&models.SourceOption{},
	&models.AdminAccount{},
}

func RunMigration(source *gorm.DB) error {
	if err := source.AutoMigrate(
		append(
			AutoMaintainRange,
			&models.ResponseRecord{},
		)...,
	); err != nil {
		return err
	}

	return nil
}
