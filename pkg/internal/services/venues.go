package services

import (
	"errors"

	"github.com/sweepref/guestsource/pkg/internal/database"
	"github.com/sweepref/guestsource/pkg/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func ListVenues() ([]models.Venue, error) {
	var venues []models.Venue
	err := database.C.Order("id ASC").Find(&venues).Error

	return venues, err
}

func GetVenue(id uint) (models.Venue, error) {
	var venue models.Venue
	if err := database.C.Where("id = ?", id).First(&venue).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return venue, ErrNotFound
		}
		return venue, err
	}
	return venue, nil
}

func GetVenueBySlug(slug string) (models.Venue, error) {
	var venue models.Venue
	if err := database.C.Where("slug = ?", slug).First(&venue).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return venue, ErrNotFound
		}
		return venue, err
	}
	return venue, nil
}

// CheckVenuePassword verifies the kiosk unlock password. Every failure path
// collapses into ErrInvalidCredential so callers cannot probe which venues
// exist or which of them are gated.
func CheckVenuePassword(venueId uint, password string) error {
	var venue models.Venue
	if err := database.C.Where("id = ?", venueId).First(&venue).Error; err != nil {
		return ErrInvalidCredential
	}
	if !venue.HasPassword() {
		return ErrInvalidCredential
	}
	if bcrypt.CompareHashAndPassword([]byte(*venue.PasswordHash), []byte(password)) != nil {
		return ErrInvalidCredential
	}
	return nil
}

func NewVenue(name string, slug *string) (models.Venue, error) {
	venue := models.Venue{
		Name: name,
		Slug: slug,
	}

	err := database.C.Create(&venue).Error

	return venue, err
}

func RenameVenue(venue models.Venue, name string) (models.Venue, error) {
	venue.Name = name

	err := database.C.Save(&venue).Error

	return venue, err
}

// SetVenuePassword installs or clears the kiosk gate; nil removes it.
func SetVenuePassword(venue models.Venue, password *string) (models.Venue, error) {
	if password == nil {
		venue.PasswordHash = nil
	} else {
		hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
		if err != nil {
			return venue, err
		}
		encoded := string(hash)
		venue.PasswordHash = &encoded
	}

	err := database.C.Save(&venue).Error

	return venue, err
}

// DeleteVenue removes a venue together with its response log. The records
// are deleted outright rather than tombstoned, since the log sits outside
// the soft-delete maintenance walk and would otherwise linger forever.
func DeleteVenue(venue models.Venue) error {
	tx := database.C.Begin()
	if err := tx.Unscoped().Where("venue_id = ?", venue.ID).Delete(&models.ResponseRecord{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(&venue).Error; err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}
