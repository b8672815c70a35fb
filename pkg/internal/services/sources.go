package services

import (
	"github.com/sweepref/guestsource/pkg/internal/database"
	"github.com/sweepref/guestsource/pkg/internal/models"
)

// SourceLabel resolves a response's source key to a display label. Keys of
// deleted options fall back to the raw key so label resolution never fails.
func SourceLabel(key string, sources []models.SourceOption) string {
	for _, source := range sources {
		if source.Key == key {
			return source.Label
		}
	}
	return key
}

func ListSources() ([]models.SourceOption, error) {
	var sources []models.SourceOption
	err := database.C.Order("sort_order ASC").Find(&sources).Error

	return sources, err
}

func ListActiveSources() ([]models.SourceOption, error) {
	var sources []models.SourceOption
	err := database.C.Where("active = ?", true).Order("sort_order ASC").Find(&sources).Error

	return sources, err
}

func GetSource(key string) (models.SourceOption, error) {
	var source models.SourceOption
	if err := database.C.Where(models.SourceOption{Key: key}).First(&source).Error; err != nil {
		return source, err
	}
	return source, nil
}

func NewSource(key, label, icon string, sortOrder int) (models.SourceOption, error) {
	source := models.SourceOption{
		Key:       key,
		Label:     label,
		Icon:      icon,
		SortOrder: sortOrder,
		Active:    true,
	}

	err := database.C.Save(&source).Error

	return source, err
}

func EditSource(source models.SourceOption, label, icon string, sortOrder int, active bool) (models.SourceOption, error) {
	source.Label = label
	source.Icon = icon
	source.SortOrder = sortOrder
	source.Active = active

	err := database.C.Save(&source).Error

	return source, err
}

func DeleteSource(source models.SourceOption) error {
	return database.C.Delete(&source).Error
}

var defaultSources = []models.SourceOption{
	{Key: "instagram", Label: "Instagram / соцсети", Icon: "Instagram", SortOrder: 0, Active: true},
	{Key: "friends", Label: "Рекомендация друзей", Icon: "Users", SortOrder: 1, Active: true},
	{Key: "internet_ads", Label: "Реклама в интернете", Icon: "Globe", SortOrder: 2, Active: true},
	{Key: "banner", Label: "Баннер / вывеска", Icon: "Signpost", SortOrder: 3, Active: true},
	{Key: "passerby", Label: "Проходил(а) мимо", Icon: "Footprints", SortOrder: 4, Active: true},
	{Key: "other", Label: "Другое", Icon: "MessageCircle", SortOrder: 5, Active: true},
}

// SeedSources installs the reference option set on a fresh database.
func SeedSources() error {
	var count int64
	if err := database.C.Model(&models.SourceOption{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return database.C.Create(&defaultSources).Error
}
