package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	localCache "github.com/sweepref/guestsource/pkg/internal/cache"
	"github.com/sweepref/guestsource/pkg/internal/database"
	"github.com/sweepref/guestsource/pkg/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UndoAllowance is how long the server keeps a fresh record retractable.
// It is intentionally wider than the kiosk's own countdown so that a slow
// undo call arriving at the last tick still lands.
const UndoAllowance = 60 * time.Second

func todayCountCacheKey(venueId uint) string {
	return fmt.Sprintf("venue-today-count#%d", venueId)
}

// AddResponse validates the submission and appends it to the log, returning
// the stored record together with the venue's refreshed today count.
func AddResponse(venueId uint, sourceKey string, metadata datatypes.JSONMap) (models.ResponseRecord, int64, error) {
	var record models.ResponseRecord

	if _, err := GetVenue(venueId); err != nil {
		if errors.Is(err, ErrNotFound) {
			return record, 0, fmt.Errorf("%w: unknown venue", ErrValidation)
		}
		return record, 0, err
	}

	source, err := GetSource(sourceKey)
	if err != nil || !source.Active {
		return record, 0, fmt.Errorf("%w: source is not offered", ErrValidation)
	}

	record = models.ResponseRecord{
		VenueID:   venueId,
		SourceKey: sourceKey,
		Metadata:  metadata,
	}
	if err := database.C.Create(&record).Error; err != nil {
		return record, 0, err
	}

	count, err := refreshTodayCount(venueId)
	return record, count, err
}

// UndoResponse retracts a just-created record. Records that are already gone
// or older than the server-side allowance yield ErrNotFound; the refreshed
// today count is authoritative for the caller's local counters.
func UndoResponse(responseId uint, venueId uint) (int64, error) {
	var record models.ResponseRecord
	if err := database.C.Where("id = ? AND venue_id = ?", responseId, venueId).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}

	if time.Since(record.CreatedAt) > UndoAllowance {
		return 0, ErrNotFound
	}

	if err := database.C.Unscoped().Delete(&record).Error; err != nil {
		return 0, err
	}

	return refreshTodayCount(venueId)
}

// CountToday reads the venue's today counter through a short-lived cache so
// kiosk polling does not hammer the log table.
func CountToday(venueId uint, now time.Time) (int64, error) {
	cacheManager := cache.New[int64](localCache.S)
	ctx := context.Background()

	if count, err := cacheManager.Get(ctx, todayCountCacheKey(venueId)); err == nil {
		return count, nil
	}

	count, err := countTodaySince(venueId, StartOfDay(now))
	if err != nil {
		return 0, err
	}

	_ = cacheManager.Set(ctx, todayCountCacheKey(venueId), count,
		store.WithExpiration(15*time.Second))

	return count, nil
}

// refreshTodayCount recounts from the log and replaces the cached value, so
// the number returned alongside add/undo is server-confirmed, not guessed.
func refreshTodayCount(venueId uint) (int64, error) {
	count, err := countTodaySince(venueId, StartOfDay(time.Now()))
	if err != nil {
		return 0, err
	}

	cacheManager := cache.New[int64](localCache.S)
	_ = cacheManager.Set(context.Background(), todayCountCacheKey(venueId), count,
		store.WithExpiration(15*time.Second))

	return count, nil
}

func countTodaySince(venueId uint, startOfDay time.Time) (int64, error) {
	var count int64
	err := database.C.Model(&models.ResponseRecord{}).
		Where("venue_id = ? AND created_at >= ?", venueId, startOfDay).
		Count(&count).Error
	return count, err
}

// ListResponses pulls the raw log in creation order for stats and exports.
func ListResponses() ([]models.ResponseRecord, error) {
	var records []models.ResponseRecord
	err := database.C.Order("created_at ASC").Find(&records).Error

	return records, err
}
