package services

import (
	"github.com/rs/zerolog/log"
	"github.com/sweepref/guestsource/pkg/internal/database"
)

// DoAutoDatabaseCleanup purges rows that were soft-deleted more than a month
// ago, walking the same model range the migrator maintains.
func DoAutoDatabaseCleanup() {
	deletion := 0
	for _, model := range database.AutoMaintainRange {
		tx := database.C.Unscoped().
			Where("deleted_at IS NOT NULL AND deleted_at < NOW() - INTERVAL '30 days'").
			Delete(model)
		if tx.Error == nil {
			deletion += int(tx.RowsAffected)
		}
	}

	if deletion > 0 {
		log.Info().Int("deleted", deletion).Msg("Purged soft-deleted records...")
	}
}
