package kiosk

import (
	"context"
	"time"

	"github.com/sweepref/guestsource/pkg/internal/services"
)

// LocalLog serves the response-log collaborator straight from the services
// layer for single-binary deployments where the kiosk and the API share a
// process.
type LocalLog struct{}

func (LocalLog) GetVenueBySlug(_ context.Context, slug string) (VenueInfo, error) {
	venue, err := services.GetVenueBySlug(slug)
	if err != nil {
		return VenueInfo{}, err
	}
	sources, err := services.ListActiveSources()
	if err != nil {
		return VenueInfo{}, err
	}
	return VenueInfo{Venue: venue, Sources: sources}, nil
}

func (LocalLog) CheckPassword(_ context.Context, venueId uint, password string) error {
	return services.CheckVenuePassword(venueId, password)
}

func (LocalLog) AddResponse(_ context.Context, venueId uint, sourceKey string) (SubmitReceipt, error) {
	record, count, err := services.AddResponse(venueId, sourceKey, nil)
	if err != nil {
		return SubmitReceipt{}, err
	}
	return SubmitReceipt{ResponseID: record.ID, TodayCount: count}, nil
}

func (LocalLog) UndoResponse(_ context.Context, responseId uint, venueId uint) (int64, error) {
	return services.UndoResponse(responseId, venueId)
}

func (LocalLog) TodayCount(_ context.Context, venueId uint) (int64, error) {
	return services.CountToday(venueId, time.Now())
}
