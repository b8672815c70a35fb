package kiosk

import (
	"context"

	"github.com/sweepref/guestsource/pkg/internal/models"
)

// VenueInfo is what a kiosk needs to present the choice screen.
type VenueInfo struct {
	Venue   models.Venue          `json:"venue"`
	Sources []models.SourceOption `json:"sources"`
}

// SubmitReceipt carries the server-confirmed outcome of one submission.
type SubmitReceipt struct {
	ResponseID uint  `json:"response_id"`
	TodayCount int64 `json:"today_count"`
}

// ResponseLog is the response-log collaborator consumed by kiosk sessions.
// Each call is a single round trip; implementations translate their failure
// modes into the services error taxonomy (ErrNotFound, ErrInvalidCredential,
// ErrValidation, ErrNetworkFailure).
type ResponseLog interface {
	GetVenueBySlug(ctx context.Context, slug string) (VenueInfo, error)
	CheckPassword(ctx context.Context, venueId uint, password string) error
	AddResponse(ctx context.Context, venueId uint, sourceKey string) (SubmitReceipt, error)
	UndoResponse(ctx context.Context, responseId uint, venueId uint) (int64, error)
	TodayCount(ctx context.Context, venueId uint) (int64, error)
}
