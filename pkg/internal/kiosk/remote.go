package kiosk

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sweepref/guestsource/pkg/internal/services"
)

// RemoteLog consumes the response log over HTTP for split deployments where
// the kiosk runs apart from the API. Transport faults surface as
// ErrNetworkFailure; HTTP statuses map back onto the services taxonomy.
type RemoteLog struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

func NewRemoteLog(baseURL string, token string) *RemoteLog {
	return &RemoteLog{
		BaseURL: baseURL,
		Token:   token,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (r *RemoteLog) GetVenueBySlug(ctx context.Context, slug string) (VenueInfo, error) {
	var info VenueInfo
	err := r.roundTrip(ctx, http.MethodGet, fmt.Sprintf("/api/venues/slug/%s", slug), nil, &info)
	return info, err
}

func (r *RemoteLog) CheckPassword(ctx context.Context, venueId uint, password string) error {
	payload := map[string]any{"password": password}
	return r.roundTrip(ctx, http.MethodPost, fmt.Sprintf("/api/venues/%d/unlock", venueId), payload, nil)
}

func (r *RemoteLog) AddResponse(ctx context.Context, venueId uint, sourceKey string) (SubmitReceipt, error) {
	payload := map[string]any{"venue_id": venueId, "source_key": sourceKey}
	var receipt SubmitReceipt
	err := r.roundTrip(ctx, http.MethodPost, "/api/responses", payload, &receipt)
	return receipt, err
}

func (r *RemoteLog) UndoResponse(ctx context.Context, responseId uint, venueId uint) (int64, error) {
	payload := map[string]any{"venue_id": venueId}
	var out struct {
		TodayCount int64 `json:"today_count"`
	}
	err := r.roundTrip(ctx, http.MethodDelete, fmt.Sprintf("/api/responses/%d", responseId), payload, &out)
	return out.TodayCount, err
}

func (r *RemoteLog) TodayCount(ctx context.Context, venueId uint) (int64, error) {
	var out struct {
		Count int64 `json:"count"`
	}
	err := r.roundTrip(ctx, http.MethodGet, fmt.Sprintf("/api/venues/%d/today", venueId), nil, &out)
	return out.Count, err
}

func (r *RemoteLog) roundTrip(ctx context.Context, method, path string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := jsoniter.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	request, err := http.NewRequestWithContext(ctx, method, r.BaseURL+path, body)
	if err != nil {
		return err
	}
	request.Header.Set("Content-Type", "application/json")
	if len(r.Token) > 0 {
		request.Header.Set("Authorization", "Bearer "+r.Token)
	}

	response, err := r.Client.Do(request)
	if err != nil {
		return fmt.Errorf("%w: %v", services.ErrNetworkFailure, err)
	}
	defer response.Body.Close()

	if response.StatusCode >= 400 {
		return statusError(response.StatusCode)
	}

	if out == nil {
		return nil
	}
	raw, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", services.ErrNetworkFailure, err)
	}
	return jsoniter.Unmarshal(raw, out)
}

func statusError(code int) error {
	switch code {
	case http.StatusNotFound:
		return services.ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return services.ErrInvalidCredential
	case http.StatusBadRequest:
		return services.ErrValidation
	default:
		return fmt.Errorf("%w: unexpected status %d", services.ErrNetworkFailure, code)
	}
}
