package kiosk_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sweepref/guestsource/pkg/internal/kiosk"
	"github.com/sweepref/guestsource/pkg/internal/services"
)

// logStub serves the collaborator API for the add -> undo -> undo-again
// contract: the second undo of the same record is gone server-side.
func logStub(t *testing.T) *httptest.Server {
	t.Helper()
	undone := false

	mux := http.NewServeMux()
	mux.HandleFunc("/api/responses", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		raw, _ := jsoniter.Marshal(map[string]any{"response_id": 41, "today_count": 7})
		w.Write(raw)
	})
	mux.HandleFunc("/api/responses/41", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if undone {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		undone = true
		raw, _ := jsoniter.Marshal(map[string]any{"today_count": 6})
		w.Write(raw)
	})
	mux.HandleFunc("/api/venues/1/unlock", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/api/venues/slug/ghost", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	return httptest.NewServer(mux)
}

func TestRemoteLogAddUndoUndoAgain(t *testing.T) {
	server := logStub(t)
	defer server.Close()

	log := kiosk.NewRemoteLog(server.URL, "")
	ctx := context.Background()

	receipt, err := log.AddResponse(ctx, 1, "friends")
	require.NoError(t, err)
	assert.Equal(t, uint(41), receipt.ResponseID)
	assert.Equal(t, int64(7), receipt.TodayCount)

	count, err := log.UndoResponse(ctx, receipt.ResponseID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(6), count)

	_, err = log.UndoResponse(ctx, receipt.ResponseID, 1)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestRemoteLogErrorMapping(t *testing.T) {
	server := logStub(t)
	defer server.Close()

	log := kiosk.NewRemoteLog(server.URL, "")
	ctx := context.Background()

	err := log.CheckPassword(ctx, 1, "wrong")
	assert.ErrorIs(t, err, services.ErrInvalidCredential)

	_, err = log.GetVenueBySlug(ctx, "ghost")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestRemoteLogTransportFailure(t *testing.T) {
	server := logStub(t)
	server.Close()

	log := kiosk.NewRemoteLog(server.URL, "")

	_, err := log.TodayCount(context.Background(), 1)
	assert.ErrorIs(t, err, services.ErrNetworkFailure)
}
