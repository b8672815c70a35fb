package kiosk

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sweepref/guestsource/pkg/internal/models"
)

type State string

const (
	// StateLocked gates venues with a password until this session verifies it.
	StateLocked = State("locked")
	// StateChoosing presents the source buttons.
	StateChoosing = State("choosing")
	// StateSubmitting has exactly one submission round trip in flight.
	StateSubmitting = State("submitting")
	// StateConfirmed shows the thank-you screen while the undo window runs.
	StateConfirmed = State("confirmed")
)

var (
	ErrSessionLocked      = errors.New("venue password has not been verified")
	ErrSubmissionInFlight = errors.New("another submission is already in flight")
	ErrNotChoosing        = errors.New("no source choice is being presented")
	ErrUndoWindowClosed   = errors.New("the undo window has closed")
	ErrUndoInFlight       = errors.New("an undo is already in flight")
)

// DefaultUndoWindow matches the reference behavior of five countdown ticks.
const DefaultUndoWindow = 5 * time.Second

// PendingUndo names the one record this session may still retract.
type PendingUndo struct {
	ResponseID uint      `json:"response_id"`
	Deadline   time.Time `json:"deadline"`
}

// Session drives the guarded submission flow for one kiosk browser session:
// optional password gate, choice screen, one in-flight submission, then a
// confirmation with a cancellable undo countdown. All transitions run under
// one mutex, so the countdown expiry and an explicit undo can never both win.
type Session struct {
	ID string

	log        ResponseLog
	undoWindow time.Duration
	now        func() time.Time

	mu         sync.Mutex
	venueID    uint
	state      State
	unlocked   map[uint]bool
	pending    *PendingUndo
	generation uint64
	inFlight   bool
	todayCount int64
	countdown  ScheduledTask
}

type SessionOption func(*Session)

func WithUndoWindow(window time.Duration) SessionOption {
	return func(s *Session) { s.undoWindow = window }
}

func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

// NewSession opens a fresh kiosk session bound to the given venue.
func NewSession(log ResponseLog, venue models.Venue, options ...SessionOption) *Session {
	session := &Session{
		ID:         uuid.NewString(),
		log:        log,
		undoWindow: DefaultUndoWindow,
		now:        time.Now,
		unlocked:   make(map[uint]bool),
	}
	for _, option := range options {
		option(session)
	}
	session.BindVenue(venue)
	return session
}

// BindVenue points the session at a venue and resets the flow. A venue with
// a password starts locked unless this session already verified it; the
// verification flag of one venue never opens another venue's gate.
func (s *Session) BindVenue(venue models.Venue) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.countdown.Cancel()
	s.venueID = venue.ID
	s.pending = nil
	s.generation++

	if venue.HasPassword() && !s.unlocked[venue.ID] {
		s.state = StateLocked
	} else {
		s.state = StateChoosing
	}
}

// Unlock verifies the venue password. Failure keeps the gate shut and is
// reported as an invalid credential regardless of the underlying cause.
func (s *Session) Unlock(ctx context.Context, password string) error {
	s.mu.Lock()
	if s.state != StateLocked {
		s.mu.Unlock()
		return nil
	}
	venueId := s.venueID
	s.mu.Unlock()

	if err := s.log.CheckPassword(ctx, venueId, password); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.unlocked[venueId] = true
	if s.state == StateLocked && s.venueID == venueId {
		s.state = StateChoosing
	}
	return nil
}

// Submit records one source choice. Re-entrant submits while a round trip is
// pending are rejected before any network call is made; a success confirms
// the submission and arms the undo countdown, a failure returns straight to
// the choice screen.
func (s *Session) Submit(ctx context.Context, sourceKey string) (SubmitReceipt, error) {
	s.mu.Lock()
	switch s.state {
	case StateSubmitting:
		s.mu.Unlock()
		return SubmitReceipt{}, ErrSubmissionInFlight
	case StateLocked:
		s.mu.Unlock()
		return SubmitReceipt{}, ErrSessionLocked
	case StateConfirmed:
		s.mu.Unlock()
		return SubmitReceipt{}, ErrNotChoosing
	}
	s.state = StateSubmitting
	venueId := s.venueID
	generation := s.generation
	s.mu.Unlock()

	receipt, err := s.log.AddResponse(ctx, venueId, sourceKey)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation != generation {
		// The flow moved on (venue rebind) while the call was out; the new
		// binding must not inherit this confirmation.
		return receipt, err
	}

	if err != nil {
		s.state = StateChoosing
		return SubmitReceipt{}, err
	}

	s.state = StateConfirmed
	s.todayCount = receipt.TodayCount
	s.pending = &PendingUndo{
		ResponseID: receipt.ResponseID,
		Deadline:   s.now().Add(s.undoWindow),
	}
	s.generation++
	s.armCountdownLocked(s.undoWindow)

	return receipt, nil
}

// armCountdownLocked schedules the expiry for the current generation. The
// single-slot task replaces any previous countdown, so timers never overlap.
func (s *Session) armCountdownLocked(in time.Duration) {
	generation := s.generation
	s.countdown.StartAfter(in, func() {
		s.expireUndo(generation)
	})
}

// expireUndo is the last countdown tick. It disarms the undo action in the
// same critical section that returns the session to the choice screen, so an
// undo arriving afterwards finds the window already closed.
func (s *Session) expireUndo(generation uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation != generation || s.state != StateConfirmed {
		return
	}
	s.pending = nil
	s.state = StateChoosing
}

// Undo retracts the pending record before the countdown expires. The local
// today counter takes the server-confirmed value, never a local guess. When
// the round trip fails the record stays confirmed and the remaining window
// is re-armed instead of pretending the record was removed.
func (s *Session) Undo(ctx context.Context) (int64, error) {
	s.mu.Lock()
	if s.state != StateConfirmed || s.pending == nil {
		s.mu.Unlock()
		return 0, ErrUndoWindowClosed
	}
	if s.inFlight {
		s.mu.Unlock()
		return 0, ErrUndoInFlight
	}

	pending := *s.pending
	generation := s.generation
	venueId := s.venueID
	s.inFlight = true
	s.countdown.Cancel()
	s.mu.Unlock()

	count, err := s.log.UndoResponse(ctx, pending.ResponseID, venueId)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false

	if s.generation != generation {
		// The flow moved on (venue rebind) while the call was out.
		return s.todayCount, err
	}

	if err != nil {
		remaining := pending.Deadline.Sub(s.now())
		if remaining > 0 {
			s.armCountdownLocked(remaining)
		} else {
			s.pending = nil
			s.state = StateChoosing
		}
		return s.todayCount, err
	}

	s.todayCount = count
	s.pending = nil
	s.state = StateChoosing
	s.generation++
	return count, nil
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) VenueID() uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.venueID
}

func (s *Session) TodayCount() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.todayCount
}

// PendingUndo reports the retractable record, or nil outside the window.
func (s *Session) PendingUndo() *PendingUndo {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return nil
	}
	pending := *s.pending
	return &pending
}

// Close releases the countdown timer when the owning view goes away.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.countdown.Cancel()
	s.generation++
}
