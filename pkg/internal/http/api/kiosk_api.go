package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"github.com/sweepref/guestsource/pkg/internal/http/exts"
	"github.com/sweepref/guestsource/pkg/internal/kiosk"
)

var (
	kioskLog      kiosk.ResponseLog = kiosk.LocalLog{}
	kioskSessions                   = kiosk.NewSessionStore()
)

func kioskUndoWindow() time.Duration {
	if window := viper.GetDuration("kiosk.undo_window"); window > 0 {
		return window
	}
	return kiosk.DefaultUndoWindow
}

func kioskSessionView(session *kiosk.Session) fiber.Map {
	view := fiber.Map{
		"session_id":  session.ID,
		"state":       session.State(),
		"venue_id":    session.VenueID(),
		"today_count": session.TodayCount(),
	}
	if pending := session.PendingUndo(); pending != nil {
		view["pending_undo"] = pending
	}
	return view
}

func createKioskSession(c *fiber.Ctx) error {
	var data struct {
		Slug string `json:"slug" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	info, err := kioskLog.GetVenueBySlug(c.Context(), data.Slug)
	if err != nil {
		return translateError(err)
	}

	session := kiosk.NewSession(kioskLog, info.Venue, kiosk.WithUndoWindow(kioskUndoWindow()))
	kioskSessions.Put(session)

	view := kioskSessionView(session)
	view["venue"] = info.Venue
	view["sources"] = info.Sources
	return c.JSON(view)
}

func getKioskSession(c *fiber.Ctx) error {
	session, ok := kioskSessions.Get(c.Params("sessionId"))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "session not found")
	}

	return c.JSON(kioskSessionView(session))
}

func unlockKioskSession(c *fiber.Ctx) error {
	session, ok := kioskSessions.Get(c.Params("sessionId"))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "session not found")
	}

	var data struct {
		Password string `json:"password" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if err := session.Unlock(c.Context(), data.Password); err != nil {
		return translateError(err)
	}

	return c.JSON(kioskSessionView(session))
}

func submitKioskSession(c *fiber.Ctx) error {
	session, ok := kioskSessions.Get(c.Params("sessionId"))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "session not found")
	}

	var data struct {
		SourceKey string `json:"source_key" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if _, err := session.Submit(c.Context(), data.SourceKey); err != nil {
		switch err {
		case kiosk.ErrSubmissionInFlight, kiosk.ErrNotChoosing, kiosk.ErrSessionLocked:
			return fiber.NewError(fiber.StatusConflict, err.Error())
		}
		return translateError(err)
	}

	return c.JSON(kioskSessionView(session))
}

func undoKioskSession(c *fiber.Ctx) error {
	session, ok := kioskSessions.Get(c.Params("sessionId"))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "session not found")
	}

	if _, err := session.Undo(c.Context()); err != nil {
		switch err {
		case kiosk.ErrUndoWindowClosed, kiosk.ErrUndoInFlight:
			return fiber.NewError(fiber.StatusConflict, err.Error())
		}
		return translateError(err)
	}

	return c.JSON(kioskSessionView(session))
}
