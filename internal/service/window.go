package service

import (
	"fmt"
	"time"

	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/model"
)

// Window statuses, in message-selection priority order.
const (
	WindowStatusComplete = "complete" // both events recorded
	WindowStatusActive   = "active"   // within window, an action available
	WindowStatusUpcoming = "upcoming" // before the window opens
	WindowStatusMissed   = "missed"   // window closed with an event missing
	WindowStatusClosed   = "closed"   // no window available (missing settings, bad times)
)

// WindowState is the derived attendance state for one session at one instant.
// It is recomputed on every evaluation and holds no state of its own.
type WindowState struct {
	CanCheckIn   bool
	CanCheckOut  bool
	HasCheckIn   bool
	HasCheckOut  bool
	WithinWindow bool
	WindowStart  time.Time
	WindowEnd    time.Time
	Status       string
	Message      string
}

// ComputeWindow derives the attendance window for a session given the global
// grace settings, the events already recorded today, and the current time.
// The function is pure: identical inputs (including now) yield identical
// output.
//
// A nil settings object disables all actions: the window boundaries stay
// zero and the status is closed (or complete when both events exist).
func ComputeWindow(session EffectiveSession, settings *model.GlobalSetting, todaysEvents []model.AttendanceEvent, now time.Time) WindowState {
	state := WindowState{}

	for _, ev := range todaysEvents {
		if ev.EntryID != session.Entry.EntryID {
			continue
		}
		switch ev.Type {
		case model.AttendanceCheckIn:
			state.HasCheckIn = true
		case model.AttendanceCheckOut:
			state.HasCheckOut = true
		}
	}

	if settings == nil {
		return closedState(state)
	}

	start, err := clockOnDate(now, session.Entry.StartTime)
	if err != nil {
		return closedState(state)
	}
	end, err := clockOnDate(now, session.Entry.EndTime)
	if err != nil {
		return closedState(state)
	}

	state.WindowStart = start.Add(-time.Duration(settings.CheckInGraceMinutes) * time.Minute)
	state.WindowEnd = end.Add(time.Duration(settings.CheckOutGraceMinutes) * time.Minute)
	state.WithinWindow = !now.Before(state.WindowStart) && !now.After(state.WindowEnd)

	state.CanCheckIn = state.WithinWindow && !state.HasCheckIn
	state.CanCheckOut = state.WithinWindow && !state.HasCheckOut &&
		(state.HasCheckIn || !settings.RequireCheckInForCheckOut)

	switch {
	case state.HasCheckIn && state.HasCheckOut:
		state.Status = WindowStatusComplete
		state.Message = "attendance complete"
	case state.WithinWindow && (state.CanCheckIn || state.CanCheckOut):
		state.Status = WindowStatusActive
		state.Message = "attendance window open"
	case now.Before(state.WindowStart):
		state.Status = WindowStatusUpcoming
		state.Message = fmt.Sprintf("window opens at %s", state.WindowStart.Format("15:04"))
	case now.After(state.WindowEnd):
		state.Status = WindowStatusMissed
		state.Message = "window closed, attendance missed"
	default:
		state.Status = WindowStatusClosed
		state.Message = "no action available"
	}

	return state
}

func closedState(state WindowState) WindowState {
	if state.HasCheckIn && state.HasCheckOut {
		state.Status = WindowStatusComplete
		state.Message = "attendance complete"
	} else {
		state.Status = WindowStatusClosed
		state.Message = "attendance window unavailable"
	}
	return state
}

// clockOnDate anchors an "HH:MM" string on the calendar date of ref, in
// ref's location.
func clockOnDate(ref time.Time, hhmm string) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := ref.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, ref.Location()), nil
}
