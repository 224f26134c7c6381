package service

import (
	"testing"
	"time"

	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/model"
)

func testSession() EffectiveSession {
	return EffectiveSession{Entry: model.ScheduleEntry{
		EntryID:   "entry-1",
		TeacherID: "guru-a",
		StartTime: "08:00",
		EndTime:   "09:00",
	}}
}

func at(t *testing.T, clock string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02 15:04", "2024-03-04 "+clock)
	if err != nil {
		t.Fatalf("bad clock %q: %v", clock, err)
	}
	return ts
}

func checkIn(entryID string) model.AttendanceEvent {
	return model.AttendanceEvent{EntryID: entryID, Type: model.AttendanceCheckIn}
}

func checkOut(entryID string) model.AttendanceEvent {
	return model.AttendanceEvent{EntryID: entryID, Type: model.AttendanceCheckOut}
}

// 08:00-09:00 session, 15 min check-in grace, 10 min check-out grace:
// window is 07:45-09:10.
func TestComputeWindow_GraceBoundaries(t *testing.T) {
	settings := defaultSettings()

	cases := []struct {
		clock        string
		withinWindow bool
		status       string
	}{
		{"07:44", false, WindowStatusUpcoming},
		{"07:45", true, WindowStatusActive},
		{"07:50", true, WindowStatusActive},
		{"09:05", true, WindowStatusActive},
		{"09:10", true, WindowStatusActive},
		{"09:11", false, WindowStatusMissed},
	}

	for _, tc := range cases {
		state := ComputeWindow(testSession(), settings, nil, at(t, tc.clock))
		if state.WithinWindow != tc.withinWindow {
			t.Errorf("%s: WithinWindow = %v, want %v", tc.clock, state.WithinWindow, tc.withinWindow)
		}
		if state.Status != tc.status {
			t.Errorf("%s: Status = %s, want %s", tc.clock, state.Status, tc.status)
		}
	}
}

func TestComputeWindow_CheckOutRequiresCheckIn(t *testing.T) {
	settings := defaultSettings()
	now := at(t, "08:30")

	// no check-in yet
	state := ComputeWindow(testSession(), settings, nil, now)
	if !state.CanCheckIn {
		t.Error("CanCheckIn should be true inside the window")
	}
	if state.CanCheckOut {
		t.Error("CanCheckOut must wait for a check-in while the policy requires it")
	}

	// after check-in
	state = ComputeWindow(testSession(), settings, []model.AttendanceEvent{checkIn("entry-1")}, now)
	if state.CanCheckIn {
		t.Error("CanCheckIn should drop after the check-in exists")
	}
	if !state.CanCheckOut {
		t.Error("CanCheckOut should be true after check-in")
	}
}

func TestComputeWindow_PolicyDisabled(t *testing.T) {
	settings := defaultSettings()
	settings.RequireCheckInForCheckOut = false

	state := ComputeWindow(testSession(), settings, nil, at(t, "08:30"))
	if !state.CanCheckOut {
		t.Error("CanCheckOut should be allowed without check-in when the policy is off")
	}
}

func TestComputeWindow_Complete(t *testing.T) {
	events := []model.AttendanceEvent{checkIn("entry-1"), checkOut("entry-1")}

	state := ComputeWindow(testSession(), defaultSettings(), events, at(t, "08:30"))
	if state.Status != WindowStatusComplete {
		t.Errorf("Status = %s, want complete", state.Status)
	}
	if state.CanCheckIn || state.CanCheckOut {
		t.Error("no action should remain after both events")
	}
}

func TestComputeWindow_NilSettings(t *testing.T) {
	state := ComputeWindow(testSession(), nil, nil, at(t, "08:30"))
	if state.CanCheckIn || state.CanCheckOut {
		t.Error("missing settings must close every action")
	}
	if state.Status != WindowStatusClosed {
		t.Errorf("Status = %s, want closed", state.Status)
	}
	if !state.WindowStart.IsZero() || !state.WindowEnd.IsZero() {
		t.Error("window boundaries should stay zero without settings")
	}

	// recorded events are still reported
	events := []model.AttendanceEvent{checkIn("entry-1"), checkOut("entry-1")}
	state = ComputeWindow(testSession(), nil, events, at(t, "08:30"))
	if state.Status != WindowStatusComplete {
		t.Errorf("Status = %s, want complete even without settings", state.Status)
	}
}

func TestComputeWindow_IgnoresOtherSessionsEvents(t *testing.T) {
	events := []model.AttendanceEvent{checkIn("entry-other")}

	state := ComputeWindow(testSession(), defaultSettings(), events, at(t, "08:30"))
	if state.HasCheckIn {
		t.Error("an event of another session must not count")
	}
}

func TestComputeWindow_BadEntryTimes(t *testing.T) {
	session := EffectiveSession{Entry: model.ScheduleEntry{
		EntryID:   "entry-1",
		StartTime: "nope",
		EndTime:   "09:00",
	}}

	state := ComputeWindow(session, defaultSettings(), nil, at(t, "08:30"))
	if state.Status != WindowStatusClosed {
		t.Errorf("Status = %s, want closed on unparseable times", state.Status)
	}
	if state.CanCheckIn || state.CanCheckOut {
		t.Error("no actions on unparseable times")
	}
}

// identical input, identical output: evaluating twice changes nothing
func TestComputeWindow_Pure(t *testing.T) {
	settings := defaultSettings()
	events := []model.AttendanceEvent{checkIn("entry-1")}
	now := at(t, "08:30")

	first := ComputeWindow(testSession(), settings, events, now)
	second := ComputeWindow(testSession(), settings, events, now)
	if first != second {
		t.Errorf("repeated evaluation diverged: %+v vs %+v", first, second)
	}
}
