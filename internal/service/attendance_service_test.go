package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/dto"
	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/model"
)

// Monday 2024-03-04, inside the 07:45-09:10 window of the seeded entry.
func setupAttendanceTest(t *testing.T, clock string) (*attendanceService, *testRepos) {
	t.Helper()
	repo, mocks := newTestRepository()

	_ = mocks.schedule.Create(context.Background(), &model.ScheduleEntry{
		EntryID:   "entry-1",
		TeacherID: "guru-a",
		DayOfWeek: 1,
		StartTime: "08:00",
		EndTime:   "09:00",
		IsActive:  true,
	})

	svc := NewAttendanceService(repo, zap.NewNop()).(*attendanceService)
	svc.now = func() time.Time { return at(t, clock) }
	return svc, mocks
}

func TestAttendanceService_CheckInAndOut(t *testing.T) {
	svc, _ := setupAttendanceTest(t, "08:05")
	req := &dto.RecordAttendanceRequest{EntryID: "entry-1"}

	in, err := svc.CheckIn(context.Background(), "guru-a", req)
	if err != nil {
		t.Fatalf("check-in should succeed: %v", err)
	}
	if in.Type != model.AttendanceCheckIn || in.Date != "2024-03-04" {
		t.Errorf("unexpected event: %+v", in)
	}

	out, err := svc.CheckOut(context.Background(), "guru-a", req)
	if err != nil {
		t.Fatalf("check-out should succeed: %v", err)
	}
	if out.Type != model.AttendanceCheckOut {
		t.Errorf("unexpected event: %+v", out)
	}
}

func TestAttendanceService_DuplicateCheckIn(t *testing.T) {
	svc, _ := setupAttendanceTest(t, "08:05")
	req := &dto.RecordAttendanceRequest{EntryID: "entry-1"}

	if _, err := svc.CheckIn(context.Background(), "guru-a", req); err != nil {
		t.Fatalf("first check-in should succeed: %v", err)
	}
	if _, err := svc.CheckIn(context.Background(), "guru-a", req); !errors.Is(err, ErrAlreadyCheckedIn) {
		t.Errorf("expected ErrAlreadyCheckedIn, got %v", err)
	}
}

func TestAttendanceService_CheckOutWithoutCheckIn(t *testing.T) {
	svc, _ := setupAttendanceTest(t, "08:05")

	_, err := svc.CheckOut(context.Background(), "guru-a", &dto.RecordAttendanceRequest{EntryID: "entry-1"})
	if !errors.Is(err, ErrCheckInRequired) {
		t.Errorf("expected ErrCheckInRequired, got %v", err)
	}
}

func TestAttendanceService_CheckOutPolicyDisabled(t *testing.T) {
	svc, mocks := setupAttendanceTest(t, "08:05")
	mocks.setting.setting.RequireCheckInForCheckOut = false

	_, err := svc.CheckOut(context.Background(), "guru-a", &dto.RecordAttendanceRequest{EntryID: "entry-1"})
	if err != nil {
		t.Errorf("check-out without check-in should pass with the policy off: %v", err)
	}
}

func TestAttendanceService_OutsideWindow(t *testing.T) {
	svc, _ := setupAttendanceTest(t, "10:00")

	_, err := svc.CheckIn(context.Background(), "guru-a", &dto.RecordAttendanceRequest{EntryID: "entry-1"})
	if !errors.Is(err, ErrOutsideWindow) {
		t.Errorf("expected ErrOutsideWindow, got %v", err)
	}
}

func TestAttendanceService_NotScheduled(t *testing.T) {
	svc, _ := setupAttendanceTest(t, "08:05")

	_, err := svc.CheckIn(context.Background(), "guru-a", &dto.RecordAttendanceRequest{EntryID: "entry-unknown"})
	if !errors.Is(err, ErrSessionNotScheduled) {
		t.Errorf("expected ErrSessionNotScheduled, got %v", err)
	}

	// someone else's slot is equally not on the caller's schedule
	_, err = svc.CheckIn(context.Background(), "guru-b", &dto.RecordAttendanceRequest{EntryID: "entry-1"})
	if !errors.Is(err, ErrSessionNotScheduled) {
		t.Errorf("expected ErrSessionNotScheduled for foreign slot, got %v", err)
	}
}

// A received swap slot is attendable by the receiver on the swap date.
func TestAttendanceService_CheckInSwappedSession(t *testing.T) {
	svc, mocks := setupAttendanceTest(t, "13:05")
	today := mustDate(t, "2024-03-04")

	entryB := model.ScheduleEntry{
		EntryID:   "entry-b",
		TeacherID: "guru-b",
		DayOfWeek: 1,
		StartTime: "13:00",
		EndTime:   "15:00",
		IsActive:  true,
	}
	_ = mocks.schedule.Create(context.Background(), &entryB)
	_ = mocks.swap.Create(context.Background(), &model.SwapRequest{
		SwapRequestID:    "swap-1",
		RequesterID:      "guru-a",
		RequesterEntryID: "entry-1",
		SwapOutDate:      today,
		TargetDate:       today,
		Status:           model.SwapStatusApproved,
		Counterparts: []model.SwapCounterpart{{
			TeacherID: "guru-b",
			EntryID:   "entry-b",
			Entry:     &entryB,
		}},
	})

	// guru-a received entry-b for today
	_, err := svc.CheckIn(context.Background(), "guru-a", &dto.RecordAttendanceRequest{EntryID: "entry-b"})
	if err != nil {
		t.Errorf("check-in on a received swap slot should succeed: %v", err)
	}

	// the given-away slot is no longer attendable by guru-a
	_, err = svc.CheckIn(context.Background(), "guru-a", &dto.RecordAttendanceRequest{EntryID: "entry-1"})
	if !errors.Is(err, ErrSessionNotScheduled) {
		t.Errorf("expected ErrSessionNotScheduled on the swapped-out slot, got %v", err)
	}
}

func TestAttendanceService_MissingSettingsClosesWindow(t *testing.T) {
	svc, mocks := setupAttendanceTest(t, "08:05")
	mocks.setting.setting = nil

	_, err := svc.CheckIn(context.Background(), "guru-a", &dto.RecordAttendanceRequest{EntryID: "entry-1"})
	if !errors.Is(err, ErrOutsideWindow) {
		t.Errorf("missing settings must refuse attendance, got %v", err)
	}
}
