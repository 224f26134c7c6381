package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/dto"
	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/model"
)

func setupScheduleTest(t *testing.T) (ScheduleService, *testRepos) {
	t.Helper()
	repo, mocks := newTestRepository()
	_ = mocks.user.Create(context.Background(), &model.User{
		UserID: "guru-a", Name: "Andi", NIP: "G001", Role: model.RoleGuru, IsActive: true,
	})
	return NewScheduleService(repo, zap.NewNop()), mocks
}

func TestScheduleService_CreateValidatesTimeRange(t *testing.T) {
	svc, _ := setupScheduleTest(t)

	_, err := svc.Create(context.Background(), &dto.CreateScheduleEntryRequest{
		TeacherID: "guru-a",
		DayOfWeek: 1,
		StartTime: "10:00",
		EndTime:   "09:00",
	}, "admin-1")
	if !errors.Is(err, ErrInvalidTimeRange) {
		t.Errorf("expected ErrInvalidTimeRange, got %v", err)
	}

	_, err = svc.Create(context.Background(), &dto.CreateScheduleEntryRequest{
		TeacherID: "guru-a",
		DayOfWeek: 1,
		StartTime: "08:00",
		EndTime:   "09:00",
		Subject:   "Matematika",
	}, "admin-1")
	if err != nil {
		t.Errorf("valid entry should be created: %v", err)
	}
}

func TestScheduleService_CreateUnknownTeacher(t *testing.T) {
	svc, _ := setupScheduleTest(t)

	_, err := svc.Create(context.Background(), &dto.CreateScheduleEntryRequest{
		TeacherID: "nobody",
		DayOfWeek: 1,
		StartTime: "08:00",
		EndTime:   "09:00",
	}, "admin-1")
	if !errors.Is(err, ErrTeacherNotFound) {
		t.Errorf("expected ErrTeacherNotFound, got %v", err)
	}
}

func TestScheduleService_UpdateNotFound(t *testing.T) {
	svc, _ := setupScheduleTest(t)

	_, err := svc.Update(context.Background(), "missing", &dto.UpdateScheduleEntryRequest{}, "admin-1")
	if !errors.Is(err, ErrScheduleEntryNotFound) {
		t.Errorf("expected ErrScheduleEntryNotFound, got %v", err)
	}
}

func TestScheduleService_GetToday(t *testing.T) {
	svc, mocks := setupScheduleTest(t)
	now := at(t, "08:05") // Monday

	_ = mocks.schedule.Create(context.Background(), &model.ScheduleEntry{
		EntryID: "entry-1", TeacherID: "guru-a",
		DayOfWeek: 1, StartTime: "08:00", EndTime: "09:00", IsActive: true,
	})
	// Tuesday entry must not appear
	_ = mocks.schedule.Create(context.Background(), &model.ScheduleEntry{
		EntryID: "entry-2", TeacherID: "guru-a",
		DayOfWeek: 2, StartTime: "08:00", EndTime: "09:00", IsActive: true,
	})

	resp, err := svc.GetToday(context.Background(), "guru-a", now)
	if err != nil {
		t.Fatalf("GetToday should succeed: %v", err)
	}
	if resp.Degraded {
		t.Error("healthy lookups must not report degraded")
	}
	if len(resp.Sessions) != 1 || resp.Sessions[0].Entry.ID != "entry-1" {
		t.Fatalf("expected only today's entry, got %+v", resp.Sessions)
	}
	if resp.Sessions[0].Window.Status != WindowStatusActive {
		t.Errorf("window should be active at 08:05, got %s", resp.Sessions[0].Window.Status)
	}
}

// A failing swap lookup serves the unmodified schedule and flags it.
func TestScheduleService_GetTodayDegradedOnSwapFailure(t *testing.T) {
	svc, mocks := setupScheduleTest(t)
	now := at(t, "08:05")

	_ = mocks.schedule.Create(context.Background(), &model.ScheduleEntry{
		EntryID: "entry-1", TeacherID: "guru-a",
		DayOfWeek: 1, StartTime: "08:00", EndTime: "09:00", IsActive: true,
	})
	mocks.swap.failApproved = true

	resp, err := svc.GetToday(context.Background(), "guru-a", now)
	if err != nil {
		t.Fatalf("degraded GetToday still succeeds: %v", err)
	}
	if !resp.Degraded {
		t.Error("swap-lookup failure must set Degraded")
	}
	if len(resp.Sessions) != 1 || resp.Sessions[0].Entry.ID != "entry-1" {
		t.Errorf("degraded mode serves the plain recurring schedule, got %+v", resp.Sessions)
	}
}

// Missing settings degrade the response to closed windows.
func TestScheduleService_GetTodayDegradedOnSettingsFailure(t *testing.T) {
	svc, mocks := setupScheduleTest(t)
	now := at(t, "08:05")

	_ = mocks.schedule.Create(context.Background(), &model.ScheduleEntry{
		EntryID: "entry-1", TeacherID: "guru-a",
		DayOfWeek: 1, StartTime: "08:00", EndTime: "09:00", IsActive: true,
	})
	mocks.setting.failGet = true

	resp, err := svc.GetToday(context.Background(), "guru-a", now)
	if err != nil {
		t.Fatalf("GetToday should not fail on settings error: %v", err)
	}
	if !resp.Degraded {
		t.Error("settings failure must set Degraded")
	}
	if resp.Sessions[0].Window.CanCheckIn {
		t.Error("windows must be closed without settings")
	}
}
