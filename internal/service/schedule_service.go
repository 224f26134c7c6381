package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/dto"
	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/model"
	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/repository"
)

// ── schedule module errors ──

var (
	ErrScheduleEntryNotFound = errors.New("schedule entry not found")
	ErrInvalidTimeRange      = errors.New("end time must be after start time")
	ErrTeacherNotFound       = errors.New("teacher not found")
)

// ScheduleService manages recurring weekly schedule entries and derives the
// effective schedule for the current date.
type ScheduleService interface {
	Create(ctx context.Context, req *dto.CreateScheduleEntryRequest, callerID string) (*dto.ScheduleEntryResponse, error)
	Update(ctx context.Context, entryID string, req *dto.UpdateScheduleEntryRequest, callerID string) (*dto.ScheduleEntryResponse, error)
	Delete(ctx context.Context, entryID string, callerID string) error
	List(ctx context.Context, req *dto.ScheduleListRequest) ([]dto.ScheduleEntryResponse, int64, error)
	ListMine(ctx context.Context, teacherID string) ([]dto.ScheduleEntryResponse, error)
	// GetToday returns the teacher's effective sessions for today with
	// per-session attendance windows. A swap-lookup failure degrades to the
	// plain recurring schedule (Degraded=true) instead of failing.
	GetToday(ctx context.Context, teacherID string, now time.Time) (*dto.TodayScheduleResponse, error)
}

type scheduleService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewScheduleService creates a ScheduleService.
func NewScheduleService(repo *repository.Repository, logger *zap.Logger) ScheduleService {
	return &scheduleService{repo: repo, logger: logger}
}

func (s *scheduleService) Create(ctx context.Context, req *dto.CreateScheduleEntryRequest, callerID string) (*dto.ScheduleEntryResponse, error) {
	if req.EndTime <= req.StartTime {
		return nil, ErrInvalidTimeRange
	}

	if _, err := s.repo.User.GetByID(ctx, req.TeacherID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		s.logger.Error("load teacher failed", zap.Error(err))
		return nil, err
	}

	entry := &model.ScheduleEntry{
		TeacherID: req.TeacherID,
		DayOfWeek: req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Subject:   req.Subject,
		Location:  req.Location,
		IsActive:  true,
	}
	entry.CreatedBy = &callerID

	if err := s.repo.Schedule.Create(ctx, entry); err != nil {
		s.logger.Error("create schedule entry failed", zap.Error(err))
		return nil, err
	}

	resp := scheduleEntryResponse(*entry)
	return &resp, nil
}

func (s *scheduleService) Update(ctx context.Context, entryID string, req *dto.UpdateScheduleEntryRequest, callerID string) (*dto.ScheduleEntryResponse, error) {
	entry, err := s.repo.Schedule.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleEntryNotFound
		}
		s.logger.Error("load schedule entry failed", zap.Error(err))
		return nil, err
	}

	if req.DayOfWeek != nil {
		entry.DayOfWeek = *req.DayOfWeek
	}
	if req.StartTime != nil {
		entry.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		entry.EndTime = *req.EndTime
	}
	if entry.EndTime <= entry.StartTime {
		return nil, ErrInvalidTimeRange
	}
	if req.Subject != nil {
		entry.Subject = *req.Subject
	}
	if req.Location != nil {
		entry.Location = *req.Location
	}
	if req.IsActive != nil {
		entry.IsActive = *req.IsActive
	}
	entry.UpdatedBy = &callerID

	if err := s.repo.Schedule.Update(ctx, entry); err != nil {
		s.logger.Error("update schedule entry failed", zap.Error(err))
		return nil, err
	}

	resp := scheduleEntryResponse(*entry)
	return &resp, nil
}

func (s *scheduleService) Delete(ctx context.Context, entryID string, callerID string) error {
	if _, err := s.repo.Schedule.GetByID(ctx, entryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrScheduleEntryNotFound
		}
		s.logger.Error("load schedule entry failed", zap.Error(err))
		return err
	}
	return s.repo.Schedule.Delete(ctx, entryID, callerID)
}

func (s *scheduleService) List(ctx context.Context, req *dto.ScheduleListRequest) ([]dto.ScheduleEntryResponse, int64, error) {
	req.Normalize()

	entries, total, err := s.repo.Schedule.List(ctx, req.TeacherID, req.DayOfWeek, req.Offset(), req.PageSize)
	if err != nil {
		s.logger.Error("list schedule entries failed", zap.Error(err))
		return nil, 0, err
	}

	resp := make([]dto.ScheduleEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, scheduleEntryResponse(e))
	}
	return resp, total, nil
}

func (s *scheduleService) ListMine(ctx context.Context, teacherID string) ([]dto.ScheduleEntryResponse, error) {
	entries, err := s.repo.Schedule.ListByTeacher(ctx, teacherID)
	if err != nil {
		s.logger.Error("list own schedule failed", zap.Error(err))
		return nil, err
	}

	resp := make([]dto.ScheduleEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, scheduleEntryResponse(e))
	}
	return resp, nil
}

func (s *scheduleService) GetToday(ctx context.Context, teacherID string, now time.Time) (*dto.TodayScheduleResponse, error) {
	sessions, degraded := effectiveSessions(ctx, s.repo, s.logger, teacherID, now)

	// Settings and today's events feed the window computation. Either fetch
	// failing degrades to conservative closed windows rather than blocking
	// the schedule view.
	settings, err := s.repo.Setting.Get(ctx)
	if err != nil {
		s.logger.Warn("load settings failed, attendance windows closed", zap.Error(err))
		settings = nil
		degraded = true
	}
	events, err := s.repo.Attendance.ListByTeacherAndDate(ctx, teacherID, now)
	if err != nil {
		s.logger.Warn("load attendance events failed, attendance windows closed", zap.Error(err))
		events = nil
		settings = nil
		degraded = true
	}

	resp := &dto.TodayScheduleResponse{
		Date:     now.Format("2006-01-02"),
		Degraded: degraded,
		Sessions: make([]dto.TodaySessionResponse, 0, len(sessions)),
	}
	for _, sess := range sessions {
		state := ComputeWindow(sess, settings, events, now)
		resp.Sessions = append(resp.Sessions, dto.TodaySessionResponse{
			Entry:       scheduleEntryResponse(sess.Entry),
			ViaSwap:     sess.ViaSwap,
			SwapID:      sess.SwapID,
			FromTeacher: sess.FromTeacher,
			Window:      windowStateResponse(state),
		})
	}
	return resp, nil
}

// effectiveSessions loads the recurring schedule and approved swaps for the
// teacher and reconciles them. A swap-lookup failure fails open: the plain
// recurring schedule is returned with degraded=true.
func effectiveSessions(ctx context.Context, repo *repository.Repository, logger *zap.Logger, teacherID string, now time.Time) ([]EffectiveSession, bool) {
	entries, err := repo.Schedule.ListByTeacherAndDay(ctx, teacherID, isoWeekday(now))
	if err != nil {
		logger.Error("load recurring schedule failed", zap.Error(err))
		return nil, true
	}

	swaps, err := repo.Swap.ListApprovedForDate(ctx, now)
	if err != nil {
		logger.Warn("swap lookup failed, serving unmodified schedule",
			zap.String("teacher_id", teacherID), zap.Error(err))
		return ReconcileSchedule(entries, nil, teacherID, now), true
	}

	return ReconcileSchedule(entries, swaps, teacherID, now), false
}

// isoWeekday maps time.Weekday to ISO 8601 (1=Monday … 7=Sunday).
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// ── mapping helpers ──

func scheduleEntryResponse(e model.ScheduleEntry) dto.ScheduleEntryResponse {
	resp := dto.ScheduleEntryResponse{
		ID:        e.EntryID,
		TeacherID: e.TeacherID,
		DayOfWeek: e.DayOfWeek,
		StartTime: e.StartTime,
		EndTime:   e.EndTime,
		Subject:   e.Subject,
		Location:  e.Location,
		IsActive:  e.IsActive,
	}
	if e.Teacher != nil {
		resp.Teacher = &dto.TeacherBrief{
			ID:   e.Teacher.UserID,
			Name: e.Teacher.Name,
			NIP:  e.Teacher.NIP,
		}
	}
	return resp
}

func windowStateResponse(w WindowState) dto.WindowStateResponse {
	resp := dto.WindowStateResponse{
		CanCheckIn:   w.CanCheckIn,
		CanCheckOut:  w.CanCheckOut,
		HasCheckIn:   w.HasCheckIn,
		HasCheckOut:  w.HasCheckOut,
		WithinWindow: w.WithinWindow,
		Status:       w.Status,
		Message:      w.Message,
	}
	if !w.WindowStart.IsZero() {
		resp.WindowStart = w.WindowStart.Format("15:04")
	}
	if !w.WindowEnd.IsZero() {
		resp.WindowEnd = w.WindowEnd.Format("15:04")
	}
	return resp
}
