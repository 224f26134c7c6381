package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/dto"
	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/model"
	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/repository"
)

// ── attendance module errors ──

var (
	ErrSessionNotScheduled = errors.New("session is not on today's effective schedule")
	ErrAlreadyCheckedIn    = errors.New("check-in already recorded for this session today")
	ErrAlreadyCheckedOut   = errors.New("check-out already recorded for this session today")
	ErrCheckInRequired     = errors.New("check-out requires a prior check-in")
	ErrOutsideWindow       = errors.New("current time is outside the attendance window")
)

// AttendanceService records and lists attendance events. Recording validates
// the session against the effective schedule and the computed window; the
// one-event-per-(session,type,date) rule is ultimately enforced by the store's
// unique index.
type AttendanceService interface {
	CheckIn(ctx context.Context, teacherID string, req *dto.RecordAttendanceRequest) (*dto.AttendanceEventResponse, error)
	CheckOut(ctx context.Context, teacherID string, req *dto.RecordAttendanceRequest) (*dto.AttendanceEventResponse, error)
	ListMineToday(ctx context.Context, teacherID string) ([]dto.AttendanceEventResponse, error)
	List(ctx context.Context, req *dto.AttendanceListRequest) ([]dto.AttendanceEventResponse, int64, error)
}

type attendanceService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewAttendanceService creates an AttendanceService.
func NewAttendanceService(repo *repository.Repository, logger *zap.Logger) AttendanceService {
	return &attendanceService{repo: repo, logger: logger, now: time.Now}
}

func (s *attendanceService) CheckIn(ctx context.Context, teacherID string, req *dto.RecordAttendanceRequest) (*dto.AttendanceEventResponse, error) {
	return s.record(ctx, teacherID, req, model.AttendanceCheckIn)
}

func (s *attendanceService) CheckOut(ctx context.Context, teacherID string, req *dto.RecordAttendanceRequest) (*dto.AttendanceEventResponse, error) {
	return s.record(ctx, teacherID, req, model.AttendanceCheckOut)
}

func (s *attendanceService) record(ctx context.Context, teacherID string, req *dto.RecordAttendanceRequest, eventType string) (*dto.AttendanceEventResponse, error) {
	now := s.now()

	// 1. The entry must be on today's effective schedule (own slot or one
	//    received through a swap).
	sessions, _ := effectiveSessions(ctx, s.repo, s.logger, teacherID, now)
	var session *EffectiveSession
	for i := range sessions {
		if sessions[i].Entry.EntryID == req.EntryID {
			session = &sessions[i]
			break
		}
	}
	if session == nil {
		return nil, ErrSessionNotScheduled
	}

	// 2. Evaluate the window. Missing settings close every window, so the
	//    computed state already carries the conservative answer.
	settings, err := s.repo.Setting.Get(ctx)
	if err != nil {
		s.logger.Warn("load settings failed, treating windows as closed", zap.Error(err))
		settings = nil
	}
	events, err := s.repo.Attendance.ListByTeacherAndDate(ctx, teacherID, now)
	if err != nil {
		s.logger.Error("load today's attendance failed", zap.Error(err))
		return nil, err
	}

	state := ComputeWindow(*session, settings, events, now)

	switch eventType {
	case model.AttendanceCheckIn:
		if state.HasCheckIn {
			return nil, ErrAlreadyCheckedIn
		}
		if !state.CanCheckIn {
			return nil, ErrOutsideWindow
		}
	case model.AttendanceCheckOut:
		if state.HasCheckOut {
			return nil, ErrAlreadyCheckedOut
		}
		if !state.HasCheckIn && settings != nil && settings.RequireCheckInForCheckOut {
			return nil, ErrCheckInRequired
		}
		if !state.CanCheckOut {
			return nil, ErrOutsideWindow
		}
	}

	// 3. Write exactly one event; the unique index rejects a concurrent
	//    duplicate.
	event := &model.AttendanceEvent{
		TeacherID:  teacherID,
		EntryID:    req.EntryID,
		Date:       time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
		Type:       eventType,
		RecordedAt: now,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		Note:       req.Note,
	}
	if err := s.repo.Attendance.Create(ctx, event); err != nil {
		if isDuplicateKey(err) {
			if eventType == model.AttendanceCheckIn {
				return nil, ErrAlreadyCheckedIn
			}
			return nil, ErrAlreadyCheckedOut
		}
		s.logger.Error("create attendance event failed", zap.Error(err))
		return nil, err
	}

	resp := attendanceEventResponse(*event)
	return &resp, nil
}

func (s *attendanceService) ListMineToday(ctx context.Context, teacherID string) ([]dto.AttendanceEventResponse, error) {
	events, err := s.repo.Attendance.ListByTeacherAndDate(ctx, teacherID, s.now())
	if err != nil {
		s.logger.Error("list today's attendance failed", zap.Error(err))
		return nil, err
	}

	resp := make([]dto.AttendanceEventResponse, 0, len(events))
	for _, ev := range events {
		resp = append(resp, attendanceEventResponse(ev))
	}
	return resp, nil
}

func (s *attendanceService) List(ctx context.Context, req *dto.AttendanceListRequest) ([]dto.AttendanceEventResponse, int64, error) {
	req.Normalize()

	var date *time.Time
	if req.Date != "" {
		d, err := time.Parse("2006-01-02", req.Date)
		if err == nil {
			date = &d
		}
	}

	events, total, err := s.repo.Attendance.List(ctx, req.TeacherID, date, req.Offset(), req.PageSize)
	if err != nil {
		s.logger.Error("list attendance failed", zap.Error(err))
		return nil, 0, err
	}

	resp := make([]dto.AttendanceEventResponse, 0, len(events))
	for _, ev := range events {
		resp = append(resp, attendanceEventResponse(ev))
	}
	return resp, total, nil
}

// isDuplicateKey matches the PostgreSQL unique-violation error without
// importing the driver's error types.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLSTATE 23505") || strings.Contains(msg, "duplicate key")
}

func attendanceEventResponse(ev model.AttendanceEvent) dto.AttendanceEventResponse {
	resp := dto.AttendanceEventResponse{
		ID:         ev.EventID,
		TeacherID:  ev.TeacherID,
		EntryID:    ev.EntryID,
		Date:       ev.Date.Format("2006-01-02"),
		Type:       ev.Type,
		RecordedAt: ev.RecordedAt.Format(time.RFC3339),
		Latitude:   ev.Latitude,
		Longitude:  ev.Longitude,
		Auto:       ev.Auto,
		Note:       ev.Note,
	}
	if ev.Teacher != nil {
		resp.Teacher = &dto.TeacherBrief{
			ID:   ev.Teacher.UserID,
			Name: ev.Teacher.Name,
			NIP:  ev.Teacher.NIP,
		}
	}
	return resp
}
