package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/model"
	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/repository"
)

// Sweeper closes the day's attendance: at the configured auto check-out
// time it writes a check-out event for every check-in that has none, so
// teachers who forget to check out still get a bounded session.
type Sweeper struct {
	repo     *repository.Repository
	logger   *zap.Logger
	interval time.Duration
	now      func() time.Time
}

// NewSweeper creates a Sweeper ticking once a minute.
func NewSweeper(repo *repository.Repository, logger *zap.Logger) *Sweeper {
	return &Sweeper{
		repo:     repo,
		logger:   logger,
		interval: time.Minute,
		now:      time.Now,
	}
}

// Run blocks until ctx is cancelled, firing the sweep when the wall clock
// reaches the configured auto check-out minute. The settings row is re-read
// on each tick so admin changes take effect without a restart.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	var lastRun string // "2006-01-02", guards against double-firing in a day

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("sweeper stopped")
			return
		case <-ticker.C:
			now := s.now()
			setting, err := s.repo.Setting.Get(ctx)
			if err != nil {
				s.logger.Warn("sweeper: load settings failed", zap.Error(err))
				continue
			}
			if now.Format("15:04") != setting.AutoCheckOutTime {
				continue
			}
			today := now.Format("2006-01-02")
			if lastRun == today {
				continue
			}
			lastRun = today

			if n, err := s.Sweep(ctx, now); err != nil {
				s.logger.Error("sweep failed", zap.Error(err))
			} else if n > 0 {
				s.logger.Info("auto check-out sweep done", zap.Int("closed", n))
			}
		}
	}
}

// Sweep writes the missing check-outs for the given day and returns how
// many it created. Duplicate-key failures are skipped silently: a teacher
// checking out in the same instant wins.
func (s *Sweeper) Sweep(ctx context.Context, now time.Time) (int, error) {
	events, err := s.repo.Attendance.ListByDate(ctx, now)
	if err != nil {
		return 0, err
	}

	type key struct {
		teacherID string
		entryID   string
	}
	checkIns := make(map[key]model.AttendanceEvent)
	checkOuts := make(map[key]bool)

	for _, ev := range events {
		k := key{teacherID: ev.TeacherID, entryID: ev.EntryID}
		switch ev.Type {
		case model.AttendanceCheckIn:
			checkIns[k] = ev
		case model.AttendanceCheckOut:
			checkOuts[k] = true
		}
	}

	closed := 0
	for k, in := range checkIns {
		if checkOuts[k] {
			continue
		}

		event := &model.AttendanceEvent{
			TeacherID:  k.teacherID,
			EntryID:    k.entryID,
			Date:       in.Date,
			Type:       model.AttendanceCheckOut,
			RecordedAt: now,
			Auto:       true,
			Note:       "auto check-out",
		}
		if err := s.repo.Attendance.Create(ctx, event); err != nil {
			if isDuplicateKey(err) {
				continue
			}
			s.logger.Warn("auto check-out failed",
				zap.String("teacher_id", k.teacherID),
				zap.String("entry_id", k.entryID),
				zap.Error(err))
			continue
		}
		closed++
	}

	return closed, nil
}
