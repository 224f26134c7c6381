package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/model"
)

// AttendanceRepository is the attendance-event data-access interface.
// Create must fail with a duplicate-key error for a second event with the
// same (teacher, entry, date, type); the unique index guarantees it.
type AttendanceRepository interface {
	Create(ctx context.Context, event *model.AttendanceEvent) error
	ListByTeacherAndDate(ctx context.Context, teacherID string, date time.Time) ([]model.AttendanceEvent, error)
	ListByDate(ctx context.Context, date time.Time) ([]model.AttendanceEvent, error)
	ListByTeacherAndRange(ctx context.Context, teacherID string, from, to time.Time) ([]model.AttendanceEvent, error)
	List(ctx context.Context, teacherID string, date *time.Time, offset, limit int) ([]model.AttendanceEvent, int64, error)
}

type attendanceRepo struct {
	db *gorm.DB
}

// NewAttendanceRepo creates the gorm-backed AttendanceRepository.
func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

func (r *attendanceRepo) Create(ctx context.Context, event *model.AttendanceEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *attendanceRepo) ListByTeacherAndDate(ctx context.Context, teacherID string, date time.Time) ([]model.AttendanceEvent, error) {
	var events []model.AttendanceEvent
	err := r.db.WithContext(ctx).
		Where("teacher_id = ? AND date = ?", teacherID, date.Format("2006-01-02")).
		Order("recorded_at asc").
		Find(&events).Error
	return events, err
}

func (r *attendanceRepo) ListByDate(ctx context.Context, date time.Time) ([]model.AttendanceEvent, error) {
	var events []model.AttendanceEvent
	err := r.db.WithContext(ctx).
		Preload("Entry").
		Where("date = ?", date.Format("2006-01-02")).
		Order("teacher_id asc, recorded_at asc").
		Find(&events).Error
	return events, err
}

func (r *attendanceRepo) ListByTeacherAndRange(ctx context.Context, teacherID string, from, to time.Time) ([]model.AttendanceEvent, error) {
	var events []model.AttendanceEvent
	err := r.db.WithContext(ctx).
		Preload("Entry").
		Where("teacher_id = ? AND date >= ? AND date <= ?",
			teacherID, from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("date asc, recorded_at asc").
		Find(&events).Error
	return events, err
}

func (r *attendanceRepo) List(ctx context.Context, teacherID string, date *time.Time, offset, limit int) ([]model.AttendanceEvent, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.AttendanceEvent{})
	if teacherID != "" {
		q = q.Where("teacher_id = ?", teacherID)
	}
	if date != nil {
		q = q.Where("date = ?", date.Format("2006-01-02"))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var events []model.AttendanceEvent
	err := q.Preload("Teacher").
		Order("date desc, recorded_at desc").
		Offset(offset).Limit(limit).
		Find(&events).Error
	return events, total, err
}
