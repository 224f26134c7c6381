package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/model"
)

// ScheduleRepository is the recurring-schedule data-access interface.
type ScheduleRepository interface {
	Create(ctx context.Context, entry *model.ScheduleEntry) error
	GetByID(ctx context.Context, id string) (*model.ScheduleEntry, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]model.ScheduleEntry, error)
	ListByTeacherAndDay(ctx context.Context, teacherID string, dayOfWeek int) ([]model.ScheduleEntry, error)
	List(ctx context.Context, teacherID string, dayOfWeek *int, offset, limit int) ([]model.ScheduleEntry, int64, error)
	Update(ctx context.Context, entry *model.ScheduleEntry) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type scheduleRepo struct {
	db *gorm.DB
}

// NewScheduleRepo creates the gorm-backed ScheduleRepository.
func NewScheduleRepo(db *gorm.DB) ScheduleRepository {
	return &scheduleRepo{db: db}
}

func (r *scheduleRepo) Create(ctx context.Context, entry *model.ScheduleEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *scheduleRepo) GetByID(ctx context.Context, id string) (*model.ScheduleEntry, error) {
	var entry model.ScheduleEntry
	err := r.db.WithContext(ctx).Preload("Teacher").First(&entry, "entry_id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *scheduleRepo) ListByTeacher(ctx context.Context, teacherID string) ([]model.ScheduleEntry, error) {
	var entries []model.ScheduleEntry
	err := r.db.WithContext(ctx).
		Where("teacher_id = ? AND is_active", teacherID).
		Order("day_of_week asc, start_time asc").
		Find(&entries).Error
	return entries, err
}

func (r *scheduleRepo) ListByTeacherAndDay(ctx context.Context, teacherID string, dayOfWeek int) ([]model.ScheduleEntry, error) {
	var entries []model.ScheduleEntry
	err := r.db.WithContext(ctx).
		Where("teacher_id = ? AND day_of_week = ? AND is_active", teacherID, dayOfWeek).
		Order("start_time asc").
		Find(&entries).Error
	return entries, err
}

func (r *scheduleRepo) List(ctx context.Context, teacherID string, dayOfWeek *int, offset, limit int) ([]model.ScheduleEntry, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.ScheduleEntry{})
	if teacherID != "" {
		q = q.Where("teacher_id = ?", teacherID)
	}
	if dayOfWeek != nil {
		q = q.Where("day_of_week = ?", *dayOfWeek)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []model.ScheduleEntry
	err := q.Preload("Teacher").
		Order("day_of_week asc, start_time asc").
		Offset(offset).Limit(limit).
		Find(&entries).Error
	return entries, total, err
}

func (r *scheduleRepo) Update(ctx context.Context, entry *model.ScheduleEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *scheduleRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.ScheduleEntry{}).Where("entry_id = ?", id).
			Update("deleted_by", deletedBy).Error; err != nil {
			return err
		}
		return tx.Delete(&model.ScheduleEntry{}, "entry_id = ?", id).Error
	})
}
