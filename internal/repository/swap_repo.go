package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/model"
)

// SwapRepository is the swap-request data-access interface.
type SwapRepository interface {
	Create(ctx context.Context, swap *model.SwapRequest) error
	GetByID(ctx context.Context, id string) (*model.SwapRequest, error)
	// ListApprovedForDate returns approved swaps whose swap-out date or target
	// date equals the given calendar date, with requester, entries, and
	// counterpart identities resolved.
	ListApprovedForDate(ctx context.Context, date time.Time) ([]model.SwapRequest, error)
	ListByTeacher(ctx context.Context, teacherID, status string, offset, limit int) ([]model.SwapRequest, int64, error)
	List(ctx context.Context, status string, offset, limit int) ([]model.SwapRequest, int64, error)
	Update(ctx context.Context, swap *model.SwapRequest) error
	SaveCounterpart(ctx context.Context, cp *model.SwapCounterpart) error
}

type swapRepo struct {
	db *gorm.DB
}

// NewSwapRepo creates the gorm-backed SwapRepository.
func NewSwapRepo(db *gorm.DB) SwapRepository {
	return &swapRepo{db: db}
}

func (r *swapRepo) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Requester").
		Preload("RequesterEntry").
		Preload("Counterparts").
		Preload("Counterparts.Teacher").
		Preload("Counterparts.Entry")
}

func (r *swapRepo) Create(ctx context.Context, swap *model.SwapRequest) error {
	return r.db.WithContext(ctx).Create(swap).Error
}

func (r *swapRepo) GetByID(ctx context.Context, id string) (*model.SwapRequest, error) {
	var swap model.SwapRequest
	if err := r.preloaded(ctx).First(&swap, "swap_request_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &swap, nil
}

func (r *swapRepo) ListApprovedForDate(ctx context.Context, date time.Time) ([]model.SwapRequest, error) {
	day := date.Format("2006-01-02")
	var swaps []model.SwapRequest
	err := r.preloaded(ctx).
		Where("status = ? AND (swap_out_date = ? OR target_date = ?)", model.SwapStatusApproved, day, day).
		Find(&swaps).Error
	return swaps, err
}

func (r *swapRepo) ListByTeacher(ctx context.Context, teacherID, status string, offset, limit int) ([]model.SwapRequest, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.SwapRequest{}).
		Where("requester_id = ? OR swap_request_id IN (?)",
			teacherID,
			r.db.Model(&model.SwapCounterpart{}).Select("swap_request_id").Where("teacher_id = ?", teacherID),
		)
	if status != "" {
		base = base.Where("status = ?", status)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var swaps []model.SwapRequest
	err := base.
		Preload("Requester").
		Preload("RequesterEntry").
		Preload("Counterparts").
		Preload("Counterparts.Teacher").
		Preload("Counterparts.Entry").
		Order("created_at desc").
		Offset(offset).Limit(limit).
		Find(&swaps).Error
	return swaps, total, err
}

func (r *swapRepo) List(ctx context.Context, status string, offset, limit int) ([]model.SwapRequest, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.SwapRequest{})
	if status != "" {
		base = base.Where("status = ?", status)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var swaps []model.SwapRequest
	err := base.
		Preload("Requester").
		Preload("RequesterEntry").
		Preload("Counterparts").
		Preload("Counterparts.Teacher").
		Preload("Counterparts.Entry").
		Order("created_at desc").
		Offset(offset).Limit(limit).
		Find(&swaps).Error
	return swaps, total, err
}

func (r *swapRepo) Update(ctx context.Context, swap *model.SwapRequest) error {
	return r.db.WithContext(ctx).Save(swap).Error
}

func (r *swapRepo) SaveCounterpart(ctx context.Context, cp *model.SwapCounterpart) error {
	return r.db.WithContext(ctx).Save(cp).Error
}
