package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/model"
)

// SettingRepository is the single-row global-settings data-access interface.
type SettingRepository interface {
	Get(ctx context.Context) (*model.GlobalSetting, error)
	Update(ctx context.Context, setting *model.GlobalSetting) error
}

type settingRepo struct {
	db *gorm.DB
}

// NewSettingRepo creates the gorm-backed SettingRepository.
func NewSettingRepo(db *gorm.DB) SettingRepository {
	return &settingRepo{db: db}
}

func (r *settingRepo) Get(ctx context.Context) (*model.GlobalSetting, error) {
	var setting model.GlobalSetting
	if err := r.db.WithContext(ctx).First(&setting).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *settingRepo) Update(ctx context.Context, setting *model.GlobalSetting) error {
	return r.db.WithContext(ctx).Save(setting).Error
}
