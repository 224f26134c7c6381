package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/dto"
	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/model"
	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/repository"
)

// ErrSettingNotFound indicates the singleton settings row is missing.
var ErrSettingNotFound = errors.New("global settings not initialized")

// SettingService reads and updates the single-row global settings.
type SettingService interface {
	Get(ctx context.Context) (*model.GlobalSetting, error)
	Update(ctx context.Context, req *dto.UpdateSettingRequest, callerID string) (*model.GlobalSetting, error)
}

type settingService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSettingService creates a SettingService.
func NewSettingService(repo *repository.Repository, logger *zap.Logger) SettingService {
	return &settingService{repo: repo, logger: logger}
}

func (s *settingService) Get(ctx context.Context) (*model.GlobalSetting, error) {
	setting, err := s.repo.Setting.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}
		s.logger.Error("load settings failed", zap.Error(err))
		return nil, err
	}
	return setting, nil
}

func (s *settingService) Update(ctx context.Context, req *dto.UpdateSettingRequest, callerID string) (*model.GlobalSetting, error) {
	setting, err := s.repo.Setting.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}
		s.logger.Error("load settings failed", zap.Error(err))
		return nil, err
	}

	if req.CheckInGraceMinutes != nil {
		setting.CheckInGraceMinutes = *req.CheckInGraceMinutes
	}
	if req.CheckOutGraceMinutes != nil {
		setting.CheckOutGraceMinutes = *req.CheckOutGraceMinutes
	}
	if req.RequireCheckInForCheckOut != nil {
		setting.RequireCheckInForCheckOut = *req.RequireCheckInForCheckOut
	}
	if req.AutoCheckOutTime != nil {
		setting.AutoCheckOutTime = *req.AutoCheckOutTime
	}
	if req.FoundationName != nil {
		setting.FoundationName = *req.FoundationName
	}
	if req.LetterCity != nil {
		setting.LetterCity = *req.LetterCity
	}
	setting.UpdatedBy = &callerID

	if err := s.repo.Setting.Update(ctx, setting); err != nil {
		s.logger.Error("update settings failed", zap.Error(err))
		return nil, err
	}

	return setting, nil
}
