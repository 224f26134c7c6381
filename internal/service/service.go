package service

import (
	"go.uber.org/zap"

	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/config"
	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/repository"
	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/pkg/jwt"
	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/pkg/redis"
)

// Service aggregates all business-logic services.
type Service struct {
	Auth       AuthService
	User       UserService
	Schedule   ScheduleService
	Swap       SwapService
	Attendance AttendanceService
	Setting    SettingService
	Letter     LetterService
	Export     ExportService
	Sweeper    *Sweeper
}

// NewService wires every service. rdb may be nil when Redis is unavailable;
// auth then runs without token revocation.
func NewService(cfg *config.Config, repo *repository.Repository, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *Service {
	return &Service{
		Auth:       NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		User:       NewUserService(repo, logger),
		Schedule:   NewScheduleService(repo, logger),
		Swap:       NewSwapService(repo, logger),
		Attendance: NewAttendanceService(repo, logger),
		Setting:    NewSettingService(repo, logger),
		Letter:     NewLetterService(cfg, repo, logger),
		Export:     NewExportService(repo, logger),
		Sweeper:    NewSweeper(repo, logger),
	}
}
