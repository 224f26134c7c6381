package handler

import "github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/service"

// Handler aggregates all HTTP handlers.
type Handler struct {
	Auth       *AuthHandler
	User       *UserHandler
	Schedule   *ScheduleHandler
	Swap       *SwapHandler
	Attendance *AttendanceHandler
	Setting    *SettingHandler
	Letter     *LetterHandler
	Export     *ExportHandler
}

// NewHandler creates the handler aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth),
		User:       NewUserHandler(svc.User),
		Schedule:   NewScheduleHandler(svc.Schedule),
		Swap:       NewSwapHandler(svc.Swap),
		Attendance: NewAttendanceHandler(svc.Attendance),
		Setting:    NewSettingHandler(svc.Setting),
		Letter:     NewLetterHandler(svc.Letter),
		Export:     NewExportHandler(svc.Export),
	}
}
