package repository

import "gorm.io/gorm"

// Repository aggregates every data-access interface.
type Repository struct {
	User           UserRepository
	Schedule       ScheduleRepository
	Swap           SwapRepository
	Attendance     AttendanceRepository
	Setting        SettingRepository
	LetterTemplate LetterTemplateRepository
	Letter         LetterRepository
}

// NewRepository wires the gorm-backed implementations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:           NewUserRepo(db),
		Schedule:       NewScheduleRepo(db),
		Swap:           NewSwapRepo(db),
		Attendance:     NewAttendanceRepo(db),
		Setting:        NewSettingRepo(db),
		LetterTemplate: NewLetterTemplateRepo(db),
		Letter:         NewLetterRepo(db),
	}
}
