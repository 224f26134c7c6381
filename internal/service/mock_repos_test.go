package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/model"
	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/repository"
	apperrors "github.com/fibidydev01-sys/administrasi-pkbm-sub001/pkg/errors"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.NIP
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByNIP(_ context.Context, nip string) (*model.User, error) {
	for _, u := range m.users {
		if u.NIP == nip {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context, role, search string, offset, limit int) ([]model.User, int64, error) {
	var result []model.User
	for _, u := range m.users {
		if role != "" && u.Role != role {
			continue
		}
		if search != "" && !strings.Contains(u.Name, search) && !strings.Contains(u.NIP, search) {
			continue
		}
		result = append(result, *u)
	}
	return result, int64(len(result)), nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.users, id)
	return nil
}

// ── Mock ScheduleRepository ──

type mockScheduleRepo struct {
	entries map[string]*model.ScheduleEntry
	seq     int
	failDay bool // make ListByTeacherAndDay fail
}

func newMockScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{entries: make(map[string]*model.ScheduleEntry)}
}

func (m *mockScheduleRepo) Create(_ context.Context, entry *model.ScheduleEntry) error {
	if entry.EntryID == "" {
		m.seq++
		entry.EntryID = fmt.Sprintf("entry-%d", m.seq)
	}
	m.entries[entry.EntryID] = entry
	return nil
}

func (m *mockScheduleRepo) GetByID(_ context.Context, id string) (*model.ScheduleEntry, error) {
	if e, ok := m.entries[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) ListByTeacher(_ context.Context, teacherID string) ([]model.ScheduleEntry, error) {
	var result []model.ScheduleEntry
	for _, e := range m.entries {
		if e.TeacherID == teacherID && e.IsActive {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockScheduleRepo) ListByTeacherAndDay(_ context.Context, teacherID string, dayOfWeek int) ([]model.ScheduleEntry, error) {
	if m.failDay {
		return nil, errors.New("db down")
	}
	var result []model.ScheduleEntry
	for _, e := range m.entries {
		if e.TeacherID == teacherID && e.DayOfWeek == dayOfWeek && e.IsActive {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockScheduleRepo) List(_ context.Context, teacherID string, dayOfWeek *int, offset, limit int) ([]model.ScheduleEntry, int64, error) {
	var result []model.ScheduleEntry
	for _, e := range m.entries {
		if teacherID != "" && e.TeacherID != teacherID {
			continue
		}
		if dayOfWeek != nil && e.DayOfWeek != *dayOfWeek {
			continue
		}
		result = append(result, *e)
	}
	return result, int64(len(result)), nil
}

func (m *mockScheduleRepo) Update(_ context.Context, entry *model.ScheduleEntry) error {
	m.entries[entry.EntryID] = entry
	return nil
}

func (m *mockScheduleRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.entries, id)
	return nil
}

// ── Mock SwapRepository ──

type mockSwapRepo struct {
	swaps        map[string]*model.SwapRequest
	seq          int
	failApproved bool // make ListApprovedForDate fail
}

func newMockSwapRepo() *mockSwapRepo {
	return &mockSwapRepo{swaps: make(map[string]*model.SwapRequest)}
}

func (m *mockSwapRepo) Create(_ context.Context, swap *model.SwapRequest) error {
	if swap.SwapRequestID == "" {
		m.seq++
		swap.SwapRequestID = fmt.Sprintf("swap-%d", m.seq)
	}
	for i := range swap.Counterparts {
		if swap.Counterparts[i].CounterpartID == "" {
			swap.Counterparts[i].CounterpartID = fmt.Sprintf("%s-cp-%d", swap.SwapRequestID, i)
		}
		swap.Counterparts[i].SwapRequestID = swap.SwapRequestID
	}
	m.swaps[swap.SwapRequestID] = swap
	return nil
}

func (m *mockSwapRepo) GetByID(_ context.Context, id string) (*model.SwapRequest, error) {
	if s, ok := m.swaps[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSwapRepo) ListApprovedForDate(_ context.Context, date time.Time) ([]model.SwapRequest, error) {
	if m.failApproved {
		return nil, errors.New("db down")
	}
	day := date.Format("2006-01-02")
	var result []model.SwapRequest
	for _, s := range m.swaps {
		if s.Status != model.SwapStatusApproved {
			continue
		}
		if s.SwapOutDate.Format("2006-01-02") == day || s.TargetDate.Format("2006-01-02") == day {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockSwapRepo) ListByTeacher(_ context.Context, teacherID, status string, offset, limit int) ([]model.SwapRequest, int64, error) {
	var result []model.SwapRequest
	for _, s := range m.swaps {
		involved := s.RequesterID == teacherID
		for _, cp := range s.Counterparts {
			if cp.TeacherID == teacherID {
				involved = true
			}
		}
		if !involved {
			continue
		}
		if status != "" && s.Status != status {
			continue
		}
		result = append(result, *s)
	}
	return result, int64(len(result)), nil
}

func (m *mockSwapRepo) List(_ context.Context, status string, offset, limit int) ([]model.SwapRequest, int64, error) {
	var result []model.SwapRequest
	for _, s := range m.swaps {
		if status != "" && s.Status != status {
			continue
		}
		result = append(result, *s)
	}
	return result, int64(len(result)), nil
}

func (m *mockSwapRepo) Update(_ context.Context, swap *model.SwapRequest) error {
	m.swaps[swap.SwapRequestID] = swap
	return nil
}

func (m *mockSwapRepo) SaveCounterpart(_ context.Context, cp *model.SwapCounterpart) error {
	swap, ok := m.swaps[cp.SwapRequestID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for i := range swap.Counterparts {
		if swap.Counterparts[i].CounterpartID == cp.CounterpartID {
			swap.Counterparts[i] = *cp
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── Mock AttendanceRepository ──

type mockAttendanceRepo struct {
	events []model.AttendanceEvent
	seq    int
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{}
}

// Create mirrors the unique index on (teacher, entry, date, type).
func (m *mockAttendanceRepo) Create(_ context.Context, event *model.AttendanceEvent) error {
	for _, ev := range m.events {
		if ev.TeacherID == event.TeacherID && ev.EntryID == event.EntryID &&
			ev.Date.Format("2006-01-02") == event.Date.Format("2006-01-02") && ev.Type == event.Type {
			return errors.New(`duplicate key value violates unique constraint "uq_attendance_once" (SQLSTATE 23505)`)
		}
	}
	m.seq++
	event.EventID = fmt.Sprintf("event-%d", m.seq)
	m.events = append(m.events, *event)
	return nil
}

func (m *mockAttendanceRepo) ListByTeacherAndDate(_ context.Context, teacherID string, date time.Time) ([]model.AttendanceEvent, error) {
	day := date.Format("2006-01-02")
	var result []model.AttendanceEvent
	for _, ev := range m.events {
		if ev.TeacherID == teacherID && ev.Date.Format("2006-01-02") == day {
			result = append(result, ev)
		}
	}
	return result, nil
}

func (m *mockAttendanceRepo) ListByDate(_ context.Context, date time.Time) ([]model.AttendanceEvent, error) {
	day := date.Format("2006-01-02")
	var result []model.AttendanceEvent
	for _, ev := range m.events {
		if ev.Date.Format("2006-01-02") == day {
			result = append(result, ev)
		}
	}
	return result, nil
}

func (m *mockAttendanceRepo) ListByTeacherAndRange(_ context.Context, teacherID string, from, to time.Time) ([]model.AttendanceEvent, error) {
	var result []model.AttendanceEvent
	for _, ev := range m.events {
		if ev.TeacherID != teacherID {
			continue
		}
		if ev.Date.Before(from) || ev.Date.After(to) {
			continue
		}
		result = append(result, ev)
	}
	return result, nil
}

func (m *mockAttendanceRepo) List(_ context.Context, teacherID string, date *time.Time, offset, limit int) ([]model.AttendanceEvent, int64, error) {
	var result []model.AttendanceEvent
	for _, ev := range m.events {
		if teacherID != "" && ev.TeacherID != teacherID {
			continue
		}
		if date != nil && ev.Date.Format("2006-01-02") != date.Format("2006-01-02") {
			continue
		}
		result = append(result, ev)
	}
	return result, int64(len(result)), nil
}

// ── Mock SettingRepository ──

type mockSettingRepo struct {
	setting *model.GlobalSetting
	failGet bool
}

func newMockSettingRepo() *mockSettingRepo {
	return &mockSettingRepo{setting: defaultSettings()}
}

func defaultSettings() *model.GlobalSetting {
	return &model.GlobalSetting{
		Singleton:                 true,
		CheckInGraceMinutes:       15,
		CheckOutGraceMinutes:      10,
		RequireCheckInForCheckOut: true,
		AutoCheckOutTime:          "21:00",
		FoundationName:            "Yayasan Cerdas",
		LetterCity:                "Bandung",
	}
}

func (m *mockSettingRepo) Get(_ context.Context) (*model.GlobalSetting, error) {
	if m.failGet {
		return nil, errors.New("db down")
	}
	if m.setting == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.setting, nil
}

func (m *mockSettingRepo) Update(_ context.Context, setting *model.GlobalSetting) error {
	m.setting = setting
	return nil
}

// ── Mock LetterTemplateRepository ──

type mockLetterTemplateRepo struct {
	templates map[string]*model.LetterTemplate
	seq       int
}

func newMockLetterTemplateRepo() *mockLetterTemplateRepo {
	return &mockLetterTemplateRepo{templates: make(map[string]*model.LetterTemplate)}
}

func (m *mockLetterTemplateRepo) Create(_ context.Context, tpl *model.LetterTemplate) error {
	if tpl.TemplateID == "" {
		m.seq++
		tpl.TemplateID = fmt.Sprintf("tpl-%d", m.seq)
	}
	m.templates[tpl.TemplateID] = tpl
	return nil
}

func (m *mockLetterTemplateRepo) GetByID(_ context.Context, id string) (*model.LetterTemplate, error) {
	if t, ok := m.templates[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLetterTemplateRepo) List(_ context.Context, offset, limit int) ([]model.LetterTemplate, int64, error) {
	var result []model.LetterTemplate
	for _, t := range m.templates {
		result = append(result, *t)
	}
	return result, int64(len(result)), nil
}

func (m *mockLetterTemplateRepo) Update(_ context.Context, tpl *model.LetterTemplate) error {
	m.templates[tpl.TemplateID] = tpl
	return nil
}

func (m *mockLetterTemplateRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.templates, id)
	return nil
}

// ── Mock LetterRepository ──

type mockLetterRepo struct {
	letters map[string]*model.Letter
	seq     int
	tpls    *mockLetterTemplateRepo // for NextSequence code lookups
}

func newMockLetterRepo(tpls *mockLetterTemplateRepo) *mockLetterRepo {
	return &mockLetterRepo{letters: make(map[string]*model.Letter), tpls: tpls}
}

func (m *mockLetterRepo) Create(_ context.Context, letter *model.Letter) error {
	if letter.LetterID == "" {
		m.seq++
		letter.LetterID = fmt.Sprintf("letter-%d", m.seq)
	}
	m.letters[letter.LetterID] = letter
	return nil
}

// GetByID returns a copy so the version check in Update observes the
// stored row, not the caller's mutations.
func (m *mockLetterRepo) GetByID(_ context.Context, id string) (*model.Letter, error) {
	if l, ok := m.letters[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLetterRepo) GetByVerifyToken(_ context.Context, token string) (*model.Letter, error) {
	for _, l := range m.letters {
		if l.VerifyToken == token && token != "" {
			cp := *l
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLetterRepo) List(_ context.Context, status string, offset, limit int) ([]model.Letter, int64, error) {
	var result []model.Letter
	for _, l := range m.letters {
		if status != "" && l.Status != status {
			continue
		}
		result = append(result, *l)
	}
	return result, int64(len(result)), nil
}

// Update honors the optimistic-lock contract of the real repository.
func (m *mockLetterRepo) Update(_ context.Context, letter *model.Letter) error {
	stored, ok := m.letters[letter.LetterID]
	if !ok || stored.Version != letter.Version {
		return apperrors.ErrOptimisticLock
	}
	letter.Version++
	cp := *letter
	m.letters[letter.LetterID] = &cp
	return nil
}

func (m *mockLetterRepo) NextSequence(_ context.Context, code string, year int) (int, error) {
	max := 0
	for _, l := range m.letters {
		tpl, ok := m.tpls.templates[l.TemplateID]
		if !ok || tpl.Code != code || l.Year != year {
			continue
		}
		if l.Sequence > max {
			max = l.Sequence
		}
	}
	return max + 1, nil
}

// ── shared fixture ──

type testRepos struct {
	user       *mockUserRepo
	schedule   *mockScheduleRepo
	swap       *mockSwapRepo
	attendance *mockAttendanceRepo
	setting    *mockSettingRepo
	tpl        *mockLetterTemplateRepo
	letter     *mockLetterRepo
}

func newTestRepository() (*repository.Repository, *testRepos) {
	mocks := &testRepos{
		user:       newMockUserRepo(),
		schedule:   newMockScheduleRepo(),
		swap:       newMockSwapRepo(),
		attendance: newMockAttendanceRepo(),
		setting:    newMockSettingRepo(),
		tpl:        newMockLetterTemplateRepo(),
	}
	mocks.letter = newMockLetterRepo(mocks.tpl)
	repo := &repository.Repository{
		User:           mocks.user,
		Schedule:       mocks.schedule,
		Swap:           mocks.swap,
		Attendance:     mocks.attendance,
		Setting:        mocks.setting,
		LetterTemplate: mocks.tpl,
		Letter:         mocks.letter,
	}
	return repo, mocks
}
