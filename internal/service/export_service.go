package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/dto"
	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/model"
	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/repository"
)

// isoByDay maps ISO weekday numbers to iCalendar BYDAY codes.
var isoByDay = [8]string{"", "MO", "TU", "WE", "TH", "FR", "SA", "SU"}

// ExportService produces downloadable artifacts: the monthly attendance
// recap workbook and a teacher's recurring schedule as an iCalendar feed.
type ExportService interface {
	AttendanceRecap(ctx context.Context, req *dto.AttendanceRecapRequest) (*bytes.Buffer, string, error)
	ScheduleICS(ctx context.Context, teacherID string) ([]byte, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService creates an ExportService.
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// AttendanceRecap builds one xlsx sheet covering a teacher's month: one row
// per (date, session) with the recorded check-in and check-out times.
func (s *exportService) AttendanceRecap(ctx context.Context, req *dto.AttendanceRecapRequest) (*bytes.Buffer, string, error) {
	teacher, err := s.repo.User.GetByID(ctx, req.TeacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrUserNotFound
		}
		s.logger.Error("load teacher failed", zap.Error(err))
		return nil, "", err
	}

	from := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	events, err := s.repo.Attendance.ListByTeacherAndRange(ctx, req.TeacherID, from, to)
	if err != nil {
		s.logger.Error("load attendance range failed", zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Rekap"
	f.SetSheetName(f.GetSheetName(0), sheet)

	f.SetCellValue(sheet, "A1", "Attendance Recap")
	f.SetCellValue(sheet, "A2", fmt.Sprintf("Teacher: %s (%s)", teacher.Name, teacher.NIP))
	f.SetCellValue(sheet, "A3", fmt.Sprintf("Period: %s", from.Format("January 2006")))

	headers := []string{"Date", "Subject", "Session", "Check-in", "Check-out", "Auto Check-out", "Note"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 5)
		f.SetCellValue(sheet, cell, h)
	}

	rows := recapRows(events)
	for i, row := range rows {
		r := i + 6
		f.SetCellValue(sheet, fmt.Sprintf("A%d", r), row.date)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", r), row.subject)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", r), row.session)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", r), row.checkIn)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", r), row.checkOut)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", r), row.auto)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", r), row.note)
	}

	f.SetColWidth(sheet, "A", "A", 12)
	f.SetColWidth(sheet, "B", "B", 24)
	f.SetColWidth(sheet, "C", "C", 14)
	f.SetColWidth(sheet, "D", "F", 14)
	f.SetColWidth(sheet, "G", "G", 30)

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("write workbook failed", zap.Error(err))
		return nil, "", err
	}

	filename := fmt.Sprintf("rekap-absensi-%s-%04d-%02d.xlsx", teacher.NIP, req.Year, req.Month)
	return buf, filename, nil
}

type recapRow struct {
	date     string
	subject  string
	session  string
	checkIn  string
	checkOut string
	auto     string
	note     string
}

// recapRows folds check-in/check-out event pairs into per-session rows.
// Events arrive ordered by date then recorded_at, so rows stay in order.
func recapRows(events []model.AttendanceEvent) []recapRow {
	type key struct {
		date    string
		entryID string
	}

	index := make(map[key]int)
	rows := make([]recapRow, 0, len(events))

	for _, ev := range events {
		k := key{date: ev.Date.Format("2006-01-02"), entryID: ev.EntryID}
		i, ok := index[k]
		if !ok {
			row := recapRow{date: k.date}
			if ev.Entry != nil {
				row.subject = ev.Entry.Subject
				row.session = ev.Entry.StartTime + "-" + ev.Entry.EndTime
			}
			rows = append(rows, row)
			i = len(rows) - 1
			index[k] = i
		}

		stamp := ev.RecordedAt.Format("15:04")
		switch ev.Type {
		case model.AttendanceCheckIn:
			rows[i].checkIn = stamp
		case model.AttendanceCheckOut:
			rows[i].checkOut = stamp
			if ev.Auto {
				rows[i].auto = "yes"
			}
		}
		if ev.Note != "" {
			rows[i].note = ev.Note
		}
	}

	return rows
}

// ScheduleICS renders a teacher's active recurring entries as weekly
// repeating VEVENTs, anchored on the current week.
func (s *exportService) ScheduleICS(ctx context.Context, teacherID string) ([]byte, string, error) {
	teacher, err := s.repo.User.GetByID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrUserNotFound
		}
		s.logger.Error("load teacher failed", zap.Error(err))
		return nil, "", err
	}

	entries, err := s.repo.Schedule.ListByTeacher(ctx, teacherID)
	if err != nil {
		s.logger.Error("load schedule failed", zap.Error(err))
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//administrasi-pkbm//jadwal//ID")
	cal.SetName(fmt.Sprintf("Jadwal %s", teacher.Name))

	now := time.Now()
	for _, entry := range entries {
		start, err := entryOccurrence(entry, now)
		if err != nil {
			s.logger.Warn("skipping entry with bad time",
				zap.String("entry_id", entry.EntryID), zap.Error(err))
			continue
		}
		end, err := time.Parse("15:04", entry.EndTime)
		if err != nil {
			continue
		}
		endAt := time.Date(start.Year(), start.Month(), start.Day(),
			end.Hour(), end.Minute(), 0, 0, start.Location())

		ev := cal.AddEvent(entry.EntryID)
		ev.SetCreatedTime(now)
		ev.SetDtStampTime(now)
		ev.SetStartAt(start)
		ev.SetEndAt(endAt)
		ev.SetSummary(entry.Subject)
		if entry.Location != "" {
			ev.SetLocation(entry.Location)
		}
		ev.AddRrule(fmt.Sprintf("FREQ=WEEKLY;BYDAY=%s", isoByDay[entry.DayOfWeek]))
	}

	filename := fmt.Sprintf("jadwal-%s.ics", teacher.NIP)
	return []byte(cal.Serialize()), filename, nil
}

// entryOccurrence returns the entry's start on its next weekday occurrence,
// counting from the given reference day.
func entryOccurrence(entry model.ScheduleEntry, ref time.Time) (time.Time, error) {
	start, err := time.Parse("15:04", entry.StartTime)
	if err != nil {
		return time.Time{}, err
	}

	refDay := int(ref.Weekday())
	if refDay == 0 {
		refDay = 7
	}
	offset := (entry.DayOfWeek - refDay + 7) % 7

	day := ref.AddDate(0, 0, offset)
	return time.Date(day.Year(), day.Month(), day.Day(),
		start.Hour(), start.Minute(), 0, 0, ref.Location()), nil
}
