package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/dto"
	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/model"
)

func setupExportTest(t *testing.T) (ExportService, *testRepos) {
	t.Helper()
	repo, mocks := newTestRepository()
	ctx := context.Background()

	_ = mocks.user.Create(ctx, &model.User{
		UserID: "guru-a", Name: "Andi", NIP: "G001", Role: model.RoleGuru, IsActive: true,
	})
	_ = mocks.schedule.Create(ctx, &model.ScheduleEntry{
		EntryID: "entry-1", TeacherID: "guru-a",
		DayOfWeek: 1, StartTime: "08:00", EndTime: "09:00",
		Subject: "Matematika", Location: "Ruang 1", IsActive: true,
	})

	return NewExportService(repo, zap.NewNop()), mocks
}

func TestExportService_AttendanceRecap(t *testing.T) {
	svc, mocks := setupExportTest(t)
	ctx := context.Background()

	entry := model.ScheduleEntry{EntryID: "entry-1", Subject: "Matematika", StartTime: "08:00", EndTime: "09:00"}
	day := mustDate(t, "2024-03-04")
	_ = mocks.attendance.Create(ctx, &model.AttendanceEvent{
		TeacherID: "guru-a", EntryID: "entry-1", Date: day,
		Type: model.AttendanceCheckIn, RecordedAt: at(t, "08:02"), Entry: &entry,
	})
	_ = mocks.attendance.Create(ctx, &model.AttendanceEvent{
		TeacherID: "guru-a", EntryID: "entry-1", Date: day,
		Type: model.AttendanceCheckOut, RecordedAt: at(t, "09:05"), Auto: true, Entry: &entry,
	})

	buf, filename, err := svc.AttendanceRecap(ctx, &dto.AttendanceRecapRequest{
		TeacherID: "guru-a", Year: 2024, Month: 3,
	})
	if err != nil {
		t.Fatalf("recap should succeed: %v", err)
	}
	if filename != "rekap-absensi-G001-2024-03.xlsx" {
		t.Errorf("filename = %q", filename)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("workbook must open: %v", err)
	}
	defer f.Close()

	cell := func(ref string) string {
		v, err := f.GetCellValue("Rekap", ref)
		if err != nil {
			t.Fatalf("read %s: %v", ref, err)
		}
		return v
	}
	if cell("A2") != "Teacher: Andi (G001)" {
		t.Errorf("A2 = %q", cell("A2"))
	}
	if cell("A5") != "Date" || cell("D5") != "Check-in" {
		t.Errorf("header row wrong: A5=%q D5=%q", cell("A5"), cell("D5"))
	}
	// both events folded into a single row
	if cell("A6") != "2024-03-04" || cell("D6") != "08:02" || cell("E6") != "09:05" || cell("F6") != "yes" {
		t.Errorf("data row wrong: %q %q %q %q", cell("A6"), cell("D6"), cell("E6"), cell("F6"))
	}
	if cell("A7") != "" {
		t.Errorf("expected one data row, found A7=%q", cell("A7"))
	}
}

func TestExportService_AttendanceRecapUnknownTeacher(t *testing.T) {
	svc, _ := setupExportTest(t)

	_, _, err := svc.AttendanceRecap(context.Background(), &dto.AttendanceRecapRequest{
		TeacherID: "nobody", Year: 2024, Month: 3,
	})
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestExportService_ScheduleICS(t *testing.T) {
	svc, _ := setupExportTest(t)

	data, filename, err := svc.ScheduleICS(context.Background(), "guru-a")
	if err != nil {
		t.Fatalf("ICS export should succeed: %v", err)
	}
	if filename != "jadwal-G001.ics" {
		t.Errorf("filename = %q", filename)
	}

	feed := string(data)
	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"METHOD:PUBLISH",
		"RRULE:FREQ=WEEKLY;BYDAY=MO",
		"SUMMARY:Matematika",
		"LOCATION:Ruang 1",
	} {
		if !strings.Contains(feed, want) {
			t.Errorf("feed missing %q", want)
		}
	}
}

func TestExportService_ScheduleICSSkipsBadEntry(t *testing.T) {
	svc, mocks := setupExportTest(t)

	_ = mocks.schedule.Create(context.Background(), &model.ScheduleEntry{
		EntryID: "entry-bad", TeacherID: "guru-a",
		DayOfWeek: 2, StartTime: "nope", EndTime: "09:00", IsActive: true,
	})

	data, _, err := svc.ScheduleICS(context.Background(), "guru-a")
	if err != nil {
		t.Fatalf("one bad entry must not break the export: %v", err)
	}
	if strings.Contains(string(data), "entry-bad") {
		t.Error("the unparseable entry must be skipped")
	}
}
