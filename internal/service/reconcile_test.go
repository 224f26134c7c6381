package service

import (
	"testing"
	"time"

	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/model"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return d
}

func entry(id, teacherID, start, end string) model.ScheduleEntry {
	return model.ScheduleEntry{
		EntryID:   id,
		TeacherID: teacherID,
		DayOfWeek: 1,
		StartTime: start,
		EndTime:   end,
		IsActive:  true,
	}
}

func entryIDs(sessions []EffectiveSession) []string {
	ids := make([]string, 0, len(sessions))
	for _, s := range sessions {
		ids = append(ids, s.Entry.EntryID)
	}
	return ids
}

func TestReconcileSchedule_NoSwaps(t *testing.T) {
	today := mustDate(t, "2024-03-04")
	normal := []model.ScheduleEntry{
		entry("e2", "guru-a", "10:00", "12:00"),
		entry("e1", "guru-a", "08:00", "09:00"),
	}

	got := ReconcileSchedule(normal, nil, "guru-a", today)

	if len(got) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(got))
	}
	if got[0].Entry.EntryID != "e1" || got[1].Entry.EntryID != "e2" {
		t.Errorf("expected sorted [e1 e2], got %v", entryIDs(got))
	}
	for _, s := range got {
		if s.ViaSwap {
			t.Errorf("session %s should not be marked via swap", s.Entry.EntryID)
		}
	}
}

// A gives a Monday slot to B and covers B's slot on the same date: on that
// date A loses the given entry and gains B's, B sees the inverse.
func TestReconcileSchedule_ApprovedSwapBothSides(t *testing.T) {
	today := mustDate(t, "2024-03-04")

	entryA := entry("entry-a", "guru-a", "08:00", "09:00")
	entryB := entry("entry-b", "guru-b", "13:00", "15:00")

	swap := model.SwapRequest{
		SwapRequestID:    "swap-1",
		RequesterID:      "guru-a",
		RequesterEntryID: "entry-a",
		RequesterEntry:   &entryA,
		Requester:        &model.User{UserID: "guru-a", Name: "Andi"},
		SwapOutDate:      today,
		TargetDate:       today,
		Status:           model.SwapStatusApproved,
		Counterparts: []model.SwapCounterpart{{
			CounterpartID: "cp-1",
			SwapRequestID: "swap-1",
			TeacherID:     "guru-b",
			EntryID:       "entry-b",
			Entry:         &entryB,
			Teacher:       &model.User{UserID: "guru-b", Name: "Budi"},
		}},
	}

	// requester side
	gotA := ReconcileSchedule([]model.ScheduleEntry{entryA}, []model.SwapRequest{swap}, "guru-a", today)
	if len(gotA) != 1 {
		t.Fatalf("guru-a: expected 1 session, got %v", entryIDs(gotA))
	}
	if gotA[0].Entry.EntryID != "entry-b" || !gotA[0].ViaSwap {
		t.Errorf("guru-a should hold entry-b via swap, got %+v", gotA[0])
	}
	if gotA[0].FromTeacher != "Budi" || gotA[0].SwapID != "swap-1" {
		t.Errorf("provenance missing: %+v", gotA[0])
	}

	// counterpart side
	gotB := ReconcileSchedule([]model.ScheduleEntry{entryB}, []model.SwapRequest{swap}, "guru-b", today)
	if len(gotB) != 1 {
		t.Fatalf("guru-b: expected 1 session, got %v", entryIDs(gotB))
	}
	if gotB[0].Entry.EntryID != "entry-a" || !gotB[0].ViaSwap {
		t.Errorf("guru-b should hold entry-a via swap, got %+v", gotB[0])
	}
	if gotB[0].FromTeacher != "Andi" {
		t.Errorf("guru-b provenance should name Andi, got %q", gotB[0].FromTeacher)
	}
}

func TestReconcileSchedule_SwapOnDifferentDates(t *testing.T) {
	swapOut := mustDate(t, "2024-03-04")
	target := mustDate(t, "2024-03-11")

	entryA := entry("entry-a", "guru-a", "08:00", "09:00")
	entryB := entry("entry-b", "guru-b", "13:00", "15:00")

	swap := model.SwapRequest{
		SwapRequestID:    "swap-1",
		RequesterID:      "guru-a",
		RequesterEntryID: "entry-a",
		RequesterEntry:   &entryA,
		SwapOutDate:      swapOut,
		TargetDate:       target,
		Status:           model.SwapStatusApproved,
		Counterparts: []model.SwapCounterpart{{
			TeacherID: "guru-b",
			EntryID:   "entry-b",
			Entry:     &entryB,
		}},
	}

	// on the swap-out date A only loses their entry
	gotOut := ReconcileSchedule([]model.ScheduleEntry{entryA}, []model.SwapRequest{swap}, "guru-a", swapOut)
	if len(gotOut) != 0 {
		t.Errorf("guru-a on swap-out date: expected empty, got %v", entryIDs(gotOut))
	}

	// on the target date A only gains B's entry
	gotTarget := ReconcileSchedule(nil, []model.SwapRequest{swap}, "guru-a", target)
	if len(gotTarget) != 1 || gotTarget[0].Entry.EntryID != "entry-b" {
		t.Errorf("guru-a on target date: expected [entry-b], got %v", entryIDs(gotTarget))
	}
}

func TestReconcileSchedule_IgnoresNonApproved(t *testing.T) {
	today := mustDate(t, "2024-03-04")
	entryA := entry("entry-a", "guru-a", "08:00", "09:00")

	for _, status := range []string{model.SwapStatusPending, model.SwapStatusRejected, model.SwapStatusCancelled} {
		swap := model.SwapRequest{
			RequesterID:      "guru-a",
			RequesterEntryID: "entry-a",
			SwapOutDate:      today,
			TargetDate:       today,
			Status:           status,
		}
		got := ReconcileSchedule([]model.ScheduleEntry{entryA}, []model.SwapRequest{swap}, "guru-a", today)
		if len(got) != 1 || got[0].Entry.EntryID != "entry-a" {
			t.Errorf("status %s: schedule should be untouched, got %v", status, entryIDs(got))
		}
	}
}

func TestReconcileSchedule_MultiCounterpart(t *testing.T) {
	today := mustDate(t, "2024-03-04")

	entryA := entry("entry-a", "guru-a", "08:00", "09:00")
	entryB := entry("entry-b", "guru-b", "13:00", "15:00")
	entryC := entry("entry-c", "guru-c", "10:00", "11:00")

	swap := model.SwapRequest{
		SwapRequestID:    "swap-1",
		RequesterID:      "guru-a",
		RequesterEntryID: "entry-a",
		RequesterEntry:   &entryA,
		SwapOutDate:      today,
		TargetDate:       today,
		Status:           model.SwapStatusApproved,
		Counterparts: []model.SwapCounterpart{
			{TeacherID: "guru-b", EntryID: "entry-b", Entry: &entryB},
			{TeacherID: "guru-c", EntryID: "entry-c", Entry: &entryC},
		},
	}

	got := ReconcileSchedule([]model.ScheduleEntry{entryA}, []model.SwapRequest{swap}, "guru-a", today)
	if len(got) != 2 {
		t.Fatalf("expected 2 received sessions, got %v", entryIDs(got))
	}
	// sorted by start time: entry-c 10:00 before entry-b 13:00
	if got[0].Entry.EntryID != "entry-c" || got[1].Entry.EntryID != "entry-b" {
		t.Errorf("expected [entry-c entry-b], got %v", entryIDs(got))
	}
}

// A session received from a swap must not duplicate a slot the teacher
// already holds.
func TestReconcileSchedule_DedupeAdditions(t *testing.T) {
	today := mustDate(t, "2024-03-04")

	own := entry("entry-x", "guru-a", "08:00", "09:00")
	swap := model.SwapRequest{
		SwapRequestID:    "swap-1",
		RequesterID:      "guru-a",
		RequesterEntryID: "other-entry",
		SwapOutDate:      mustDate(t, "2024-03-11"),
		TargetDate:       today,
		Status:           model.SwapStatusApproved,
		Counterparts: []model.SwapCounterpart{{
			TeacherID: "guru-b",
			EntryID:   "entry-x",
			Entry:     &own,
		}},
	}

	got := ReconcileSchedule([]model.ScheduleEntry{own}, []model.SwapRequest{swap}, "guru-a", today)
	if len(got) != 1 {
		t.Fatalf("expected 1 session after dedupe, got %v", entryIDs(got))
	}
	if got[0].ViaSwap {
		t.Error("the teacher's own slot keeps its non-swap provenance")
	}
}

func TestReconcileSchedule_UnresolvedCounterpartEntrySkipped(t *testing.T) {
	today := mustDate(t, "2024-03-04")

	entryB := entry("entry-b", "guru-b", "13:00", "15:00")
	swap := model.SwapRequest{
		SwapRequestID:    "swap-1",
		RequesterID:      "guru-a",
		RequesterEntryID: "entry-a",
		SwapOutDate:      mustDate(t, "2024-03-11"),
		TargetDate:       today,
		Status:           model.SwapStatusApproved,
		Counterparts: []model.SwapCounterpart{
			{TeacherID: "guru-b", EntryID: "entry-gone", Entry: nil},
			{TeacherID: "guru-c", EntryID: "entry-b", Entry: &entryB},
		},
	}

	got := ReconcileSchedule(nil, []model.SwapRequest{swap}, "guru-a", today)
	if len(got) != 1 || got[0].Entry.EntryID != "entry-b" {
		t.Errorf("unresolved counterpart should be skipped, got %v", entryIDs(got))
	}
}

func TestReconcileSchedule_OtherTeachersUnaffected(t *testing.T) {
	today := mustDate(t, "2024-03-04")

	entryA := entry("entry-a", "guru-a", "08:00", "09:00")
	entryB := entry("entry-b", "guru-b", "13:00", "15:00")
	entryC := entry("entry-c", "guru-c", "09:00", "10:00")

	swap := model.SwapRequest{
		SwapRequestID:    "swap-1",
		RequesterID:      "guru-a",
		RequesterEntryID: "entry-a",
		RequesterEntry:   &entryA,
		SwapOutDate:      today,
		TargetDate:       today,
		Status:           model.SwapStatusApproved,
		Counterparts: []model.SwapCounterpart{{
			TeacherID: "guru-b", EntryID: "entry-b", Entry: &entryB,
		}},
	}

	got := ReconcileSchedule([]model.ScheduleEntry{entryC}, []model.SwapRequest{swap}, "guru-c", today)
	if len(got) != 1 || got[0].Entry.EntryID != "entry-c" {
		t.Errorf("guru-c is not part of the swap, got %v", entryIDs(got))
	}
}
