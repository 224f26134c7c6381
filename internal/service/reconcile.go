package service

import (
	"sort"
	"time"

	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/model"
)

// EffectiveSession is one teaching slot a teacher actually holds on a given
// date: either their own recurring entry, or one received through an approved
// swap (ViaSwap set, with provenance).
type EffectiveSession struct {
	Entry       model.ScheduleEntry
	ViaSwap     bool
	SwapID      string
	FromTeacher string // name of the teacher who gave this slot away
}

// ReconcileSchedule merges a teacher's recurring schedule for today with the
// approved swaps touching today, producing the effective session list.
//
// For each approved swap dated today, the caller's role decides the effect:
//   - requester on the swap-out date: their own entry is removed (given away)
//   - requester on the target date: every counterpart entry is received
//   - counterpart on the target date: that counterpart's entry is removed
//   - counterpart on the swap-out date: the requester's entry is received
//
// Removals are applied before additions; additions skip ids already present.
// A swap with an unresolved counterpart or requester entry contributes
// nothing for that branch but does not abort the rest. The result is sorted
// by start time (lexicographic on zero-padded "HH:MM").
func ReconcileSchedule(normal []model.ScheduleEntry, swaps []model.SwapRequest, teacherID string, today time.Time) []EffectiveSession {
	removed := make(map[string]bool)
	var added []EffectiveSession

	for _, sw := range swaps {
		if sw.Status != model.SwapStatusApproved {
			continue
		}
		onSwapOut := sameDate(sw.SwapOutDate, today)
		onTarget := sameDate(sw.TargetDate, today)
		if !onSwapOut && !onTarget {
			continue
		}

		if sw.RequesterID == teacherID {
			if onSwapOut {
				removed[sw.RequesterEntryID] = true
			}
			if onTarget {
				for _, cp := range sw.Counterparts {
					if cp.Entry == nil {
						// unresolved counterpart: skip it, keep the rest
						continue
					}
					added = append(added, EffectiveSession{
						Entry:       *cp.Entry,
						ViaSwap:     true,
						SwapID:      sw.SwapRequestID,
						FromTeacher: teacherName(cp.Teacher),
					})
				}
			}
		}

		// The caller may also appear as a counterpart of the same swap; both
		// roles apply, so this is not an else branch.
		for _, cp := range sw.Counterparts {
			if cp.TeacherID != teacherID {
				continue
			}
			if onTarget {
				removed[cp.EntryID] = true
			}
			if onSwapOut {
				if sw.RequesterEntry == nil {
					continue
				}
				added = append(added, EffectiveSession{
					Entry:       *sw.RequesterEntry,
					ViaSwap:     true,
					SwapID:      sw.SwapRequestID,
					FromTeacher: teacherName(sw.Requester),
				})
			}
		}
	}

	result := make([]EffectiveSession, 0, len(normal)+len(added))
	seen := make(map[string]bool, len(normal))
	for _, e := range normal {
		if removed[e.EntryID] {
			continue
		}
		result = append(result, EffectiveSession{Entry: e})
		seen[e.EntryID] = true
	}
	for _, s := range added {
		if seen[s.Entry.EntryID] {
			continue
		}
		result = append(result, s)
		seen[s.Entry.EntryID] = true
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Entry.StartTime < result[j].Entry.StartTime
	})
	return result
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func teacherName(u *model.User) string {
	if u == nil {
		return ""
	}
	return u.Name
}
