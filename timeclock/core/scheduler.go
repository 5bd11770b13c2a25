package core

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"shiftguard.com/shiftguard/timeclock/model"
)

// StartBreak opens a meal or rest break on an active shift. Only one break
// may be open at a time.
func StartBreak(db *gorm.DB, entry *model.ShiftEntry, breaks []model.Break, breakType string, now time.Time) (*model.Break, error) {
	if entry == nil || !entry.IsActive() {
		return nil, ErrNoActiveShift
	}
	if OpenBreakOf(breaks) != nil {
		return nil, ErrAlreadyOnBreak
	}
	if breakType != model.BreakTypeMeal && breakType != model.BreakTypeRest {
		return nil, fmt.Errorf("unknown break type %q", breakType)
	}

	brk := &model.Break{
		ShiftEntryID: entry.ID,
		WorkerID:     entry.WorkerID,
		BreakType:    breakType,
		BreakStart:   now,
	}
	if err := db.Create(brk).Error; err != nil {
		return nil, fmt.Errorf("failed to create break: %w", err)
	}
	return brk, nil
}

// EndBreak closes the open break. Retrying against an already-closed break
// fails cleanly with NoOpenBreak rather than double-closing.
func EndBreak(db *gorm.DB, breaks []model.Break, now time.Time) (*model.Break, error) {
	open := OpenBreakOf(breaks)
	if open == nil {
		return nil, ErrNoOpenBreak
	}
	if now.Before(open.BreakStart) {
		now = open.BreakStart
	}
	open.BreakEnd = &now
	if err := db.Save(open).Error; err != nil {
		return nil, fmt.Errorf("failed to end break: %w", err)
	}
	return open, nil
}

// WaiverEligible reports whether a meal waiver may be signed now: worked
// hours at the moment of the call must not exceed the ceiling. The evaluator
// still re-checks the ceiling against total shift hours later.
func WaiverEligible(rules RuleSet, entry *model.ShiftEntry, breaks []model.Break, now time.Time) (time.Duration, bool) {
	worked := HoursWorked(entry, breaks, now)
	return worked, worked <= rules.WaiverMaxShift
}

// WaiveMealBreak records a zero-duration waived meal break.
func WaiveMealBreak(db *gorm.DB, rules RuleSet, entry *model.ShiftEntry, breaks []model.Break, now time.Time) (*model.Break, error) {
	if entry == nil || !entry.IsActive() {
		return nil, ErrNoActiveShift
	}
	if worked, ok := WaiverEligible(rules, entry, breaks, now); !ok {
		return nil, &WaiverNotEligibleError{
			HoursWorked: worked.Hours(),
			MaxHours:    rules.WaiverMaxShift.Hours(),
		}
	}

	brk := &model.Break{
		ShiftEntryID: entry.ID,
		WorkerID:     entry.WorkerID,
		BreakType:    model.BreakTypeMeal,
		BreakStart:   now,
		BreakEnd:     &now,
		Waived:       true,
	}
	if err := db.Create(brk).Error; err != nil {
		return nil, fmt.Errorf("failed to create waived break: %w", err)
	}
	return brk, nil
}
