package core

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"shiftguard.com/shiftguard/timeclock/model"
)

const mysqlDuplicateEntry = 1062

// FindActiveShift returns the worker's active shift, or nil when there is none.
func FindActiveShift(db *gorm.DB, workerID uint) (*model.ShiftEntry, error) {
	var entry model.ShiftEntry
	err := db.Where("worker_id = ? AND status = ?", workerID, model.ShiftStatusActive).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query active shift: %w", err)
	}
	return &entry, nil
}

// OpenShift creates a new active shift for the worker. The ActiveKey unique
// index is the arbiter under concurrency: when two clock-ins race, the loser
// gets a duplicate-key error that is reported as AlreadyClockedInError.
func OpenShift(db *gorm.DB, companyID string, workerID uint, jobID *uint, loc *model.Location, now time.Time) (*model.ShiftEntry, error) {
	if existing, err := FindActiveShift(db, workerID); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, &AlreadyClockedInError{ShiftEntryID: existing.ID, Since: existing.ClockIn}
	}

	key := strconv.FormatUint(uint64(workerID), 10)
	entry := &model.ShiftEntry{
		CompanyID: companyID,
		WorkerID:  workerID,
		JobID:     jobID,
		ActiveKey: &key,
		ClockIn:   now,
		Status:    model.ShiftStatusActive,
	}
	entry.SetClockInLocation(loc)

	if err := db.Create(entry).Error; err != nil {
		if isDuplicateKey(err) {
			// Lost the race; fetch the winner for the error detail.
			existing, ferr := FindActiveShift(db, workerID)
			if ferr != nil {
				return nil, fmt.Errorf("failed to load concurrent shift entry: %w", ferr)
			}
			if existing != nil {
				return nil, &AlreadyClockedInError{ShiftEntryID: existing.ID, Since: existing.ClockIn}
			}
			// Winner clocked out between the insert and the re-fetch.
			return nil, &AlreadyClockedInError{Since: now}
		}
		return nil, fmt.Errorf("failed to create shift entry: %w", err)
	}
	return entry, nil
}

// CloseShift completes an active shift. The attestation must be present and
// no break may still be open; BreakMinutes is recomputed from the completed
// non-waived breaks as the authoritative value.
func CloseShift(db *gorm.DB, entry *model.ShiftEntry, breaks []model.Break, att *model.Attestation, loc *model.Location, now time.Time) (*model.ShiftEntry, error) {
	if entry == nil || !entry.IsActive() {
		return nil, ErrNoActiveShift
	}
	if att == nil {
		return nil, ErrAttestationRequired
	}
	if OpenBreakOf(breaks) != nil {
		return nil, ErrOpenBreakPending
	}

	if now.Before(entry.ClockIn) {
		now = entry.ClockIn
	}

	entry.ClockOut = &now
	entry.Status = model.ShiftStatusCompleted
	entry.ActiveKey = nil
	entry.BreakMinutes = int(totalBreakTime(breaks, now).Minutes())
	entry.Attested = true
	entry.Attestation = *att
	if entry.Attestation.CompletedAt.IsZero() {
		entry.Attestation.CompletedAt = now
	}
	entry.SetClockOutLocation(loc)

	if err := db.Save(entry).Error; err != nil {
		return nil, fmt.Errorf("failed to close shift entry: %w", err)
	}
	return entry, nil
}

// ListBreaks returns all breaks for a shift ordered by start time.
func ListBreaks(db *gorm.DB, shiftEntryID uint) ([]model.Break, error) {
	var breaks []model.Break
	if err := db.Where("shift_entry_id = ?", shiftEntryID).
		Order("break_start ASC").
		Find(&breaks).Error; err != nil {
		return nil, fmt.Errorf("failed to list breaks: %w", err)
	}
	return breaks, nil
}

// OpenBreakOf returns the break without an end, or nil. At most one can
// exist per shift.
func OpenBreakOf(breaks []model.Break) *model.Break {
	for i := range breaks {
		if breaks[i].IsOpen() {
			return &breaks[i]
		}
	}
	return nil
}

// HoursWorked is the worked duration at asOf: elapsed time minus break time,
// floored at zero. Time freezes while a break is open, so worked hours during
// an open break equal worked hours at the break's start. Completed entries
// ignore asOf and use the recorded clock-out.
func HoursWorked(entry *model.ShiftEntry, breaks []model.Break, asOf time.Time) time.Duration {
	if entry.ClockOut != nil {
		asOf = *entry.ClockOut
	}
	if asOf.Before(entry.ClockIn) {
		return 0
	}
	worked := asOf.Sub(entry.ClockIn) - totalBreakTime(breaks, asOf)
	if worked < 0 {
		return 0
	}
	return worked
}

// BreakMinutesAsOf sums completed, non-waived break time up to asOf.
func BreakMinutesAsOf(breaks []model.Break, asOf time.Time) int {
	var total time.Duration
	for i := range breaks {
		b := &breaks[i]
		if b.Waived || b.BreakEnd == nil || b.BreakEnd.After(asOf) {
			continue
		}
		total += b.Duration()
	}
	return int(total.Minutes())
}

// totalBreakTime counts the non-waived break time overlapping [start, asOf],
// treating an open break as running until asOf.
func totalBreakTime(breaks []model.Break, asOf time.Time) time.Duration {
	var total time.Duration
	for i := range breaks {
		b := &breaks[i]
		if b.Waived || b.BreakStart.After(asOf) {
			continue
		}
		end := asOf
		if b.BreakEnd != nil && b.BreakEnd.Before(asOf) {
			end = *b.BreakEnd
		}
		if end.After(b.BreakStart) {
			total += end.Sub(b.BreakStart)
		}
	}
	return total
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}
