package core

import (
	"errors"
	"fmt"
	"time"
)

// Precondition errors are client-correctable and returned as named values so
// handlers can map them to status codes without string matching.
var (
	ErrNoActiveShift       = errors.New("no active shift")
	ErrAlreadyOnBreak      = errors.New("already on a break")
	ErrNoOpenBreak         = errors.New("no open break")
	ErrAttestationRequired = errors.New("attestation is required to clock out")
	ErrOpenBreakPending    = errors.New("an open break must be ended before closing the shift")
)

// AlreadyClockedInError carries the existing shift so callers can tell the
// worker "you're already clocked in since HH:MM".
type AlreadyClockedInError struct {
	ShiftEntryID uint
	Since        time.Time
}

func (e *AlreadyClockedInError) Error() string {
	return fmt.Sprintf("already clocked in since %s (shift %d)", e.Since.Format("15:04"), e.ShiftEntryID)
}

type WaiverNotEligibleError struct {
	HoursWorked float64
	MaxHours    float64
}

func (e *WaiverNotEligibleError) Error() string {
	return fmt.Sprintf("meal break waiver not eligible: %.2f hours worked exceeds the %.1f hour limit", e.HoursWorked, e.MaxHours)
}
