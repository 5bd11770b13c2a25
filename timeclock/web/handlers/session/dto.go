package session

import (
	"time"

	"shiftguard.com/shiftguard/timeclock/model"
)

// Coordinates are pointers so that a legitimate 0.0 still satisfies
// the required check.
type LocationDTO struct {
	Latitude   *float64   `json:"latitude" binding:"required,gte=-90,lte=90"`
	Longitude  *float64   `json:"longitude" binding:"required,gte=-180,lte=180"`
	Accuracy   float64    `json:"accuracy"`
	CapturedAt *time.Time `json:"capturedAt,omitempty"`
}

func (dto *LocationDTO) toModel(now time.Time) *model.Location {
	if dto == nil {
		return nil
	}
	capturedAt := now
	if dto.CapturedAt != nil {
		capturedAt = *dto.CapturedAt
	}
	loc := &model.Location{
		Accuracy:   dto.Accuracy,
		CapturedAt: capturedAt,
	}
	if dto.Latitude != nil {
		loc.Latitude = *dto.Latitude
	}
	if dto.Longitude != nil {
		loc.Longitude = *dto.Longitude
	}
	return loc
}

type ClockInDTO struct {
	JobID    *uint        `json:"jobId,omitempty"`
	Location *LocationDTO `json:"location,omitempty"`
}

type StartBreakDTO struct {
	BreakType string `json:"breakType" binding:"required,oneof=meal rest"`
}

type AttestationDTO struct {
	SignatureKey    string `json:"signatureKey"`
	MissedMealBreak bool   `json:"missedMealBreak"`
	MissedMealNotes string `json:"missedMealNotes" binding:"max=500"`
	MissedRestBreak bool   `json:"missedRestBreak"`
	MissedRestNotes string `json:"missedRestNotes" binding:"max=500"`
}

type ClockOutDTO struct {
	Attestation *AttestationDTO `json:"attestation" binding:"required"`
	Location    *LocationDTO    `json:"location,omitempty"`
}

func (dto *AttestationDTO) toModel(now time.Time) *model.Attestation {
	if dto == nil {
		return nil
	}
	return &model.Attestation{
		CompletedAt:     now,
		SignatureKey:    dto.SignatureKey,
		MissedMealBreak: dto.MissedMealBreak,
		MissedMealNotes: dto.MissedMealNotes,
		MissedRestBreak: dto.MissedRestBreak,
		MissedRestNotes: dto.MissedRestNotes,
	}
}

// RosterRowDTO is one worker on the live roster, with the session fields an
// operator dashboard needs at a glance.
type RosterRowDTO struct {
	ShiftEntryID uint       `json:"shiftEntryId"`
	WorkerID     uint       `json:"workerId"`
	JobID        *uint      `json:"jobId,omitempty"`
	ClockIn      time.Time  `json:"clockIn"`
	HoursWorked  float64    `json:"hoursWorked"`
	OnBreak      bool       `json:"onBreak"`
	BreakType    string     `json:"breakType,omitempty"`
	BreakStart   *time.Time `json:"breakStart,omitempty"`
	OpenAlerts   int64      `json:"openAlerts"`
}
