package model

import (
	"time"
)

const (
	ShiftStatusActive    = "active"
	ShiftStatusCompleted = "completed"
)

// Location is a geotagged point captured at clock-in or clock-out.
// Address is filled in later by the reverse-lookup service, best effort.
type Location struct {
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Accuracy   float64   `json:"accuracy"`
	CapturedAt time.Time `json:"capturedAt"`
	Address    string    `json:"address,omitempty"`
}

// Attestation is the worker's signed break-compliance declaration at clock-out.
type Attestation struct {
	CompletedAt     time.Time `gorm:"column:attested_at" json:"completedAt"`
	SignatureKey    string    `gorm:"column:signature_key;type:varchar(255)" json:"signatureKey"`
	MissedMealBreak bool      `gorm:"column:missed_meal_break" json:"missedMealBreak"`
	MissedMealNotes string    `gorm:"column:missed_meal_notes;type:varchar(500)" json:"missedMealNotes,omitempty"`
	MissedRestBreak bool      `gorm:"column:missed_rest_break" json:"missedRestBreak"`
	MissedRestNotes string    `gorm:"column:missed_rest_notes;type:varchar(500)" json:"missedRestNotes,omitempty"`
}

// ShiftEntry is one continuous clock-in-to-clock-out period for a worker.
//
// ActiveKey mirrors WorkerID while the shift is active and is NULL once the
// shift completes; its unique index is what guarantees a worker can hold at
// most one active shift even when two clock-ins race.
type ShiftEntry struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	CompanyID string  `gorm:"column:company_id;type:varchar(64);index;not null" json:"companyId"`
	WorkerID  uint    `gorm:"column:worker_id;index;not null" json:"workerId"`
	JobID     *uint   `gorm:"column:job_id" json:"jobId,omitempty"`
	ActiveKey *string `gorm:"column:active_key;type:varchar(80);uniqueIndex" json:"-"`

	ClockIn  time.Time  `gorm:"column:clock_in;not null" json:"clockIn"`
	ClockOut *time.Time `gorm:"column:clock_out" json:"clockOut,omitempty"`

	ClockInLat      *float64   `gorm:"column:clock_in_lat" json:"clockInLat,omitempty"`
	ClockInLng      *float64   `gorm:"column:clock_in_lng" json:"clockInLng,omitempty"`
	ClockInAccuracy *float64   `gorm:"column:clock_in_accuracy" json:"clockInAccuracy,omitempty"`
	ClockInAt       *time.Time `gorm:"column:clock_in_captured_at" json:"clockInCapturedAt,omitempty"`
	ClockInAddress  string     `gorm:"column:clock_in_address;type:varchar(500)" json:"clockInAddress,omitempty"`

	ClockOutLat      *float64   `gorm:"column:clock_out_lat" json:"clockOutLat,omitempty"`
	ClockOutLng      *float64   `gorm:"column:clock_out_lng" json:"clockOutLng,omitempty"`
	ClockOutAccuracy *float64   `gorm:"column:clock_out_accuracy" json:"clockOutAccuracy,omitempty"`
	ClockOutAt       *time.Time `gorm:"column:clock_out_captured_at" json:"clockOutCapturedAt,omitempty"`
	ClockOutAddress  string     `gorm:"column:clock_out_address;type:varchar(500)" json:"clockOutAddress,omitempty"`

	BreakMinutes int    `gorm:"column:break_minutes;not null;default:0" json:"breakMinutes"`
	Status       string `gorm:"column:status;type:varchar(20);not null;default:active" json:"status"`

	Attested    bool        `gorm:"column:attested;not null;default:false" json:"attested"`
	Attestation Attestation `gorm:"embedded" json:"attestation"`

	CreatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP on update CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (ShiftEntry) TableName() string {
	return "shift_entries"
}

func (s *ShiftEntry) IsActive() bool {
	return s.Status == ShiftStatusActive
}

// SetClockInLocation copies a captured location onto the clock-in columns.
func (s *ShiftEntry) SetClockInLocation(loc *Location) {
	if loc == nil {
		return
	}
	s.ClockInLat = &loc.Latitude
	s.ClockInLng = &loc.Longitude
	s.ClockInAccuracy = &loc.Accuracy
	at := loc.CapturedAt
	s.ClockInAt = &at
}

// SetClockOutLocation copies a captured location onto the clock-out columns.
func (s *ShiftEntry) SetClockOutLocation(loc *Location) {
	if loc == nil {
		return
	}
	s.ClockOutLat = &loc.Latitude
	s.ClockOutLng = &loc.Longitude
	s.ClockOutAccuracy = &loc.Accuracy
	at := loc.CapturedAt
	s.ClockOutAt = &at
}
