package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AlertType string

const (
	AlertMealBreakDue          AlertType = "meal_break_due"
	AlertMealBreakMissed       AlertType = "meal_break_missed"
	AlertSecondMealBreakMissed AlertType = "second_meal_break_missed"
	AlertRestBreakDue          AlertType = "rest_break_due"
	AlertOvertimeWarning       AlertType = "overtime_warning"
	AlertDoubleTimeWarning     AlertType = "double_time_warning"

	// Self-reported at clock-out attestation, emitted unconditionally.
	AlertAttestedMissedMeal AlertType = "attested_missed_meal"
	AlertAttestedMissedRest AlertType = "attested_missed_rest"
)

type Severity string

const (
	SeverityInfo      Severity = "info"
	SeverityWarning   Severity = "warning"
	SeverityViolation Severity = "violation"
)

// ComplianceAlert is an append-only evaluator output. Rows are never updated
// except for the acknowledged flag; the (shift_entry_id, alert_type) unique
// index is what keeps re-evaluation from emitting duplicates.
type ComplianceAlert struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	CompanyID    string    `gorm:"column:company_id;type:varchar(64);index;not null" json:"companyId"`
	WorkerID     uint      `gorm:"column:worker_id;index;not null" json:"workerId"`
	ShiftEntryID uint      `gorm:"column:shift_entry_id;not null;uniqueIndex:idx_shift_alert_type" json:"shiftEntryId"`

	AlertType            AlertType `gorm:"column:alert_type;type:varchar(40);not null;uniqueIndex:idx_shift_alert_type" json:"alertType"`
	Severity             Severity  `gorm:"column:severity;type:varchar(20);not null" json:"severity"`
	Title                string    `gorm:"column:title;type:varchar(200);not null" json:"title"`
	Description          string    `gorm:"column:description;type:varchar(1000)" json:"description"`
	HoursWorkedAtTrigger float64   `gorm:"column:hours_worked_at_trigger;type:decimal(10,2)" json:"hoursWorkedAtTrigger"`

	Acknowledged   bool       `gorm:"column:acknowledged;not null;default:false" json:"acknowledged"`
	AcknowledgedAt *time.Time `gorm:"column:acknowledged_at" json:"acknowledgedAt,omitempty"`
	AcknowledgedBy string     `gorm:"column:acknowledged_by;type:varchar(120)" json:"acknowledgedBy,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create" json:"createdAt"`
}

func (ComplianceAlert) TableName() string {
	return "compliance_alerts"
}

func (a *ComplianceAlert) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
