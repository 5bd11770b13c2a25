package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	BreakTypeMeal = "meal"
	BreakTypeRest = "rest"
)

// Break is one meal or rest interval within a ShiftEntry. A waived meal
// break has BreakStart == BreakEnd and Waived set; no actual pause occurred.
type Break struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	ShiftEntryID uint      `gorm:"column:shift_entry_id;index;not null" json:"shiftEntryId"`
	WorkerID     uint      `gorm:"column:worker_id;index;not null" json:"workerId"`
	BreakType    string    `gorm:"column:break_type;type:varchar(10);not null" json:"breakType"`

	BreakStart time.Time  `gorm:"column:break_start;not null" json:"breakStart"`
	BreakEnd   *time.Time `gorm:"column:break_end" json:"breakEnd,omitempty"`
	Waived     bool       `gorm:"column:waived;not null;default:false" json:"waived"`
	Notes      string     `gorm:"column:notes;type:varchar(500)" json:"notes,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create" json:"createdAt"`
}

func (Break) TableName() string {
	return "breaks"
}

func (b *Break) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

func (b *Break) IsOpen() bool {
	return b.BreakEnd == nil
}

// Duration is the elapsed break time; zero for open or waived breaks.
func (b *Break) Duration() time.Duration {
	if b.BreakEnd == nil {
		return 0
	}
	return b.BreakEnd.Sub(b.BreakStart)
}
