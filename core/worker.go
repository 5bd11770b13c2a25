package core

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Worker is the tenant-schema employee record the clock operates on. Shifts
// and alerts reference workers by ID only; this table carries the directory
// data (names, codes, supervision) an operator surface needs.
type Worker struct {
	WorkerID     uint   `gorm:"primaryKey;autoIncrement;column:worker_id"`
	Code         string `gorm:"size:50;uniqueIndex;not null;column:code"`
	FirstName    string `gorm:"size:120;column:first_name"`
	Surname      string `gorm:"size:120;column:surname"`
	Email        *string `gorm:"size:255;index;column:email"`
	Phone        *string `gorm:"size:50;column:phone"`
	JobID        *uint   `gorm:"column:job_id"`
	SupervisorID *uint   `gorm:"column:supervisor_id"`
	Status       string  `gorm:"size:20;not null;default:active;column:status"`
	StartDate    *time.Time `gorm:"column:start_date"`
	EndDate      *time.Time `gorm:"column:end_date"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Worker) TableName() string {
	return "workers"
}

func FindWorkerByID(db *gorm.DB, id uint) (*Worker, error) {
	var w Worker
	result := db.First(&w, id)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil // not found
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return &w, nil
}

func FindWorkerByCode(db *gorm.DB, code string) (*Worker, error) {
	var w Worker
	result := db.Where("code = ?", code).First(&w)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return &w, nil
}
