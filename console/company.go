package console

import (
	"time"
)

// Company is a paying tenant in the control-plane database. Each company's
// operational data lives in its own schema, named by the subscription domain.
type Company struct {
	ID        int       `gorm:"primaryKey;autoIncrement;column:id"`
	Code      string    `gorm:"size:255;not null;unique;column:code"`
	Name      string    `gorm:"size:255;not null;unique;column:name"`
	Email     string    `gorm:"size:255;not null;unique;column:email"`
	EIN       *string   `gorm:"size:255;unique;column:ein"`
	CreatedAt time.Time `gorm:"precision:6;autoCreateTime;column:createdAt"`
	UpdatedAt time.Time `gorm:"precision:6;autoUpdateTime;column:updatedAt"`
	Version   int       `gorm:"not null;column:version"`
}
