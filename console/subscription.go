package console

import (
	"strings"
	"time"
)

// Subscription binds a company to its tenant domain and seat limits. The
// schema name is the first label of the domain.
type Subscription struct {
	ID          int        `gorm:"column:id;primaryKey;autoIncrement"`
	Key         string     `gorm:"column:key;type:varchar(255);not null"`
	Seats       int        `gorm:"column:seats;not null"`
	Edition     string     `gorm:"column:edition;type:varchar(255);not null"`
	Domain      string     `gorm:"column:domain;type:varchar(255);not null"`
	SyncedAt    *time.Time `gorm:"column:syncedAt"` // nullable
	ExpiredAt   time.Time  `gorm:"column:expiredAt;not null"`
	CreatedAt   time.Time  `gorm:"column:createdAt;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updatedAt;autoUpdateTime"`
	Version     int        `gorm:"column:version;not null"`
	CompanyID   *int       `gorm:"column:companyId"` // nullable foreign key
	Deactivated int8       `gorm:"column:deactivated;not null"` // TINYINT(3)
	Environment string     `gorm:"column:environment;type:varchar(50);not null;default:production"`

	// Relations
	Company Company `gorm:"foreignKey:CompanyID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// SchemaName is the tenant schema this subscription's data lives in.
func (s *Subscription) SchemaName() string {
	if i := strings.Index(s.Domain, "."); i > 0 {
		return s.Domain[:i]
	}
	return s.Domain
}

// Active reports whether the tenant should be served and swept.
func (s *Subscription) Active(now time.Time) bool {
	return s.Deactivated == 0 && now.Before(s.ExpiredAt)
}
