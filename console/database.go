package console

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

func GetCompanies(db *gorm.DB) ([]Company, error) {
	var companies []Company
	err := db.Find(&companies).Error
	return companies, err
}

func FindSubscriptionByDomain(db *gorm.DB, domain string) (*Subscription, error) {
	var sub Subscription
	err := db.Where(&Subscription{Domain: domain}).Preload("Company").First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil // not found
	}
	return &sub, err
}

// ActiveSubscriptions lists the tenants that should be served: not
// deactivated and not expired.
func ActiveSubscriptions(db *gorm.DB, now time.Time) ([]Subscription, error) {
	var subs []Subscription
	err := db.Where("deactivated = 0 AND expiredAt > ?", now).
		Preload("Company").
		Find(&subs).Error
	return subs, err
}
