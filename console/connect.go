package console

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shiftguard.com/shiftguard/infrastructure/devops"
	"shiftguard.com/shiftguard/utils"
)

func Connect(ctx context.Context) (*gorm.DB, error) {
	databases, err := devops.LoadDBConfig(ctx)
	if err != nil {
		return nil, err
	}

	dbconfig := utils.Find(databases, func(db devops.DBEntry) bool {
		return db.Name == "console"
	})
	if dbconfig == nil {
		return nil, fmt.Errorf("console database parameter not found")
	}

	db, err := gorm.Open(mysql.Open(dbconfig.GetDSN("console")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}
