package main

import (
	"log"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shiftguard.com/shiftguard/core"
	"shiftguard.com/shiftguard/timeclock/model"
)

func main() {
	dsn := os.Getenv("DSN") //"root:development@tcp(localhost:3306)/shiftguard?parseTime=true"
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		log.Fatalf("failed to connect: %v", err)
	}

	models := []interface{}{
		&core.Worker{},
		&model.ShiftEntry{},
		&model.Break{},
		&model.ComplianceAlert{},
	}

	for _, m := range models {
		if !db.Migrator().HasTable(m) {
			err := db.Migrator().CreateTable(m)
			if err != nil {
				log.Fatalf("failed to create table for %T: %v", m, err)
			}
		}
	}
}
