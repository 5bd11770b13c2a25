package core

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// ConnectDB opens a single-schema GORM connection for tools that work
// against one tenant (seed, import).
func ConnectDB(dsn string) *gorm.DB {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		panic(fmt.Sprintf("failed to connect to DB from GORM: %v", err))
	}
	return db
}
