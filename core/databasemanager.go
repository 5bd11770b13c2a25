package core

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type LogLevel int

const (
	LogLevelSilent LogLevel = iota + 1
	LogLevelError
	LogLevelWarn
	LogLevelInfo
)

// DatabaseManager owns the global MySQL pool. Each tenant company lives in
// its own schema; requests borrow a dedicated connection, switch schema with
// USE, and hand it back when done.
type DatabaseManager struct {
	SqlDB    *sql.DB
	LogLevel LogLevel
}

// New creates the global pool. The DSN carries host/user/pass only; the
// schema is selected per call.
func New(dsn string, maxConnection int) (*DatabaseManager, error) {
	sqlDB, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open pool: %w", err)
	}

	sqlDB.SetMaxOpenConns(maxConnection)
	sqlDB.SetMaxIdleConns(maxConnection)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping pool: %w", err)
	}

	return &DatabaseManager{SqlDB: sqlDB}, nil
}

// SchemaFromHost maps a request hostname to its tenant schema: the first
// label of the domain ("acme.shiftguard.com" -> "acme"). Local development
// falls back to the schema named in the DSN env var.
func SchemaFromHost(host string) string {
	if host == "localhost" {
		dsn := os.Getenv("DSN")
		withoutQuery := strings.SplitN(dsn, "?", 2)[0]
		segments := strings.Split(withoutQuery, "/")
		return segments[len(segments)-1]
	}
	return strings.Split(host, ".")[0]
}

// GetDB binds a *gorm.DB to a single pooled connection switched to the given
// schema. The caller owns the returned conn and must close it.
func (dm *DatabaseManager) GetDB(ctx context.Context, schema string) (*gorm.DB, *sql.Conn, error) {
	conn, err := dm.SqlDB.Conn(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get conn: %w", err)
	}

	if _, err := conn.ExecContext(ctx, "USE `"+schema+"`"); err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("failed to use schema %s: %w", schema, err)
	}

	dialector := mysql.New(mysql.Config{
		Conn: conn, // lock GORM to this connection
	})

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(dm.gormLogLevel()),
	})
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("failed to open gorm: %w", err)
	}

	return db, conn, nil
}

func (dm *DatabaseManager) gormLogLevel() logger.LogLevel {
	switch dm.LogLevel {
	case LogLevelError:
		return logger.Error
	case LogLevelWarn:
		return logger.Warn
	case LogLevelInfo:
		return logger.Info
	default:
		return logger.Silent
	}
}

// Exec runs fn against a connection bound to the schema and releases the
// connection afterwards.
func (dm *DatabaseManager) Exec(ctx context.Context, schema string, fn func(db *gorm.DB) error) error {
	db, conn, err := dm.GetDB(ctx, schema)
	if err != nil {
		return err
	}
	defer conn.Close()

	return fn(db)
}

// ListDatabases returns every non-system schema in the pool. The compliance
// sweep uses this as its tenant list when no directory is configured.
func (dm *DatabaseManager) ListDatabases(ctx context.Context) ([]string, error) {
	rows, err := dm.SqlDB.QueryContext(ctx, "SHOW DATABASES")
	if err != nil {
		return nil, fmt.Errorf("failed to query databases: %w", err)
	}
	defer rows.Close()

	var databases []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan database name: %w", err)
		}
		switch name {
		case "information_schema", "mysql", "performance_schema", "sys":
			continue
		}
		databases = append(databases, name)
	}

	return databases, nil
}

// Close closes the global pool.
func (dm *DatabaseManager) Close() error {
	return dm.SqlDB.Close()
}
