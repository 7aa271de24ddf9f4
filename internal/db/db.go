package db

import (
	"fmt"
	"time"

	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/internal/config"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// DuplicateEntry is the MySQL error number for a unique key violation.
// The user table relies on it for email/username uniqueness.
const DuplicateEntry = 1062

func New(cfg config.Database) (*sqlx.DB, error) {
	location := time.UTC
	if cfg.TimeZone != "" {
		var err error
		if location, err = time.LoadLocation(cfg.TimeZone); err != nil {
			return nil, fmt.Errorf("time load location failed: %w", err)
		}
	}

	conf := mysql.NewConfig()
	conf.Net = cfg.Net
	conf.Addr = cfg.Server
	conf.User = cfg.User
	conf.Passwd = cfg.Password
	conf.DBName = cfg.DBName
	conf.Timeout = cfg.Timeout
	conf.Loc = location
	conf.ParseTime = true
	// Report matched rows, not changed rows: an update that writes identical
	// values must still count as touching an existing row.
	conf.ClientFoundRows = true

	dbConn, err := sqlx.Connect("mysql", conf.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("db connection failed: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConnections)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConnections)

	if err := dbConn.Ping(); err != nil {
		return nil, fmt.Errorf("db ping failed: %w", err)
	}

	return dbConn, nil
}
