package config

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// SQLiteDSN appends the pragmas every connection needs to a file name or
// a "file:" URI. Foreign keys are off by default in SQLite.
func SQLiteDSN(url string) string {
	if !strings.HasPrefix(url, "file:") {
		url = "file:" + url
	}
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return url + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// InitSQLite opens the SQLite database named by DATABASE_URL.
func InitSQLite(db DatabaseConfig) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", SQLiteDSN(db.URL))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection serializes writers and keeps ":memory:" databases alive.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	return conn, nil
}
