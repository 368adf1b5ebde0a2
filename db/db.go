// db package owns the MySQL record store connection and every read that
// reaches it. All statements arriving here are parameterized; the package
// never interpolates caller input into SQL text.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/eximware/erp-data-api/log"
)

// Config carries the connection parameters for the record store.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	Database string
}

// Db represents a connection pool to the record store.
type Db struct {
	conn   *sql.DB
	logger log.Logger
}

// NewDb opens a pooled connection and verifies it with a ping.
func NewDb(cfg Config, logger log.Logger) (*Db, error) {
	dsn := mysql.NewConfig()
	dsn.User = cfg.Username
	dsn.Passwd = cfg.Password
	dsn.Net = "tcp"
	dsn.Addr = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	dsn.DBName = cfg.Database
	dsn.ParseTime = true
	dsn.Timeout = 5 * time.Second
	dsn.ReadTimeout = 30 * time.Second

	conn, err := sql.Open("mysql", dsn.FormatDSN())
	if err != nil {
		return nil, err
	}

	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(25)
	conn.SetConnMaxLifetime(10 * time.Minute)
	conn.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}

	logger.Info("connected to record store", "host", cfg.Host, "database", cfg.Database)

	return &Db{conn: conn, logger: logger}, nil
}

// NewDbWithConnection wraps an already opened connection. Tests use this
// with sqlmock.
func NewDbWithConnection(conn *sql.DB, logger log.Logger) *Db {
	return &Db{conn: conn, logger: logger}
}

func (db *Db) Close() error {
	return db.conn.Close()
}
