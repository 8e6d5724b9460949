package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/osse101/QuestAcademy_Go/internal/logger"
)

// AdminConn is satisfied by *pgx.Conn and *pgxpool.Pool connected to the
// maintenance database. CREATE/DROP DATABASE cannot run inside a transaction.
type AdminConn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DatabaseExists reports whether name is present on the server
func DatabaseExists(ctx context.Context, conn AdminConn, name string) (bool, error) {
	var exists bool
	err := conn.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)`, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s %s: %w", ErrMsgFailedToCheckDatabase, name, err)
	}
	return exists, nil
}

// EnsureDatabase creates name unless it already exists. It reports whether it created it.
func EnsureDatabase(ctx context.Context, conn AdminConn, name string) (bool, error) {
	exists, err := DatabaseExists(ctx, conn, name)
	if err != nil || exists {
		return false, err
	}
	if _, err := conn.Exec(ctx, "CREATE DATABASE "+pgx.Identifier{name}.Sanitize()); err != nil {
		return false, fmt.Errorf("%s %s: %w", ErrMsgFailedToCreateDatabase, name, err)
	}
	logger.Info(LogMsgDatabaseCreated, "database", name)
	return true, nil
}

// DropDatabase disconnects every other session from name and drops it.
// A missing database is not an error.
func DropDatabase(ctx context.Context, conn AdminConn, name string) error {
	tag, err := conn.Exec(ctx, `
		SELECT pg_terminate_backend(pid)
		FROM pg_stat_activity
		WHERE datname = $1 AND pid <> pg_backend_pid()
	`, name)
	if err != nil {
		// Dropping may still succeed when nobody is connected
		logger.Warn(LogMsgTerminateFailed, "database", name, "error", err)
	} else if n := tag.RowsAffected(); n > 0 {
		logger.Info(LogMsgSessionsTerminated, "database", name, "sessions", n)
	}

	if _, err := conn.Exec(ctx, "DROP DATABASE IF EXISTS "+pgx.Identifier{name}.Sanitize()); err != nil {
		return fmt.Errorf("%s %s: %w", ErrMsgFailedToDropDatabase, name, err)
	}
	logger.Info(LogMsgDatabaseDropped, "database", name)
	return nil
}
