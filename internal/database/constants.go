package database

// DefaultMinConnections is kept warm when MaxConns is set
const DefaultMinConnections int32 = 2

const (
	MigrationDialect = "postgres"
	MigrationDir     = "."
)

const maxLoggedSQL = 200

const (
	ErrMsgFailedToParseConnString   = "failed to parse connection string"
	ErrMsgFailedToCreatePool        = "failed to create connection pool"
	ErrMsgFailedToPingDatabase      = "failed to ping database"
	ErrMsgFailedToSetDialect        = "failed to set migration dialect"
	ErrMsgFailedToApplyMigrations   = "failed to apply migrations"
	ErrMsgFailedToReadSchemaVersion = "failed to read schema version"
	ErrMsgFailedToCheckDatabase     = "failed to look up database"
	ErrMsgFailedToCreateDatabase    = "failed to create database"
	ErrMsgFailedToDropDatabase      = "failed to drop database"
)

const (
	LogMsgConnected         = "Connected to database"
	LogMsgSlowQuery         = "Slow query"
	LogMsgMigrationsApplied = "Database migrations applied"

	LogMsgDatabaseCreated    = "Database created"
	LogMsgDatabaseDropped    = "Database dropped"
	LogMsgSessionsTerminated = "Terminated sessions on database"
	LogMsgTerminateFailed    = "Could not terminate sessions, dropping anyway"
)
