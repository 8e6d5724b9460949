package config

// DefaultWorkerCount is used when WORKER_COUNT is unset or not positive
const DefaultWorkerCount = 4

// DefaultEventLogRetentionDays is used when EVENT_LOG_RETENTION_DAYS is not positive
const DefaultEventLogRetentionDays = 90

const EnvProduction = "production"

// adminDatabase always exists on a Postgres server
const adminDatabase = "postgres"

const (
	insecureDefaultPassword   = "postgres"
	minProductionAPIKeyLength = 32
)

const (
	ErrMsgInvalidConfig = "invalid configuration"
)
