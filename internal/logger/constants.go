package logger

const (
	FormatJSON = "json"
	FormatText = "text"
)

const (
	DefaultServiceName    = "quest-academy"
	EnvironmentProduction = "production"
)

const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "environment"
	AttrKeyRequestID   = "request_id"
)
