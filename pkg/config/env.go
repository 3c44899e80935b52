package config

const EnvPrefix = "TALENTCONNECT"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	MediaBackendGCS   = "gcs"
	MediaBackendMinIO = "minio"
	MediaBackendNone  = "none"
)

const (
	EnvAppEnv   = "TALENTCONNECT_APP_ENV"
	EnvPort     = "TALENTCONNECT_APP_PORT"
	EnvLogLevel = "TALENTCONNECT_LOG_LEVEL"
	EnvLogFile  = "TALENTCONNECT_LOG_FILE"

	EnvDBDSN  = "TALENTCONNECT_DB_DSN"
	EnvDBHost = "TALENTCONNECT_DB_HOST"
	EnvDBPort = "TALENTCONNECT_DB_PORT"
	EnvDBUser = "TALENTCONNECT_DB_USER"
	EnvDBPass = "TALENTCONNECT_DB_PASSWORD"
	EnvDBName = "TALENTCONNECT_DB_NAME"

	EnvRedisURL = "TALENTCONNECT_REDIS_URL"

	EnvJWTSecret  = "TALENTCONNECT_JWT_SECRET"
	EnvJWTIssuer  = "TALENTCONNECT_JWT_ISSUER"
	EnvJWTExpMins = "TALENTCONNECT_JWT_EXPIRATION_MINUTES"

	EnvBcryptCost = "TALENTCONNECT_BCRYPT_COST"

	EnvMediaBackend = "TALENTCONNECT_MEDIA_BACKEND"
	EnvGCSBucket    = "TALENTCONNECT_GCS_BUCKET_NAME"
	EnvMinIOBucket  = "TALENTCONNECT_MINIO_BUCKET"

	EnvEmailUser = "TALENTCONNECT_EMAIL_USER"
	EnvEmailPass = "TALENTCONNECT_EMAIL_PASS"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
