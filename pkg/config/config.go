package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Media         MediaConfig
	GCP           GCPConfig
	GCS           GCSConfig
	MinIO         MinIOConfig
	SMTP          SMTPConfig
	Metrics       MetricsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Media.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env             string        `envconfig:"TALENTCONNECT_APP_ENV" required:"true"`
	Port            string        `envconfig:"TALENTCONNECT_APP_PORT" default:"5000"`
	LogLevel        string        `envconfig:"TALENTCONNECT_LOG_LEVEL" default:"info"`
	LogWarnStack    bool          `envconfig:"TALENTCONNECT_LOG_WARN_STACK" default:"false"`
	LogFile         string        `envconfig:"TALENTCONNECT_LOG_FILE"`
	LogMaxSizeMB    int           `envconfig:"TALENTCONNECT_LOG_MAX_SIZE_MB" default:"100"`
	LogMaxBackups   int           `envconfig:"TALENTCONNECT_LOG_MAX_BACKUPS" default:"5"`
	LogMaxAgeDays   int           `envconfig:"TALENTCONNECT_LOG_MAX_AGE_DAYS" default:"30"`
	CORSOrigins     []string      `envconfig:"TALENTCONNECT_CORS_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout time.Duration `envconfig:"TALENTCONNECT_SHUTDOWN_TIMEOUT" default:"15s"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"TALENTCONNECT_DB_DSN"`

	LegacyHost     string `envconfig:"TALENTCONNECT_DB_HOST"`
	LegacyPort     int    `envconfig:"TALENTCONNECT_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"TALENTCONNECT_DB_USER"`
	LegacyPassword string `envconfig:"TALENTCONNECT_DB_PASSWORD"`
	LegacyName     string `envconfig:"TALENTCONNECT_DB_NAME"`
	LegacySSLMode  string `envconfig:"TALENTCONNECT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"TALENTCONNECT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"TALENTCONNECT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"TALENTCONNECT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TALENTCONNECT_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	ConnectAttempts uint64        `envconfig:"TALENTCONNECT_DB_CONNECT_ATTEMPTS" default:"5"`
	ConnectBackoff  time.Duration `envconfig:"TALENTCONNECT_DB_CONNECT_BACKOFF" default:"500ms"`
}

// RedisConfig is optional; an empty URL and address disables redis-backed rate limiting.
type RedisConfig struct {
	URL          string        `envconfig:"TALENTCONNECT_REDIS_URL"`
	Address      string        `envconfig:"TALENTCONNECT_REDIS_ADDR"`
	Password     string        `envconfig:"TALENTCONNECT_REDIS_PASSWORD"`
	DB           int           `envconfig:"TALENTCONNECT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TALENTCONNECT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TALENTCONNECT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TALENTCONNECT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TALENTCONNECT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TALENTCONNECT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"TALENTCONNECT_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"TALENTCONNECT_JWT_ISSUER" default:"talentconnect"`
	ExpirationMinutes int    `envconfig:"TALENTCONNECT_JWT_EXPIRATION_MINUTES" default:"1440"`
}

// TokenTTL returns the session token lifetime.
func (j JWTConfig) TokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	BcryptCost   int           `envconfig:"TALENTCONNECT_BCRYPT_COST" default:"12"`
	ResetCodeTTL time.Duration `envconfig:"TALENTCONNECT_RESET_CODE_TTL" default:"1h"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"TALENTCONNECT_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"TALENTCONNECT_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"TALENTCONNECT_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"TALENTCONNECT_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"TALENTCONNECT_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"TALENTCONNECT_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
	ResetWindow        time.Duration `envconfig:"TALENTCONNECT_AUTH_RATE_LIMIT_RESET_WINDOW" default:"15m"`
	ResetEmailLimit    int           `envconfig:"TALENTCONNECT_AUTH_RATE_LIMIT_RESET_EMAIL_LIMIT" default:"3"`
	ResetIPLimit       int           `envconfig:"TALENTCONNECT_AUTH_RATE_LIMIT_RESET_IP_LIMIT" default:"10"`
}

type FeatureFlagsConfig struct {
	AutoMigrate   bool `envconfig:"TALENTCONNECT_AUTO_MIGRATE" default:"false"`
	SeedLocations bool `envconfig:"TALENTCONNECT_SEED_LOCATIONS" default:"true"`
}

type MediaConfig struct {
	Backend     string `envconfig:"TALENTCONNECT_MEDIA_BACKEND" default:"none"`
	MaxUploadMB int    `envconfig:"TALENTCONNECT_MAX_UPLOAD_MB" default:"10"`
	KeyPrefix   string `envconfig:"TALENTCONNECT_MEDIA_KEY_PREFIX" default:"talentconnect"`
}

// MaxUploadBytes converts the configured upload limit to bytes.
func (m MediaConfig) MaxUploadBytes() int64 {
	if m.MaxUploadMB <= 0 {
		return 10 << 20
	}
	return int64(m.MaxUploadMB) << 20
}

func (m MediaConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(m.Backend)) {
	case MediaBackendGCS, MediaBackendMinIO, MediaBackendNone, "":
		return nil
	default:
		return fmt.Errorf("%s must be one of %s, %s, %s", EnvMediaBackend, MediaBackendGCS, MediaBackendMinIO, MediaBackendNone)
	}
}

type GCPConfig struct {
	ProjectID              string `envconfig:"TALENTCONNECT_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"TALENTCONNECT_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"TALENTCONNECT_GOOGLE_APPLICATION_CREDENTIALS"`
}

type GCSConfig struct {
	BucketName    string `envconfig:"TALENTCONNECT_GCS_BUCKET_NAME"`
	PublicBaseURL string `envconfig:"TALENTCONNECT_GCS_PUBLIC_BASE_URL" default:"https://storage.googleapis.com"`
}

type MinIOConfig struct {
	Endpoint      string `envconfig:"TALENTCONNECT_MINIO_ENDPOINT"`
	AccessKey     string `envconfig:"TALENTCONNECT_MINIO_ACCESS_KEY"`
	SecretKey     string `envconfig:"TALENTCONNECT_MINIO_SECRET_KEY"`
	Bucket        string `envconfig:"TALENTCONNECT_MINIO_BUCKET" default:"talentconnect"`
	UseSSL        bool   `envconfig:"TALENTCONNECT_MINIO_USE_SSL" default:"false"`
	PublicBaseURL string `envconfig:"TALENTCONNECT_MINIO_PUBLIC_BASE_URL"`
}

// SMTPConfig drives outbound email; missing credentials switch email to log-only mode.
type SMTPConfig struct {
	Host     string        `envconfig:"TALENTCONNECT_EMAIL_HOST" default:"smtp.gmail.com"`
	Port     int           `envconfig:"TALENTCONNECT_EMAIL_PORT" default:"587"`
	User     string        `envconfig:"TALENTCONNECT_EMAIL_USER"`
	Password string        `envconfig:"TALENTCONNECT_EMAIL_PASS"`
	From     string        `envconfig:"TALENTCONNECT_EMAIL_FROM"`
	FromName string        `envconfig:"TALENTCONNECT_EMAIL_FROM_NAME" default:"TalentConnect"`
	Timeout  time.Duration `envconfig:"TALENTCONNECT_EMAIL_TIMEOUT" default:"30s"`
}

func (s SMTPConfig) Enabled() bool {
	return s.User != "" && s.Password != ""
}

// Sender returns the envelope sender, falling back to the SMTP user.
func (s SMTPConfig) Sender() string {
	if s.From != "" {
		return s.From
	}
	return s.User
}

type MetricsConfig struct {
	Enabled bool   `envconfig:"TALENTCONNECT_METRICS_ENABLED" default:"true"`
	Path    string `envconfig:"TALENTCONNECT_METRICS_PATH" default:"/metrics"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
