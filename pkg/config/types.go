package config

type Config struct {
	// Server settings
	Server ServerConfig `json:"server"`

	// Database settings
	Database DatabaseConfig `json:"database"`

	// Security settings
	Security SecurityConfig `json:"security"`

	// Logging settings
	Logging LoggingConfig `json:"logging"`

	// Blob storage settings
	Storage StorageConfig `json:"storage"`

	// Pricing settings
	Pricing PricingConfig `json:"pricing"`

	// Janitor settings
	Janitor JanitorConfig `json:"janitor"`
}

type ServerConfig struct {
	Host         string `json:"host" default:"localhost"`
	Port         int    `json:"port" default:"8080"`
	ReadTimeout  int    `json:"read_timeout" default:"30"`  // seconds
	WriteTimeout int    `json:"write_timeout" default:"30"` // seconds
	IdleTimeout  int    `json:"idle_timeout" default:"120"` // seconds
	GracefulStop int    `json:"graceful_stop" default:"30"` // seconds
}

type DatabaseConfig struct {
	Driver   string `json:"driver" default:"sqlite"` // sqlite, postgres
	Host     string `json:"host" default:"localhost"`
	Port     int    `json:"port" default:"5432"`
	Database string `json:"database" default:"safewings.db"`
	Username string `json:"username"`
	Password string `json:"password"`
	SSLMode  string `json:"ssl_mode" default:"disable"`

	// Connection pool settings
	MaxOpenConns    int `json:"max_open_conns" default:"25"`
	MaxIdleConns    int `json:"max_idle_conns" default:"5"`
	ConnMaxLifetime int `json:"conn_max_lifetime" default:"300"` // seconds
}

type SecurityConfig struct {
	JWTSecret           string `json:"jwt_secret"`
	JWTExpirationHours  int    `json:"jwt_expiration_hours" default:"24"`
	EncryptionKey       string `json:"encryption_key"` // 32 bytes for AES-256
	SessionCookieName   string `json:"session_cookie_name" default:"safewings_session"`
	SessionCookieSecure bool   `json:"session_cookie_secure" default:"true"`

	// Rate limiting
	RateLimitEnabled   bool `json:"rate_limit_enabled" default:"true"`
	RateLimitPerMinute int  `json:"rate_limit_per_minute" default:"60"`
	RateLimitBurstSize int  `json:"rate_limit_burst_size" default:"10"`
}

type LoggingConfig struct {
	Level      string `json:"level" default:"info"`    // debug, info, warn, error
	Format     string `json:"format" default:"json"`   // json, text
	Output     string `json:"output" default:"stdout"` // stdout, file
	FilePath   string `json:"file_path" default:"logs/safewings.log"`
	MaxSize    int    `json:"max_size" default:"100"` // MB
	MaxBackups int    `json:"max_backups" default:"3"`
	MaxAge     int    `json:"max_age" default:"28"` // days
	Compress   bool   `json:"compress" default:"true"`
}

type StorageConfig struct {
	Driver    string `json:"driver" default:"local"` // local
	LocalPath string `json:"local_path" default:"data/blobs"`

	// Upload limits
	MaxUploadBytes int64  `json:"max_upload_bytes" default:"5242880"` // 5 MiB
	AllowedTypes   string `json:"allowed_types" default:"image/jpeg,image/jpg,image/png,application/pdf"`
}

type PricingConfig struct {
	BaseFee    int    `json:"base_fee" default:"5"`
	UpgradeFee int    `json:"upgrade_fee" default:"99"`
	Currency   string `json:"currency" default:"INR"`
}

type JanitorConfig struct {
	Enabled           bool   `json:"enabled" default:"true"`
	ReconcileSchedule string `json:"reconcile_schedule" default:"@every 10m"`
	TokenSweep        string `json:"token_sweep" default:"@every 1m"`
	UploadTokenTTL    int    `json:"upload_token_ttl" default:"300"` // seconds
	SessionSweep      string `json:"session_sweep" default:"@every 15m"`
	SessionIdleTTL    int    `json:"session_idle_ttl" default:"86400"` // seconds
}
