package config

import (
	"os"
	"strconv"
	"strings"
)

// DefaultBoundary is the multipart boundary used when DOCUSIGN_BOUNDARY is not set.
const DefaultBoundary = "AAA"

// LogConfig holds slog settings.
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// EmailTemplate is the fallback subject and blurb for envelopes that carry none.
type EmailTemplate struct {
	Subject string
	Blurb   string
}

// DocuSignConfig holds everything the envelope engine needs to talk to the remote service.
// Exactly one credential set is expected: an OAuth token, a JWT grant (user id + private key)
// or legacy username/password with an integrator key.
type DocuSignConfig struct {
	BaseURL        string
	AccountID      string
	Username       string
	Password       string
	IntegratorKey  string
	OAuthToken     string
	UserID         string
	PrivateKeyPath string
	OAuthHost      string
	Boundary       string
	EmailTemplate  EmailTemplate
	TimeoutSec     int
}

// HasLegacyCredentials reports whether username/password authentication can be used.
func (c DocuSignConfig) HasLegacyCredentials() bool {
	return c.Username != "" && c.Password != "" && c.IntegratorKey != ""
}

// HasJWTCredentials reports whether the JWT grant flow can be used.
func (c DocuSignConfig) HasJWTCredentials() bool {
	return c.IntegratorKey != "" && c.UserID != "" && c.PrivateKeyPath != ""
}

// Configured is the readiness check that must pass before any envelope is submitted or fetched.
func (c DocuSignConfig) Configured() bool {
	if strings.TrimSpace(c.BaseURL) == "" || strings.TrimSpace(c.AccountID) == "" || c.Boundary == "" {
		return false
	}
	return c.OAuthToken != "" || c.HasJWTCredentials() || c.HasLegacyCredentials()
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// S3Config holds settings for AWS S3. Endpoint is optional and used for S3-compatible emulators.
type S3Config struct {
	Region    string
	Bucket    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// StorageConfig selects the object store documents may be read from.
// Driver is "minio", "s3" or empty for no object storage.
type StorageConfig struct {
	Driver string
	MinIO  MinIOConfig
	S3     S3Config
}

// TracingConfig selects the OTLP exporter and sampler. Names follow the OTEL_* variables.
type TracingConfig struct {
	Disabled    bool
	ServiceName string
	Protocol    string // grpc, http/protobuf
	Endpoint    string
	Sampler     string
	SamplerArg  string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost  string
	Port     string
	Log      LogConfig
	DocuSign DocuSignConfig
	Storage  StorageConfig
	Tracing  TracingConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost: getEnv("APP_HOST", "localhost:8080"),
		Port:    getEnv("PORT", "8080"),
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		DocuSign: DocuSignConfig{
			BaseURL:        getEnv("DOCUSIGN_BASE_URL", "https://demo.docusign.net/restapi/v2.1"),
			AccountID:      getEnv("DOCUSIGN_ACCOUNT_ID", ""),
			Username:       getEnv("DOCUSIGN_USERNAME", ""),
			Password:       getEnv("DOCUSIGN_PASSWORD", ""),
			IntegratorKey:  getEnv("DOCUSIGN_INTEGRATOR_KEY", ""),
			OAuthToken:     getEnv("DOCUSIGN_OAUTH_TOKEN", ""),
			UserID:         getEnv("DOCUSIGN_USER_ID", ""),
			PrivateKeyPath: getEnv("DOCUSIGN_PRIVATE_KEY_PATH", ""),
			OAuthHost:      getEnv("DOCUSIGN_OAUTH_HOST", "account-d.docusign.com"),
			Boundary:       getEnv("DOCUSIGN_BOUNDARY", DefaultBoundary),
			EmailTemplate: EmailTemplate{
				Subject: getEnv("DOCUSIGN_EMAIL_SUBJECT", "Please sign this document"),
				Blurb:   getEnv("DOCUSIGN_EMAIL_BLURB", "Please review and sign the attached documents."),
			},
			TimeoutSec: getEnvInt("DOCUSIGN_TIMEOUT_SEC", 30),
		},
		Storage: StorageConfig{
			Driver: getEnv("STORAGE_DRIVER", ""),
			MinIO: MinIOConfig{
				Endpoint:  getEnv("MINIO_ENDPOINT", ""),
				AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
				SecretKey: getEnv("MINIO_SECRET_KEY", ""),
				Bucket:    getEnv("MINIO_BUCKET", ""),
				UseSSL:    getEnvBool("MINIO_USE_SSL", false),
			},
			S3: S3Config{
				Region:    getEnv("S3_REGION", "us-east-1"),
				Bucket:    getEnv("S3_BUCKET", ""),
				Endpoint:  getEnv("S3_ENDPOINT", ""),
				AccessKey: getEnv("S3_ACCESS_KEY", ""),
				SecretKey: getEnv("S3_SECRET_KEY", ""),
			},
		},
		Tracing: TracingConfig{
			Disabled:    getEnvBool("OTEL_SDK_DISABLED", false),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "hancock"),
			Protocol:    getEnv("OTEL_EXPORTER_OTLP_PROTOCOL", "grpc"),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")),
			Sampler:     getEnv("OTEL_TRACES_SAMPLER", "parentbased_always_on"),
			SamplerArg:  getEnv("OTEL_TRACES_SAMPLER_ARG", "1.0"),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
