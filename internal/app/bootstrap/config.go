// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for BoardHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, base_url, etc.
//   - Environment variables: BOARDHUB_MONGO_URI, BOARDHUB_BASE_URL, etc.
//   - Command-line flags: --mongo_uri, --base_url, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "board_hub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},
	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	// Thumbnail storage configuration
	{Name: "storage_type", Default: "local", Desc: "Storage backend: 'local' or 's3'"},
	{Name: "storage_local_path", Default: "./uploads/thumbnails", Desc: "Local storage path for uploaded thumbnails"},
	{Name: "storage_local_url", Default: "/files/thumbnails", Desc: "URL prefix for serving local files"},
	{Name: "storage_s3_region", Default: "", Desc: "AWS region for S3"},
	{Name: "storage_s3_bucket", Default: "", Desc: "S3 bucket name"},
	{Name: "storage_s3_prefix", Default: "thumbnails/", Desc: "S3 key prefix"},
	{Name: "storage_public_url", Default: "", Desc: "Public URL prefix in front of the bucket (blank uses the bucket URL)"},

	// Email/SMTP configuration
	{Name: "mail_smtp_host", Default: "localhost", Desc: "SMTP server host"},
	{Name: "mail_smtp_port", Default: 1025, Desc: "SMTP server port"},
	{Name: "mail_smtp_user", Default: "", Desc: "SMTP username"},
	{Name: "mail_smtp_pass", Default: "", Desc: "SMTP password"},
	{Name: "mail_from", Default: "noreply@boardhub.app", Desc: "From email address"},
	{Name: "mail_from_name", Default: "BoardHub", Desc: "From display name"},
	{Name: "mail_queue_size", Default: 64, Desc: "Pending invitation mail buffer size"},

	// Base URL for invitation join links
	{Name: "base_url", Default: "http://localhost:3000", Desc: "Base URL for invitation join links"},
	{Name: "site_name", Default: "BoardHub", Desc: "Display name used in outgoing mail"},

	// Report pipeline: completion service
	{Name: "gemini_api_key", Default: "", Desc: "API key for the completion service"},
	{Name: "gemini_model", Default: "", Desc: "Completion model name (blank uses the client default)"},

	// Report pipeline: translation service
	{Name: "translate_url", Default: "https://api-free.deepl.com", Desc: "Translation API base URL"},
	{Name: "translate_api_key", Default: "", Desc: "Translation API key"},
	{Name: "translate_target_lang", Default: "KO", Desc: "Translation target language code"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
// CoreConfig comes from the shared WAFFLE layer; AppConfig is specific
// to this app and can be extended as the app grows.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "BOARDHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),
		SessionKey:       appValues.String("session_key"),
		SessionDomain:    appValues.String("session_domain"),

		// Thumbnail storage
		StorageType:      appValues.String("storage_type"),
		StorageLocalPath: appValues.String("storage_local_path"),
		StorageLocalURL:  appValues.String("storage_local_url"),
		StorageS3Region:  appValues.String("storage_s3_region"),
		StorageS3Bucket:  appValues.String("storage_s3_bucket"),
		StorageS3Prefix:  appValues.String("storage_s3_prefix"),
		StoragePublicURL: appValues.String("storage_public_url"),

		// Email/SMTP
		MailSMTPHost:  appValues.String("mail_smtp_host"),
		MailSMTPPort:  appValues.Int("mail_smtp_port"),
		MailSMTPUser:  appValues.String("mail_smtp_user"),
		MailSMTPPass:  appValues.String("mail_smtp_pass"),
		MailFrom:      appValues.String("mail_from"),
		MailFromName:  appValues.String("mail_from_name"),
		MailQueueSize: appValues.Int("mail_queue_size"),

		// Links and display
		BaseURL:  appValues.String("base_url"),
		SiteName: appValues.String("site_name"),

		// Report pipeline
		GeminiAPIKey:        appValues.String("gemini_api_key"),
		GeminiModel:         appValues.String("gemini_model"),
		TranslateURL:        appValues.String("translate_url"),
		TranslateAPIKey:     appValues.String("translate_api_key"),
		TranslateTargetLang: appValues.String("translate_target_lang"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// BoardHub validates the MongoDB URI format and the storage backend
// selection to catch configuration errors early, before connecting.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	switch appCfg.StorageType {
	case "local":
		// Path defaults suffice.
	case "s3":
		if appCfg.StorageS3Region == "" || appCfg.StorageS3Bucket == "" {
			return fmt.Errorf("storage_type 's3' requires storage_s3_region and storage_s3_bucket")
		}
	default:
		return fmt.Errorf("unknown storage_type %q (want 'local' or 's3')", appCfg.StorageType)
	}

	if appCfg.GeminiAPIKey == "" {
		return fmt.Errorf("gemini_api_key is required for report generation")
	}
	if appCfg.TranslateAPIKey == "" {
		return fmt.Errorf("translate_api_key is required for report generation")
	}

	return nil
}
