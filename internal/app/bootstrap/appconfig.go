// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS,
// logging, CORS, timeouts). AppConfig is everything specific to this
// application: the MongoDB connection, session cookies, thumbnail
// storage, invitation mail, and the report pipeline's external
// services.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionDomain string // Cookie domain (blank means current host)

	// Thumbnail storage configuration
	StorageType      string // Storage backend: "local" or "s3"
	StorageLocalPath string // Local storage path (e.g., "./uploads/thumbnails")
	StorageLocalURL  string // URL prefix for serving local files (e.g., "/files/thumbnails")
	StorageS3Region  string // AWS region (only used if StorageType is "s3")
	StorageS3Bucket  string // S3 bucket name
	StorageS3Prefix  string // Key prefix (e.g., "thumbnails/")
	StoragePublicURL string // Public URL prefix in front of the bucket (CDN); blank uses the bucket URL

	// Email/SMTP configuration for invitations
	MailSMTPHost  string // SMTP server host (e.g., localhost for Mailpit)
	MailSMTPPort  int    // SMTP server port (e.g., 1025 for Mailpit, 587 for SES)
	MailSMTPUser  string // SMTP username (empty disables auth)
	MailSMTPPass  string // SMTP password
	MailFrom      string // From email address
	MailFromName  string // From display name
	MailQueueSize int    // Pending invitation mail buffer before sends are refused

	// Base URL for invitation join links
	BaseURL string // e.g., "https://boardhub.app" or "http://localhost:3000"

	// Display name used in outgoing mail
	SiteName string

	// Report pipeline: completion service
	GeminiAPIKey string // API key for the completion service
	GeminiModel  string // Model name (blank uses the client default)

	// Report pipeline: translation service
	TranslateURL        string // Translation API base URL
	TranslateAPIKey     string // Translation API key
	TranslateTargetLang string // Target language code (e.g., "KO")
}
