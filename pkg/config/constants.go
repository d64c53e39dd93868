package config

// EnvPrefix is empty because every variable carries the DEALERDESK_ prefix in
// its envconfig tag already.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

// Environment variable names, shared with tests and deploy tooling.
const (
	EnvAppEnv      = "DEALERDESK_APP_ENV"
	EnvPort        = "DEALERDESK_APP_PORT"
	EnvDBDSN       = "DEALERDESK_DB_DSN"
	EnvRedisURL    = "DEALERDESK_REDIS_URL"
	EnvJWTSecret   = "DEALERDESK_JWT_SECRET"
	EnvJWTIssuer   = "DEALERDESK_JWT_ISSUER"
	EnvJWTExpMins  = "DEALERDESK_JWT_EXPIRATION_MINUTES"
	EnvGCPProject  = "DEALERDESK_GCP_PROJECT_ID"
	EnvOrdersTopic = "DEALERDESK_PUBSUB_ORDERS_TOPIC"
)
