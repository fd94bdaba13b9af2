package config

// EnvPrefix is passed to envconfig; individual fields carry fully qualified
// names so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

const (
	EnvDBDSN  = "WINELOG_DB_DSN"
	EnvDBHost = "WINELOG_DB_HOST"
	EnvDBUser = "WINELOG_DB_USER"
	EnvDBName = "WINELOG_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
