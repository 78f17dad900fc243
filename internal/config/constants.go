package config

const (
	// DefaultDatabasePath is the default path for the sqlite database
	DefaultDatabasePath = "./beheer.db"

	// DefaultImportDir holds the legacy JSON/CSV export
	DefaultImportDir = "./import"

	// DefaultOutputDir receives diagnostics and lookup files
	DefaultOutputDir = "./output"

	// DefaultEnvFile is loaded before the environment is read, when present
	DefaultEnvFile = ".env"
)
