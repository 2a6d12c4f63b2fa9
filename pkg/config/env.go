package config

const (
	EnvDataDir     = "HOTEL_DATA_DIR"
	EnvBackupDir   = "HOTEL_BACKUP_DIR"
	EnvReceiptsDir = "HOTEL_RECEIPTS_DIR"
	EnvExportsDir  = "HOTEL_EXPORTS_DIR"

	EnvLogLevel  = "LOG_LEVEL"
	EnvLogFormat = "LOG_FORMAT"

	EnvSeedSampleData = "SEED_SAMPLE_DATA"
	EnvCurrency       = "CURRENCY"
	EnvBcryptCost     = "BCRYPT_COST"
)
