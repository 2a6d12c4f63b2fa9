package config

const (
	DefaultDataDir     = "data"
	DefaultBackupDir   = "backups"
	DefaultReceiptsDir = "receipts"
	DefaultExportsDir  = "exports"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"

	DefaultSeedSampleData = true
	DefaultCurrency       = "USD"
	DefaultBcryptCost     = 10
)
