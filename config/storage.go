package config

import (
	"os"
)

// StorageConfig points at the optional bucket that keeps a copy of every
// exported workbook. An empty Bucket disables archiving.
type StorageConfig struct {
	Region   string
	Bucket   string
	Endpoint string
}

func LoadStorageConfig() StorageConfig {
	return StorageConfig{
		Region:   os.Getenv("AWS_REGION"),
		Bucket:   os.Getenv("EXPORT_ARCHIVE_BUCKET"),
		Endpoint: os.Getenv("S3_ENDPOINT_URL"),
	}
}
