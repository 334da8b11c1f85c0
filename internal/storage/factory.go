package storage

import (
	"fmt"
	"strings"

	"github.com/s9b/memenem/internal/config"
)

// NewStorage creates an ObjectStorage instance based on the configuration.
// Parameters:
//   - cfg: object storage configuration; Type "local" writes to LocalDir,
//     anything else goes to an S3-compatible bucket.
// Returns:
//   - ObjectStorage: initialized storage implementation.
//   - error: non-nil if the storage cannot be created.
func NewStorage(cfg *config.ObjectsConfig) (ObjectStorage, error) {
	switch StorageType(strings.ToLower(cfg.Type)) {
	case StorageTypeLocal:
		return NewLocalStorage(cfg.LocalDir, cfg.Prefix)
	case "":
		if cfg.Endpoint == "" && cfg.Bucket == "" {
			return NewLocalStorage(cfg.LocalDir, cfg.Prefix)
		}
		return NewS3Storage(toS3Config(cfg, detectStorageType(cfg.Endpoint)))
	case StorageTypeS3, StorageTypeR2, StorageTypeS3Compatible:
		return NewS3Storage(toS3Config(cfg, StorageType(strings.ToLower(cfg.Type))))
	default:
		return nil, fmt.Errorf("unsupported object storage type %q", cfg.Type)
	}
}

func toS3Config(cfg *config.ObjectsConfig, t StorageType) *S3Config {
	return &S3Config{
		Type:      t,
		Endpoint:  cfg.Endpoint,
		AccessKey: cfg.AccessKey,
		SecretKey: cfg.SecretKey,
		UseSSL:    cfg.UseSSL,
		Bucket:    cfg.Bucket,
		Region:    cfg.Region,
		PublicURL: cfg.PublicURL,
		Prefix:    cfg.Prefix,
	}
}

// detectStorageType guesses the provider from the endpoint host.
func detectStorageType(endpoint string) StorageType {
	endpoint = strings.ToLower(endpoint)

	switch {
	case strings.Contains(endpoint, "r2.cloudflarestorage.com"):
		return StorageTypeR2
	case endpoint == "", strings.Contains(endpoint, "amazonaws.com"):
		return StorageTypeS3
	default:
		return StorageTypeS3Compatible
	}
}

// objectKey joins the configured prefix and key.
func objectKey(prefix, key string) string {
	prefix = strings.Trim(prefix, "/")
	key = strings.TrimLeft(key, "/")
	if prefix == "" {
		return key
	}
	return prefix + "/" + key
}
