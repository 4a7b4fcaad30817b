package config

import (
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// NewMinIOClient only builds the client; storage.MinIOStore.EnsureBucket
// prepares the bucket itself.
func NewMinIOClient(cfg *Config) (*minio.Client, error) {
	return minio.New(cfg.MinIOEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
		Secure: cfg.MinIOUseSSL,
	})
}

// MinIOPublicBaseURL is the base every object URL is built from when
// STORAGE_PUBLIC_BASE_URL is not set explicitly.
func (c *Config) MinIOPublicBaseURL() string {
	if c.StoragePublicBaseURL != "" {
		return c.StoragePublicBaseURL
	}
	scheme := "http"
	if c.MinIOPublicUseSSL {
		scheme = "https"
	}
	return scheme + "://" + c.MinIOPublicEndpoint + "/" + c.StorageBucket
}
