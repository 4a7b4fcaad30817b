package config

import (
	"os"
	"strconv"
	"time"
)

const (
	StorageBackendMinIO = "minio"
	StorageBackendS3    = "s3"
	StorageBackendDisk  = "disk"
)

type Config struct {
	Port        string
	Environment string

	DatabaseURL string

	RedisURL           string
	RedisStatusChannel string

	StorageBackend       string
	StorageBucket        string
	StoragePrefix        string
	StoragePublicBaseURL string

	MinIOEndpoint       string
	MinIOPublicEndpoint string
	MinIOAccessKey      string
	MinIOSecretKey      string
	MinIOUseSSL         bool
	MinIOPublicUseSSL   bool

	S3Region       string
	S3Endpoint     string
	S3AccessKey    string
	S3SecretKey    string
	S3UsePathStyle bool

	DiskStorageDir string

	StabilityWindow       time.Duration
	StabilityPollInterval time.Duration
	MaxConcurrentUploads  int
	CompressMaxDimension  int
	CompressJPEGQuality   int
	MaxManualUploadBytes  int64

	JWTSecret          string
	GalleryTokenExpiry time.Duration

	CORSOrigins string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "5000"),
		Environment: getEnv("ENVIRONMENT", "development"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisURL:           getEnv("REDIS_URL", ""),
		RedisStatusChannel: getEnv("REDIS_STATUS_CHANNEL", "photo-bridge:status"),

		StorageBackend:       getEnv("STORAGE_BACKEND", StorageBackendMinIO),
		StorageBucket:        getEnv("STORAGE_BUCKET", "wedding-photos"),
		StoragePrefix:        getEnv("STORAGE_PREFIX", "live"),
		StoragePublicBaseURL: getEnv("STORAGE_PUBLIC_BASE_URL", ""),

		MinIOEndpoint:       getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinIOPublicEndpoint: getEnv("MINIO_PUBLIC_ENDPOINT", getEnv("MINIO_ENDPOINT", "localhost:9000")),
		MinIOAccessKey:      getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinIOSecretKey:      getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinIOUseSSL:         getBoolEnv("MINIO_USE_SSL", false),
		MinIOPublicUseSSL:   getBoolEnv("MINIO_PUBLIC_USE_SSL", false),

		S3Region:       getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:     getEnv("S3_ENDPOINT", ""),
		S3AccessKey:    getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:    getEnv("S3_SECRET_KEY", ""),
		S3UsePathStyle: getBoolEnv("S3_USE_PATH_STYLE", true),

		DiskStorageDir: getEnv("DISK_STORAGE_DIR", "./data/objects"),

		StabilityWindow:       getDurationEnv("STABILITY_WINDOW", 3*time.Second),
		StabilityPollInterval: getDurationEnv("STABILITY_POLL_INTERVAL", 500*time.Millisecond),
		MaxConcurrentUploads:  getIntEnv("MAX_CONCURRENT_UPLOADS", 4),
		CompressMaxDimension:  getIntEnv("COMPRESS_MAX_DIMENSION", 1600),
		CompressJPEGQuality:   getIntEnv("COMPRESS_JPEG_QUALITY", 80),
		MaxManualUploadBytes:  int64(getIntEnv("MAX_MANUAL_UPLOAD_BYTES", 50*1024*1024)),

		JWTSecret:          getEnv("JWT_SECRET", ""),
		GalleryTokenExpiry: getDurationEnv("GALLERY_TOKEN_EXPIRY", 24*time.Hour),

		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
