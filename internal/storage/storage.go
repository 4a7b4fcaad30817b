// Package storage uploads processed photos to an object store and hands back
// the public URL the gallery links to.
package storage

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"path"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"photo-bridge/internal/config"
	"photo-bridge/internal/domain"
)

type ObjectStore interface {
	// Put stores data under key and returns its public URL.
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
	KeyFromURL(rawURL string) (string, bool)
}

// New builds the backend selected by STORAGE_BACKEND.
func New(ctx context.Context, cfg *config.Config) (ObjectStore, error) {
	switch cfg.StorageBackend {
	case config.StorageBackendMinIO:
		client, err := config.NewMinIOClient(cfg)
		if err != nil {
			return nil, err
		}
		store := NewMinIOStore(client, cfg.StorageBucket, cfg.MinIOPublicBaseURL())
		created, err := store.EnsureBucket(ctx)
		if err != nil {
			return nil, err
		}
		if created {
			log.Printf("Created MinIO bucket: %s", cfg.StorageBucket)
		}
		return store, nil
	case config.StorageBackendS3:
		client, err := config.NewS3Client(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return NewS3Store(client, cfg.StorageBucket, cfg.StoragePublicBaseURL), nil
	case config.StorageBackendDisk:
		base := cfg.StoragePublicBaseURL
		if base == "" {
			base = "http://localhost:" + cfg.Port + DiskRoutePrefix
		}
		return NewDiskStore(cfg.DiskStorageDir, base), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
}

// KeyGenerator produces object keys of the form <prefix>/<stamp>-<name>.
// Stamps are nanosecond timestamps forced to be strictly increasing, so two
// files with the same basename never share a key.
type KeyGenerator struct {
	prefix string
	last   atomic.Int64
	now    func() time.Time
}

func NewKeyGenerator(prefix string) *KeyGenerator {
	return &KeyGenerator{prefix: strings.Trim(prefix, "/"), now: time.Now}
}

func (g *KeyGenerator) Next(originalName string) string {
	stamp := g.stamp()
	name := sanitizeName(originalName)
	key := strconv.FormatInt(stamp, 10) + "-" + name
	if g.prefix == "" {
		return key
	}
	return g.prefix + "/" + key
}

func (g *KeyGenerator) stamp() int64 {
	for {
		now := g.now().UnixNano()
		last := g.last.Load()
		if now <= last {
			now = last + 1
		}
		if g.last.CompareAndSwap(last, now) {
			return now
		}
	}
}

func sanitizeName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return "file"
	}
	return name
}

func publicURL(base, key string) string {
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.TrimRight(base, "/") + "/" + strings.Join(segments, "/")
}

func keyFromURL(base, rawURL string) (string, bool) {
	prefix := strings.TrimRight(base, "/") + "/"
	if !strings.HasPrefix(rawURL, prefix) {
		return "", false
	}
	key, err := url.PathUnescape(strings.TrimPrefix(rawURL, prefix))
	if err != nil || key == "" {
		return "", false
	}
	return key, true
}

func storageError(op, key string, err error) error {
	return fmt.Errorf("%w: %s %s: %v", domain.ErrStorage, op, key, err)
}
