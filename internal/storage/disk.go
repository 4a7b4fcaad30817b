package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DiskRoutePrefix is where the API serves DiskStore objects.
const DiskRoutePrefix = "/objects"

// DiskStore keeps objects under a local directory. Used for single-box
// deployments where the API itself serves the gallery files.
type DiskStore struct {
	// BasePath is a directory writable by the current process
	BasePath  string
	baseURL   string
	dirs      map[string]bool
	dirsMutex sync.Mutex
}

func NewDiskStore(basePath, baseURL string) *DiskStore {
	return &DiskStore{
		BasePath: basePath,
		baseURL:  baseURL,
		dirs:     make(map[string]bool, 10),
	}
}

func (s *DiskStore) createDir(dir string) error {
	s.dirsMutex.Lock()
	defer s.dirsMutex.Unlock()

	if ok := s.dirs[dir]; ok {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	s.dirs[dir] = true
	return nil
}

func (s *DiskStore) getFullPath(key string) (string, error) {
	full := filepath.Join(s.BasePath, filepath.FromSlash(key))
	rel, err := filepath.Rel(s.BasePath, full)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", errors.New("key escapes storage directory")
	}
	return full, nil
}

func (s *DiskStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	fileName, err := s.getFullPath(key)
	if err != nil {
		return "", storageError("put", key, err)
	}
	if err := s.createDir(filepath.Dir(fileName)); err != nil {
		return "", storageError("put", key, err)
	}
	// O_EXCL: an existing object is never replaced.
	file, err := os.OpenFile(fileName, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", storageError("put", key, err)
	}
	_, err = file.Write(data)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(fileName)
		return "", storageError("put", key, err)
	}
	return s.PublicURL(key), nil
}

func (s *DiskStore) Get(ctx context.Context, key string) ([]byte, error) {
	fileName, err := s.getFullPath(key)
	if err != nil {
		return nil, storageError("get", key, err)
	}
	data, err := os.ReadFile(fileName)
	if err != nil {
		return nil, storageError("get", key, err)
	}
	return data, nil
}

func (s *DiskStore) Delete(ctx context.Context, key string) error {
	fileName, err := s.getFullPath(key)
	if err != nil {
		return storageError("delete", key, err)
	}
	if err := os.Remove(fileName); err != nil {
		return storageError("delete", key, err)
	}
	return nil
}

func (s *DiskStore) PublicURL(key string) string {
	return publicURL(s.baseURL, key)
}

func (s *DiskStore) KeyFromURL(rawURL string) (string, bool) {
	return keyFromURL(s.baseURL, rawURL)
}
