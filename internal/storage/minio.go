package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"io"

	"github.com/minio/minio-go/v7"
)

type MinIOStore struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

func NewMinIOStore(client *minio.Client, bucket, baseURL string) *MinIOStore {
	return &MinIOStore{client: client, bucket: bucket, baseURL: baseURL}
}

// EnsureBucket creates the bucket when missing and grants anonymous
// GetObject on it. It reports whether the bucket was created.
func (s *MinIOStore) EnsureBucket(ctx context.Context) (bool, error) {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return false, storageError("bucket exists", s.bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return false, storageError("make bucket", s.bucket, err)
		}
	}

	policy, err := publicReadPolicy(s.bucket)
	if err != nil {
		return !exists, storageError("bucket policy", s.bucket, err)
	}
	if err := s.client.SetBucketPolicy(ctx, s.bucket, policy); err != nil {
		return !exists, storageError("bucket policy", s.bucket, err)
	}
	return !exists, nil
}

func publicReadPolicy(bucket string) (string, error) {
	policy := map[string]interface{}{
		"Version": "2012-10-17",
		"Statement": []map[string]interface{}{
			{
				"Effect":    "Allow",
				"Principal": "*",
				"Action":    []string{"s3:GetObject"},
				"Resource":  []string{"arn:aws:s3:::" + bucket + "/*"},
			},
		},
	}
	data, err := json.Marshal(policy)
	return string(data), err
}

func (s *MinIOStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", storageError("put", key, err)
	}
	return s.PublicURL(key), nil
}

func (s *MinIOStore) Get(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, storageError("get", key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, storageError("get", key, err)
	}
	return data, nil
}

func (s *MinIOStore) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return storageError("delete", key, err)
	}
	return nil
}

func (s *MinIOStore) PublicURL(key string) string {
	return publicURL(s.baseURL, key)
}

func (s *MinIOStore) KeyFromURL(rawURL string) (string, bool) {
	return keyFromURL(s.baseURL, rawURL)
}
