package storage

import (
	"context"
	"fmt"

	gcs "cloud.google.com/go/storage"
)

// GCSStore writes objects to a Google Cloud Storage bucket.
type GCSStore struct {
	bucket *gcs.BucketHandle
	name   string
}

// NewGCSStore creates a store over the named bucket.
func NewGCSStore(client *gcs.Client, bucket string) *GCSStore {
	return &GCSStore{
		bucket: client.Bucket(bucket),
		name:   bucket,
	}
}

// Put uploads data to the keyed object with its content type and metadata.
func (s *GCSStore) Put(ctx context.Context, key string, data []byte, contentType string, metadata map[string]string) error {
	w := s.bucket.Object(key).NewWriter(ctx)
	w.ContentType = contentType
	w.Metadata = metadata

	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("failed to write object %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize object %s: %w", key, err)
	}
	return nil
}

// URI returns the gs:// location of the keyed object.
func (s *GCSStore) URI(key string) string {
	return fmt.Sprintf("gs://%s/%s", s.name, key)
}
