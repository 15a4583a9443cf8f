package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
)

// ObjectStore is the slice of object storage the pipeline touches: reading
// one raw upload and publishing artifact files. Publishing the same
// destination key twice overwrites with identical content, so each upload
// is idempotent.
type ObjectStore interface {
	Fetch(ctx context.Context, objectPath, localPath string) error
	Publish(ctx context.Context, localPath, destinationKey, contentType string) error
}

type minioStore struct {
	client *minio.Client
	bucket string
}

func NewMinioStore(client *minio.Client, bucket string) ObjectStore {
	return &minioStore{client: client, bucket: bucket}
}

func (s *minioStore) Fetch(ctx context.Context, objectPath, localPath string) error {
	return s.client.FGetObject(ctx, s.bucket, objectPath, localPath, minio.GetObjectOptions{})
}

func (s *minioStore) Publish(ctx context.Context, localPath, destinationKey, contentType string) error {
	_, err := s.client.FPutObject(ctx, s.bucket, destinationKey, localPath, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

// publicObjectURL builds the deterministic public URL an object is served
// at. Path segments are escaped one by one to keep the slashes intact.
func publicObjectURL(protocol, host, bucket, objectKey string) string {
	segments := strings.Split(objectKey, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return fmt.Sprintf("%s://%s/%s/%s", protocol, host, bucket, strings.Join(segments, "/"))
}
