package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Scheme prefixes the inputs S3 can stage.
const S3Scheme = "s3://"

// ObjectStore is the part of *minio.Client the S3 fetcher uses.
type ObjectStore interface {
	ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
	FGetObject(ctx context.Context, bucketName, objectName, filePath string, opts minio.GetObjectOptions) error
}

// S3Config describes how to reach the object store.
type S3Config struct {
	// Endpoint is host[:port], optionally prefixed with http:// or https://.
	// A plain http:// endpoint disables TLS.
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Secure          bool
}

// S3 stages s3:// inputs.
type S3 struct {
	client ObjectStore
	logger *slog.Logger
}

// NewS3 connects a minio client for cfg.
func NewS3(cfg S3Config, logger *slog.Logger) (*S3, error) {
	endpoint, secure := cfg.Endpoint, cfg.Secure
	switch {
	case strings.HasPrefix(endpoint, "http://"):
		endpoint, secure = strings.TrimPrefix(endpoint, "http://"), false
	case strings.HasPrefix(endpoint, "https://"):
		endpoint, secure = strings.TrimPrefix(endpoint, "https://"), true
	}
	if endpoint == "" {
		return nil, fmt.Errorf("s3 endpoint is not configured")
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: secure,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("creating s3 client for %s: %w", endpoint, err)
	}
	return NewS3WithClient(client, logger), nil
}

// NewS3WithClient builds the fetcher around an existing store.
func NewS3WithClient(client ObjectStore, logger *slog.Logger) *S3 {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &S3{client: client, logger: logger}
}

func (s *S3) Supports(input string) bool {
	return strings.HasPrefix(input, S3Scheme)
}

// Fetch downloads one object, or every object below a prefix when the input
// ends with "/". A prefix is recreated under dir as a directory named after
// its last path element.
func (s *S3) Fetch(ctx context.Context, input, dir string) (string, error) {
	bucket, key, err := ParseURL(input)
	if err != nil {
		return "", err
	}
	if strings.HasSuffix(key, "/") {
		return s.fetchTree(ctx, bucket, key, dir)
	}

	local := filepath.Join(dir, path.Base(key))
	if err := s.get(ctx, bucket, key, local); err != nil {
		return "", err
	}
	return local, nil
}

func (s *S3) fetchTree(ctx context.Context, bucket, prefix, dir string) (string, error) {
	root := filepath.Join(dir, path.Base(strings.TrimSuffix(prefix, "/")))
	if err := os.MkdirAll(root, 0o755); err != nil {
		return "", err
	}

	var count int
	var total int64
	for obj := range s.client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return "", fmt.Errorf("listing s3://%s/%s: %w", bucket, prefix, obj.Err)
		}
		rel := strings.TrimPrefix(obj.Key, prefix)
		if rel == "" || strings.HasSuffix(rel, "/") {
			continue
		}
		local := filepath.Join(root, filepath.FromSlash(rel))
		if !strings.HasPrefix(local, root+string(filepath.Separator)) {
			return "", fmt.Errorf("object key %q escapes the staging directory", obj.Key)
		}
		if err := s.get(ctx, bucket, obj.Key, local); err != nil {
			return "", err
		}
		count++
		total += obj.Size
	}
	if count == 0 {
		return "", fmt.Errorf("no objects found below s3://%s/%s", bucket, prefix)
	}

	s.logger.Debug("Staged s3 prefix.", "bucket", bucket, "prefix", prefix, "objects", count, "size", humanize.Bytes(uint64(total)))
	return root, nil
}

func (s *S3) get(ctx context.Context, bucket, key, local string) error {
	if err := os.MkdirAll(filepath.Dir(local), 0o755); err != nil {
		return err
	}
	if err := s.client.FGetObject(ctx, bucket, key, local, minio.GetObjectOptions{}); err != nil {
		return fmt.Errorf("downloading s3://%s/%s: %w", bucket, key, err)
	}
	if info, err := os.Stat(local); err == nil {
		s.logger.Debug("Staged s3 object.", "bucket", bucket, "key", key, "path", local, "size", humanize.Bytes(uint64(info.Size())))
	}
	return nil
}

// ParseURL splits s3://bucket/key.
func ParseURL(input string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(input, S3Scheme)
	if !ok {
		return "", "", fmt.Errorf("%q is not an s3:// url", input)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" || key == "/" {
		return "", "", fmt.Errorf("%q must name a bucket and an object or prefix", input)
	}
	return bucket, key, nil
}
