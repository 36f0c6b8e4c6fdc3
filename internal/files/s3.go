package files

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"photo-manifest/internal/config"
	"photo-manifest/internal/manifest"
	"photo-manifest/internal/secrets"
)

// S3SecretKey is the secrets store key holding the S3 secret access key.
const S3SecretKey = "s3_secret_access_key"

// S3Store maps the photo folders onto key prefixes of a bucket.
type S3Store struct {
	client *minio.Client
	bucket string
	prefix string
}

func NewS3Store(ctx context.Context, cfg config.S3Config) (*S3Store, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, errors.New("s3 endpoint is required")
	}
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, errors.New("s3 bucket is required")
	}

	accessKeyID, secretAccessKey, err := s3Credentials(cfg)
	if err != nil {
		return nil, err
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKeyID, secretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("s3 client: %w", err)
	}

	ok, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("s3 bucket %q: %w", cfg.Bucket, err)
	}
	if !ok {
		return nil, fmt.Errorf("s3 bucket %q does not exist", cfg.Bucket)
	}

	return &S3Store{
		client: client,
		bucket: cfg.Bucket,
		prefix: normalizePrefix(cfg.Prefix),
	}, nil
}

func s3Credentials(cfg config.S3Config) (string, string, error) {
	accessKeyID := os.Getenv("AWS_ACCESS_KEY_ID")
	if accessKeyID == "" {
		accessKeyID = strings.TrimSpace(cfg.AccessKeyID)
	}
	if accessKeyID == "" {
		return "", "", errors.New("AWS_ACCESS_KEY_ID not set")
	}

	secretAccessKey := os.Getenv("AWS_SECRET_ACCESS_KEY")
	if secretAccessKey == "" {
		stored, err := secrets.Get(S3SecretKey)
		if err != nil {
			if errors.Is(err, secrets.ErrNotFound) {
				return "", "", errors.New("AWS_SECRET_ACCESS_KEY not set")
			}
			return "", "", fmt.Errorf("load s3 secret: %w", err)
		}
		secretAccessKey = string(stored)
	}
	return accessKeyID, secretAccessKey, nil
}

func (s *S3Store) DirExists(ctx context.Context, dir string) (bool, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	objects := s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:  s.dirKey(dir),
		MaxKeys: 1,
	})
	for obj := range objects {
		if obj.Err != nil {
			return false, fmt.Errorf("s3: list %q: %w", dir, obj.Err)
		}
		return true, nil
	}
	return false, nil
}

func (s *S3Store) ListDir(ctx context.Context, dir string) ([]manifest.Entry, error) {
	prefix := s.dirKey(dir)
	var entries []manifest.Entry
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("s3: list %q: %w", dir, obj.Err)
		}
		if entry, ok := entryFromKey(prefix, obj.Key); ok {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func (s *S3Store) FileExists(ctx context.Context, name string) (bool, error) {
	_, err := s.stat(ctx, name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *S3Store) FileSize(ctx context.Context, name string) (int64, error) {
	info, err := s.stat(ctx, name)
	if err != nil {
		return 0, err
	}
	return info.Size, nil
}

func (s *S3Store) Open(ctx context.Context, name string) (*Object, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.key(name), minio.GetObjectOptions{})
	if err != nil {
		return nil, translateS3Error(name, err)
	}
	info, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		return nil, translateS3Error(name, err)
	}
	return &Object{
		Content: obj,
		Name:    path.Base(name),
		Size:    info.Size,
		ModTime: info.LastModified,
	}, nil
}

func (s *S3Store) stat(ctx context.Context, name string) (minio.ObjectInfo, error) {
	info, err := s.client.StatObject(ctx, s.bucket, s.key(name), minio.StatObjectOptions{})
	if err != nil {
		return minio.ObjectInfo{}, translateS3Error(name, err)
	}
	return info, nil
}

func (s *S3Store) key(name string) string {
	return s.prefix + strings.TrimPrefix(name, "/")
}

func (s *S3Store) dirKey(dir string) string {
	return s.key(strings.Trim(dir, "/")) + "/"
}

func normalizePrefix(prefix string) string {
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		return ""
	}
	return prefix + "/"
}

// entryFromKey turns a non-recursive listing key into a directory entry.
// Common prefixes (ending in "/") are reported as non-regular entries.
func entryFromKey(prefix, key string) (manifest.Entry, bool) {
	rest := strings.TrimPrefix(key, prefix)
	if rest == "" || (rest == key && prefix != "") {
		return manifest.Entry{}, false
	}
	if strings.HasSuffix(rest, "/") {
		return manifest.Entry{Name: strings.TrimSuffix(rest, "/"), Regular: false}, true
	}
	return manifest.Entry{Name: rest, Regular: true}, true
}

func translateS3Error(name string, err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NotFound":
		return ErrNotFound
	}
	return fmt.Errorf("s3: %q: %w", name, err)
}
