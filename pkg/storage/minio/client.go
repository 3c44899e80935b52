package minio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/angelmondragon/talentconnect-backend/pkg/config"
	"github.com/angelmondragon/talentconnect-backend/pkg/logger"
	"github.com/angelmondragon/talentconnect-backend/pkg/storage"
	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const pingTimeout = 5 * time.Second

type objectAPI interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts miniogo.PutObjectOptions) (miniogo.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts miniogo.RemoveObjectOptions) error
	BucketExists(ctx context.Context, bucketName string) (bool, error)
}

// Client stores media in an S3-compatible bucket.
type Client struct {
	api        objectAPI
	bucket     string
	publicBase string
}

var _ storage.Store = (*Client)(nil)

func NewClient(ctx context.Context, cfg config.MinIOConfig, logg *logger.Logger) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("minio endpoint is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("minio bucket is required")
	}

	api, err := miniogo.New(cfg.Endpoint, &miniogo.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("creating minio client: %w", err)
	}

	publicBase := strings.TrimRight(cfg.PublicBaseURL, "/")
	if publicBase == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		publicBase = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}

	client := &Client{api: api, bucket: cfg.Bucket, publicBase: publicBase}
	if err := client.Ping(ctx); err != nil {
		return nil, fmt.Errorf("minio health check failed: %w", err)
	}

	if logg != nil {
		logg.Info(logg.WithField(ctx, "bucket", cfg.Bucket), "minio client initialized")
	}
	return client, nil
}

func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.api == nil {
		return errors.New("minio client not initialized")
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	ok, err := c.api.BucketExists(ctx, c.bucket)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("bucket %q does not exist", c.bucket)
	}
	return nil
}

func (c *Client) Upload(ctx context.Context, in storage.UploadInput) (*storage.Object, error) {
	if in.Key == "" {
		return nil, errors.New("object key is required")
	}
	if in.Body == nil {
		return nil, errors.New("object body is required")
	}

	size := in.Size
	if size <= 0 {
		size = -1
	}

	info, err := c.api.PutObject(ctx, c.bucket, in.Key, in.Body, size, miniogo.PutObjectOptions{
		ContentType: in.ContentType,
		UserMetadata: map[string]string{
			"uploaded-at": time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("minio upload: %w", err)
	}

	key := info.Key
	if key == "" {
		key = in.Key
	}
	return &storage.Object{
		SecureURL: c.publicBase + "/" + key,
		PublicID:  key,
	}, nil
}

// ObjectKey maps a public URL, or a bare key, to its object key.
func (c *Client) ObjectKey(ref string) string {
	return storage.KeyFromRef(ref, c.publicBase)
}

// Delete removes the object referenced by key or public URL.
func (c *Client) Delete(ctx context.Context, ref string) error {
	key := c.ObjectKey(ref)
	if key == "" {
		return errors.New("object reference is required")
	}
	if err := c.api.RemoveObject(ctx, c.bucket, key, miniogo.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("minio delete: %w", err)
	}
	return nil
}
