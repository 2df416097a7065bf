package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"qrdrop/backend/common"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Minio stores objects in one S3-compatible bucket.
type Minio struct {
	client *minio.Client
	bucket string
}

// normaliseEndpoint accepts either "minio:9000" or "http(s)://minio:9000"
// and returns the host and whether TLS should be used.
func normaliseEndpoint(raw string) (endpoint string, secure bool, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false, fmt.Errorf("empty endpoint")
	}
	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil {
			return "", false, err
		}
		if u.Host == "" {
			return "", false, fmt.Errorf("invalid endpoint")
		}
		if u.Path != "" && u.Path != "/" {
			return "", false, fmt.Errorf("endpoint must not contain a path")
		}
		return u.Host, u.Scheme == "https", nil
	}
	return raw, false, nil
}

// NewMinio connects to the endpoint and checks that bucket exists.
func NewMinio(ctx context.Context, rawEndpoint, accessKey, secretKey, bucket string) (*Minio, error) {
	if rawEndpoint == "" || accessKey == "" || secretKey == "" || bucket == "" {
		return nil, fmt.Errorf("minio configuration incomplete")
	}
	endpoint, secure, err := normaliseEndpoint(rawEndpoint)
	if err != nil {
		return nil, err
	}
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, err
	}
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("minio bucket does not exist: %s", bucket)
	}
	common.SysLog(fmt.Sprintf("MinIO storage ready, bucket %s at %s", bucket, endpoint))
	return &Minio{client: client, bucket: bucket}, nil
}

func (m *Minio) Driver() string { return common.StorageDriverMinio }

func (m *Minio) exists(ctx context.Context, name string) (bool, error) {
	_, err := m.client.StatObject(ctx, m.bucket, name, minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}
	if isNoSuchKey(err) {
		return false, nil
	}
	return false, err
}

func (m *Minio) Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) error {
	if err := checkName(name); err != nil {
		return err
	}
	exists, err := m.exists(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrExist, name)
	}
	_, err = m.client.PutObject(ctx, m.bucket, name, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("put %s: %w", name, err)
	}
	return nil
}

// Rename copies the object server side and removes the source.
func (m *Minio) Rename(ctx context.Context, oldName, newName string) error {
	if err := checkName(oldName); err != nil {
		return err
	}
	if err := checkName(newName); err != nil {
		return err
	}
	if oldName == newName {
		return m.statOnly(ctx, oldName)
	}
	exists, err := m.exists(ctx, newName)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrExist, newName)
	}
	_, err = m.client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: m.bucket, Object: newName},
		minio.CopySrcOptions{Bucket: m.bucket, Object: oldName},
	)
	if err != nil {
		return mapMinioErr(err)
	}
	return mapMinioErr(m.client.RemoveObject(ctx, m.bucket, oldName, minio.RemoveObjectOptions{}))
}

// Remove reports ErrNotExist for missing objects; S3 deletes are idempotent
// so the object is checked first.
func (m *Minio) Remove(ctx context.Context, name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	if err := m.statOnly(ctx, name); err != nil {
		return err
	}
	return mapMinioErr(m.client.RemoveObject(ctx, m.bucket, name, minio.RemoveObjectOptions{}))
}

func (m *Minio) Open(ctx context.Context, name string) (*Object, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	obj, err := m.client.GetObject(ctx, m.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, mapMinioErr(err)
	}
	info, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		return nil, mapMinioErr(err)
	}
	return &Object{ReadCloser: obj, Size: info.Size, ContentType: info.ContentType, ModTime: info.LastModified}, nil
}

func (m *Minio) statOnly(ctx context.Context, name string) error {
	_, err := m.client.StatObject(ctx, m.bucket, name, minio.StatObjectOptions{})
	return mapMinioErr(err)
}

func isNoSuchKey(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}

func mapMinioErr(err error) error {
	if err == nil {
		return nil
	}
	if isNoSuchKey(err) {
		return fmt.Errorf("%w: %v", ErrNotExist, err)
	}
	return err
}
