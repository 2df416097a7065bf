//go:build integration

package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startMinio(t *testing.T, bucket string) string {
	t.Helper()
	pool, err := dockertest.NewPool("")
	require.NoError(t, err, "could not connect to docker")
	pool.MaxWait = 2 * time.Minute

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "minio/minio",
		Tag:        "RELEASE.2024-01-31T20-20-33Z",
		Cmd:        []string{"server", "/data"},
		Env: []string{
			"MINIO_ROOT_USER=minio",
			"MINIO_ROOT_PASSWORD=minio123",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
	})
	require.NoError(t, err, "could not start minio")
	t.Cleanup(func() { _ = pool.Purge(resource) })

	endpoint := "localhost:" + resource.GetPort("9000/tcp")
	err = pool.Retry(func() error {
		resp, err := http.Get("http://" + endpoint + "/minio/health/live")
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("minio not ready: %d", resp.StatusCode)
		}
		return nil
	})
	require.NoError(t, err)

	mc, err := minio.New(endpoint, &minio.Options{Creds: credentials.NewStaticV4("minio", "minio123", "")})
	require.NoError(t, err)
	require.NoError(t, mc.MakeBucket(context.Background(), bucket, minio.MakeBucketOptions{}))
	return endpoint
}

func TestMinio_Integration(t *testing.T) {
	ctx := context.Background()
	endpoint := startMinio(t, "uploads")

	_, err := NewMinio(ctx, endpoint, "minio", "minio123", "missing-bucket")
	assert.Error(t, err, "missing bucket is rejected")

	m, err := NewMinio(ctx, "http://"+endpoint, "minio", "minio123", "uploads")
	require.NoError(t, err)

	require.NoError(t, m.Save(ctx, "1-a.txt", strings.NewReader("hello"), 5, "text/plain"))
	assert.ErrorIs(t, m.Save(ctx, "1-a.txt", strings.NewReader("x"), 1, "text/plain"), ErrExist)

	require.NoError(t, m.Rename(ctx, "1-a.txt", "1-b.txt"))
	_, err = m.Open(ctx, "1-a.txt")
	assert.ErrorIs(t, err, ErrNotExist)

	obj, err := m.Open(ctx, "1-b.txt")
	require.NoError(t, err)
	body, err := io.ReadAll(obj)
	require.NoError(t, err)
	_ = obj.Close()
	assert.Equal(t, "hello", string(body))
	assert.Equal(t, int64(5), obj.Size)

	assert.ErrorIs(t, m.Rename(ctx, "missing.txt", "other.txt"), ErrNotExist)
	require.NoError(t, m.Remove(ctx, "1-b.txt"))
	assert.ErrorIs(t, m.Remove(ctx, "1-b.txt"), ErrNotExist)
}
