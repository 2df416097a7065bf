package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDisk(t *testing.T) *Disk {
	t.Helper()
	d, err := NewDisk(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)
	return d
}

func readAll(t *testing.T, d *Disk, name string) string {
	t.Helper()
	obj, err := d.Open(context.Background(), name)
	require.NoError(t, err)
	defer obj.Close()
	b, err := io.ReadAll(obj)
	require.NoError(t, err)
	return string(b)
}

func TestDisk_CreatesRoot(t *testing.T) {
	d := newTestDisk(t)
	info, err := os.Stat(d.Root())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestDisk_SaveOpen(t *testing.T) {
	ctx := context.Background()
	d := newTestDisk(t)

	require.NoError(t, d.Save(ctx, "1-a.txt", strings.NewReader("hello"), 5, "text/plain"))
	assert.Equal(t, "hello", readAll(t, d, "1-a.txt"))

	obj, err := d.Open(ctx, "1-a.txt")
	require.NoError(t, err)
	defer obj.Close()
	assert.Equal(t, int64(5), obj.Size)

	require.NoError(t, d.Save(ctx, "1-a.txt.png", strings.NewReader("png"), 3, "image/png"))
	qr, err := d.Open(ctx, "1-a.txt.png")
	require.NoError(t, err)
	defer qr.Close()
	assert.Equal(t, "image/png", qr.ContentType)

	err = d.Save(ctx, "1-a.txt", strings.NewReader("again"), 5, "text/plain")
	assert.ErrorIs(t, err, ErrExist)
	assert.Equal(t, "hello", readAll(t, d, "1-a.txt"), "existing object is untouched")
}

func TestDisk_RejectsInvalidNames(t *testing.T) {
	ctx := context.Background()
	d := newTestDisk(t)

	for _, name := range []string{"", "..", "../escape.txt", "sub/file.txt"} {
		err := d.Save(ctx, name, strings.NewReader("x"), 1, "")
		assert.ErrorIs(t, err, ErrInvalidName, name)
	}
	_, err := os.Stat(filepath.Join(filepath.Dir(d.Root()), "escape.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestDisk_Rename(t *testing.T) {
	ctx := context.Background()
	d := newTestDisk(t)
	require.NoError(t, d.Save(ctx, "1-a.txt", strings.NewReader("a"), 1, ""))
	require.NoError(t, d.Save(ctx, "1-b.txt", strings.NewReader("b"), 1, ""))

	require.NoError(t, d.Rename(ctx, "1-a.txt", "1-c.txt"))
	assert.Equal(t, "a", readAll(t, d, "1-c.txt"))
	_, err := d.Open(ctx, "1-a.txt")
	assert.ErrorIs(t, err, ErrNotExist)

	assert.ErrorIs(t, d.Rename(ctx, "1-c.txt", "1-b.txt"), ErrExist)
	assert.Equal(t, "b", readAll(t, d, "1-b.txt"))

	assert.ErrorIs(t, d.Rename(ctx, "missing.txt", "other.txt"), ErrNotExist)
	assert.NoError(t, d.Rename(ctx, "1-c.txt", "1-c.txt"))
}

func TestDisk_Remove(t *testing.T) {
	ctx := context.Background()
	d := newTestDisk(t)
	require.NoError(t, d.Save(ctx, "1-a.txt", strings.NewReader("a"), 1, ""))

	require.NoError(t, d.Remove(ctx, "1-a.txt"))
	assert.ErrorIs(t, d.Remove(ctx, "1-a.txt"), ErrNotExist)
}
