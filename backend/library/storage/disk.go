package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"

	"qrdrop/backend/common"
)

// Disk stores objects as files in a single directory.
type Disk struct {
	root string
}

// NewDisk creates root if it does not exist.
func NewDisk(root string) (*Disk, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &Disk{root: abs}, nil
}

// Root is the absolute upload directory.
func (d *Disk) Root() string { return d.root }

func (d *Disk) Driver() string { return common.StorageDriverDisk }

func (d *Disk) path(name string) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}
	return filepath.Join(d.root, name), nil
}

func (d *Disk) Save(_ context.Context, name string, r io.Reader, _ int64, _ string) error {
	p, err := d.path(name)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return mapDiskErr(err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(p)
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(p)
		return fmt.Errorf("close %s: %w", name, err)
	}
	return nil
}

func (d *Disk) Rename(_ context.Context, oldName, newName string) error {
	oldPath, err := d.path(oldName)
	if err != nil {
		return err
	}
	newPath, err := d.path(newName)
	if err != nil {
		return err
	}
	if oldPath == newPath {
		_, err := os.Stat(oldPath)
		return mapDiskErr(err)
	}
	if _, err := os.Lstat(newPath); err == nil {
		return fmt.Errorf("%w: %s", ErrExist, newName)
	}
	return mapDiskErr(os.Rename(oldPath, newPath))
}

func (d *Disk) Remove(_ context.Context, name string) error {
	p, err := d.path(name)
	if err != nil {
		return err
	}
	return mapDiskErr(os.Remove(p))
}

func (d *Disk) Open(_ context.Context, name string) (*Object, error) {
	p, err := d.path(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		return nil, mapDiskErr(err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &Object{ReadCloser: f, Size: info.Size(), ContentType: contentType, ModTime: info.ModTime()}, nil
}

func mapDiskErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %v", ErrNotExist, err)
	case errors.Is(err, fs.ErrExist):
		return fmt.Errorf("%w: %v", ErrExist, err)
	default:
		return err
	}
}
