package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"qrdrop/backend/common"
	"qrdrop/backend/library/qrcode"
	"qrdrop/backend/library/storage"
	"qrdrop/backend/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UploadURLPrefix is the public path under which stored objects are served.
const UploadURLPrefix = "/uploads/"

const qrSuffix = ".png"

// Upload describes one incoming file.
type Upload struct {
	UserID      string
	Filename    string
	Size        int64
	ContentType string
	Body        io.Reader
}

type FileService struct {
	files         model.FileStore
	storage       storage.Storage
	serverAddress string

	now      func() time.Time
	renderQR func(url string) ([]byte, error)
}

// NewFileService builds a FileService. serverAddress is the public base URL
// encoded into QR codes, without a trailing slash.
func NewFileService(files model.FileStore, store storage.Storage, serverAddress string) *FileService {
	return &FileService{
		files:         files,
		storage:       store,
		serverAddress: strings.TrimRight(serverAddress, "/"),
		now:           time.Now,
		renderQR:      qrcode.Generate,
	}
}

// uploadPath is the escaped public path of a stored object.
func uploadPath(storedName string) string {
	return UploadURLPrefix + url.PathEscape(storedName)
}

func (s *FileService) publicURL(storedName string) string {
	return s.serverAddress + uploadPath(storedName)
}

// nameFromPath reverses uploadPath. Unescapable paths are taken as raw names.
func nameFromPath(p string) string {
	base := path.Base(p)
	if name, err := url.PathUnescape(base); err == nil {
		return name
	}
	return base
}

func parseOwner(userID string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: invalid userId %q", ErrValidation, userID)
	}
	return id, nil
}

// baseName strips any client supplied directories, including Windows ones.
func baseName(name string) string {
	return filepath.Base(strings.ReplaceAll(name, "\\", "/"))
}

// Upload stores the bytes, stores a QR image pointing at them and records
// both. A failure after the bytes are stored removes what was written.
func (s *FileService) Upload(ctx context.Context, up Upload) (*model.File, error) {
	owner, err := parseOwner(up.UserID)
	if err != nil {
		return nil, err
	}
	name := baseName(up.Filename)
	if !common.ValidFilename(name) {
		return nil, fmt.Errorf("%w: invalid filename %q", ErrValidation, up.Filename)
	}

	uploaded := s.now().Truncate(time.Millisecond)
	storedName := fmt.Sprintf("%d-%s", uploaded.UnixMilli(), name)
	if !common.ValidFilename(storedName + qrSuffix) {
		return nil, fmt.Errorf("%w: filename too long", ErrValidation)
	}

	if err := s.storage.Save(ctx, storedName, up.Body, up.Size, up.ContentType); err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}

	qrName := storedName + qrSuffix
	if err := s.saveQR(ctx, storedName, qrName); err != nil {
		s.cleanup(ctx, storedName)
		return nil, err
	}

	file := &model.File{
		UserID:     owner,
		Filename:   name,
		StoredName: storedName,
		Filepath:   uploadPath(storedName),
		QRCodePath: uploadPath(qrName),
		UploadDate: uploaded,
	}
	if err := s.files.Insert(ctx, file); err != nil {
		s.cleanup(ctx, storedName, qrName)
		return nil, fmt.Errorf("insert file record: %w", err)
	}
	return file, nil
}

func (s *FileService) saveQR(ctx context.Context, storedName, qrName string) error {
	png, err := s.renderQR(s.publicURL(storedName))
	if err != nil {
		return fmt.Errorf("generate qr code: %w", err)
	}
	if err := s.storage.Save(ctx, qrName, bytes.NewReader(png), int64(len(png)), "image/png"); err != nil {
		return fmt.Errorf("store qr code: %w", err)
	}
	return nil
}

// cleanup removes objects best effort; missing ones are ignored.
func (s *FileService) cleanup(ctx context.Context, names ...string) {
	for _, name := range names {
		if err := s.storage.Remove(ctx, name); err != nil && !errors.Is(err, storage.ErrNotExist) {
			common.SysError(fmt.Sprintf("failed to remove %s: %v", name, err))
		}
	}
}

// List returns the owner's files in insertion order.
func (s *FileService) List(ctx context.Context, userID string) ([]model.File, error) {
	owner, err := parseOwner(userID)
	if err != nil {
		return nil, err
	}
	files, err := s.files.ListByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	return files, nil
}

func (s *FileService) find(ctx context.Context, fileID string) (*model.File, error) {
	id, err := primitive.ObjectIDFromHex(fileID)
	if err != nil {
		return nil, ErrFileNotFound
	}
	file, err := s.files.FindByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return nil, ErrFileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find file: %w", err)
	}
	return file, nil
}

// storedNameOf returns the storage name of a record. Records written before
// storedName existed only carry the public path.
func storedNameOf(file *model.File) string {
	if file.StoredName != "" {
		return file.StoredName
	}
	return nameFromPath(file.Filepath)
}

func qrNameOf(file *model.File) string {
	if file.QRCodePath == "" {
		return ""
	}
	return nameFromPath(file.QRCodePath)
}

// Rename gives a file a new display name. The stored object keeps its upload
// timestamp prefix and is renamed to match, the QR image is regenerated for
// the new URL and the record is updated last.
func (s *FileService) Rename(ctx context.Context, fileID, newFilename string) error {
	file, err := s.find(ctx, fileID)
	if err != nil {
		return err
	}
	if err := common.Validate.Var(newFilename, "filename"); err != nil {
		return fmt.Errorf("%w: invalid filename %q", ErrValidation, newFilename)
	}

	oldStored := storedNameOf(file)
	prefix, _, ok := strings.Cut(oldStored, "-")
	if !ok {
		prefix = strconv.FormatInt(file.UploadDate.UnixMilli(), 10)
	}
	newStored := prefix + "-" + newFilename
	newQR := newStored + qrSuffix
	if !common.ValidFilename(newQR) {
		return fmt.Errorf("%w: filename too long", ErrValidation)
	}
	oldQR := qrNameOf(file)

	renamed := newStored != oldStored
	regenerate := newQR != oldQR
	if renamed {
		if err := s.storage.Rename(ctx, oldStored, newStored); err != nil {
			return fmt.Errorf("rename stored file: %w", err)
		}
	}
	if regenerate {
		if err := s.saveQR(ctx, newStored, newQR); err != nil {
			if renamed {
				s.rollbackRename(ctx, newStored, oldStored)
			}
			return err
		}
	}

	updated := *file
	updated.Filename = newFilename
	updated.StoredName = newStored
	updated.Filepath = uploadPath(newStored)
	updated.QRCodePath = uploadPath(newQR)
	if err := s.files.Update(ctx, &updated); err != nil {
		if regenerate {
			s.cleanup(ctx, newQR)
		}
		if renamed {
			s.rollbackRename(ctx, newStored, oldStored)
		}
		return fmt.Errorf("update file record: %w", err)
	}

	if oldQR != "" && regenerate {
		s.cleanup(ctx, oldQR)
	}
	return nil
}

func (s *FileService) rollbackRename(ctx context.Context, from, to string) {
	if err := s.storage.Rename(ctx, from, to); err != nil {
		common.SysError(fmt.Sprintf("failed to roll back rename of %s to %s: %v", from, to, err))
	}
}

// Delete removes the stored bytes, then the QR image and the record. If the
// bytes cannot be removed the record is kept.
func (s *FileService) Delete(ctx context.Context, fileID string) error {
	file, err := s.find(ctx, fileID)
	if err != nil {
		return err
	}
	if err := s.storage.Remove(ctx, storedNameOf(file)); err != nil {
		return fmt.Errorf("remove stored file: %w", err)
	}
	if qr := qrNameOf(file); qr != "" {
		s.cleanup(ctx, qr)
	}
	if err := s.files.Delete(ctx, file.ID); err != nil && !errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("delete file record: %w", err)
	}
	return nil
}
