package handler

import (
	"errors"
	"fmt"
	"html"
	"net/http"
	"strings"

	"qrdrop/backend/library/storage"
	"qrdrop/backend/service"

	"github.com/gin-gonic/gin"
)

type RenameRequest struct {
	NewFilename string `json:"newFilename" form:"newFilename"`
}

// Upload takes a multipart form with a "file" part and a "userId" field.
func (h *Handler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.String(http.StatusBadRequest, fmt.Sprintf("File too large, the limit is %d bytes.", tooLarge.Limit))
			return
		}
		c.String(http.StatusBadRequest, "No file uploaded.")
		return
	}

	src, err := fh.Open()
	if err != nil {
		internalError(c, "Error uploading file", err)
		return
	}
	defer src.Close()

	file, err := h.files.Upload(c.Request.Context(), service.Upload{
		UserID:      c.PostForm("userId"),
		Filename:    fh.Filename,
		Size:        fh.Size,
		ContentType: fh.Header.Get("Content-Type"),
		Body:        src,
	})
	if errors.Is(err, service.ErrValidation) {
		badRequest(c, "Invalid userId or filename", err)
		return
	}
	if err != nil {
		internalError(c, "Error uploading file", err)
		return
	}

	body := fmt.Sprintf(`File uploaded successfully! <br> <img src="%s" alt="QR Code" />`, html.EscapeString(file.QRCodePath))
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(body))
}

// ListFiles returns the files owned by the userId query parameter.
func (h *Handler) ListFiles(c *gin.Context) {
	files, err := h.files.List(c.Request.Context(), c.Query("userId"))
	if errors.Is(err, service.ErrValidation) {
		badRequest(c, "Invalid userId", err)
		return
	}
	if err != nil {
		internalError(c, "Error fetching files", err)
		return
	}
	c.JSON(http.StatusOK, files)
}

func (h *Handler) RenameFile(c *gin.Context) {
	var req RenameRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}

	err := h.files.Rename(c.Request.Context(), c.Param("id"), req.NewFilename)
	switch {
	case err == nil:
		c.String(http.StatusOK, "File renamed successfully")
	case errors.Is(err, service.ErrFileNotFound):
		c.String(http.StatusNotFound, "File not found")
	case errors.Is(err, service.ErrValidation):
		badRequest(c, "Invalid filename", err)
	default:
		internalError(c, "Error renaming file", err)
	}
}

func (h *Handler) DeleteFile(c *gin.Context) {
	err := h.files.Delete(c.Request.Context(), c.Param("id"))
	switch {
	case err == nil:
		c.String(http.StatusOK, "File deleted successfully")
	case errors.Is(err, service.ErrFileNotFound):
		c.String(http.StatusNotFound, "File not found")
	default:
		internalError(c, "Error deleting file", err)
	}
}

// ServeUpload streams a stored object. It backs /uploads/*filepath when the
// objects do not live on local disk.
func (h *Handler) ServeUpload(c *gin.Context) {
	name := strings.TrimPrefix(c.Param("filepath"), "/")
	obj, err := h.storage.Open(c.Request.Context(), name)
	if errors.Is(err, storage.ErrNotExist) || errors.Is(err, storage.ErrInvalidName) {
		c.Status(http.StatusNotFound)
		return
	}
	if err != nil {
		internalError(c, "Error reading file", err)
		return
	}
	defer obj.Close()

	if !obj.ModTime.IsZero() {
		c.Header("Last-Modified", obj.ModTime.UTC().Format(http.TimeFormat))
	}
	c.DataFromReader(http.StatusOK, obj.Size, obj.ContentType, obj, nil)
}
