package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// GzipDecodeMiddleware decompresses gzipped request bodies
func GzipDecodeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Content-Encoding") != "gzip" {
			c.Next()
			return
		}
		gzipReader, err := gzip.NewReader(c.Request.Body)
		if err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		defer gzipReader.Close()

		c.Request.Body = io.NopCloser(gzipReader)
		c.Request.Header.Del("Content-Encoding")
		c.Request.ContentLength = -1
		c.Next()
	}
}

// incompressible content types are passed through untouched
var incompressible = []string{"image/png", "image/jpeg", "image/gif", "image/webp", "application/zip", "application/gzip", "video/", "audio/"}

// lazyGzipWriter holds back the status line until the first body write, when
// the handler has set Content-Type and the compression decision can be made.
type lazyGzipWriter struct {
	gin.ResponseWriter
	gzWriter      *gzip.Writer
	status        int
	headerWritten bool
}

func (w *lazyGzipWriter) shouldCompress(status int) bool {
	if status < 200 || status == http.StatusNoContent || status == http.StatusNotModified {
		return false
	}
	if w.Header().Get("Content-Encoding") != "" {
		return false
	}
	contentType := w.Header().Get("Content-Type")
	for _, t := range incompressible {
		if strings.HasPrefix(contentType, t) {
			return false
		}
	}
	return true
}

func (w *lazyGzipWriter) WriteHeader(statusCode int) {
	if w.headerWritten || statusCode <= 0 {
		return
	}
	w.status = statusCode
}

func (w *lazyGzipWriter) Status() int {
	if !w.headerWritten && w.status != 0 {
		return w.status
	}
	return w.ResponseWriter.Status()
}

func (w *lazyGzipWriter) WriteHeaderNow() {
	w.writeHeader(false)
}

func (w *lazyGzipWriter) writeHeader(hasBody bool) {
	if w.headerWritten {
		return
	}
	w.headerWritten = true
	status := w.status
	if status == 0 {
		status = http.StatusOK
	}
	if hasBody && w.shouldCompress(status) {
		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Add("Vary", "Accept-Encoding")
		// the handler's length describes the uncompressed body
		w.Header().Del("Content-Length")
		w.gzWriter = gzip.NewWriter(w.ResponseWriter)
	}
	w.ResponseWriter.WriteHeader(status)
	w.ResponseWriter.WriteHeaderNow()
}

func (w *lazyGzipWriter) Write(data []byte) (int, error) {
	w.writeHeader(true)
	if w.gzWriter == nil {
		return w.ResponseWriter.Write(data)
	}
	return w.gzWriter.Write(data)
}

func (w *lazyGzipWriter) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

func (w *lazyGzipWriter) Flush() {
	w.writeHeader(true)
	if w.gzWriter != nil {
		_ = w.gzWriter.Flush()
	}
	w.ResponseWriter.Flush()
}

// Close flushes the gzip stream, or hands a pending status to gin when
// nothing was written.
func (w *lazyGzipWriter) Close() error {
	if !w.headerWritten && w.status != 0 {
		w.ResponseWriter.WriteHeader(w.status)
	}
	if w.gzWriter != nil {
		return w.gzWriter.Close()
	}
	return nil
}

// GzipEncodeMiddleware compresses response bodies for clients that accept gzip.
func GzipEncodeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.Contains(c.Request.Header.Get("Accept-Encoding"), "gzip") || c.Request.Method == http.MethodHead {
			c.Next()
			return
		}

		lgw := &lazyGzipWriter{ResponseWriter: c.Writer}
		c.Writer = lgw
		defer func() {
			_ = lgw.Close()
			c.Writer = lgw.ResponseWriter
		}()

		c.Next()
	}
}
