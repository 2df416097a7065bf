package common

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
)

// SetupGinLog sends gin's access log and the system log to stdout and, when
// logDir is set, also appends them to common.log and error.log inside it.
func SetupGinLog(logDir string) error {
	if logDir == "" {
		return nil
	}
	dir, err := filepath.Abs(logDir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o777); err != nil {
		return err
	}
	commonLog, err := os.OpenFile(filepath.Join(dir, "common.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	errorLog, err := os.OpenFile(filepath.Join(dir, "error.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		_ = commonLog.Close()
		return fmt.Errorf("failed to open log file: %w", err)
	}
	gin.DefaultWriter = io.MultiWriter(os.Stdout, commonLog)
	gin.DefaultErrorWriter = io.MultiWriter(os.Stderr, errorLog)
	return nil
}

func SysLog(s string) {
	t := time.Now()
	_, _ = fmt.Fprintf(gin.DefaultWriter, "[SYS] %v | %s \n", t.Format("2006/01/02 - 15:04:05"), s)
}

func SysError(s string) {
	t := time.Now()
	_, _ = fmt.Fprintf(gin.DefaultErrorWriter, "[SYS] %v | %s \n", t.Format("2006/01/02 - 15:04:05"), s)
}

func FatalLog(v ...any) {
	t := time.Now()
	_, _ = fmt.Fprintf(gin.DefaultErrorWriter, "[FATAL] %v | %v \n", t.Format("2006/01/02 - 15:04:05"), fmt.Sprint(v...))
	log.Println(v...)
	os.Exit(1)
}
