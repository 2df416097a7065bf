package handler

import (
	"fmt"
	"net/http"

	"qrdrop/backend/common"
	"qrdrop/backend/library/storage"
	"qrdrop/backend/service"

	"github.com/gin-gonic/gin"
)

// Handler serves the HTTP endpoints over the auth and file services.
type Handler struct {
	cfg     *common.Config
	auth    *service.AuthService
	files   *service.FileService
	storage storage.Storage
}

func New(cfg *common.Config, auth *service.AuthService, files *service.FileService, store storage.Storage) *Handler {
	return &Handler{cfg: cfg, auth: auth, files: files, storage: store}
}

// internalError logs err with the request id and answers with a generic message.
func internalError(c *gin.Context, msg string, err error) {
	common.SysError(fmt.Sprintf("[%s] %s %s: %s: %v", c.GetString(common.RequestIdKey), c.Request.Method, c.Request.URL.Path, msg, err))
	c.String(http.StatusInternalServerError, msg)
}

// badRequest logs err with the request id and answers with msg only.
func badRequest(c *gin.Context, msg string, err error) {
	common.SysError(fmt.Sprintf("[%s] %s %s: %v", c.GetString(common.RequestIdKey), c.Request.Method, c.Request.URL.Path, err))
	c.String(http.StatusBadRequest, msg)
}
