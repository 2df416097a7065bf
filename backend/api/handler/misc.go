package handler

import (
	"qrdrop/backend/common"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetStatus(c *gin.Context) {
	common.RespSuccess(c, gin.H{
		"version":    common.Version,
		"start_time": common.StartTime,
		"store":      h.cfg.StoreDriver,
		"storage":    h.storage.Driver(),
	})
}
