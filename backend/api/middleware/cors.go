package middleware

import (
	"qrdrop/backend/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func CORS() gin.HandlerFunc {
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = append(config.AllowHeaders, common.RequestIdKey)
	config.ExposeHeaders = []string{common.RequestIdKey}
	return cors.New(config)
}
