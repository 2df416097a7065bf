package route

import (
	"qrdrop/backend/api/middleware"

	"github.com/gin-gonic/gin"
)

func SetApiRouter(route *gin.Engine, opts Options) {
	h := opts.Handler
	limiter := opts.Limiter

	route.POST("/signup", limiter.Critical(), h.Signup)
	route.POST("/login", limiter.Critical(), h.Login)
	route.POST("/upload", limiter.Upload(), middleware.BodyLimit(opts.Config.MaxUploadBytes), h.Upload)

	fileRoute := route.Group("/files")
	fileRoute.Use(limiter.GlobalWeb())
	{
		fileRoute.GET("", h.ListFiles)
		fileRoute.PUT("/:id", h.RenameFile)
		fileRoute.DELETE("/:id", h.DeleteFile)
	}

	apiRouter := route.Group("/api")
	{
		apiRouter.GET("/status", h.GetStatus)
	}
}
