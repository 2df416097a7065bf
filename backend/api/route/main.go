package route

import (
	"qrdrop/backend/api/handler"
	"qrdrop/backend/api/middleware"
	"qrdrop/backend/common"
	"qrdrop/backend/library/storage"

	"github.com/gin-gonic/gin"
)

// Options carries the dependencies the routes are wired to.
type Options struct {
	Config  *common.Config
	Handler *handler.Handler
	Storage storage.Storage
	Limiter *middleware.RateLimiter
}

func SetRouter(route *gin.Engine, opts Options) {
	route.Use(middleware.RequestId())
	route.Use(middleware.CORS())

	if opts.Config.EnableGzip {
		route.Use(middleware.GzipDecodeMiddleware())
		route.Use(middleware.GzipEncodeMiddleware())
	}

	SetApiRouter(route, opts)
	setWebRouter(route, opts)
}
