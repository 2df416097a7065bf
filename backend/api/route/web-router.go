package route

import (
	"net/http"

	"qrdrop/backend/library/storage"
	"qrdrop/web"

	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
)

func setWebRouter(route *gin.Engine, opts Options) {
	// objects on local disk are served straight from the upload directory
	if disk, ok := opts.Storage.(*storage.Disk); ok {
		route.Use(static.Serve("/uploads", static.LocalFile(disk.Root(), false)))
	} else {
		route.GET("/uploads/*filepath", opts.Handler.ServeUpload)
	}

	route.Use(opts.Limiter.GlobalWeb())
	route.Use(static.Serve("/", static.EmbedFolder(web.Public, "public")))
	route.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "Not found")
	})
}
