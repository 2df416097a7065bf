package handler

import (
	"path/filepath"
	"testing"

	"qrdrop/backend/common"
	"qrdrop/backend/library/storage"
	"qrdrop/backend/model"
	"qrdrop/backend/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	h     *Handler
	db    *model.DB
	disk  *storage.Disk
	users *service.AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	disk, err := storage.NewDisk(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err, "failed to create upload directory")
	db := model.NewMemoryDB()
	cfg := &common.Config{
		StoreDriver:   common.StoreDriverMemory,
		StorageDriver: common.StorageDriverDisk,
		ServerAddress: "http://localhost:3000",
		UploadPath:    disk.Root(),
	}
	auth := service.NewAuthService(db.Users)
	files := service.NewFileService(db.Files, disk, cfg.ServerAddress)
	return &testEnv{
		h:     New(cfg, auth, files, disk),
		db:    db,
		disk:  disk,
		users: auth,
	}
}

// serve runs h and flushes the status line the way the engine does after
// the handler chain, which matters for bodiless redirects.
func serve(h gin.HandlerFunc, c *gin.Context) {
	h(c)
	c.Writer.WriteHeaderNow()
}
