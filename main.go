package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"qrdrop/backend/api/handler"
	"qrdrop/backend/api/middleware"
	"qrdrop/backend/api/route"
	"qrdrop/backend/common"
	"qrdrop/backend/library/qrcode"
	"qrdrop/backend/library/storage"
	"qrdrop/backend/model"
	"qrdrop/backend/service"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := common.LoadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		common.PrintHelp()
		os.Exit(2)
	}
	if cfg.PrintVersion {
		println(common.Version)
		os.Exit(0)
	}
	if cfg.PrintHelp {
		common.PrintHelp()
		os.Exit(0)
	}
	if err := common.SetupGinLog(cfg.LogDir); err != nil {
		common.FatalLog(err)
	}
	common.SysLog("qrdrop " + common.Version + " started")
	if os.Getenv("GIN_MODE") != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	if err := run(cfg, quit); err != nil {
		common.FatalLog(err)
	}
}

// run opens the backends, serves until quit fires and closes everything it
// opened on the way out.
func run(cfg *common.Config, quit <-chan os.Signal) error {
	ctx := context.Background()

	store, err := storage.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	rdb, err := common.InitRedisClient(cfg.RedisConnString)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	var counter middleware.Counter
	if rdb != nil {
		defer rdb.Close()
		counter = middleware.NewRedisCounter(rdb)
	} else {
		if err := common.InitThingCache(); err != nil {
			return fmt.Errorf("failed to initialize local cache: %w", err)
		}
		counter = middleware.NewThingCounter()
	}

	db, err := model.InitDB(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer func() {
		if err := db.Close(context.Background()); err != nil {
			common.SysError("failed to close store: " + err.Error())
		}
	}()

	authService := service.NewAuthService(db.Users)
	fileService := service.NewFileService(db.Files, store, cfg.ServerAddress)

	server := gin.New()
	server.Use(gin.Logger(), gin.Recovery())
	route.SetRouter(server, route.Options{
		Config:  cfg,
		Handler: handler.New(cfg, authService, fileService, store),
		Storage: store,
		Limiter: middleware.NewRateLimiter(counter, cfg.RateLimit),
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		common.SysLog("Server running on " + cfg.ServerAddress)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()
	if cfg.PrintQR {
		fmt.Println("Scan to open " + cfg.ServerAddress)
		qrcode.PrintTerminal(os.Stdout, cfg.ServerAddress)
	}

	select {
	case err := <-serveErr:
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}
	common.SysLog("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		common.SysError("forced shutdown: " + err.Error())
	}
	return nil
}
