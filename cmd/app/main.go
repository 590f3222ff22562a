package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	dbadapter "yatube/internal/adapters/database"
	"yatube/internal/adapters/httpapi"
	mediaadapter "yatube/internal/adapters/media"
	memoryadapter "yatube/internal/adapters/memory"
	redisadapter "yatube/internal/adapters/redis"
	"yatube/internal/config"
	commentapp "yatube/internal/core/comment/service"
	followerapp "yatube/internal/core/follower/service"
	groupapp "yatube/internal/core/group/service"
	postapp "yatube/internal/core/post/service"
	timelineapp "yatube/internal/core/timeline/service"
	userapp "yatube/internal/core/user/service"
	"yatube/internal/ports/pagecache"
	"yatube/internal/workers"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.InitLogger()
	defer config.SyncLogger()

	cfg := config.Init()
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	config.InitDB(cfg.DBDSN)
	if err := dbadapter.Migrate(config.DB); err != nil {
		config.Logger.Fatal("Error during migrations", zap.Error(err))
	}
	config.Logger.Info("Database migrations completed")

	config.InitRedis(cfg)
	defer closeResources()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var cache pagecache.Store
	if config.RedisClient != nil {
		cache = redisadapter.NewPageCacheRepositoryRedis(config.RedisClient)
	} else {
		mem := memoryadapter.NewPageCacheMemory()
		cache = mem
		go workers.NewCacheSweeper(mem, cfg.CacheSweepInterval, config.Logger).Run(ctx)
	}

	userRepo := dbadapter.NewUserRepositoryDatabase(config.DB)
	groupRepo := dbadapter.NewGroupRepositoryDatabase(config.DB)
	postRepo := dbadapter.NewPostRepositoryDatabase(config.DB)
	commentRepo := dbadapter.NewCommentRepositoryDatabase(config.DB)
	followerRepo := dbadapter.NewFollowerRepositoryDatabase(config.DB)
	timelineRepo := dbadapter.NewTimelineRepositoryDatabase(config.DB)
	media := mediaadapter.NewFileStorage(cfg.MediaRoot)

	userSvc := userapp.NewUserService(userRepo, []byte(cfg.JWTSecret))
	groupSvc := groupapp.NewGroupService(groupRepo)
	postSvc := postapp.NewPostService(postRepo, groupRepo, commentRepo, media)
	commentSvc := commentapp.NewCommentService(commentRepo, postRepo)
	followerSvc := followerapp.NewFollowerService(followerRepo)
	timelineSvc := timelineapp.NewTimelineService(timelineRepo, groupRepo, userRepo, followerSvc)

	r := httpapi.SetupRoutes(httpapi.UseCases{
		User:     userSvc,
		Group:    groupSvc,
		Post:     postSvc,
		Comment:  commentSvc,
		Follower: followerSvc,
		Timeline: timelineSvc,
	}, httpapi.Options{
		PageCache:      cache,
		PageCacheTTL:   cfg.PageCacheTTL,
		AdminToken:     cfg.AdminToken,
		CORSOrigin:     cfg.CORSOrigin,
		WriteRateLimit: cfg.WriteRateLimit,
		MediaRoot:      cfg.MediaRoot,
		Logger:         config.Logger,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		config.Logger.Info("App is running", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			config.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	<-quit
	config.Logger.Info("Shutting down server...")
	cancel()

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		config.Logger.Error("Server forced to shutdown", zap.Error(err))
	}
	config.Logger.Info("Server exiting")
}

// closeResources closes Redis and the database.
func closeResources() {
	config.CloseRedis()
	config.CloseDB()
}
