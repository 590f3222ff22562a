package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"time"
	"yatube/internal/adapters/httpapi/middleware"
	"yatube/internal/core/timeline"
	commentPort "yatube/internal/ports/comment"
	followerPort "yatube/internal/ports/follower"
	groupPort "yatube/internal/ports/group"
	"yatube/internal/ports/pagecache"
	postPort "yatube/internal/ports/post"
	timelinePort "yatube/internal/ports/timeline"
	userPort "yatube/internal/ports/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultPageCacheTTL is how long the public index stays memoized.
const DefaultPageCacheTTL = 20 * time.Second

type UserUseCase interface {
	LoginUser(ctx context.Context, username, password string) (*userPort.LoginResponse, error)
	RegisterUser(ctx context.Context, firstName, lastName, username, email, password string) (*userPort.UserDTO, error)
	ParseToken(token string) (string, error)
	GetByUsername(ctx context.Context, username string) (*userPort.UserDTO, error)
}

type GroupUseCase interface {
	CreateGroup(ctx context.Context, title, slug, description string) (*groupPort.GroupDTO, error)
	ListGroups(ctx context.Context) ([]*groupPort.GroupDTO, error)
}

type PostUseCase interface {
	CreatePost(ctx context.Context, authorID string, in postPort.PostInput) (*postPort.PostDTO, error)
	EditPost(ctx context.Context, viewerID string, postID uint, in postPort.PostInput) (*postPort.PostDTO, error)
	DeletePost(ctx context.Context, viewerID string, postID uint) error
	AdminDeletePost(ctx context.Context, postID uint) error
	GetPost(ctx context.Context, viewerID string, postID uint) (*postPort.PostDetailDTO, error)
	CanEdit(ctx context.Context, viewerID string, postID uint) (bool, error)
}

type CommentUseCase interface {
	AddComment(ctx context.Context, authorID string, postID uint, text string) (*commentPort.CommentDTO, error)
}

type FollowerUseCase interface {
	FollowUser(ctx context.Context, followerID, followeeID string) error
	UnfollowUser(ctx context.Context, followerID, followeeID string) error
	GetFollowersByUserID(ctx context.Context, userID string) ([]*followerPort.FollowerDTO, error)
	GetFollowingByUserID(ctx context.Context, userID string) ([]*followerPort.FollowerDTO, error)
}

type TimelineUseCase interface {
	Index(ctx context.Context, page int) (*timelinePort.PageDTO, error)
	GroupPosts(ctx context.Context, slug string, page int) (*timelinePort.GroupPageDTO, error)
	ProfilePosts(ctx context.Context, username, viewerID string, page int) (*timelinePort.ProfilePageDTO, error)
	Feed(ctx context.Context, viewerID string, page int) (*timelinePort.PageDTO, error)
}

// UseCases bundles the inbound ports the router dispatches to.
type UseCases struct {
	User     UserUseCase
	Group    GroupUseCase
	Post     PostUseCase
	Comment  CommentUseCase
	Follower FollowerUseCase
	Timeline TimelineUseCase
}

type Options struct {
	// PageCache fronts the public index. Nil disables caching.
	PageCache    pagecache.Store
	PageCacheTTL time.Duration
	// AdminToken enables the /admin routes when non-empty.
	AdminToken string
	CORSOrigin string
	// WriteRateLimit is requests per second per IP on write endpoints; 0 disables it.
	WriteRateLimit float64
	// MediaRoot is served under /media when non-empty.
	MediaRoot string
	Logger    *zap.Logger
}

func indexCacheKey(c *gin.Context) string {
	return "index:page=" + strconv.Itoa(timeline.ParsePageNumber(c.Query("page")))
}

// SetupRoutes only wires routes; use cases are injected from outside.
func SetupRoutes(uc UseCases, opts Options) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.PageCacheTTL <= 0 {
		opts.PageCacheTTL = DefaultPageCacheTTL
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(opts.Logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(corsMiddleware(opts.CORSOrigin))
	r.Use(middleware.JWTAuthMiddleware(uc.User))

	var limiter *middleware.IPRateLimiter
	if opts.WriteRateLimit > 0 {
		limiter = middleware.NewIPRateLimiter(rate.Limit(opts.WriteRateLimit), 3)
	}
	throttle := middleware.RateLimitMiddleware(limiter)

	uctl := NewUserController(uc.User)
	pctl := NewPostController(uc.Post, uc.Group)
	cctl := NewCommentController(uc.Comment)
	fctl := NewFollowerController(uc.Follower, uc.User)
	tctl := NewTimelineController(uc.Timeline)
	actl := NewAboutController()

	index := []gin.HandlerFunc{tctl.Index}
	if opts.PageCache != nil {
		index = append([]gin.HandlerFunc{middleware.CachePage(opts.PageCache, opts.PageCacheTTL, indexCacheKey)}, index...)
	}
	r.GET("/", index...)
	r.GET("/group/:slug/", tctl.GroupPosts)
	r.GET("/profile/:username/", tctl.Profile)
	r.GET("/posts/:id/", pctl.Detail)

	authed := r.Group("/", middleware.LoginRequired())
	{
		authed.GET("/create/", pctl.CreateForm)
		authed.POST("/create/", throttle, pctl.Create)
		authed.GET("/posts/:id/edit/", pctl.EditForm)
		authed.POST("/posts/:id/edit/", pctl.Edit)
		authed.POST("/posts/:id/delete/", pctl.Delete)
		authed.POST("/posts/:id/comment/", throttle, cctl.AddComment)
		authed.GET("/profile/:username/follow/", fctl.Follow)
		authed.GET("/profile/:username/unfollow/", fctl.Unfollow)
		authed.GET("/follow/", tctl.Feed)
		authed.GET("/followers/", fctl.GetFollowersByUserID)
		authed.GET("/following/", fctl.GetFollowingByUserID)
	}

	auth := r.Group("/auth")
	{
		auth.POST("/signup/", throttle, uctl.RegisterUser)
		auth.GET("/login/", uctl.LoginForm)
		auth.POST("/login/", uctl.LoginUser)
		auth.GET("/logout/", uctl.Logout)
	}

	r.GET("/about/author/", actl.Author)
	r.GET("/about/tech/", actl.Tech)

	if opts.AdminToken != "" {
		adm := NewAdminController(uc.Group, uc.Post, opts.PageCache)
		admin := r.Group("/admin", middleware.AdminAuthMiddleware(opts.AdminToken))
		admin.POST("/groups/", adm.CreateGroup)
		admin.DELETE("/posts/:id/", adm.DeletePost)
		admin.POST("/cache/flush/", adm.FlushCache)
	}

	if opts.MediaRoot != "" {
		r.Static("/media", opts.MediaRoot)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "page not found", "path": c.Request.URL.Path})
	})

	return r
}

func corsMiddleware(origin string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.AdminTokenHeader},
		ExposeHeaders: []string{"Content-Length", middleware.CacheHeader},
	}
	if origin == "" || origin == "*" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = []string{origin}
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}
