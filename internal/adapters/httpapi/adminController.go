package httpapi

import (
	"net/http"
	"yatube/internal/config"
	"yatube/internal/ports/pagecache"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminController serves operator actions behind the admin token.
type AdminController struct {
	gc    GroupUseCase
	pc    PostUseCase
	cache pagecache.Store
}

func NewAdminController(gc GroupUseCase, pc PostUseCase, cache pagecache.Store) *AdminController {
	return &AdminController{gc: gc, pc: pc, cache: cache}
}

type groupForm struct {
	Title       string `form:"title" json:"title"`
	Slug        string `form:"slug" json:"slug"`
	Description string `form:"description" json:"description"`
}

func (ctl *AdminController) CreateGroup(c *gin.Context) {
	var req groupForm
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	g, err := ctl.gc.CreateGroup(c.Request.Context(), req.Title, req.Slug, req.Description)
	if err != nil {
		respondError(c, err, req)
		return
	}
	c.JSON(http.StatusCreated, g)
}

func (ctl *AdminController) DeletePost(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}
	if err := ctl.pc.AdminDeletePost(c.Request.Context(), postID); err != nil {
		respondError(c, err, nil)
		return
	}
	c.Status(http.StatusNoContent)
}

// FlushCache drops every memoized page; the next request recomputes.
func (ctl *AdminController) FlushCache(c *gin.Context) {
	if ctl.cache == nil {
		c.JSON(http.StatusOK, gin.H{"message": "page cache disabled"})
		return
	}
	if err := ctl.cache.Flush(c.Request.Context()); err != nil {
		respondError(c, err, nil)
		return
	}
	config.Logger.Info("Page cache flushed by operator", zap.String("ip", c.ClientIP()))
	c.JSON(http.StatusOK, gin.H{"message": "page cache flushed"})
}
