package httpapi

import (
	"net/http"
	"yatube/internal/adapters/httpapi/middleware"

	"github.com/gin-gonic/gin"
)

type TimelineController struct{ tc TimelineUseCase }

func NewTimelineController(tc TimelineUseCase) *TimelineController {
	return &TimelineController{tc: tc}
}

// Index is the public listing, ?page=N. Pages past the end are not cached,
// so arbitrary page numbers cannot fill the page cache.
func (ctl *TimelineController) Index(c *gin.Context) {
	page, err := ctl.tc.Index(c.Request.Context(), pageParam(c))
	if err != nil {
		respondError(c, err, nil)
		return
	}
	if page.Number > 1 && page.Number > page.NumPages {
		middleware.SkipPageCache(c)
	}
	c.JSON(http.StatusOK, gin.H{"page_obj": page})
}

func (ctl *TimelineController) GroupPosts(c *gin.Context) {
	res, err := ctl.tc.GroupPosts(c.Request.Context(), c.Param("slug"), pageParam(c))
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"group": res.Group, "page_obj": res.Page})
}

func (ctl *TimelineController) Profile(c *gin.Context) {
	viewerID, _ := middleware.CurrentUserID(c)
	res, err := ctl.tc.ProfilePosts(c.Request.Context(), c.Param("username"), viewerID, pageParam(c))
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"author":      res.Author,
		"posts_count": res.PostsCount,
		"following":   res.Following,
		"page_obj":    res.Page,
	})
}

// Feed lists posts by the authors the caller follows.
func (ctl *TimelineController) Feed(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)
	page, err := ctl.tc.Feed(c.Request.Context(), userID, pageParam(c))
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"page_obj": page})
}
