package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"yatube/internal/adapters/httpapi/middleware"
	"yatube/internal/config"
	"yatube/internal/core/apperr"
	"yatube/internal/core/timeline"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError turns a use-case error into a response. form, when given, is
// echoed back next to validation messages so the client keeps its input.
func respondError(c *gin.Context, err error, form any) {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		body := gin.H{"errors": apperr.Fields(err)}
		if form != nil {
			body["form"] = form
		}
		c.JSON(http.StatusBadRequest, body)
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, apperr.ErrUnauthorized):
		c.Redirect(http.StatusFound, middleware.LoginPath)
	case errors.Is(err, apperr.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, apperr.ErrInvalidOperation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperr.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		config.Logger.Error("Request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// postIDParam parses :id. Non-numeric IDs get a 404, like any unknown post.
func postIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return 0, false
	}
	return uint(id), true
}

func pageParam(c *gin.Context) int {
	return timeline.ParsePageNumber(c.Query("page"))
}

func postDetailPath(id uint) string {
	return fmt.Sprintf("/posts/%d/", id)
}

func profilePath(username string) string {
	return "/profile/" + url.PathEscape(username) + "/"
}
