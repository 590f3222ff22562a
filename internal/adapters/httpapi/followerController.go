package httpapi

import (
	"errors"
	"net/http"
	"yatube/internal/adapters/httpapi/middleware"
	"yatube/internal/config"
	"yatube/internal/core/apperr"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type FollowerController struct {
	fc FollowerUseCase
	uc UserUseCase
}

func NewFollowerController(fc FollowerUseCase, uc UserUseCase) *FollowerController {
	return &FollowerController{fc: fc, uc: uc}
}

// Follow subscribes the caller to :username and goes back to the profile.
// Repeating it changes nothing; following yourself is ignored.
func (ctl *FollowerController) Follow(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)
	username := c.Param("username")

	author, err := ctl.uc.GetByUsername(c.Request.Context(), username)
	if err != nil {
		respondError(c, err, nil)
		return
	}

	if err := ctl.fc.FollowUser(c.Request.Context(), userID, author.ID); err != nil {
		if !errors.Is(err, apperr.ErrInvalidOperation) {
			respondError(c, err, nil)
			return
		}
		config.Logger.Info("Ignored self-follow", zap.String("userID", userID))
	}
	c.Redirect(http.StatusFound, profilePath(author.Username))
}

// Unfollow removes the subscription, if any, and goes back to the profile.
func (ctl *FollowerController) Unfollow(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)
	username := c.Param("username")

	author, err := ctl.uc.GetByUsername(c.Request.Context(), username)
	if err != nil {
		respondError(c, err, nil)
		return
	}

	if err := ctl.fc.UnfollowUser(c.Request.Context(), userID, author.ID); err != nil {
		respondError(c, err, nil)
		return
	}
	c.Redirect(http.StatusFound, profilePath(author.Username))
}

func (ctl *FollowerController) GetFollowersByUserID(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)
	followers, err := ctl.fc.GetFollowersByUserID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, followers)
}

func (ctl *FollowerController) GetFollowingByUserID(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)
	following, err := ctl.fc.GetFollowingByUserID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, following)
}
