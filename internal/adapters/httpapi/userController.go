package httpapi

import (
	"errors"
	"net/http"
	"time"
	"yatube/internal/adapters/httpapi/middleware"
	"yatube/internal/core/apperr"

	"github.com/gin-gonic/gin"
)

type UserController struct{ uc UserUseCase }

func NewUserController(uc UserUseCase) *UserController { return &UserController{uc: uc} }

type loginForm struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

func (ctl *UserController) LoginForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"form":   gin.H{"username": "", "password": ""},
		"signup": "/auth/signup/",
	})
}

// LoginUser returns a token and also stores it in a cookie for browsers.
func (ctl *UserController) LoginUser(c *gin.Context) {
	var req loginForm
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	res, err := ctl.uc.LoginUser(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	maxAge := int(time.Until(time.Unix(res.ExpiresAt, 0)).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, res.Token, maxAge, "/", "", false, true)
	c.JSON(http.StatusOK, res)
}

type signupForm struct {
	FirstName string `form:"first_name" json:"first_name"`
	LastName  string `form:"last_name" json:"last_name"`
	Username  string `form:"username" json:"username"`
	Email     string `form:"email" json:"email"`
	Password  string `form:"password" json:"password"`
}

// RegisterUser creates the account and sends the visitor to the index.
func (ctl *UserController) RegisterUser(c *gin.Context) {
	var req signupForm
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	if _, err := ctl.uc.RegisterUser(c.Request.Context(), req.FirstName, req.LastName, req.Username, req.Email, req.Password); err != nil {
		req.Password = ""
		if errors.Is(err, apperr.ErrConflict) {
			c.JSON(http.StatusBadRequest, gin.H{
				"errors": gin.H{"username": "A user with that username or email already exists."},
				"form":   req,
			})
			return
		}
		respondError(c, err, req)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (ctl *UserController) Logout(c *gin.Context) {
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "You have been logged out."})
}
