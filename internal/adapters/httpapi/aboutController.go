package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type AboutController struct{}

func NewAboutController() *AboutController { return &AboutController{} }

func (ctl *AboutController) Author(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"title": "About the author",
		"text":  "Yatube is a small blogging platform: write posts, group them by topic and follow the authors you like.",
	})
}

func (ctl *AboutController) Tech(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"title": "Technologies",
		"stack": []string{"Go", "gin", "gorm", "Redis", "zap"},
	})
}
