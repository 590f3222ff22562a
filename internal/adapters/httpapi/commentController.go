package httpapi

import (
	"net/http"
	"yatube/internal/adapters/httpapi/middleware"

	"github.com/gin-gonic/gin"
)

type CommentController struct{ cc CommentUseCase }

func NewCommentController(cc CommentUseCase) *CommentController {
	return &CommentController{cc: cc}
}

type commentForm struct {
	Text string `form:"text" json:"text"`
}

// AddComment stores the comment and redirects back to the post.
func (ctl *CommentController) AddComment(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}
	userID, _ := middleware.CurrentUserID(c)

	var form commentForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	if _, err := ctl.cc.AddComment(c.Request.Context(), userID, postID, form.Text); err != nil {
		respondError(c, err, form)
		return
	}
	c.Redirect(http.StatusFound, postDetailPath(postID))
}
