package httpapi

import (
	"errors"
	"mime/multipart"
	"net/http"
	"yatube/internal/adapters/httpapi/middleware"
	"yatube/internal/config"
	"yatube/internal/core/apperr"
	postPort "yatube/internal/ports/post"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PostController struct {
	pc PostUseCase
	gc GroupUseCase
}

func NewPostController(pc PostUseCase, gc GroupUseCase) *PostController {
	return &PostController{pc: pc, gc: gc}
}

// postForm is the create/edit submission. An empty group field means none.
type postForm struct {
	Text  string `form:"text" json:"text"`
	Group *uint  `form:"group" json:"group"`
}

func (f *postForm) groupID() *uint {
	if f.Group == nil || *f.Group == 0 {
		return nil
	}
	return f.Group
}

// bindPostForm reads the form and the optional image. The returned cleanup
// closes the uploaded file.
func bindPostForm(c *gin.Context) (*postForm, postPort.PostInput, func(), bool) {
	var form postForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"errors": gin.H{"group": "Select a valid choice. That choice is not one of the available choices."},
			"form":   gin.H{"text": c.PostForm("text"), "group": c.PostForm("group")},
		})
		return nil, postPort.PostInput{}, func() {}, false
	}

	in := postPort.PostInput{Text: form.Text, GroupID: form.groupID()}
	cleanup := func() {}

	fh, err := c.FormFile("image")
	if err == nil {
		var f multipart.File
		f, err = fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"image": "The submitted file could not be read."}, "form": form})
			return nil, postPort.PostInput{}, cleanup, false
		}
		in.Image = &postPort.Upload{Filename: fh.Filename, Content: f}
		cleanup = func() { f.Close() }
	}
	return &form, in, cleanup, true
}

// CreateForm describes an empty post form.
func (ctl *PostController) CreateForm(c *gin.Context) {
	groups, err := ctl.gc.ListGroups(c.Request.Context())
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"form":    postForm{},
		"groups":  groups,
		"is_edit": false,
	})
}

// Create stores the post and redirects to the author's profile.
func (ctl *PostController) Create(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)

	form, in, cleanup, ok := bindPostForm(c)
	defer cleanup()
	if !ok {
		return
	}

	res, err := ctl.pc.CreatePost(c.Request.Context(), userID, in)
	if err != nil {
		respondError(c, err, form)
		return
	}
	c.Redirect(http.StatusFound, profilePath(res.Author.Username))
}

// EditForm shows the current values to the author. Anyone else is sent to
// the post itself.
func (ctl *PostController) EditForm(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}
	userID, _ := middleware.CurrentUserID(c)

	detail, err := ctl.pc.GetPost(c.Request.Context(), userID, postID)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	if !detail.CanEdit {
		c.Redirect(http.StatusFound, postDetailPath(postID))
		return
	}

	groups, err := ctl.gc.ListGroups(c.Request.Context())
	if err != nil {
		respondError(c, err, nil)
		return
	}

	form := postForm{Text: detail.Post.Text}
	if detail.Post.Group != nil {
		gid := detail.Post.Group.ID
		form.Group = &gid
	}
	c.JSON(http.StatusOK, gin.H{
		"form":    form,
		"post":    detail.Post,
		"groups":  groups,
		"is_edit": true,
	})
}

// Edit saves the author's changes and redirects to the post. Non-authors are
// redirected there without any change, before the form is read.
func (ctl *PostController) Edit(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}
	userID, _ := middleware.CurrentUserID(c)
	canEdit, err := ctl.pc.CanEdit(c.Request.Context(), userID, postID)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	if !canEdit {
		c.Redirect(http.StatusFound, postDetailPath(postID))
		return
	}

	form, in, cleanup, ok := bindPostForm(c)
	defer cleanup()
	if !ok {
		return
	}

	if _, err := ctl.pc.EditPost(c.Request.Context(), userID, postID, in); err != nil {
		if errors.Is(err, apperr.ErrForbidden) {
			c.Redirect(http.StatusFound, postDetailPath(postID))
			return
		}
		respondError(c, err, form)
		return
	}
	c.Redirect(http.StatusFound, postDetailPath(postID))
}

// Delete removes the caller's own post and redirects to their profile.
func (ctl *PostController) Delete(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}
	userID, _ := middleware.CurrentUserID(c)

	detail, err := ctl.pc.GetPost(c.Request.Context(), userID, postID)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	if err := ctl.pc.DeletePost(c.Request.Context(), userID, postID); err != nil {
		if errors.Is(err, apperr.ErrForbidden) {
			c.Redirect(http.StatusFound, postDetailPath(postID))
			return
		}
		respondError(c, err, nil)
		return
	}

	config.Logger.Info("Post deleted by author", zap.Uint("postID", postID), zap.String("userID", userID))
	c.Redirect(http.StatusFound, profilePath(detail.Post.Author.Username))
}

func (ctl *PostController) Detail(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}
	userID, _ := middleware.CurrentUserID(c)

	detail, err := ctl.pc.GetPost(c.Request.Context(), userID, postID)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, detail)
}
