package httpapi

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"yatube/internal/adapters/httpapi/middleware"
	"yatube/internal/core/access"
	"yatube/internal/errs"
	commentPort "yatube/internal/ports/comment"
	postPort "yatube/internal/ports/post"
	storagePort "yatube/internal/ports/storage"
)

type PostController struct {
	pc  PostUseCase
	cc  CommentUseCase
	flc FollowerUseCase
	gc  GroupUseCase
}

func NewPostController(pc PostUseCase, cc CommentUseCase, flc FollowerUseCase, gc GroupUseCase) *PostController {
	return &PostController{pc: pc, cc: cc, flc: flc, gc: gc}
}

func postID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func detailPath(username string, id uint) string {
	return access.PostRef{Username: username, PostID: id}.DetailPath()
}

func (ctl *PostController) PostView(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		notFound(c)
		return
	}
	ctl.renderPost(c, http.StatusOK, c.Param("username"), id, map[string]string{}, map[string]string{})
}

// renderPost shows a post with its comments and the comment form.
func (ctl *PostController) renderPost(c *gin.Context, status int, username string, id uint, form, fieldErrs map[string]string) {
	ctx := c.Request.Context()
	p, err := ctl.pc.GetPost(ctx, username, id)
	if err != nil {
		handleError(c, err)
		return
	}
	count, err := ctl.pc.CountByAuthor(ctx, p.Author)
	if err != nil {
		handleError(c, err)
		return
	}
	comments, err := ctl.cc.ListComments(ctx, p.ID)
	if err != nil {
		handleError(c, err)
		return
	}
	following, err := ctl.flc.IsFollowing(ctx, middleware.CurrentUser(c), p.Author)
	if err != nil {
		handleError(c, err)
		return
	}
	render(c, status, "post.html", gin.H{
		"title":     p.Author.Username,
		"post":      p,
		"author":    p.Author,
		"count":     count,
		"comments":  comments,
		"following": following,
		"form":      form,
		"errors":    fieldErrs,
	})
}

func (ctl *PostController) NewPostForm(c *gin.Context) {
	ctl.renderForm(c, http.StatusOK, false, "/new/", map[string]string{}, map[string]string{})
}

func (ctl *PostController) NewPost(c *gin.Context) {
	in, cleanup, err := postInput(c)
	if err != nil {
		handleError(c, err)
		return
	}
	defer cleanup()

	if _, err := ctl.pc.CreatePost(c.Request.Context(), middleware.CurrentUser(c), in); err != nil {
		if fields := errs.FieldErrors(err); fields != nil {
			ctl.renderForm(c, http.StatusOK, false, "/new/", submitted(in), fields)
			return
		}
		handleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (ctl *PostController) EditPostForm(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		notFound(c)
		return
	}
	username := c.Param("username")
	p, err := ctl.pc.GetPost(c.Request.Context(), username, id)
	if err != nil {
		handleError(c, err)
		return
	}
	form := map[string]string{"text": p.Text, "image": p.Image}
	if p.Group != nil {
		form["group"] = strconv.FormatUint(uint64(p.Group.ID), 10)
	}
	ctl.renderForm(c, http.StatusOK, true, c.Request.URL.Path, form, map[string]string{})
}

func (ctl *PostController) EditPost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		notFound(c)
		return
	}
	username := c.Param("username")

	in, cleanup, err := postInput(c)
	if err != nil {
		handleError(c, err)
		return
	}
	defer cleanup()

	if _, err := ctl.pc.EditPost(c.Request.Context(), middleware.CurrentUser(c), username, id, in); err != nil {
		if fields := errs.FieldErrors(err); fields != nil {
			ctl.renderForm(c, http.StatusOK, true, c.Request.URL.Path, submitted(in), fields)
			return
		}
		if errs.ErrorCode(err) == errs.EUNAUTHORIZED {
			c.Redirect(http.StatusFound, detailPath(username, id))
			return
		}
		handleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, detailPath(username, id))
}

func (ctl *PostController) renderForm(c *gin.Context, status int, isEdit bool, action string, form, fieldErrs map[string]string) {
	groups, err := ctl.gc.ListGroups(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	title := "New post"
	if isEdit {
		title = "Edit post"
	}
	render(c, status, "new_post.html", gin.H{
		"title":   title,
		"is_edit": isEdit,
		"action":  action,
		"groups":  groups,
		"form":    form,
		"errors":  fieldErrs,
	})
}

// AddComment stores a comment and returns to the post. An invalid comment
// re-renders the post page with the error.
func (ctl *PostController) AddComment(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		notFound(c)
		return
	}
	username := c.Param("username")

	var in commentPort.CommentInput
	if err := c.ShouldBind(&in); err != nil {
		ctl.renderPost(c, http.StatusOK, username, id, map[string]string{}, map[string]string{"text": "This field is required."})
		return
	}
	if _, err := ctl.cc.AddComment(c.Request.Context(), middleware.CurrentUser(c), username, id, in); err != nil {
		if fields := errs.FieldErrors(err); fields != nil {
			ctl.renderPost(c, http.StatusOK, username, id, map[string]string{"text": in.Text}, fields)
			return
		}
		handleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, detailPath(username, id))
}

// CommentRedirect answers GET on the comment URL, which only accepts POST.
func (ctl *PostController) CommentRedirect(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		notFound(c)
		return
	}
	c.Redirect(http.StatusFound, detailPath(c.Param("username"), id))
}

// postInput reads the post form. Fields missing from the request stay nil.
func postInput(c *gin.Context) (postPort.PostInput, func(), error) {
	var in postPort.PostInput
	cleanup := func() {}

	if v, ok := c.GetPostForm("text"); ok {
		in.Text = &v
	}
	if v, ok := c.GetPostForm("group"); ok {
		in.Group = &v
	}

	fh, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return in, cleanup, nil
	}
	if err != nil {
		return in, cleanup, err
	}
	f, err := fh.Open()
	if err != nil {
		return in, cleanup, err
	}
	in.Image = &storagePort.Upload{Filename: fh.Filename, File: f, Size: fh.Size}
	return in, func() { closeFile(f) }, nil
}

func closeFile(f multipart.File) { _ = f.Close() }

func submitted(in postPort.PostInput) map[string]string {
	form := map[string]string{}
	if in.Text != nil {
		form["text"] = *in.Text
	}
	if in.Group != nil {
		form["group"] = *in.Group
	}
	return form
}
