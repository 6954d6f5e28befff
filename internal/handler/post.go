package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/lovepcsy/salon-site/internal/repository"
	"github.com/lovepcsy/salon-site/internal/session"
	"github.com/lovepcsy/salon-site/internal/upload"
)

// PostHandler implements the blog pages and post management.  Post
// images are optional on create and on edit; an edit without a new file
// keeps the previously stored filename.
type PostHandler struct {
	Posts   *repository.PostRepo
	Uploads *upload.Saver
}

func NewPostHandler(p *repository.PostRepo, u *upload.Saver) *PostHandler {
	return &PostHandler{Posts: p, Uploads: u}
}

// List renders all posts, newest first.
func (h *PostHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	posts, err := h.Posts.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("posts: list failed")
	}
	return render(c, http.StatusOK, "posts", echo.Map{
		"Title": "Blog",
		"Posts": posts,
	})
}

// Detail renders one post looked up by slug; 404 when absent.
func (h *PostHandler) Detail(c echo.Context) error {
	slug := c.Param("slug")

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	post, err := h.Posts.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return NotFound(c)
		}
		log.Error().Err(err).Str("slug", slug).Msg("posts: load by slug failed")
		return NotFound(c)
	}
	return render(c, http.StatusOK, "post_detail", echo.Map{
		"Title": post.Title,
		"Post":  post,
	})
}

// AddForm renders the empty post form.
func (h *PostHandler) AddForm(c echo.Context) error {
	return render(c, http.StatusOK, "post_add", echo.Map{"Title": "Add post"})
}

// Add inserts a new post.  The image is optional; when present it must
// pass the upload rules before any row is written.
func (h *PostHandler) Add(c echo.Context) error {
	title := strings.TrimSpace(c.FormValue("title"))
	slug := strings.TrimSpace(c.FormValue("slug"))
	category := strings.TrimSpace(c.FormValue("category"))
	content := c.FormValue("content")
	if title == "" || slug == "" {
		session.FlashError(c, "Title and slug are required")
		return c.Redirect(http.StatusFound, "/posts/post_add")
	}

	var image *string
	if fh, err := c.FormFile("image"); err == nil && fh != nil {
		saved, err := h.Uploads.Save(fh, upload.Post)
		if err != nil {
			session.FlashError(c, uploadErrorMessage(err))
			return c.Redirect(http.StatusFound, "/posts/post_add")
		}
		image = &saved.Name
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if _, err := h.Posts.Create(ctx, title, slug, category, image, content); err != nil {
		log.Error().Err(err).Msg("posts: create failed")
		session.FlashError(c, "Error adding post")
		return c.Redirect(http.StatusFound, "/posts/post_add")
	}
	session.FlashSuccess(c, "Post published")
	return c.Redirect(http.StatusFound, "/posts")
}

// EditForm renders the edit form for one post.
func (h *PostHandler) EditForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return NotFound(c)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	post, err := h.Posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return NotFound(c)
		}
		log.Error().Err(err).Uint64("id", id).Msg("posts: load for edit failed")
		return NotFound(c)
	}
	return render(c, http.StatusOK, "post_edit", echo.Map{
		"Title": "Edit post",
		"Post":  post,
	})
}

// Update overwrites a post.  A new image replaces the stored filename;
// without one the hidden old_image field carries the previous value
// forward so the image survives the edit.
func (h *PostHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return NotFound(c)
	}
	title := strings.TrimSpace(c.FormValue("title"))
	slug := strings.TrimSpace(c.FormValue("slug"))
	category := strings.TrimSpace(c.FormValue("category"))
	content := c.FormValue("content")
	if title == "" || slug == "" {
		session.FlashError(c, "Title and slug are required")
		return c.Redirect(http.StatusFound, "/posts")
	}

	var image *string
	if old := strings.TrimSpace(c.FormValue("old_image")); old != "" {
		image = &old
	}
	if fh, err := c.FormFile("image"); err == nil && fh != nil {
		saved, err := h.Uploads.Save(fh, upload.Post)
		if err != nil {
			session.FlashError(c, uploadErrorMessage(err))
			return c.Redirect(http.StatusFound, "/posts")
		}
		image = &saved.Name
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Posts.Update(ctx, id, title, slug, category, image, content); err != nil {
		log.Error().Err(err).Uint64("id", id).Msg("posts: update failed")
		session.FlashError(c, "Error updating post")
		return c.Redirect(http.StatusFound, "/posts")
	}
	session.FlashSuccess(c, "Post successfully updated!")
	return c.Redirect(http.StatusFound, "/posts")
}

// Delete removes a post.
func (h *PostHandler) Delete(c echo.Context) error {
	return h.delete(c, "/posts")
}

// AdminList renders the post table inside the admin panel.
func (h *PostHandler) AdminList(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	posts, err := h.Posts.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("admin: list posts failed")
	}
	return render(c, http.StatusOK, "admin_posts", echo.Map{
		"Title": "Posts",
		"Posts": posts,
	})
}

// AdminDelete removes a post from the admin panel.
func (h *PostHandler) AdminDelete(c echo.Context) error {
	return h.delete(c, "/admin/posts")
}

func (h *PostHandler) delete(c echo.Context, redirect string) error {
	id, err := parseID(c)
	if err != nil {
		session.FlashError(c, "Invalid post id")
		return c.Redirect(http.StatusFound, redirect)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Posts.Delete(ctx, id); err != nil {
		log.Error().Err(err).Uint64("id", id).Msg("posts: delete failed")
		session.FlashError(c, "Failed to delete post")
		return c.Redirect(http.StatusFound, redirect)
	}
	session.FlashSuccess(c, "Post successfully deleted!")
	return c.Redirect(http.StatusFound, redirect)
}

// uploadErrorMessage maps upload validation failures to user-facing
// flash text; anything else is an infrastructure failure.
func uploadErrorMessage(err error) string {
	switch {
	case errors.Is(err, upload.ErrBadExtension),
		errors.Is(err, upload.ErrTooLarge),
		errors.Is(err, upload.ErrBadDimensions):
		return err.Error()
	default:
		log.Error().Err(err).Msg("upload failed")
		return "File upload failed"
	}
}
