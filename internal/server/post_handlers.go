package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"
	"inkwell/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Home handles GET /. Every post appears, newest last, as the blog has
// always ordered them.
func (s *Server) Home(c *fiber.Ctx) error {
	posts, err := s.postService.ListPosts(c.Context())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	views := make([]postView, 0, len(posts))
	for _, post := range posts {
		views = append(views, toPostSummary(post))
	}

	return c.JSON(fiber.Map{
		"page":   "home",
		"posts":  views,
		"viewer": s.currentViewer(c),
	})
}

// GetPost handles GET /post/:id, the post detail page with its comments.
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c)
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), postID)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	comments, err := s.commentService.ListComments(c.Context(), postID)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(fiber.Map{
		"page":   "post",
		"post":   toPostDetail(post, comments),
		"viewer": s.currentViewer(c),
	})
}

// ShowNewPost handles GET /new-post
func (s *Server) ShowNewPost(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"page":   "new-post",
		"viewer": s.currentViewer(c),
	})
}

// CreatePost handles POST /new-post
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var form validation.PostForm
	if err := c.BodyParser(&form); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	userID := c.Locals("userID").(uint)
	if _, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		AuthorID: userID,
		Title:    form.Title,
		Subtitle: form.Subtitle,
		Body:     form.Body,
		ImageURL: form.ImageURL,
	}); err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.Redirect("/", fiber.StatusFound)
}

// ShowEditPost handles GET /edit-post/:id, returning the post so the form
// can be prefilled.
func (s *Server) ShowEditPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c)
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), postID)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	view := toPostSummary(post)
	view.Body = post.Body
	return c.JSON(fiber.Map{
		"page":   "edit-post",
		"post":   view,
		"viewer": s.currentViewer(c),
	})
}

// EditPost handles POST /edit-post/:id. The date keeps its original value.
func (s *Server) EditPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c)
	if err != nil {
		return nil
	}

	var form validation.PostForm
	if err := c.BodyParser(&form); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		PostID:   postID,
		Title:    form.Title,
		Subtitle: form.Subtitle,
		Body:     form.Body,
		ImageURL: form.ImageURL,
	})
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.Redirect("/post/"+itoa(post.ID), fiber.StatusFound)
}

// DeletePost handles GET /delete/:id. The post's comments go with it.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c)
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), postID); err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.Redirect("/", fiber.StatusFound)
}
