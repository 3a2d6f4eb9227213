package server

import (
	"errors"
	"strconv"

	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// itoa formats an ID for a redirect path.
func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts the :id route parameter as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid post ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// statusForError maps an application error to the HTTP status of the
// rendered response.
func statusForError(err error) int {
	switch models.ErrorCode(err) {
	case models.CodeNotFound:
		return fiber.StatusNotFound
	case models.CodeValidation:
		return fiber.StatusBadRequest
	case models.CodeUnauthorized:
		return fiber.StatusUnauthorized
	case models.CodeConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// authorView is the slice of a user shown next to posts and comments.
type authorView struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// commentView is a comment as rendered on the post detail page.
type commentView struct {
	ID     uint       `json:"id"`
	Text   string     `json:"text"`
	Author authorView `json:"author"`
}

// postView is a post as rendered on the home and detail pages.
type postView struct {
	ID       uint          `json:"id"`
	Title    string        `json:"title"`
	Subtitle string        `json:"subtitle"`
	Date     string        `json:"date"`
	Body     string        `json:"body,omitempty"`
	ImageURL string        `json:"image_url"`
	Author   authorView    `json:"author"`
	Comments []commentView `json:"comments,omitempty"`
}

func toAuthorView(u models.User) authorView {
	return authorView{ID: u.ID, Name: u.Name}
}

func toCommentView(c *models.Comment) commentView {
	return commentView{ID: c.ID, Text: c.Text, Author: toAuthorView(c.Author)}
}

// toPostSummary omits the body; the home page only shows the header card.
func toPostSummary(p *models.Post) postView {
	return postView{
		ID:       p.ID,
		Title:    p.Title,
		Subtitle: p.Subtitle,
		Date:     p.Date,
		ImageURL: p.ImageURL,
		Author:   toAuthorView(p.Author),
	}
}

func toPostDetail(p *models.Post, comments []*models.Comment) postView {
	view := toPostSummary(p)
	view.Body = p.Body
	view.Comments = make([]commentView, 0, len(comments))
	for _, comment := range comments {
		view.Comments = append(view.Comments, toCommentView(comment))
	}
	return view
}

// viewer describes the requesting visitor, mirrored into every page payload
// so the client can decide which controls to show.
type viewer struct {
	LoggedIn bool `json:"logged_in"`
	IsAdmin  bool `json:"is_admin"`
	UserID   uint `json:"user_id,omitempty"`
}

func (s *Server) currentViewer(c *fiber.Ctx) viewer {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return viewer{}
	}

	admin, err := s.authService.IsAdmin(c.Context(), userID)
	if err != nil {
		// The session is valid even if the role lookup hiccups.
		admin = false
	}
	return viewer{LoggedIn: true, IsAdmin: admin, UserID: userID}
}
