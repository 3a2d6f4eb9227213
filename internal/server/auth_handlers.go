package server

import (
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/service"
	"inkwell/internal/session"
	"inkwell/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ShowRegister handles GET /register
func (s *Server) ShowRegister(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"page":   "register",
		"viewer": s.currentViewer(c),
	})
}

// Register handles POST /register. A taken email sends the visitor to the
// login page instead of reporting an error on the form.
func (s *Server) Register(c *fiber.Ctx) error {
	var form validation.RegisterForm
	if err := c.BodyParser(&form); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.authService.Register(c.Context(), service.RegisterInput{
		Email:    form.Email,
		Password: form.Password,
		Name:     form.Name,
	})
	if err != nil {
		if models.ErrorCode(err) == models.CodeConflict {
			return c.Redirect("/login", fiber.StatusFound)
		}
		return models.RespondWithError(c, statusForError(err), err)
	}

	return s.startSession(c, user.ID)
}

// ShowLogin handles GET /login
func (s *Server) ShowLogin(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"page":   "login",
		"viewer": s.currentViewer(c),
	})
}

// Login handles POST /login. An unknown email goes back to a fresh login
// page; a wrong password re-renders the form with the failure message.
func (s *Server) Login(c *fiber.Ctx) error {
	var form validation.LoginForm
	if err := c.BodyParser(&form); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.authService.Login(c.Context(), service.LoginInput{
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		switch models.ErrorCode(err) {
		case models.CodeNotFound:
			return c.Redirect("/login", fiber.StatusFound)
		case models.CodeUnauthorized:
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"page":   "login",
				"error":  "Password incorrect, please try again.",
				"viewer": s.currentViewer(c),
			})
		default:
			return models.RespondWithError(c, statusForError(err), err)
		}
	}

	return s.startSession(c, user.ID)
}

// Logout handles GET /logout. The session's jti is revoked so the cookie
// cannot be replayed.
func (s *Server) Logout(c *fiber.Ctx) error {
	if token := c.Cookies(session.CookieName); token != "" {
		if err := s.sessions.Revoke(c.Context(), token); err != nil {
			middleware.Logger.WarnContext(c.UserContext(), "session revocation failed", "error", err)
		}
	}
	s.sessions.ClearCookie(c)
	return c.Redirect("/", fiber.StatusFound)
}

// startSession issues a session cookie and lands the visitor on the home page.
func (s *Server) startSession(c *fiber.Ctx, userID uint) error {
	token, err := s.sessions.IssueToken(userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError("Failed to start session", err))
	}
	s.sessions.SetCookie(c, token)
	return c.Redirect("/", fiber.StatusFound)
}
