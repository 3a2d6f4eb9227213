package service

import (
	"context"

	"inkwell/internal/auth"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

type AuthService struct {
	userRepo repository.UserRepository
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

type LoginInput struct {
	Email    string
	Password string
}

func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// Register creates a new account. A taken email is reported as a conflict so
// the caller can send the visitor to the login page instead.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	form := validation.RegisterForm{Email: in.Email, Password: in.Password, Name: in.Name}
	if err := form.Validate(); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("You've already signed up with that email, log in instead!")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, models.NewInternalError("Failed to hash password", err)
	}

	user := &models.User{
		Email:        in.Email,
		PasswordHash: hash,
		Name:         in.Name,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login checks credentials. An unknown email and a wrong password fail
// differently on purpose: the first redirects back to the form, the second
// re-renders it, matching what visitors see.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*models.User, error) {
	form := validation.LoginForm{Email: in.Email, Password: in.Password}
	if err := form.Validate(); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	user, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("That email does not exist, please try again.")
	}

	if !auth.VerifyPassword(user.PasswordHash, in.Password) {
		return nil, models.NewUnauthorizedError("Password incorrect, please try again.")
	}

	return user, nil
}

// GetUser loads an account by ID, for resolving the session's current user.
func (s *AuthService) GetUser(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// IsAdmin reports whether the account may manage posts.
func (s *AuthService) IsAdmin(ctx context.Context, userID uint) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.IsAdmin, nil
}
