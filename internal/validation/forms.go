// Package validation implements field-level checks for the platform's forms.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const (
	maxEmailLen    = 250
	maxNameLen     = 250
	maxTitleLen    = 250
	maxSubtitleLen = 250
	maxImageURLLen = 250
	maxBodyLen     = 100_000
	maxCommentLen  = 10_000
	minPasswordLen = 8
)

// ValidateEmail checks the address shape and length.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if len(email) > maxEmailLen {
		return fmt.Errorf("email too long (max %d characters)", maxEmailLen)
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("email address is not valid")
	}
	return nil
}

// ValidatePassword enforces a minimum length; composition rules are
// deliberately not imposed.
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password is required")
	}
	if len(password) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters", minPasswordLen)
	}
	return nil
}

// ValidateName checks the display name.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name is required")
	}
	if len(name) > maxNameLen {
		return fmt.Errorf("name too long (max %d characters)", maxNameLen)
	}
	return nil
}

// RegisterForm holds the registration form fields.
type RegisterForm struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Name     string `json:"name" form:"name"`
}

// Validate checks all registration fields and returns the first failure.
func (f *RegisterForm) Validate() error {
	if err := ValidateEmail(f.Email); err != nil {
		return err
	}
	if err := ValidatePassword(f.Password); err != nil {
		return err
	}
	return ValidateName(f.Name)
}

// LoginForm holds the login form fields.
type LoginForm struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// Validate checks that both credentials were submitted.
func (f *LoginForm) Validate() error {
	if f.Email == "" {
		return fmt.Errorf("email is required")
	}
	if f.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

// PostForm holds the authoring form fields, shared by create and edit.
type PostForm struct {
	Title    string `json:"title" form:"title"`
	Subtitle string `json:"subtitle" form:"subtitle"`
	Body     string `json:"body" form:"body"`
	ImageURL string `json:"image_url" form:"image_url"`
}

// Validate checks the authoring fields.
func (f *PostForm) Validate() error {
	if strings.TrimSpace(f.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if len(f.Title) > maxTitleLen {
		return fmt.Errorf("title too long (max %d characters)", maxTitleLen)
	}
	if strings.TrimSpace(f.Subtitle) == "" {
		return fmt.Errorf("subtitle is required")
	}
	if len(f.Subtitle) > maxSubtitleLen {
		return fmt.Errorf("subtitle too long (max %d characters)", maxSubtitleLen)
	}
	if strings.TrimSpace(f.Body) == "" {
		return fmt.Errorf("body is required")
	}
	if len(f.Body) > maxBodyLen {
		return fmt.Errorf("body too long (max %d characters)", maxBodyLen)
	}
	if len(f.ImageURL) > maxImageURLLen {
		return fmt.Errorf("image URL too long (max %d characters)", maxImageURLLen)
	}
	return nil
}

// CommentForm holds the comment form field.
type CommentForm struct {
	Text string `json:"text" form:"text"`
}

// Validate checks the comment text.
func (f *CommentForm) Validate() error {
	if strings.TrimSpace(f.Text) == "" {
		return fmt.Errorf("comment text is required")
	}
	if len(f.Text) > maxCommentLen {
		return fmt.Errorf("comment too long (max %d characters)", maxCommentLen)
	}
	return nil
}
