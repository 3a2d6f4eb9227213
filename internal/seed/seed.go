// Package seed provides database seeding utilities for development and demos.
package seed

import (
	"errors"
	"fmt"
	"log"

	"inkwell/internal/auth"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seeder populates the blog with demo data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll removes every comment, post and user. Order matters for the
// foreign keys.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	for _, model := range []any{&models.Comment{}, &models.Post{}, &models.User{}} {
		if err := s.db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			return fmt.Errorf("clearing %T: %w", model, err)
		}
	}
	return nil
}

// demoPost is the blog's long-standing sample entry.
var demoPost = models.Post{
	Title:    "The Life of Cactus",
	Subtitle: "Who knew that cacti lived such interesting lives.",
	Date:     "October 20, 2020",
	Body: "<p>Nori grape silver beet broccoli kombu beet greens fava bean potato quandong celery.</p>" +
		"<p>Bunya nuts black-eyed pea prairie turnip leek lentil turnip greens parsnip.</p>" +
		"<p>Sea lettuce lettuce water chestnut eggplant winter purslane fennel azuki bean earthnut pea " +
		"sierra leone bologi leek soko chicory celtuce parsley j&iacute;cama salsify.</p>",
	ImageURL: "https://images.unsplash.com/photo-1530482054429-cc491f61333b?ixlib=rb-1.2.1&ixid=eyJhcHBfaWQiOjEyMDd9&auto=format&fit=crop&w=1651&q=80",
}

// SeedAdmin ensures the admin account exists and owns the demo post. The
// first registered account is the blog's owner.
func (s *Seeder) SeedAdmin(email, password string) (*models.User, error) {
	var admin models.User
	err := s.db.Where("email = ?", email).First(&admin).Error
	if err == nil {
		return &admin, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	admin = models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         "Angela Yu",
		IsAdmin:      true,
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return nil, err
	}

	post := demoPost
	post.AuthorID = admin.ID
	if err := s.db.Create(&post).Error; err != nil {
		return nil, err
	}

	log.Printf("Seeded admin %s with the demo post", email)
	return &admin, nil
}

// SeedBlog fills the blog with readers, posts and comments.
func (s *Seeder) SeedBlog(opts Options) error {
	admin, err := s.SeedAdmin("admin@example.com", "changeme-please")
	if err != nil {
		return err
	}

	readers := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		reader, err := s.factory.CreateReader()
		if err != nil {
			return fmt.Errorf("seeding reader %d: %w", i, err)
		}
		readers = append(readers, reader)
	}

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		post, err := s.factory.CreatePost(admin)
		if err != nil {
			return fmt.Errorf("seeding post %d: %w", i, err)
		}
		posts = append(posts, post)
	}

	// A few comments per post, from random readers.
	for _, post := range posts {
		if err := s.factory.CreateComments(post, readers); err != nil {
			return fmt.Errorf("seeding comments for post %d: %w", post.ID, err)
		}
	}

	log.Printf("Seeded %d readers, %d posts", len(readers), len(posts))
	return nil
}
