package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"inkwell/internal/auth"
	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db, r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// CreateReader persists a non-admin account with a random identity.
// All seeded readers share one password to keep demos simple.
func (f *Factory) CreateReader() (*models.User, error) {
	hash, err := auth.HashPassword("password123")
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        gofakeit.Email(),
		PasswordHash: hash,
		Name:         gofakeit.Name(),
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost persists a post authored by the given user, dated somewhere in
// the last two years so the home page looks lived-in.
func (f *Factory) CreatePost(author *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	paragraphs := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		paragraphs = append(paragraphs, "<p>"+gofakeit.Paragraph(1, 4, 12, " ")+"</p>")
	}

	daysBack := f.r.Intn(730)
	post := &models.Post{
		Title:    strings.TrimSuffix(gofakeit.Sentence(4), "."),
		Subtitle: gofakeit.Sentence(8),
		Date:     time.Now().AddDate(0, 0, -daysBack).Format("January 2, 2006"),
		Body:     strings.Join(paragraphs, ""),
		ImageURL: fmt.Sprintf("https://picsum.photos/seed/%s/1200/600", gofakeit.UUID()),
		AuthorID: author.ID,
	}
	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComments persists up to five comments on the post from random readers.
func (f *Factory) CreateComments(post *models.Post, readers []*models.User) error {
	if len(readers) == 0 {
		return nil
	}

	for i := 0; i < f.r.Intn(6); i++ {
		reader := readers[f.r.Intn(len(readers))]
		comment := &models.Comment{
			Text:     gofakeit.Sentence(f.r.Intn(15) + 3),
			AuthorID: reader.ID,
			PostID:   post.ID,
		}
		if err := f.db.Create(comment).Error; err != nil {
			return err
		}
	}
	return nil
}
