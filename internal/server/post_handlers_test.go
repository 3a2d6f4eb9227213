package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPostRepository is a mock of the PostRepository interface
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context) ([]*models.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostRepository) Update(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCommentRepository is a mock of the CommentRepository interface
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Comment), args.Error(1)
}

var demoPost = &models.Post{
	ID:       1,
	Title:    "The Life of Cactus",
	Subtitle: "Who knew that cacti lived such interesting lives.",
	Date:     "October 20, 2020",
	Body:     "<p>Nori grape silver beet broccoli kombu.</p>",
	ImageURL: "https://example.com/cactus.jpg",
	AuthorID: 1,
	Author:   models.User{ID: 1, Name: "Angela Yu"},
}

func adminUser() *models.User {
	return &models.User{ID: 1, Email: "admin@example.com", Name: "Angela Yu", IsAdmin: true}
}

func readerUser() *models.User {
	return &models.User{ID: 2, Email: "reader@example.com", Name: "Reader"}
}

func TestHome(t *testing.T) {
	postRepo := new(MockPostRepository)
	postRepo.On("List", mock.Anything).Return([]*models.Post{demoPost}, nil)

	s := newTestServer(new(MockUserRepository), postRepo, new(MockCommentRepository))
	app := newTestApp(s)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Page   string `json:"page"`
		Posts  []postView
		Viewer viewer `json:"viewer"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "home", payload.Page)
	require.Len(t, payload.Posts, 1)
	assert.Equal(t, "The Life of Cactus", payload.Posts[0].Title)
	assert.Empty(t, payload.Posts[0].Body, "home page cards omit the body")
	assert.False(t, payload.Viewer.LoggedIn)
}

func TestGetPost(t *testing.T) {
	t.Run("detail page includes the post's comments", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		postRepo.On("GetByID", mock.Anything, uint(1)).Return(demoPost, nil)
		commentRepo := new(MockCommentRepository)
		commentRepo.On("ListByPost", mock.Anything, uint(1)).Return([]*models.Comment{
			{ID: 1, Text: "Great read", AuthorID: 2, PostID: 1, Author: *readerUser()},
		}, nil)

		s := newTestServer(new(MockUserRepository), postRepo, commentRepo)
		app := newTestApp(s)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/post/1", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var payload struct {
			Post postView `json:"post"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
		assert.Equal(t, "The Life of Cactus", payload.Post.Title)
		assert.NotEmpty(t, payload.Post.Body)
		require.Len(t, payload.Post.Comments, 1)
		assert.Equal(t, "Great read", payload.Post.Comments[0].Text)
		assert.Equal(t, "Reader", payload.Post.Comments[0].Author.Name)
	})

	t.Run("missing post is 404", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		postRepo.On("GetByID", mock.Anything, uint(99)).
			Return(nil, models.NewNotFoundError("Post not found"))

		s := newTestServer(new(MockUserRepository), postRepo, new(MockCommentRepository))
		app := newTestApp(s)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/post/99", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("non-numeric id is 400", func(t *testing.T) {
		s := newTestServer(new(MockUserRepository), new(MockPostRepository), new(MockCommentRepository))
		app := newTestApp(s)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/post/abc", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestCreatePost(t *testing.T) {
	form := url.Values{
		"title":     {"A New Post"},
		"subtitle":  {"Fresh off the press"},
		"body":      {"<p>Words.</p>"},
		"image_url": {"https://example.com/new.jpg"},
	}

	t.Run("admin can publish", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByID", mock.Anything, uint(1)).Return(adminUser(), nil)
		postRepo := new(MockPostRepository)
		postRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			args.Get(1).(*models.Post).ID = 8
		}).Return(nil)
		postRepo.On("GetByID", mock.Anything, uint(8)).Return(&models.Post{ID: 8, Title: "A New Post"}, nil)

		s := newTestServer(userRepo, postRepo, new(MockCommentRepository))
		app := newTestApp(s)

		req := formRequest(http.MethodPost, "/new-post", form)
		req.AddCookie(sessionCookie(t, s, 1))

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/", resp.Header.Get("Location"))
		postRepo.AssertExpectations(t)
	})

	t.Run("signed-in non-admin is unauthorized", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByID", mock.Anything, uint(2)).Return(readerUser(), nil)

		s := newTestServer(userRepo, new(MockPostRepository), new(MockCommentRepository))
		app := newTestApp(s)

		req := formRequest(http.MethodPost, "/new-post", form)
		req.AddCookie(sessionCookie(t, s, 2))

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("anonymous is unauthorized", func(t *testing.T) {
		s := newTestServer(new(MockUserRepository), new(MockPostRepository), new(MockCommentRepository))
		app := newTestApp(s)

		resp, err := app.Test(formRequest(http.MethodPost, "/new-post", form), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("blank title is rejected", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByID", mock.Anything, uint(1)).Return(adminUser(), nil)

		s := newTestServer(userRepo, new(MockPostRepository), new(MockCommentRepository))
		app := newTestApp(s)

		bad := url.Values{"title": {" "}, "subtitle": {"s"}, "body": {"b"}}
		req := formRequest(http.MethodPost, "/new-post", bad)
		req.AddCookie(sessionCookie(t, s, 1))

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestEditPost(t *testing.T) {
	t.Run("admin edits keep the original date", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByID", mock.Anything, uint(1)).Return(adminUser(), nil)

		existing := *demoPost
		postRepo := new(MockPostRepository)
		postRepo.On("GetByID", mock.Anything, uint(1)).Return(&existing, nil)
		var saved *models.Post
		postRepo.On("Update", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			saved = args.Get(1).(*models.Post)
		}).Return(nil)

		s := newTestServer(userRepo, postRepo, new(MockCommentRepository))
		app := newTestApp(s)

		req := formRequest(http.MethodPost, "/edit-post/1", url.Values{
			"title":    {"Cactus, Revisited"},
			"subtitle": {"Second thoughts"},
			"body":     {"<p>Updated.</p>"},
		})
		req.AddCookie(sessionCookie(t, s, 1))

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/post/1", resp.Header.Get("Location"))
		require.NotNil(t, saved)
		assert.Equal(t, "Cactus, Revisited", saved.Title)
		assert.Equal(t, "October 20, 2020", saved.Date)
	})

	t.Run("anonymous is unauthorized", func(t *testing.T) {
		s := newTestServer(new(MockUserRepository), new(MockPostRepository), new(MockCommentRepository))
		app := newTestApp(s)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/edit-post/1", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestDeletePost(t *testing.T) {
	t.Run("admin delete redirects home", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByID", mock.Anything, uint(1)).Return(adminUser(), nil)
		postRepo := new(MockPostRepository)
		postRepo.On("GetByID", mock.Anything, uint(1)).Return(demoPost, nil)
		postRepo.On("Delete", mock.Anything, uint(1)).Return(nil)

		s := newTestServer(userRepo, postRepo, new(MockCommentRepository))
		app := newTestApp(s)

		req := httptest.NewRequest(http.MethodGet, "/delete/1", nil)
		req.AddCookie(sessionCookie(t, s, 1))

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/", resp.Header.Get("Location"))
		postRepo.AssertExpectations(t)
	})

	t.Run("non-admin cannot delete", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByID", mock.Anything, uint(2)).Return(readerUser(), nil)
		postRepo := new(MockPostRepository)

		s := newTestServer(userRepo, postRepo, new(MockCommentRepository))
		app := newTestApp(s)

		req := httptest.NewRequest(http.MethodGet, "/delete/1", nil)
		req.AddCookie(sessionCookie(t, s, 2))

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		postRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestTamperedSessionIsAnonymous(t *testing.T) {
	s := newTestServer(new(MockUserRepository), new(MockPostRepository), new(MockCommentRepository))
	app := newTestApp(s)

	req := httptest.NewRequest(http.MethodGet, "/new-post", nil)
	req.AddCookie(&http.Cookie{Name: "inkwell_session", Value: "not-a-token"})

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Authentication required")
}
