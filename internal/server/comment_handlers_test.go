package server

import (
	"net/http"
	"net/url"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateComment(t *testing.T) {
	form := url.Values{"text": {"Lovely post."}}

	t.Run("anonymous visitors go to the login page", func(t *testing.T) {
		s := newTestServer(new(MockUserRepository), new(MockPostRepository), new(MockCommentRepository))
		app := newTestApp(s)

		resp, err := app.Test(formRequest(http.MethodPost, "/post/1", form), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))
	})

	t.Run("signed-in visitor comments and returns to the post", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		postRepo.On("GetByID", mock.Anything, uint(1)).Return(demoPost, nil)
		commentRepo := new(MockCommentRepository)
		commentRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			comment := args.Get(1).(*models.Comment)
			comment.ID = 3
			assert.Equal(t, uint(2), comment.AuthorID)
			assert.Equal(t, uint(1), comment.PostID)
		}).Return(nil)

		s := newTestServer(new(MockUserRepository), postRepo, commentRepo)
		app := newTestApp(s)

		req := formRequest(http.MethodPost, "/post/1", form)
		req.AddCookie(sessionCookie(t, s, 2))

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/post/1", resp.Header.Get("Location"))
		commentRepo.AssertExpectations(t)
	})

	t.Run("empty text is rejected", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		postRepo.On("GetByID", mock.Anything, uint(1)).Return(demoPost, nil)

		s := newTestServer(new(MockUserRepository), postRepo, new(MockCommentRepository))
		app := newTestApp(s)

		req := formRequest(http.MethodPost, "/post/1", url.Values{"text": {"   "}})
		req.AddCookie(sessionCookie(t, s, 2))

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("comment on a missing post is 404", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		postRepo.On("GetByID", mock.Anything, uint(99)).
			Return(nil, models.NewNotFoundError("Post not found"))

		s := newTestServer(new(MockUserRepository), postRepo, new(MockCommentRepository))
		app := newTestApp(s)

		req := formRequest(http.MethodPost, "/post/99", form)
		req.AddCookie(sessionCookie(t, s, 2))

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
