package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"inkwell/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPostRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	t.Run("success preloads author", func(t *testing.T) {
		postRows := sqlmock.NewRows([]string{"id", "title", "subtitle", "date", "body", "image_url", "author_id"}).
			AddRow(1, "The Life of Cactus", "Who knew", "October 20, 2020", "<p>Nori grape</p>", "https://example.com/c.jpg", 1)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE "posts"."id" = $1 AND "posts"."deleted_at" IS NULL ORDER BY "posts"."id" LIMIT $2`)).
			WithArgs(1, 1).
			WillReturnRows(postRows)

		authorRows := sqlmock.NewRows([]string{"id", "email", "name"}).
			AddRow(1, "admin@example.com", "Administrator")
		mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"\."id"`).
			WillReturnRows(authorRows)

		post, err := repo.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "The Life of Cactus", post.Title)
		assert.Equal(t, "October 20, 2020", post.Date)
		assert.Equal(t, "Administrator", post.Author.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing post maps to not found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE "posts"."id" = $1 AND "posts"."deleted_at" IS NULL ORDER BY "posts"."id" LIMIT $2`)).
			WithArgs(99, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		post, err := repo.GetByID(ctx, 99)
		assert.Error(t, err)
		assert.Nil(t, post)
		assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostRepository_List(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	t.Run("empty listing", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM "posts" WHERE "posts"\."deleted_at" IS NULL`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title"}))

		posts, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, posts)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("natural storage order", func(t *testing.T) {
		postRows := sqlmock.NewRows([]string{"id", "title", "author_id"}).
			AddRow(1, "First", 1).
			AddRow(2, "Second", 1)
		mock.ExpectQuery(`SELECT \* FROM "posts" WHERE "posts"\."deleted_at" IS NULL`).
			WillReturnRows(postRows)
		mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"\."id"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Administrator"))

		posts, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, posts, 2)
		assert.Equal(t, "First", posts[0].Title)
		assert.Equal(t, "Second", posts[1].Title)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostRepository_Create_DuplicateTitle(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "posts"`).
		WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "uni_posts_title" (SQLSTATE 23505)`))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &models.Post{Title: "Taken", Subtitle: "s", Date: "June 1, 2026", Body: "b", AuthorID: 1})
	require.Error(t, err)
	assert.Equal(t, models.CodeConflict, models.ErrorCode(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Delete_RemovesCommentsTransactionally(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "comments" SET "deleted_at"`).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`UPDATE "posts" SET "deleted_at"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), 1)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Delete_RollsBackOnFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "comments" SET "deleted_at"`).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), 1)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
