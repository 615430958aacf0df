package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPostRepository_Feed(t *testing.T) {
	ctx := context.Background()

	t.Run("Filters By Mood Newest First", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostRepository(db)

		postRows := sqlmock.NewRows([]string{"id", "title", "mood", "user_id", "comments_count", "total_reactions"}).
			AddRow(2, "Deep work day", "focus", 1, 1, 4).
			AddRow(1, "Library session", "focus", 2, 0, 2)
		mock.ExpectQuery(`SELECT posts\.\*, .+ as comments_count, .+ as total_reactions FROM "posts" WHERE mood = \$1 AND "posts"\."deleted_at" IS NULL ORDER BY created_at DESC LIMIT \$2`).
			WithArgs("focus", 20).
			WillReturnRows(postRows)

		// Preloaded authors
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" IN ($1,$2)`)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(1, "a").AddRow(2, "b"))

		// Per-kind reaction counts for the page
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT post_id, kind, COUNT(*) as count FROM "reactions" WHERE post_id IN ($1,$2) GROUP BY post_id, kind`)).
			WithArgs(2, 1).
			WillReturnRows(sqlmock.NewRows([]string{"post_id", "kind", "count"}).
				AddRow(2, "love", 3).
				AddRow(2, "helpful", 1).
				AddRow(1, "support", 2))

		posts, err := repo.Feed(ctx, "focus", 20, 0, 0)
		require.NoError(t, err)
		require.Len(t, posts, 2)
		assert.Equal(t, uint(2), posts[0].ID)
		assert.Equal(t, map[string]int{"love": 3, "helpful": 1}, posts[0].ReactionCounts)
		assert.Equal(t, map[string]int{"support": 2}, posts[1].ReactionCounts)
		assert.Empty(t, posts[0].MyReactions)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Includes Requesting Users Reactions", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostRepository(db)

		postRows := sqlmock.NewRows([]string{"id", "title", "mood", "user_id"}).
			AddRow(5, "Evening walk", "chill", 2)
		mock.ExpectQuery(`SELECT posts\.\*, .+ FROM "posts" WHERE "posts"\."deleted_at" IS NULL ORDER BY created_at DESC LIMIT \$1`).
			WithArgs(20).
			WillReturnRows(postRows)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(2, "b"))

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT post_id, kind, COUNT(*) as count FROM "reactions"`)).
			WithArgs(5).
			WillReturnRows(sqlmock.NewRows([]string{"post_id", "kind", "count"}).AddRow(5, "love", 1))

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT post_id, kind FROM "reactions" WHERE user_id = $1 AND post_id IN ($2)`)).
			WithArgs(7, 5).
			WillReturnRows(sqlmock.NewRows([]string{"post_id", "kind"}).AddRow(5, "love"))

		posts, err := repo.Feed(ctx, "", 20, 0, 7)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, []string{"love"}, posts[0].MyReactions)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostRepository_GetByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT posts\.\*, .+ FROM "posts"`).
		WillReturnError(gorm.ErrRecordNotFound)

	post, err := repo.GetByID(ctx, 99, 1)
	assert.Error(t, err)
	assert.Nil(t, post)
	assert.NoError(t, mock.ExpectationsWereMet())
}
