package service

import (
	"context"
	"errors"
	"testing"

	"moodia/internal/models"
)

func TestCommentServiceCreateOnMissingPost(t *testing.T) {
	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return nil, models.NewNotFoundError("Post", id)
	}

	svc := NewCommentService(noopCommentRepo(), posts)

	_, err := svc.CreateComment(context.Background(), CreateCommentInput{UserID: 1, PostID: 99, Content: "hi"})
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "NOT_FOUND" {
		t.Fatalf("expected not-found app error, got %#v", err)
	}
}

func TestCommentServiceCreateEmptyContent(t *testing.T) {
	svc := NewCommentService(noopCommentRepo(), noopPostRepo())

	_, err := svc.CreateComment(context.Background(), CreateCommentInput{UserID: 1, PostID: 1})
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected validation app error, got %#v", err)
	}
}

func TestCommentServiceDeletePermissions(t *testing.T) {
	const commentAuthor = 10
	const postAuthor = 20
	const stranger = 30

	newStubs := func() (*commentRepoStub, *postRepoStub) {
		comments := noopCommentRepo()
		comments.getByIDFn = func(context.Context, uint) (*models.Comment, error) {
			return &models.Comment{ID: 5, UserID: commentAuthor, PostID: 7}, nil
		}
		posts := noopPostRepo()
		posts.getByIDFn = func(context.Context, uint, uint) (*models.Post, error) {
			return &models.Post{ID: 7, UserID: postAuthor}, nil
		}
		return comments, posts
	}

	t.Run("comment author may delete", func(t *testing.T) {
		comments, posts := newStubs()
		svc := NewCommentService(comments, posts)
		if _, err := svc.DeleteComment(context.Background(), DeleteCommentInput{UserID: commentAuthor, CommentID: 5}); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("post author may delete", func(t *testing.T) {
		comments, posts := newStubs()
		svc := NewCommentService(comments, posts)
		if _, err := svc.DeleteComment(context.Background(), DeleteCommentInput{UserID: postAuthor, CommentID: 5}); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("third party may not delete", func(t *testing.T) {
		comments, posts := newStubs()
		svc := NewCommentService(comments, posts)
		_, err := svc.DeleteComment(context.Background(), DeleteCommentInput{UserID: stranger, CommentID: 5})
		var appErr *models.AppError
		if !errors.As(err, &appErr) || appErr.Code != "UNAUTHORIZED" {
			t.Fatalf("expected unauthorized app error, got %#v", err)
		}
	})
}

func TestCommentServiceUpdateNotOwner(t *testing.T) {
	comments := noopCommentRepo()
	comments.getByIDFn = func(context.Context, uint) (*models.Comment, error) {
		return &models.Comment{ID: 5, UserID: 10, PostID: 7}, nil
	}

	svc := NewCommentService(comments, noopPostRepo())

	_, err := svc.UpdateComment(context.Background(), UpdateCommentInput{UserID: 11, CommentID: 5, Content: "edit"})
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "UNAUTHORIZED" {
		t.Fatalf("expected unauthorized app error, got %#v", err)
	}
}
