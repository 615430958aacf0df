package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"moodia/internal/models"
	"moodia/internal/repository"
	"moodia/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newFollowTestServer(followRepo *MockFollowRepository, userRepo *MockUserRepository) *Server {
	return &Server{
		followRepo:    followRepo,
		userRepo:      userRepo,
		followService: service.NewFollowService(followRepo, userRepo),
	}
}

func TestFollowUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		followRepo := new(MockFollowRepository)
		userRepo := new(MockUserRepository)
		userRepo.On("GetByID", mock.Anything, uint(2)).Return(&models.User{ID: 2}, nil)
		userRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.User{ID: 1, Username: "mood_fan"}, nil)
		followRepo.On("Follow", mock.Anything, uint(1), uint(2)).Return(true, nil)
		followRepo.On("Counts", mock.Anything, uint(2)).
			Return(&repository.FollowCounts{Followers: 1, Following: 0}, nil)

		s := newFollowTestServer(followRepo, userRepo)
		app := fiber.New()
		withUser(app, 1)
		app.Post("/users/:id/follow", s.FollowUser)

		req := httptest.NewRequest(http.MethodPost, "/users/2/follow", nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, true, body["following"])
		assert.Equal(t, float64(1), body["followers_count"])
	})

	t.Run("Self Follow", func(t *testing.T) {
		followRepo := new(MockFollowRepository)
		userRepo := new(MockUserRepository)

		s := newFollowTestServer(followRepo, userRepo)
		app := fiber.New()
		withUser(app, 1)
		app.Post("/users/:id/follow", s.FollowUser)

		req := httptest.NewRequest(http.MethodPost, "/users/1/follow", nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Missing Followee", func(t *testing.T) {
		followRepo := new(MockFollowRepository)
		userRepo := new(MockUserRepository)
		userRepo.On("GetByID", mock.Anything, uint(99)).
			Return(nil, models.NewNotFoundError("User", 99))

		s := newFollowTestServer(followRepo, userRepo)
		app := fiber.New()
		withUser(app, 1)
		app.Post("/users/:id/follow", s.FollowUser)

		req := httptest.NewRequest(http.MethodPost, "/users/99/follow", nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestUnfollowUserIdempotent(t *testing.T) {
	followRepo := new(MockFollowRepository)
	userRepo := new(MockUserRepository)
	// No existing edge: Unfollow reports false, the handler still succeeds
	followRepo.On("Unfollow", mock.Anything, uint(1), uint(2)).Return(false, nil)
	followRepo.On("Counts", mock.Anything, uint(2)).
		Return(&repository.FollowCounts{Followers: 0, Following: 0}, nil)

	s := newFollowTestServer(followRepo, userRepo)
	app := fiber.New()
	withUser(app, 1)
	app.Delete("/users/:id/follow", s.UnfollowUser)

	req := httptest.NewRequest(http.MethodDelete, "/users/2/follow", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, false, body["following"])
}

func TestGetFollowers(t *testing.T) {
	followRepo := new(MockFollowRepository)
	userRepo := new(MockUserRepository)
	userRepo.On("GetByID", mock.Anything, uint(2)).Return(&models.User{ID: 2}, nil)
	followRepo.On("Followers", mock.Anything, uint(2), 50, 0).
		Return([]models.User{{ID: 1, Username: "mood_fan"}}, nil)

	s := newFollowTestServer(followRepo, userRepo)
	app := fiber.New()
	withUser(app, 1)
	app.Get("/users/:id/followers", s.GetFollowers)

	req := httptest.NewRequest(http.MethodGet, "/users/2/followers", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var users []models.User
	_ = json.NewDecoder(resp.Body).Decode(&users)
	assert.Len(t, users, 1)
	assert.Equal(t, "mood_fan", users[0].Username)
}
