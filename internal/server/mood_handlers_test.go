package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"moodia/internal/models"
	"moodia/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newMoodTestServer(moodRepo *MockMoodRepository, lockDaily bool) *Server {
	return &Server{
		moodRepo:    moodRepo,
		moodService: service.NewMoodService(moodRepo, lockDaily),
	}
}

func TestGetMoods(t *testing.T) {
	s := &Server{}
	app := fiber.New()
	app.Get("/moods", s.GetMoods)

	req := httptest.NewRequest(http.MethodGet, "/moods", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Moods []struct {
			ID    string `json:"id"`
			Emoji string `json:"emoji"`
			Label string `json:"label"`
		} `json:"moods"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	assert.Len(t, body.Moods, 8)
	assert.Equal(t, "focus", body.Moods[0].ID)
}

func TestSelectMood(t *testing.T) {
	today := models.DayOf(time.Now())

	tests := []struct {
		name           string
		body           map[string]string
		lockDaily      bool
		mockSetup      func(repo *MockMoodRepository)
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{"mood": "happy"},
			mockSetup: func(repo *MockMoodRepository) {
				repo.On("GetForDay", mock.Anything, uint(1), today).Return(nil, nil)
				repo.On("Upsert", mock.Anything, mock.Anything).Return(nil)
				repo.On("History", mock.Anything, uint(1), 365).Return([]models.MoodSelection{
					{UserID: 1, Day: today, Mood: "happy"},
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Unknown Mood",
			body:           map[string]string{"mood": "grumpy"},
			mockSetup:      func(repo *MockMoodRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:      "Locked After First Selection",
			body:      map[string]string{"mood": "chill"},
			lockDaily: true,
			mockSetup: func(repo *MockMoodRepository) {
				repo.On("GetForDay", mock.Anything, uint(1), today).
					Return(&models.MoodSelection{UserID: 1, Day: today, Mood: "focus"}, nil)
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockMoodRepository)
			tt.mockSetup(repo)

			s := newMoodTestServer(repo, tt.lockDaily)
			app := fiber.New()
			withUser(app, 1)
			app.Post("/moods/me", s.SelectMood)

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/moods/me", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			assert.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestGetMoodStatus(t *testing.T) {
	today := models.DayOf(time.Now())
	yesterday := models.DayOf(time.Now().AddDate(0, 0, -1))

	repo := new(MockMoodRepository)
	repo.On("GetForDay", mock.Anything, uint(1), today).
		Return(&models.MoodSelection{UserID: 1, Day: today, Mood: "creative"}, nil)
	repo.On("History", mock.Anything, uint(1), 365).Return([]models.MoodSelection{
		{UserID: 1, Day: today, Mood: "creative"},
		{UserID: 1, Day: yesterday, Mood: "focus"},
	}, nil)

	s := newMoodTestServer(repo, false)
	app := fiber.New()
	withUser(app, 1)
	app.Get("/moods/me", s.GetMoodStatus)

	req := httptest.NewRequest(http.MethodGet, "/moods/me", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var status service.MoodStatus
	_ = json.NewDecoder(resp.Body).Decode(&status)
	assert.NotNil(t, status.Selection)
	assert.Equal(t, "creative", status.Selection.Mood)
	assert.Equal(t, 2, status.Streak)
	assert.True(t, status.CanChange)
}

func TestGetMoodHistory(t *testing.T) {
	today := models.DayOf(time.Now())

	repo := new(MockMoodRepository)
	repo.On("History", mock.Anything, uint(1), 7).Return([]models.MoodSelection{
		{UserID: 1, Day: today, Mood: "relax"},
	}, nil)

	s := newMoodTestServer(repo, false)
	app := fiber.New()
	withUser(app, 1)
	app.Get("/moods/me/history", s.GetMoodHistory)

	req := httptest.NewRequest(http.MethodGet, "/moods/me/history?limit=7", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		History []models.MoodSelection `json:"history"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	assert.Len(t, body.History, 1)
	assert.Equal(t, "relax", body.History[0].Mood)
}
