package service

import (
	"context"

	"moodia/internal/media"
	"moodia/internal/models"
	"moodia/internal/repository"
)

type UserService struct {
	userRepo repository.UserRepository
	moodRepo repository.MoodRepository
	streak   func(ctx context.Context, userID uint) (int, error)
}

type UpdateProfileInput struct {
	UserID     uint
	Username   string
	Bio        string
	Location   string
	AvatarHash string
}

// Profile is a user plus the mood-derived extras shown on their page.
type Profile struct {
	models.User
	Streak     int                    `json:"streak"`
	AvatarURLs map[string]string      `json:"avatar_urls,omitempty"`
	Moods      []models.MoodSelection `json:"recent_moods"`
}

func NewUserService(
	userRepo repository.UserRepository,
	moodRepo repository.MoodRepository,
	streak func(ctx context.Context, userID uint) (int, error),
) *UserService {
	return &UserService{userRepo: userRepo, moodRepo: moodRepo, streak: streak}
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetProfile returns the user with derived counts, favorite mood and a short
// recent mood log.
func (s *UserService) GetProfile(ctx context.Context, id uint, currentUserID uint) (*Profile, error) {
	user, err := s.userRepo.GetProfile(ctx, id, currentUserID)
	if err != nil {
		return nil, err
	}

	recent, err := s.moodRepo.History(ctx, id, 7)
	if err != nil {
		return nil, err
	}

	profile := &Profile{
		User:  *user,
		Moods: recent,
	}
	if s.streak != nil {
		streak, err := s.streak(ctx, id)
		if err != nil {
			return nil, err
		}
		profile.Streak = streak
	}
	if user.AvatarHash != "" {
		profile.AvatarURLs = media.Variants(user.AvatarHash)
	}
	return profile, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	const maxBioLen = 500
	const maxUsernameLen = 30
	const maxLocationLen = 100

	if in.Username != "" {
		if len(in.Username) > maxUsernameLen {
			return nil, models.NewValidationError("Username too long (max 30 characters)")
		}
		user.Username = in.Username
	}
	if in.Bio != "" {
		if len(in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		user.Bio = in.Bio
	}
	if in.Location != "" {
		if len(in.Location) > maxLocationLen {
			return nil, models.NewValidationError("Location too long (max 100 characters)")
		}
		user.Location = in.Location
	}
	if in.AvatarHash != "" {
		user.AvatarHash = in.AvatarHash
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
