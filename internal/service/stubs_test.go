package service

import (
	"context"

	"moodia/internal/models"
	"moodia/internal/repository"
)

type moodRepoStub struct {
	upsertFn       func(context.Context, *models.MoodSelection) error
	getForDayFn    func(context.Context, uint, string) (*models.MoodSelection, error)
	historyFn      func(context.Context, uint, int) ([]models.MoodSelection, error)
	favoriteMoodFn func(context.Context, uint) (string, error)
}

func (s *moodRepoStub) Upsert(ctx context.Context, sel *models.MoodSelection) error {
	return s.upsertFn(ctx, sel)
}
func (s *moodRepoStub) GetForDay(ctx context.Context, userID uint, day string) (*models.MoodSelection, error) {
	return s.getForDayFn(ctx, userID, day)
}
func (s *moodRepoStub) History(ctx context.Context, userID uint, limit int) ([]models.MoodSelection, error) {
	return s.historyFn(ctx, userID, limit)
}
func (s *moodRepoStub) FavoriteMood(ctx context.Context, userID uint) (string, error) {
	return s.favoriteMoodFn(ctx, userID)
}

func noopMoodRepo() *moodRepoStub {
	return &moodRepoStub{
		upsertFn:       func(context.Context, *models.MoodSelection) error { return nil },
		getForDayFn:    func(context.Context, uint, string) (*models.MoodSelection, error) { return nil, nil },
		historyFn:      func(context.Context, uint, int) ([]models.MoodSelection, error) { return nil, nil },
		favoriteMoodFn: func(context.Context, uint) (string, error) { return "", nil },
	}
}

type postRepoStub struct {
	createFn      func(context.Context, *models.Post) error
	getByIDFn     func(context.Context, uint, uint) (*models.Post, error)
	getByUserIDFn func(context.Context, uint, int, int, uint) ([]*models.Post, error)
	feedFn        func(context.Context, string, int, int, uint) ([]*models.Post, error)
	updateFn      func(context.Context, *models.Post) error
	deleteFn      func(context.Context, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *postRepoStub) GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.getByUserIDFn(ctx, userID, limit, offset, currentUserID)
}
func (s *postRepoStub) Feed(ctx context.Context, mood string, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.feedFn(ctx, mood, limit, offset, currentUserID)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:  func(context.Context, *models.Post) error { return nil },
		getByIDFn: func(context.Context, uint, uint) (*models.Post, error) { return &models.Post{}, nil },
		getByUserIDFn: func(context.Context, uint, int, int, uint) ([]*models.Post, error) {
			return nil, nil
		},
		feedFn: func(context.Context, string, int, int, uint) ([]*models.Post, error) {
			return nil, nil
		},
		updateFn: func(context.Context, *models.Post) error { return nil },
		deleteFn: func(context.Context, uint) error { return nil },
	}
}

type reactionRepoStub struct {
	toggleFn        func(context.Context, uint, uint, models.ReactionKind, bool) (bool, error)
	hasFn           func(context.Context, uint, uint, models.ReactionKind) (bool, error)
	countsForPostFn func(context.Context, uint) (map[string]int, error)
	kindsForUserFn  func(context.Context, uint, uint) ([]string, error)
}

func (s *reactionRepoStub) Toggle(ctx context.Context, userID, postID uint, kind models.ReactionKind, exclusive bool) (bool, error) {
	return s.toggleFn(ctx, userID, postID, kind, exclusive)
}
func (s *reactionRepoStub) Has(ctx context.Context, userID, postID uint, kind models.ReactionKind) (bool, error) {
	return s.hasFn(ctx, userID, postID, kind)
}
func (s *reactionRepoStub) CountsForPost(ctx context.Context, postID uint) (map[string]int, error) {
	return s.countsForPostFn(ctx, postID)
}
func (s *reactionRepoStub) KindsForUser(ctx context.Context, userID, postID uint) ([]string, error) {
	return s.kindsForUserFn(ctx, userID, postID)
}

func noopReactionRepo() *reactionRepoStub {
	return &reactionRepoStub{
		toggleFn: func(context.Context, uint, uint, models.ReactionKind, bool) (bool, error) {
			return true, nil
		},
		hasFn:           func(context.Context, uint, uint, models.ReactionKind) (bool, error) { return false, nil },
		countsForPostFn: func(context.Context, uint) (map[string]int, error) { return nil, nil },
		kindsForUserFn:  func(context.Context, uint, uint) ([]string, error) { return nil, nil },
	}
}

type followRepoStub struct {
	followFn      func(context.Context, uint, uint) (bool, error)
	unfollowFn    func(context.Context, uint, uint) (bool, error)
	isFollowingFn func(context.Context, uint, uint) (bool, error)
	followersFn   func(context.Context, uint, int, int) ([]models.User, error)
	followingFn   func(context.Context, uint, int, int) ([]models.User, error)
	countsFn      func(context.Context, uint) (*repository.FollowCounts, error)
}

func (s *followRepoStub) Follow(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.followFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) Unfollow(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.unfollowFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.isFollowingFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) Followers(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	return s.followersFn(ctx, userID, limit, offset)
}
func (s *followRepoStub) Following(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	return s.followingFn(ctx, userID, limit, offset)
}
func (s *followRepoStub) Counts(ctx context.Context, userID uint) (*repository.FollowCounts, error) {
	return s.countsFn(ctx, userID)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		followFn:      func(context.Context, uint, uint) (bool, error) { return true, nil },
		unfollowFn:    func(context.Context, uint, uint) (bool, error) { return true, nil },
		isFollowingFn: func(context.Context, uint, uint) (bool, error) { return false, nil },
		followersFn:   func(context.Context, uint, int, int) ([]models.User, error) { return nil, nil },
		followingFn:   func(context.Context, uint, int, int) ([]models.User, error) { return nil, nil },
		countsFn: func(context.Context, uint) (*repository.FollowCounts, error) {
			return &repository.FollowCounts{}, nil
		},
	}
}

type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getProfileFn    func(context.Context, uint, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	deleteFn        func(context.Context, uint) error
	listFn          func(context.Context, int, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetProfile(ctx context.Context, id, currentUserID uint) (*models.User, error) {
	return s.getProfileFn(ctx, id, currentUserID)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(context.Context, uint) (*models.User, error) { return &models.User{}, nil },
		getProfileFn:    func(context.Context, uint, uint) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn:    func(context.Context, string) (*models.User, error) { return &models.User{}, nil },
		getByUsernameFn: func(context.Context, string) (*models.User, error) { return &models.User{}, nil },
		createFn:        func(context.Context, *models.User) error { return nil },
		updateFn:        func(context.Context, *models.User) error { return nil },
		deleteFn:        func(context.Context, uint) error { return nil },
		listFn:          func(context.Context, int, int) ([]models.User, error) { return nil, nil },
	}
}

type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, uint) (*models.Comment, error)
	listByPostFn func(context.Context, uint, int, int) ([]*models.Comment, error)
	updateFn     func(context.Context, *models.Comment) error
	deleteFn     func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint, limit, offset int) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID, limit, offset)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:     func(context.Context, *models.Comment) error { return nil },
		getByIDFn:    func(context.Context, uint) (*models.Comment, error) { return &models.Comment{}, nil },
		listByPostFn: func(context.Context, uint, int, int) ([]*models.Comment, error) { return nil, nil },
		updateFn:     func(context.Context, *models.Comment) error { return nil },
		deleteFn:     func(context.Context, uint) error { return nil },
	}
}
