package service

import (
	"context"

	"codenest/internal/models"
	"codenest/internal/repository"
	"codenest/internal/validation"
)

type UserService struct {
	userRepo repository.UserRepository
	engRepo  repository.EngagementRepository
}

// Profile is a user together with their engagement counts and the viewer's
// relationship to them.
type Profile struct {
	models.User
	FollowersCount int64 `json:"followers_count"`
	FollowingCount int64 `json:"following_count"`
	IsFollowing    bool  `json:"is_following"`
}

type UpdateProfileInput struct {
	UserID   uint
	Username string
	Bio      string
	Avatar   string
}

func NewUserService(userRepo repository.UserRepository, engRepo repository.EngagementRepository) *UserService {
	return &UserService{userRepo: userRepo, engRepo: engRepo}
}

func (s *UserService) GetProfile(ctx context.Context, id, viewerID uint) (*Profile, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	followers, err := s.engRepo.FollowerCount(ctx, id)
	if err != nil {
		return nil, err
	}
	following, err := s.engRepo.FollowingCount(ctx, id)
	if err != nil {
		return nil, err
	}

	profile := &Profile{
		User:           *user,
		FollowersCount: followers,
		FollowingCount: following,
	}
	if viewerID != 0 && viewerID != id {
		isFollowing, err := s.engRepo.Exists(ctx, models.EngagementFollow, viewerID, id)
		if err != nil {
			return nil, err
		}
		profile.IsFollowing = isFollowing
	}
	return profile, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	const maxBioLen = 500

	if in.Username != "" && in.Username != user.Username {
		if err := validation.ValidateUsername(in.Username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Username = in.Username
	}
	if in.Bio != "" {
		if len(in.Bio) > maxBioLen {
			return nil, models.NewValidationError("bio too long (max 500 characters)")
		}
		user.Bio = in.Bio
	}
	if in.Avatar != "" {
		user.Avatar = in.Avatar
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
