package services

import (
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/models"
	"gorm.io/gorm"
)

type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

func (s *ProfileService) Me(userID uint) (*dto.ProfileResponse, error) {
	user, err := s.load(userID)
	if err != nil {
		return nil, err
	}
	return toProfile(user), nil
}

func (s *ProfileService) UpdateMe(userID uint, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	user, err := s.load(userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.Age != nil {
		updates["age"] = *req.Age
	}
	if req.Gender != nil {
		updates["gender"] = *req.Gender
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}

	if len(updates) > 0 {
		if err := s.db.Model(user).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}
	return s.Me(userID)
}

func (s *ProfileService) Public(username string) (*dto.PublicProfileResponse, error) {
	user, err := findUserByUsername(s.db, username)
	if err != nil {
		return nil, err
	}

	followers, err := countFollows(s.db, "to_user_id", user.ID)
	if err != nil {
		return nil, err
	}
	following, err := countFollows(s.db, "from_user_id", user.ID)
	if err != nil {
		return nil, err
	}

	return &dto.PublicProfileResponse{
		Username:       user.Username,
		FullName:       user.FullName,
		Age:            user.Age,
		Bio:            user.Bio,
		Email:          user.Email,
		FollowersCount: followers,
		FollowingCount: following,
	}, nil
}

func (s *ProfileService) load(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

func toProfile(user *models.User) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		ID:        user.ID,
		Username:  user.Username,
		Phone:     user.Phone,
		FullName:  user.FullName,
		Age:       user.Age,
		Gender:    user.Gender,
		Email:     user.Email,
		Bio:       user.Bio,
		CreatedAt: user.CreatedAt,
	}
}

// Find resolves a username to its account.
func (s *ProfileService) Find(username string) (*models.User, error) {
	return findUserByUsername(s.db, username)
}
