package service

import (
	"context"
	"fmt"

	"github.com/maheshrc27/cominiti-api/internal/models"
	"github.com/maheshrc27/cominiti-api/internal/repository"
	"go.uber.org/zap"
)

type UserService interface {
	GetUserInfo(ctx context.Context, id string) (*models.User, error)
	GetProfile(ctx context.Context, id string) (*models.Profile, error)
}

type userService struct {
	u repository.UserRepository
	p repository.ProfileRepository
}

func NewUserService(u repository.UserRepository, p repository.ProfileRepository) UserService {
	return &userService{
		u: u,
		p: p,
	}
}

func (s *userService) GetUserInfo(ctx context.Context, id string) (*models.User, error) {
	user, isExist, err := s.u.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user info: %w", err)
	}

	if !isExist {
		zap.L().Info("user not found", zap.String("user_id", id))
		return nil, fmt.Errorf("%w: User doesn't exist", ErrNotFound)
	}

	return user, nil
}

func (s *userService) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	profile, ok, err := s.p.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: Profile not found", ErrNotFound)
	}
	return profile, nil
}
