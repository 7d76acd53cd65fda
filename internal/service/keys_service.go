package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/maheshrc27/cominiti-api/internal/models"
	"github.com/maheshrc27/cominiti-api/internal/repository"
	"github.com/maheshrc27/cominiti-api/pkg/utils"
	"go.uber.org/zap"
)

const maxApiKeys = 5

var ErrUnknownApiKey = errors.New("api key doesn't exist")

type ApiKeyService interface {
	Create(ctx context.Context, userID string) error
	List(ctx context.Context, userID string) ([]*models.ApiKey, error)
	GetUserID(ctx context.Context, apiKey string) (string, error)
	RemoveAPIKey(ctx context.Context, userID string, keyID int64) error
}

type apiKeyService struct {
	k repository.ApiKeyRepository
}

func NewApiKeyService(k repository.ApiKeyRepository) ApiKeyService {
	return &apiKeyService{
		k: k,
	}
}

func (s *apiKeyService) Create(ctx context.Context, userID string) error {
	count, err := s.k.CountByUserID(ctx, userID)
	if err != nil {
		return err
	}

	if count >= maxApiKeys {
		err = fmt.Errorf("%w: Only %d API Keys can be created.", ErrInvalidRequest, maxApiKeys)
		zap.L().Info(err.Error(), zap.String("user_id", userID))
		return err
	}

	key, err := utils.GenerateRandomKey(16)
	if err != nil {
		zap.L().Info("api key generation failed", zap.Error(err))
		return failed("Error generating API key", err)
	}

	apiKey := &models.ApiKey{
		UserID: userID,
		ApiKey: key,
	}

	_, err = s.k.Create(ctx, apiKey)
	if err != nil {
		return failed("Error saving API key", err)
	}
	return nil
}

func (s *apiKeyService) GetUserID(ctx context.Context, apiKey string) (string, error) {
	userID, isExist, err := s.k.GetByKey(ctx, apiKey)
	if err != nil {
		return "", err
	}

	if !isExist {
		return "", ErrUnknownApiKey
	}

	return userID, nil
}

func (s *apiKeyService) List(ctx context.Context, userID string) ([]*models.ApiKey, error) {
	apiKeys, err := s.k.GetByUserID(ctx, userID)
	if err != nil {
		return nil, failed("Error getting API keys", err)
	}
	return apiKeys, nil
}

func (s *apiKeyService) RemoveAPIKey(ctx context.Context, userID string, keyID int64) error {
	if userID == "" {
		return ErrNotAuthenticated
	}

	if keyID <= 0 {
		return invalid("KeyID is not valid")
	}

	isValid, err := s.k.CheckByUserID(ctx, keyID, userID)
	if err != nil {
		return err
	}

	if !isValid {
		err = fmt.Errorf("%w: Key doesn't exist", ErrNotFound)
		zap.L().Info(err.Error(), zap.Int64("key_id", keyID))
		return err
	}

	return s.k.Remove(ctx, keyID)
}
