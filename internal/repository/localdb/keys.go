package localdb

import (
	"context"

	"github.com/maheshrc27/cominiti-api/internal/models"
	"github.com/maheshrc27/cominiti-api/internal/repository"
)

const apiKeysTable = "api_keys"

type apiKeyRepository struct {
	s *Store
}

func NewApiKeyRepository(s *Store) repository.ApiKeyRepository {
	return &apiKeyRepository{s: s}
}

func (r *apiKeyRepository) GetByKey(ctx context.Context, apiKey string) (string, bool, error) {
	rows, err := r.s.Select(apiKeysTable, Match{"api_key": apiKey})
	if err != nil {
		return "", false, err
	}
	key, ok, err := first[models.ApiKey](rows)
	if err != nil || !ok {
		return "", false, err
	}
	return key.UserID, true, nil
}

func (r *apiKeyRepository) GetByUserID(ctx context.Context, userID string) ([]*models.ApiKey, error) {
	rows, err := r.s.Select(apiKeysTable, Match{"user_id": userID})
	if err != nil {
		return nil, err
	}
	return decodeAll[models.ApiKey](rows)
}

func (r *apiKeyRepository) CountByUserID(ctx context.Context, userID string) (int, error) {
	rows, err := r.s.Select(apiKeysTable, Match{"user_id": userID})
	return len(rows), err
}

// Create assigns the next numeric id, mirroring the bigserial column.
func (r *apiKeyRepository) Create(ctx context.Context, apiKey *models.ApiKey) (int64, error) {
	var id int64
	err := r.s.update(func(t tables) error {
		for _, row := range t[apiKeysTable] {
			var k models.ApiKey
			if err := decode(row, &k); err != nil {
				return err
			}
			if k.ApiKey == apiKey.ApiKey {
				return ErrDuplicate
			}
			if k.ID > id {
				id = k.ID
			}
		}
		id++
		key := *apiKey
		key.ID = id
		row, err := encode(&key)
		if err != nil {
			return err
		}
		t.insert(apiKeysTable, r.s.stamp(row, true))
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *apiKeyRepository) CheckByUserID(ctx context.Context, keyID int64, userID string) (bool, error) {
	rows, err := r.s.Select(apiKeysTable, Match{"id": keyID, "user_id": userID})
	return len(rows) > 0, err
}

func (r *apiKeyRepository) Remove(ctx context.Context, id int64) error {
	_, err := r.s.Delete(apiKeysTable, Match{"id": id})
	return err
}
