package localdb

import (
	"context"

	"github.com/maheshrc27/cominiti-api/internal/models"
	"github.com/maheshrc27/cominiti-api/internal/repository"
)

const brandsTable = "brands"

type brandRepository struct {
	s *Store
}

func NewBrandRepository(s *Store) repository.BrandRepository {
	return &brandRepository{s: s}
}

func (r *brandRepository) GetByUserID(ctx context.Context, userID string) (*models.BrandAccount, bool, error) {
	rows, err := r.s.Select(brandsTable, Match{"user_id": userID})
	if err != nil {
		return nil, false, err
	}
	return first[models.BrandAccount](rows)
}

func (r *brandRepository) Create(ctx context.Context, brand *models.BrandAccount) (*models.BrandAccount, error) {
	row, err := encode(brand)
	if err != nil {
		return nil, err
	}
	var created models.BrandAccount
	err = r.s.update(func(t tables) error {
		if len(t.find(brandsTable, Row{"user_id": row["user_id"]})) > 0 {
			return ErrDuplicate
		}
		t.insert(brandsTable, r.s.stamp(row, true))
		return decode(row, &created)
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *brandRepository) SetLogo(ctx context.Context, brandID, logoURL string) error {
	_, err := r.s.Update(brandsTable, Match{"id": brandID}, Match{"logo_url": logoURL})
	return err
}

func brandSummaries(t tables) (map[string]*models.BrandSummary, error) {
	brands, err := decodeAll[models.BrandAccount](t[brandsTable])
	if err != nil {
		return nil, err
	}
	out := make(map[string]*models.BrandSummary, len(brands))
	for _, b := range brands {
		out[b.ID] = &models.BrandSummary{
			UserID:      b.UserID,
			CompanyName: b.CompanyName,
			LogoURL:     b.LogoURL,
			IsVerified:  b.IsVerified,
		}
	}
	return out, nil
}
