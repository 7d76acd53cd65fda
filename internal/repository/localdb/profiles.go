package localdb

import (
	"context"
	"time"

	"github.com/maheshrc27/cominiti-api/internal/models"
	"github.com/maheshrc27/cominiti-api/internal/repository"
)

const profilesTable = "profiles"

type profileRepository struct {
	s *Store
}

func NewProfileRepository(s *Store) repository.ProfileRepository {
	return &profileRepository{s: s}
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*models.Profile, bool, error) {
	rows, err := r.s.Select(profilesTable, Match{"id": id})
	if err != nil {
		return nil, false, err
	}
	return first[models.Profile](rows)
}

func (r *profileRepository) Create(ctx context.Context, profile *models.Profile) error {
	row, err := encode(profile)
	if err != nil {
		return err
	}
	return r.s.update(func(t tables) error {
		if len(t.find(profilesTable, Row{"id": row["id"]})) > 0 {
			return nil
		}
		t.insert(profilesTable, r.s.stamp(row, true))
		return nil
	})
}

func (r *profileRepository) UpsertLinkedAccount(ctx context.Context, account *models.LinkedAccount) error {
	_, err := r.s.Upsert(profilesTable, Match{
		"id":                     account.UserID,
		"username":               account.Username,
		"instagram_user_id":      account.InstagramUserID,
		"instagram_access_token": account.AccessToken,
		"token_expires_at":       account.TokenExpiresAt,
		"posts_count":            account.MediaCount,
		"is_onboarded":           true,
	}, "id")
	return err
}

func (r *profileRepository) GetLinkedAccount(ctx context.Context, userID string) (*models.LinkedAccount, bool, error) {
	profile, ok, err := r.GetByID(ctx, userID)
	if err != nil || !ok {
		return nil, ok, err
	}
	return linkedAccount(profile), true, nil
}

func linkedAccount(p *models.Profile) *models.LinkedAccount {
	account := &models.LinkedAccount{
		UserID:          p.ID,
		InstagramUserID: p.InstagramUserID,
		Username:        p.Username,
		AccessToken:     p.AccessToken,
		MediaCount:      p.PostsCount,
	}
	if p.TokenExpiresAt != nil {
		account.TokenExpiresAt = *p.TokenExpiresAt
	}
	return account
}

func (r *profileRepository) UpdateToken(ctx context.Context, userID, accessToken string, expiresAt time.Time) error {
	_, err := r.s.Update(profilesTable, Match{"id": userID}, Match{
		"instagram_access_token": accessToken,
		"token_expires_at":       expiresAt,
	})
	return err
}

func (r *profileRepository) UpdateInstagramStats(ctx context.Context, userID, username string, mediaCount int) error {
	_, err := r.s.Update(profilesTable, Match{"id": userID}, Match{
		"username":     username,
		"posts_count":  mediaCount,
		"is_onboarded": true,
	})
	return err
}

func (r *profileRepository) ListExpiring(ctx context.Context, before time.Time) ([]*models.LinkedAccount, error) {
	rows, err := r.s.Select(profilesTable, nil)
	if err != nil {
		return nil, err
	}
	profiles, err := decodeAll[models.Profile](rows)
	if err != nil {
		return nil, err
	}
	var accounts []*models.LinkedAccount
	for _, p := range profiles {
		if p.AccessToken == "" || p.TokenExpiresAt == nil || !p.TokenExpiresAt.Before(before) {
			continue
		}
		accounts = append(accounts, linkedAccount(p))
	}
	return accounts, nil
}

// modify runs fn on the decoded profile and writes it back in one locked pass.
func (r *profileRepository) modify(userID string, fn func(p *models.Profile) bool) (*models.Profile, bool, error) {
	var out *models.Profile
	var changed bool
	err := r.s.update(func(t tables) error {
		idx := t.find(profilesTable, mustEncode(Match{"id": userID}))
		if len(idx) == 0 {
			return nil
		}
		row := t[profilesTable][idx[0]]
		var p models.Profile
		if err := decode(row, &p); err != nil {
			return err
		}
		if changed = fn(&p); !changed {
			out = &p
			return nil
		}
		patch, err := encode(&p)
		if err != nil {
			return err
		}
		row.merge(r.s.stamp(patch, false))
		out = &p
		return nil
	})
	return out, changed, err
}

func (r *profileRepository) IncrementRateEstimatorUsage(ctx context.Context, userID string) (int, error) {
	p, _, err := r.modify(userID, func(p *models.Profile) bool {
		p.RateEstimatorUsage++
		return true
	})
	if err != nil || p == nil {
		return 0, err
	}
	return p.RateEstimatorUsage, nil
}

func (r *profileRepository) ConsumeCredit(ctx context.Context, userID string) (int, bool, error) {
	p, changed, err := r.modify(userID, func(p *models.Profile) bool {
		if p.Credits <= 0 {
			return false
		}
		p.Credits--
		return true
	})
	if err != nil || p == nil {
		return 0, false, err
	}
	return p.Credits, changed, nil
}

func (r *profileRepository) SetCreatorCard(ctx context.Context, userID, cardType, status string) error {
	_, err := r.s.Update(profilesTable, Match{"id": userID}, Match{
		"creator_card_type":   cardType,
		"creator_card_status": status,
	})
	return err
}
