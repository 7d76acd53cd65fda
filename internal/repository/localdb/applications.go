package localdb

import (
	"context"
	"sort"

	"github.com/maheshrc27/cominiti-api/internal/models"
	"github.com/maheshrc27/cominiti-api/internal/repository"
)

const applicationsTable = "campaign_applications"

type applicationRepository struct {
	s *Store
}

func NewApplicationRepository(s *Store) repository.ApplicationRepository {
	return &applicationRepository{s: s}
}

func (r *applicationRepository) Create(ctx context.Context, app *models.CampaignApplication) (*models.CampaignApplication, error) {
	row, err := encode(app)
	if err != nil {
		return nil, err
	}
	var created models.CampaignApplication
	err = r.s.update(func(t tables) error {
		if len(t.find(applicationsTable, Row{"campaign_id": row["campaign_id"], "creator_id": row["creator_id"]})) > 0 {
			return ErrDuplicate
		}
		t.insert(applicationsTable, r.s.stamp(row, true))
		return decode(row, &created)
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *applicationRepository) GetByID(ctx context.Context, id string) (*models.CampaignApplication, bool, error) {
	rows, err := r.s.Select(applicationsTable, Match{"id": id})
	if err != nil {
		return nil, false, err
	}
	return first[models.CampaignApplication](rows)
}

func (r *applicationRepository) Exists(ctx context.Context, campaignID, creatorID string) (bool, error) {
	rows, err := r.s.Select(applicationsTable, Match{"campaign_id": campaignID, "creator_id": creatorID})
	return len(rows) > 0, err
}

func (r *applicationRepository) CountByStatus(ctx context.Context, campaignID, status string) (int, error) {
	rows, err := r.s.Select(applicationsTable, Match{"campaign_id": campaignID, "status": status})
	return len(rows), err
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, id, status string) (*models.CampaignApplication, error) {
	rows, err := r.s.Update(applicationsTable, Match{"id": id}, Match{"status": status})
	if err != nil {
		return nil, err
	}
	app, ok, err := first[models.CampaignApplication](rows)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, repository.ErrNoRows
	}
	return app, nil
}

func (r *applicationRepository) ListByCampaign(ctx context.Context, campaignID string) ([]*models.ApplicationWithCreator, error) {
	var out []*models.ApplicationWithCreator
	err := r.s.view(func(t tables) error {
		profiles, err := decodeAll[models.Profile](t[profilesTable])
		if err != nil {
			return err
		}
		byID := make(map[string]*models.Profile, len(profiles))
		for _, p := range profiles {
			byID[p.ID] = p
		}
		for _, i := range t.find(applicationsTable, mustEncode(Match{"campaign_id": campaignID})) {
			var app models.ApplicationWithCreator
			if err := decode(t[applicationsTable][i], &app.CampaignApplication); err != nil {
				return err
			}
			p, ok := byID[app.CreatorID]
			if !ok {
				continue
			}
			app.Creator = models.CreatorSummary{
				ID:             p.ID,
				Username:       p.Username,
				FullName:       p.FullName,
				AvatarURL:      p.AvatarURL,
				FollowersCount: p.FollowersCount,
				Rating:         p.Rating,
			}
			out = append(out, &app)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if out == nil {
		out = []*models.ApplicationWithCreator{}
	}
	return out, nil
}

func (r *applicationRepository) ListByCreator(ctx context.Context, creatorID string) ([]*models.ApplicationWithCampaign, error) {
	var out []*models.ApplicationWithCampaign
	err := r.s.view(func(t tables) error {
		campaigns, err := decodeAll[models.Campaign](t[campaignsTable])
		if err != nil {
			return err
		}
		byID := make(map[string]*models.Campaign, len(campaigns))
		for _, c := range campaigns {
			byID[c.ID] = c
		}
		brands, err := brandSummaries(t)
		if err != nil {
			return err
		}
		for _, i := range t.find(applicationsTable, mustEncode(Match{"creator_id": creatorID})) {
			var app models.ApplicationWithCampaign
			if err := decode(t[applicationsTable][i], &app.CampaignApplication); err != nil {
				return err
			}
			c, ok := byID[app.CampaignID]
			if !ok {
				continue
			}
			app.Campaign = models.CampaignRef{
				ID:        c.ID,
				Title:     c.Title,
				BudgetMin: c.BudgetMin,
				BudgetMax: c.BudgetMax,
				Deadline:  c.Deadline,
			}
			if b, ok := brands[c.BrandID]; ok {
				app.Campaign.Brand = models.BrandSummary{CompanyName: b.CompanyName, LogoURL: b.LogoURL, IsVerified: b.IsVerified}
			}
			out = append(out, &app)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if out == nil {
		out = []*models.ApplicationWithCampaign{}
	}
	return out, nil
}
