package localdb

import (
	"context"
	"sort"

	"github.com/maheshrc27/cominiti-api/internal/models"
	"github.com/maheshrc27/cominiti-api/internal/repository"
)

const campaignsTable = "campaigns"

type campaignRepository struct {
	s *Store
}

func NewCampaignRepository(s *Store) repository.CampaignRepository {
	return &campaignRepository{s: s}
}

func (r *campaignRepository) Create(ctx context.Context, campaign *models.Campaign) (*models.Campaign, error) {
	row, err := r.s.Insert(campaignsTable, campaign)
	if err != nil {
		return nil, err
	}
	var created models.Campaign
	if err := decode(row, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *campaignRepository) GetByID(ctx context.Context, id string) (*models.Campaign, bool, error) {
	var out *models.Campaign
	err := r.s.view(func(t tables) error {
		idx := t.find(campaignsTable, mustEncode(Match{"id": id}))
		if len(idx) == 0 {
			return nil
		}
		var c models.Campaign
		if err := decode(t[campaignsTable][idx[0]], &c); err != nil {
			return err
		}
		brands, err := brandSummaries(t)
		if err != nil {
			return err
		}
		c.Brand = brands[c.BrandID]
		out = &c
		return nil
	})
	return out, out != nil, err
}

func (r *campaignRepository) ListByBrand(ctx context.Context, brandID string) ([]*models.Campaign, error) {
	var out []*models.Campaign
	err := r.s.view(func(t tables) error {
		var rows []Row
		for _, i := range t.find(campaignsTable, mustEncode(Match{"brand_id": brandID})) {
			rows = append(rows, t[campaignsTable][i])
		}
		campaigns, err := decodeAll[models.Campaign](rows)
		if err != nil {
			return err
		}
		for _, c := range campaigns {
			c.ApplicationsCount = len(t.find(applicationsTable, mustEncode(Match{"campaign_id": c.ID})))
		}
		out = campaigns
		return nil
	})
	if err != nil {
		return nil, err
	}
	newestFirst(out)
	return out, nil
}

func (r *campaignRepository) CountByBrand(ctx context.Context, brandID string) (int, error) {
	rows, err := r.s.Select(campaignsTable, Match{"brand_id": brandID})
	return len(rows), err
}

func (r *campaignRepository) ListLive(ctx context.Context, budgetMin *int) ([]*models.Campaign, error) {
	out := []*models.Campaign{}
	err := r.s.view(func(t tables) error {
		var rows []Row
		for _, i := range t.find(campaignsTable, mustEncode(Match{"status": models.CampaignStatusLive})) {
			rows = append(rows, t[campaignsTable][i])
		}
		campaigns, err := decodeAll[models.Campaign](rows)
		if err != nil {
			return err
		}
		brands, err := brandSummaries(t)
		if err != nil {
			return err
		}
		for _, c := range campaigns {
			if budgetMin != nil && c.BudgetMax < *budgetMin {
				continue
			}
			b, ok := brands[c.BrandID]
			if !ok {
				continue
			}
			summary := *b
			summary.UserID = ""
			c.Brand = &summary
			out = append(out, c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	newestFirst(out)
	return out, nil
}

func (r *campaignRepository) Update(ctx context.Context, id string, u *models.CampaignUpdate) (*models.Campaign, error) {
	patch := Match{}
	if u.Title != nil {
		patch["title"] = *u.Title
	}
	if u.Description != nil {
		patch["description"] = *u.Description
	}
	if u.BudgetMin != nil {
		patch["budget_min"] = *u.BudgetMin
	}
	if u.BudgetMax != nil {
		patch["budget_max"] = *u.BudgetMax
	}
	if u.Requirements != nil {
		patch["requirements"] = *u.Requirements
	}
	if u.Deadline != nil {
		patch["deadline"] = *u.Deadline
	}
	if u.MaxCreators != nil {
		patch["max_creators"] = *u.MaxCreators
	}
	if u.Status != nil {
		patch["status"] = *u.Status
	}
	rows, err := r.s.Update(campaignsTable, Match{"id": id}, patch)
	if err != nil {
		return nil, err
	}
	c, ok, err := first[models.Campaign](rows)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, repository.ErrNoRows
	}
	return c, nil
}

func newestFirst(campaigns []*models.Campaign) {
	sort.SliceStable(campaigns, func(i, j int) bool {
		return campaigns[i].CreatedAt.After(campaigns[j].CreatedAt)
	})
}
