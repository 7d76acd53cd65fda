package service

import (
	"context"

	"github.com/maheshrc27/cominiti-api/internal/metrics"
	"github.com/maheshrc27/cominiti-api/internal/models"
	"github.com/maheshrc27/cominiti-api/internal/policy"
	"github.com/maheshrc27/cominiti-api/internal/repository"
	"github.com/maheshrc27/cominiti-api/internal/transfer"
	"go.uber.org/zap"
)

type CardService interface {
	Order(ctx context.Context, userID string, req *transfer.CardOrderRequest) (*transfer.CardOrder, error)
}

type cardService struct {
	profiles repository.ProfileRepository
}

func NewCardService(profiles repository.ProfileRepository) CardService {
	return &cardService{profiles: profiles}
}

// Order places a creator card order. Payment is not collected; a priced
// order moves straight to ordered.
func (s *cardService) Order(ctx context.Context, userID string, req *transfer.CardOrderRequest) (*transfer.CardOrder, error) {
	profile, tier, err := loadProfile(ctx, s.profiles, userID)
	if err != nil {
		return nil, err
	}
	if profile.CreatorCardStatus == models.CardStatusOrdered || profile.CreatorCardStatus == models.CardStatusShipped {
		return nil, invalid("Card already ordered")
	}

	if tier == policy.TierFree {
		metrics.PolicyDenials.WithLabelValues("creator_card").Inc()
		return nil, upgradeRequired("Upgrade required to order Creator Card")
	}

	cardType, err := policy.ParseCardType(req.CardType)
	if err != nil {
		return nil, invalid("Card type not available for your plan")
	}
	price, ok := policy.CardPrice(tier, cardType)
	if !ok {
		return nil, invalid("Card type not available for your plan")
	}

	if err := s.profiles.SetCreatorCard(ctx, userID, string(cardType), models.CardStatusOrdered); err != nil {
		return nil, failed("Failed to process order", err)
	}
	zap.L().Info("creator card ordered", zap.String("user_id", userID), zap.String("card_type", string(cardType)), zap.Int("price", price))

	return &transfer.CardOrder{
		Success:  true,
		Price:    price,
		Currency: policy.CardCurrency,
		Status:   models.CardStatusOrdered,
	}, nil
}
