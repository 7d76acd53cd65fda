package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTier(t *testing.T) {
	for _, name := range []string{"free", "creator_plus", "growth_pro", "elite", "elite_plus"} {
		tier, err := ParseTier(name)
		require.NoError(t, err)
		assert.Equal(t, name, tier.String())
	}

	tier, err := ParseTier("")
	require.NoError(t, err)
	assert.Equal(t, TierFree, tier)

	_, err = ParseTier("elite-plus")
	assert.Error(t, err)
}

func TestCheck_ContractGenerator(t *testing.T) {
	assert.True(t, Check(FeatureContractGenerator, TierElite, 0).Allowed)
	assert.True(t, Check(FeatureContractGenerator, TierElitePlus, 0).Allowed)
	assert.False(t, Check(FeatureContractGenerator, TierGrowthPro, 0).Allowed)
	assert.False(t, Check(FeatureContractGenerator, TierFree, 0).Allowed)
}

func TestCheck_SmartEmail(t *testing.T) {
	assert.False(t, Check(FeatureSmartEmail, TierFree, 0).Allowed)
	assert.True(t, Check(FeatureSmartEmail, TierCreatorPlus, 0).Allowed)
}

func TestCheck_RateEstimatorCeiling(t *testing.T) {
	d := Check(FeatureRateEstimator, TierFree, 0)
	assert.True(t, d.Allowed)
	assert.True(t, d.Limited)
	assert.Equal(t, 1, d.Ceiling)

	d = Check(FeatureRateEstimator, TierFree, 1)
	assert.False(t, d.Allowed)
	assert.True(t, d.Limited)

	d = Check(FeatureRateEstimator, TierElite, 100)
	assert.True(t, d.Allowed)
	assert.False(t, d.Limited)
	assert.Equal(t, Unlimited, d.Ceiling)
}

func TestCardPrice(t *testing.T) {
	cases := []struct {
		tier    Tier
		card    CardType
		price   int
		allowed bool
	}{
		{TierCreatorPlus, CardPVC, 349, true},
		{TierCreatorPlus, CardGold, 0, false},
		{TierGrowthPro, CardPVC, 299, true},
		{TierGrowthPro, CardPremiumPVC, 299, true},
		{TierGrowthPro, CardMetal, 0, false},
		{TierElite, CardGold, 199, true},
		{TierElite, CardMetal, 0, false},
		{TierElitePlus, CardMetal, 0, true},
		{TierFree, CardPVC, 0, false},
	}
	for _, tc := range cases {
		price, ok := CardPrice(tc.tier, tc.card)
		assert.Equal(t, tc.allowed, ok, "%s/%s", tc.tier, tc.card)
		assert.Equal(t, tc.price, price, "%s/%s", tc.tier, tc.card)
	}
}

func TestCampaignCeiling(t *testing.T) {
	assert.Equal(t, 1, CampaignCeiling(BrandTierFree))
	assert.Equal(t, Unlimited, CampaignCeiling(BrandTierPro))
}
