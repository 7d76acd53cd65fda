package policy

// Feature names a gated action.
type Feature string

const (
	FeatureContractGenerator Feature = "contract_generator"
	FeatureSmartEmail        Feature = "email_generator"
	FeatureRateEstimator     Feature = "rate_estimator"
)

// Unlimited marks a rule without a usage ceiling.
const Unlimited = -1

type Rule struct {
	// AllowedTiers is nil when every tier may use the feature.
	AllowedTiers map[Tier]bool
	// UsageCeiling per tier; tiers absent from the map are Unlimited.
	UsageCeiling map[Tier]int
}

var rules = map[Feature]Rule{
	FeatureContractGenerator: {
		AllowedTiers: map[Tier]bool{TierElite: true, TierElitePlus: true},
	},
	FeatureSmartEmail: {
		AllowedTiers: map[Tier]bool{TierCreatorPlus: true, TierGrowthPro: true, TierElite: true, TierElitePlus: true},
	},
	FeatureRateEstimator: {
		UsageCeiling: map[Tier]int{TierFree: 1},
	},
}

type Decision struct {
	Allowed bool
	// Limited is true when the decision was made against a usage ceiling.
	Limited bool
	Ceiling int
	Reason  string
}

// Check evaluates feature access for a tier with the given usage so far.
func Check(feature Feature, tier Tier, usage int) Decision {
	rule, ok := rules[feature]
	if !ok {
		return Decision{Reason: "unknown feature"}
	}
	if rule.AllowedTiers != nil && !rule.AllowedTiers[tier] {
		return Decision{Reason: "tier not allowed"}
	}
	ceiling, limited := rule.UsageCeiling[tier]
	if !limited {
		return Decision{Allowed: true, Ceiling: Unlimited}
	}
	if usage >= ceiling {
		return Decision{Limited: true, Ceiling: ceiling, Reason: "usage limit reached"}
	}
	return Decision{Allowed: true, Limited: true, Ceiling: ceiling}
}

// CampaignCeiling is the number of campaigns a brand tier may hold.
func CampaignCeiling(t BrandTier) int {
	if t == BrandTierFree {
		return 1
	}
	return Unlimited
}
