package policy

import (
	"fmt"
	"strings"
)

// Tier is a creator subscription plan.
type Tier int

const (
	TierFree Tier = iota
	TierCreatorPlus
	TierGrowthPro
	TierElite
	TierElitePlus
)

var tierNames = map[Tier]string{
	TierFree:        "free",
	TierCreatorPlus: "creator_plus",
	TierGrowthPro:   "growth_pro",
	TierElite:       "elite",
	TierElitePlus:   "elite_plus",
}

func (t Tier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

// ParseTier maps a stored tier string to a Tier. An empty string is the free
// plan; anything else unknown is an error rather than a silent downgrade.
func ParseTier(s string) (Tier, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return TierFree, nil
	}
	for t, name := range tierNames {
		if name == s {
			return t, nil
		}
	}
	return TierFree, fmt.Errorf("unknown subscription tier %q", s)
}

// BrandTier is a brand account plan.
type BrandTier int

const (
	BrandTierFree BrandTier = iota
	BrandTierPro
)

func (t BrandTier) String() string {
	switch t {
	case BrandTierFree:
		return "free"
	case BrandTierPro:
		return "pro"
	}
	return fmt.Sprintf("brand_tier(%d)", int(t))
}

func ParseBrandTier(s string) (BrandTier, error) {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "", "free":
		return BrandTierFree, nil
	case "pro":
		return BrandTierPro, nil
	}
	return BrandTierFree, fmt.Errorf("unknown brand tier %q", s)
}
