package policy

import "fmt"

type CardType string

const (
	CardPVC        CardType = "pvc"
	CardPremiumPVC CardType = "premium_pvc"
	CardGold       CardType = "gold"
	CardMetal      CardType = "metal"
)

const CardCurrency = "INR"

func ParseCardType(s string) (CardType, error) {
	switch c := CardType(s); c {
	case CardPVC, CardPremiumPVC, CardGold, CardMetal:
		return c, nil
	}
	return "", fmt.Errorf("unknown card type %q", s)
}

// cardPrices holds the creator card price in INR per tier and card type. A
// missing entry means the type is not offered on that plan.
var cardPrices = map[Tier]map[CardType]int{
	TierCreatorPlus: {CardPVC: 349},
	TierGrowthPro:   {CardPVC: 299, CardPremiumPVC: 299},
	TierElite:       {CardPVC: 199, CardPremiumPVC: 199, CardGold: 199},
	TierElitePlus:   {CardPVC: 0, CardPremiumPVC: 0, CardGold: 0, CardMetal: 0},
}

// CardPrice returns the price of the card for the tier and whether the tier
// may order it.
func CardPrice(t Tier, c CardType) (int, bool) {
	price, ok := cardPrices[t][c]
	return price, ok
}
