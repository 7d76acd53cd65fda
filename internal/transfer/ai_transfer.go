package transfer

import "encoding/json"

type ContractRequest struct {
	SponsorName  string `json:"sponsorName"`
	Deliverables string `json:"deliverables"`
	PaymentTerms string `json:"paymentTerms"`
	Exclusivity  string `json:"exclusivity"`
	Jurisdiction string `json:"jurisdiction"`
}

type Contract struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type EmailRequest struct {
	Type      string          `json:"type"`
	Context   string          `json:"context"`
	Tone      string          `json:"tone"`
	Recipient string          `json:"recipient"`
	Details   json.RawMessage `json:"details"`
}

type Email struct {
	Subject    string `json:"subject"`
	Body       string `json:"body"`
	IsTemplate bool   `json:"isTemplate"`
}

type RateRequest struct {
	Niche        string  `json:"niche"`
	Followers    int64   `json:"followers"`
	Engagement   float64 `json:"engagement"`
	Deliverables string  `json:"deliverables"`
}

type RateEstimate struct {
	MinRate       float64 `json:"minRate"`
	MaxRate       float64 `json:"maxRate"`
	Currency      string  `json:"currency"`
	Justification string  `json:"justification"`
}

// RateResult carries the estimate and the caller's usage: a count for
// metered tiers, nil for unlimited ones.
type RateResult struct {
	Estimate *RateEstimate
	Usage    *int
}

type PortfolioRequest struct {
	Message string `json:"message"`
}

type PortfolioDesign struct {
	Theme        string   `json:"theme"`
	ColorPalette []string `json:"colorPalette"`
	Typography   string   `json:"typography"`
	Layout       string   `json:"layout"`
	Tagline      string   `json:"tagline"`
}

type PortfolioResult struct {
	Design           *PortfolioDesign
	RemainingCredits int
}
