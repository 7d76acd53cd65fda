package transfer

import (
	"time"

	"github.com/maheshrc27/cominiti-api/internal/models"
)

type CardOrderRequest struct {
	CardType string `json:"cardType"`
}

type CardOrder struct {
	Success  bool   `json:"success"`
	Price    int    `json:"price"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

type BrandRegistration struct {
	CompanyName    string `json:"companyName"`
	CompanyEmail   string `json:"companyEmail"`
	CompanyWebsite string `json:"companyWebsite"`
	Industry       string `json:"industry"`
	Description    string `json:"description"`
	LogoURL        string `json:"logoUrl"`
}

type CampaignCreation struct {
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	BudgetMin    int                 `json:"budgetMin"`
	BudgetMax    int                 `json:"budgetMax"`
	Requirements models.Requirements `json:"requirements"`
	Deadline     *time.Time          `json:"deadline"`
	MaxCreators  int                 `json:"maxCreators"`
}

type ApplicationSubmission struct {
	CampaignID   string `json:"campaignId"`
	Pitch        string `json:"pitch"`
	ProposedRate int    `json:"proposedRate"`
}

type ApplicationDecision struct {
	Status string `json:"status"`
}

type CampaignFilter struct {
	Niche     string
	BudgetMin *int
}
