package controllers

import (
	"github.com/shopspring/decimal"

	"github.com/rodrigocantu/tienda-backend/internal/shipping"
)

type quoteResponse struct {
	Combinations       []combinationResponse `json:"combinations"`
	NoOptionsAvailable bool                  `json:"no_options_available"`
	UnshippableItemIDs []string              `json:"unshippable_item_ids,omitempty"`
	Explanation        string                `json:"explanation,omitempty"`
}

type combinationResponse struct {
	ID                string              `json:"id"`
	Label             string              `json:"label"`
	TotalCents        int                 `json:"total_cents"`
	Total             string              `json:"total"`
	FullyFree         bool                `json:"fully_free"`
	CoversAllProducts bool                `json:"covers_all_products"`
	Mixed             bool                `json:"is_mixed"`
	Recommended       bool                `json:"recommended"`
	Selections        []selectionResponse `json:"selections"`
}

type selectionResponse struct {
	RuleID       string         `json:"rule_id"`
	Zone         string         `json:"zone"`
	Option       optionResponse `json:"option"`
	PriceCents   int            `json:"price_cents"`
	Price        string         `json:"price"`
	FreeReason   string         `json:"free_reason,omitempty"`
	LimitWarning string         `json:"limit_warning,omitempty"`
	ItemIDs      []string       `json:"item_ids"`
}

type optionResponse struct {
	ID               string `json:"id"`
	Carrier          string `json:"carrier"`
	PriceCents       int    `json:"price_cents"`
	Price            string `json:"price"`
	DeliveryEstimate string `json:"delivery_estimate,omitempty"`
}

type ruleResponse struct {
	ID           string           `json:"id"`
	Zone         string           `json:"zone"`
	Active       bool             `json:"active"`
	Nationwide   bool             `json:"nationwide"`
	PostalCodes  []string         `json:"postal_codes,omitempty"`
	PostalRanges any              `json:"postal_ranges,omitempty"`
	FreeShipping bool             `json:"free_shipping"`
	Options      []optionResponse `json:"options"`
}

// displayAmount renders integer cents as a fixed two-decimal money string.
func displayAmount(cents int) string {
	return decimal.NewFromInt(int64(cents)).Shift(-2).StringFixed(2)
}

func newQuoteResponse(result *shipping.QuoteResult) quoteResponse {
	out := quoteResponse{
		NoOptionsAvailable: result.NoOptionsAvailable,
		UnshippableItemIDs: result.UnshippableItemIDs,
		Explanation:        result.Explanation,
	}
	out.Combinations = make([]combinationResponse, 0, len(result.Combinations))
	for _, combo := range result.Combinations {
		out.Combinations = append(out.Combinations, newCombinationResponse(combo))
	}
	return out
}

func newCombinationResponse(combo shipping.Combination) combinationResponse {
	selections := make([]selectionResponse, 0, len(combo.Selections))
	for _, sel := range combo.Selections {
		selections = append(selections, selectionResponse{
			RuleID:       sel.RuleID,
			Zone:         sel.Zone,
			Option:       newOptionResponse(sel.Option),
			PriceCents:   sel.PriceCents,
			Price:        displayAmount(sel.PriceCents),
			FreeReason:   sel.FreeReason,
			LimitWarning: sel.LimitWarning,
			ItemIDs:      sel.ItemKeys,
		})
	}
	return combinationResponse{
		ID:                combo.ID,
		Label:             combo.Label,
		TotalCents:        combo.TotalCents,
		Total:             displayAmount(combo.TotalCents),
		FullyFree:         combo.FullyFree,
		CoversAllProducts: combo.CoversAllProducts,
		Mixed:             combo.Mixed,
		Recommended:       combo.Recommended,
		Selections:        selections,
	}
}

func newOptionResponse(opt shipping.ServiceOption) optionResponse {
	return optionResponse{
		ID:               opt.ID,
		Carrier:          opt.Carrier,
		PriceCents:       opt.PriceCents,
		Price:            displayAmount(opt.PriceCents),
		DeliveryEstimate: opt.DeliveryEstimate,
	}
}

func newRuleResponse(rule shipping.Rule) ruleResponse {
	options := make([]optionResponse, 0, len(rule.Options))
	for _, opt := range rule.Options {
		options = append(options, newOptionResponse(opt))
	}
	out := ruleResponse{
		ID:           rule.ID,
		Zone:         rule.Zone,
		Active:       rule.Active,
		Nationwide:   rule.Nationwide,
		PostalCodes:  rule.PostalCodes,
		FreeShipping: rule.FreeShipping,
		Options:      options,
	}
	if len(rule.PostalRanges) > 0 {
		out.PostalRanges = rule.PostalRanges
	}
	return out
}
