package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rodrigocantu/tienda-backend/api/responses"
	"github.com/rodrigocantu/tienda-backend/api/validators"
	"github.com/rodrigocantu/tienda-backend/internal/shipping"
	pkgerrors "github.com/rodrigocantu/tienda-backend/pkg/errors"
	"github.com/rodrigocantu/tienda-backend/pkg/logger"
	"github.com/rodrigocantu/tienda-backend/pkg/types"
)

// ShippingQuote computes the shipping combinations for a cart and address.
func ShippingQuote(svc shipping.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shipping service unavailable"))
			return
		}

		var payload quoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Quote(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newQuoteResponse(result))
	}
}

// ShippingRulesList returns the active rule set for the admin panel.
func ShippingRulesList(svc shipping.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shipping service unavailable"))
			return
		}

		rules, err := svc.ActiveRules(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]ruleResponse, 0, len(rules))
		for _, rule := range rules {
			out = append(out, newRuleResponse(rule))
		}
		responses.WriteSuccess(w, out)
	}
}

// ShippingRuleCreate registers a new shipping rule.
func ShippingRuleCreate(svc shipping.Service, logg *logger.Logger) http.HandlerFunc {
	return upsertRuleHandler(svc, logg, false)
}

// ShippingRuleUpdate replaces an existing rule, options included.
func ShippingRuleUpdate(svc shipping.Service, logg *logger.Logger) http.HandlerFunc {
	return upsertRuleHandler(svc, logg, true)
}

func upsertRuleHandler(svc shipping.Service, logg *logger.Logger, withID bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shipping service unavailable"))
			return
		}

		var ruleID *uuid.UUID
		if withID {
			parsed, err := uuid.Parse(chi.URLParam(r, "id"))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid rule id"))
				return
			}
			ruleID = &parsed
		}

		var payload upsertRuleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rule, err := svc.UpsertRule(r.Context(), payload.toInput(ruleID))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status := http.StatusOK
		if !withID {
			status = http.StatusCreated
		}
		responses.WriteSuccessStatus(w, status, newRuleResponse(*rule))
	}
}

type quoteRequest struct {
	PostalCode string             `json:"postal_code" validate:"required"`
	State      string             `json:"state"`
	Items      []quoteItemPayload `json:"items" validate:"required,min=1,dive"`
}

type quoteItemPayload struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Qty       int       `json:"qty" validate:"required,min=1"`
}

func (r quoteRequest) toInput() shipping.QuoteRequest {
	items := make([]shipping.QuoteItemRef, len(r.Items))
	for i, payload := range r.Items {
		items[i] = shipping.QuoteItemRef{ProductID: payload.ProductID, Qty: payload.Qty}
	}
	return shipping.QuoteRequest{
		Destination: types.Destination{PostalCode: r.PostalCode, State: r.State},
		Items:       items,
	}
}

type upsertRuleRequest struct {
	Zone         string               `json:"zone" validate:"required"`
	IsActive     *bool                `json:"is_active"`
	Nationwide   bool                 `json:"nationwide"`
	PostalCodes  []string             `json:"postal_codes"`
	PostalRanges []postalRangePayload `json:"postal_ranges" validate:"dive"`

	FreeShipping         bool     `json:"free_shipping"`
	FreeMinSubtotalCents *int     `json:"free_min_subtotal_cents" validate:"omitempty,min=0"`
	FreeMinUnits         *int     `json:"free_min_units" validate:"omitempty,min=1"`
	ExtraUnitCents       *int     `json:"extra_unit_cents" validate:"omitempty,min=0"`
	ExtraKgCents         *int     `json:"extra_kg_cents" validate:"omitempty,min=0"`
	BaseIncludedKg       *float64 `json:"base_included_kg" validate:"omitempty,min=0"`
	MaxUnitsPerPackage   *int     `json:"max_units_per_package" validate:"omitempty,min=1"`
	MaxWeightKg          *float64 `json:"max_weight_kg" validate:"omitempty,gt=0"`

	Options []ruleOptionPayload `json:"options" validate:"required,min=1,dive"`
}

type postalRangePayload struct {
	From string `json:"from" validate:"required"`
	To   string `json:"to" validate:"required"`
}

type ruleOptionPayload struct {
	Carrier          string `json:"carrier" validate:"required"`
	PriceCents       int    `json:"price_cents" validate:"min=0"`
	DeliveryEstimate string `json:"delivery_estimate"`
}

func (r upsertRuleRequest) toInput(id *uuid.UUID) shipping.UpsertRuleInput {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}

	ranges := make([]types.PostalRange, len(r.PostalRanges))
	for i, payload := range r.PostalRanges {
		ranges[i] = types.PostalRange{From: payload.From, To: payload.To}
	}

	options := make([]shipping.UpsertOptionInput, len(r.Options))
	for i, payload := range r.Options {
		options[i] = shipping.UpsertOptionInput{
			Carrier:          payload.Carrier,
			PriceCents:       payload.PriceCents,
			DeliveryEstimate: payload.DeliveryEstimate,
		}
	}

	return shipping.UpsertRuleInput{
		ID:                   id,
		Zone:                 r.Zone,
		IsActive:             active,
		Nationwide:           r.Nationwide,
		PostalCodes:          r.PostalCodes,
		PostalRanges:         ranges,
		FreeShipping:         r.FreeShipping,
		FreeMinSubtotalCents: r.FreeMinSubtotalCents,
		FreeMinUnits:         r.FreeMinUnits,
		ExtraUnitCents:       r.ExtraUnitCents,
		ExtraKgCents:         r.ExtraKgCents,
		BaseIncludedKg:       r.BaseIncludedKg,
		MaxUnitsPerPackage:   r.MaxUnitsPerPackage,
		MaxWeightKg:          r.MaxWeightKg,
		Options:              options,
	}
}
