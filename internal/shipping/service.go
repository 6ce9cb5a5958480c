package shipping

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rodrigocantu/tienda-backend/pkg/db/models"
	"github.com/rodrigocantu/tienda-backend/pkg/errors"
	"github.com/rodrigocantu/tienda-backend/pkg/logger"
	"github.com/rodrigocantu/tienda-backend/pkg/metrics"
	"github.com/rodrigocantu/tienda-backend/pkg/types"
)

// RuleSource yields the active rule set a quote is computed against.
type RuleSource interface {
	ActiveRules(ctx context.Context) ([]Rule, error)
}

type ruleInvalidator interface {
	Invalidate(ctx context.Context)
}

// QuoteItemRef identifies one cart line in a quote request.
type QuoteItemRef struct {
	ProductID uuid.UUID
	Qty       int
}

// QuoteRequest carries everything needed to compute shipping options.
type QuoteRequest struct {
	Destination types.Destination
	Items       []QuoteItemRef
}

// UpsertOptionInput is one carrier tier in an admin rule mutation.
type UpsertOptionInput struct {
	Carrier          string
	PriceCents       int
	DeliveryEstimate string
}

// UpsertRuleInput creates or replaces a shipping rule.
type UpsertRuleInput struct {
	ID           *uuid.UUID
	Zone         string
	IsActive     bool
	Nationwide   bool
	PostalCodes  []string
	PostalRanges []types.PostalRange

	FreeShipping         bool
	FreeMinSubtotalCents *int
	FreeMinUnits         *int
	ExtraUnitCents       *int
	ExtraKgCents         *int
	BaseIncludedKg       *float64
	MaxUnitsPerPackage   *int
	MaxWeightKg          *float64

	Options []UpsertOptionInput
}

// Service is the shipping quote and rule-administration surface.
type Service interface {
	Quote(ctx context.Context, req QuoteRequest) (*QuoteResult, error)
	ActiveRules(ctx context.Context) ([]Rule, error)
	UpsertRule(ctx context.Context, input UpsertRuleInput) (*Rule, error)
}

type service struct {
	source   RuleSource
	rules    RuleRepository
	products ProductRepository
	logg     *logger.Logger
	metrics  *metrics.ShippingMetrics
}

// NewService validates dependencies and returns the shipping service.
func NewService(source RuleSource, rules RuleRepository, products ProductRepository, logg *logger.Logger, m *metrics.ShippingMetrics) (Service, error) {
	if source == nil {
		return nil, stderrors.New("rule source required")
	}
	if rules == nil {
		return nil, stderrors.New("rule repository required")
	}
	if products == nil {
		return nil, stderrors.New("product repository required")
	}
	if logg == nil {
		return nil, stderrors.New("logger required")
	}
	return &service{
		source:   source,
		rules:    rules,
		products: products,
		logg:     logg,
		metrics:  m,
	}, nil
}

func (s *service) Quote(ctx context.Context, req QuoteRequest) (*QuoteResult, error) {
	started := time.Now()

	result, err := s.quote(ctx, req)
	switch {
	case err != nil:
		s.metrics.ObserveQuote("error", time.Since(started))
	case result.NoOptionsAvailable:
		s.metrics.ObserveQuote("no_options", time.Since(started))
	default:
		s.metrics.ObserveQuote("ok", time.Since(started))
	}
	if result != nil {
		s.metrics.AddUnshippable(len(result.UnshippableItemIDs))
	}
	return result, err
}

func (s *service) quote(ctx context.Context, req QuoteRequest) (*QuoteResult, error) {
	if len(req.Items) == 0 {
		return nil, errors.New(errors.CodeValidation, "quote requires at least one cart item")
	}

	dest := req.Destination.Normalized()
	ctx = s.logg.WithPostalCode(ctx, dest.PostalCode)

	items := make([]CartItem, 0, len(req.Items))
	for _, ref := range req.Items {
		row, err := s.products.GetByID(ctx, ref.ProductID)
		if err != nil {
			if stderrors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errors.New(errors.CodeNotFound, "product not found").
					WithDetails(map[string]string{"product_id": ref.ProductID.String()})
			}
			return nil, errors.Wrap(errors.CodeDependency, err, "loading product")
		}
		if !row.IsActive {
			return nil, errors.New(errors.CodeValidation, "product is not available").
				WithDetails(map[string]string{"product_id": ref.ProductID.String()})
		}
		items = append(items, CartItem{
			ProductID: row.ID,
			Qty:       ref.Qty,
			Product:   ProductFromModel(row),
		})
	}

	rules, err := s.source.ActiveRules(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "loading shipping rules")
	}
	for _, rule := range rules {
		if len(rule.Options) == 0 {
			ruleCtx := s.logg.WithRuleID(ctx, rule.ID)
			s.logg.Warn(ruleCtx, "shipping rule has no service options and is ignored")
		}
	}

	return ComputeQuote(items, dest, rules), nil
}

func (s *service) ActiveRules(ctx context.Context) ([]Rule, error) {
	rules, err := s.source.ActiveRules(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "loading shipping rules")
	}
	return rules, nil
}

func (s *service) UpsertRule(ctx context.Context, input UpsertRuleInput) (*Rule, error) {
	if err := validateUpsertRule(input); err != nil {
		return nil, err
	}

	model := ruleModelFromInput(input)
	saved, err := s.rules.Upsert(ctx, model)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "saving shipping rule")
	}

	if inv, ok := s.source.(ruleInvalidator); ok {
		inv.Invalidate(ctx)
	}

	ruleCtx := s.logg.WithRuleID(ctx, saved.ID.String())
	s.logg.Info(ruleCtx, "shipping rule saved")

	rule := RuleFromModel(*saved)
	return &rule, nil
}

func validateUpsertRule(input UpsertRuleInput) error {
	if input.Zone == "" {
		return errors.New(errors.CodeValidation, "rule zone is required")
	}
	if len(input.Options) == 0 {
		return errors.New(errors.CodeValidation, "rule requires at least one service option")
	}
	for i, opt := range input.Options {
		if opt.Carrier == "" {
			return errors.New(errors.CodeValidation, fmt.Sprintf("option %d: carrier is required", i))
		}
		if opt.PriceCents < 0 {
			return errors.New(errors.CodeValidation, fmt.Sprintf("option %d: price must not be negative", i))
		}
	}
	return nil
}

func ruleModelFromInput(input UpsertRuleInput) *models.ShippingRule {
	model := &models.ShippingRule{
		Zone:                 input.Zone,
		IsActive:             input.IsActive,
		Nationwide:           input.Nationwide,
		PostalCodes:          input.PostalCodes,
		PostalRanges:         input.PostalRanges,
		FreeShipping:         input.FreeShipping,
		FreeMinSubtotalCents: input.FreeMinSubtotalCents,
		FreeMinUnits:         input.FreeMinUnits,
		ExtraUnitCents:       input.ExtraUnitCents,
		ExtraKgCents:         input.ExtraKgCents,
		BaseIncludedKg:       input.BaseIncludedKg,
		MaxUnitsPerPackage:   input.MaxUnitsPerPackage,
		MaxWeightKg:          input.MaxWeightKg,
	}
	if input.ID != nil {
		model.ID = *input.ID
	}
	for i, opt := range input.Options {
		model.Options = append(model.Options, models.ShippingServiceOption{
			Position:         i,
			Carrier:          opt.Carrier,
			PriceCents:       opt.PriceCents,
			DeliveryEstimate: opt.DeliveryEstimate,
		})
	}
	return model
}
