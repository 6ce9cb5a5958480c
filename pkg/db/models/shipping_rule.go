package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rodrigocantu/tienda-backend/pkg/types"
)

// ShippingRule is a named coverage zone ("Local", "Nacional") with its own
// pricing policy and an ordered list of carrier service options.
type ShippingRule struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Zone     string    `gorm:"column:zone;not null"`
	IsActive bool      `gorm:"column:is_active;not null;default:true"`

	Nationwide   bool                 `gorm:"column:nationwide;not null;default:false"`
	PostalCodes  types.PostalCodeList `gorm:"column:postal_codes"`
	PostalRanges types.PostalRanges   `gorm:"column:postal_ranges;type:jsonb"`

	FreeShipping         bool     `gorm:"column:free_shipping;not null;default:false"`
	FreeMinSubtotalCents *int     `gorm:"column:free_min_subtotal_cents"`
	FreeMinUnits         *int     `gorm:"column:free_min_units"`
	ExtraUnitCents       *int     `gorm:"column:extra_unit_cents"`
	ExtraKgCents         *int     `gorm:"column:extra_kg_cents"`
	BaseIncludedKg       *float64 `gorm:"column:base_included_kg;type:numeric(8,3)"`
	MaxUnitsPerPackage   *int     `gorm:"column:max_units_per_package"`
	MaxWeightKg          *float64 `gorm:"column:max_weight_kg;type:numeric(8,3)"`

	Options []ShippingServiceOption `gorm:"foreignKey:RuleID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// ShippingServiceOption is one carrier tier offered under a rule.
type ShippingServiceOption struct {
	ID               uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	RuleID           uuid.UUID `gorm:"column:rule_id;type:uuid;not null"`
	Position         int       `gorm:"column:position;not null;default:0"`
	Carrier          string    `gorm:"column:carrier;not null"`
	PriceCents       int       `gorm:"column:price_cents;not null"`
	DeliveryEstimate string    `gorm:"column:delivery_estimate"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (r *ShippingRule) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (o *ShippingServiceOption) BeforeCreate(_ *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
