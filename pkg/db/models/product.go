package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rodrigocantu/tienda-backend/pkg/types"
)

// Product is the catalog listing slice the shipping engine reads. Weight may
// be absent on older documents; the engine substitutes its 1 kg default.
type Product struct {
	ID               uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	Title            string         `gorm:"column:title;not null"`
	PriceCents       int            `gorm:"column:price_cents;not null"`
	WeightKg         *float64       `gorm:"column:weight_kg;type:numeric(8,3)"`
	ShippingRuleRefs types.RuleRefs `gorm:"column:shipping_rule_refs;type:jsonb"`
	IsActive         bool           `gorm:"column:is_active;not null;default:true"`
	CreatedAt        time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *Product) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
