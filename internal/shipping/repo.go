package shipping

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rodrigocantu/tienda-backend/pkg/db/models"
)

// RuleRepository exposes shipping-rule persistence.
type RuleRepository interface {
	ListActive(ctx context.Context) ([]models.ShippingRule, error)
	Upsert(ctx context.Context, rule *models.ShippingRule) (*models.ShippingRule, error)
}

// ProductRepository loads catalog rows for quote assembly.
type ProductRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type ruleRepository struct {
	db *gorm.DB
}

// NewRuleRepository builds the GORM-backed rule repository.
func NewRuleRepository(db *gorm.DB) RuleRepository {
	return &ruleRepository{db: db}
}

func (r *ruleRepository) ListActive(ctx context.Context) ([]models.ShippingRule, error) {
	var rules []models.ShippingRule
	err := r.db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("is_active = ?", true).
		Order("created_at ASC").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *ruleRepository) Upsert(ctx context.Context, rule *models.ShippingRule) (*models.ShippingRule, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		options := rule.Options
		rule.Options = nil

		if rule.ID == uuid.Nil {
			if err := tx.Create(rule).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Save(rule).Error; err != nil {
				return err
			}
			if err := tx.Where("rule_id = ?", rule.ID).
				Delete(&models.ShippingServiceOption{}).Error; err != nil {
				return err
			}
		}

		for i := range options {
			options[i].ID = uuid.Nil
			options[i].RuleID = rule.ID
			options[i].Position = i
		}
		if len(options) > 0 {
			if err := tx.Create(&options).Error; err != nil {
				return err
			}
		}
		rule.Options = options
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rule, nil
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository builds the GORM-backed product loader.
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}
