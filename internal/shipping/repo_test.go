package shipping

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/rodrigocantu/tienda-backend/pkg/db/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.ShippingRule{},
		&models.ShippingServiceOption{},
		&models.Product{},
	))
	return db
}

func seedRule(t *testing.T, repo RuleRepository, zone string, active bool) *models.ShippingRule {
	t.Helper()

	saved, err := repo.Upsert(context.Background(), &models.ShippingRule{
		Zone:       zone,
		IsActive:   active,
		Nationwide: true,
		Options: []models.ShippingServiceOption{
			{Carrier: "Estafeta", PriceCents: 15000, DeliveryEstimate: "3 a 5 días"},
			{Carrier: "DHL", PriceCents: 25000, DeliveryEstimate: "1 a 2 días"},
		},
	})
	require.NoError(t, err)
	return saved
}

func TestRuleRepositoryListActive(t *testing.T) {
	repo := NewRuleRepository(openTestDB(t))

	seedRule(t, repo, "Nacional", true)
	seedRule(t, repo, "Descontinuada", false)

	rules, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, rules, 1)
	require.Equal(t, "Nacional", rules[0].Zone)

	require.Len(t, rules[0].Options, 2)
	require.Equal(t, "Estafeta", rules[0].Options[0].Carrier)
	require.Equal(t, 0, rules[0].Options[0].Position)
	require.Equal(t, 1, rules[0].Options[1].Position)
}

func TestRuleRepositoryUpsertReplacesOptions(t *testing.T) {
	db := openTestDB(t)
	repo := NewRuleRepository(db)

	created := seedRule(t, repo, "Nacional", true)
	require.NotEqual(t, uuid.Nil, created.ID)

	updated, err := repo.Upsert(context.Background(), &models.ShippingRule{
		ID:         created.ID,
		Zone:       "Nacional",
		IsActive:   true,
		Nationwide: true,
		Options: []models.ShippingServiceOption{
			{Carrier: "Paquetexpress", PriceCents: 12000, DeliveryEstimate: "4 a 6 días"},
		},
	})
	require.NoError(t, err)
	require.Equal(t, created.ID, updated.ID)

	rules, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, rules, 1)
	require.Len(t, rules[0].Options, 1)
	require.Equal(t, "Paquetexpress", rules[0].Options[0].Carrier)

	var count int64
	require.NoError(t, db.Model(&models.ShippingServiceOption{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestRuleRepositoryPersistsCoverageColumns(t *testing.T) {
	repo := NewRuleRepository(openTestDB(t))

	saved, err := repo.Upsert(context.Background(), &models.ShippingRule{
		Zone:        "Norte",
		IsActive:    true,
		PostalCodes: []string{"64000", "64010"},
		Options: []models.ShippingServiceOption{
			{Carrier: "Mensajería", PriceCents: 5000},
		},
	})
	require.NoError(t, err)

	rules, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, rules, 1)
	require.Equal(t, saved.ID, rules[0].ID)
	require.Equal(t, []string{"64000", "64010"}, []string(rules[0].PostalCodes))
}

func TestProductRepositoryGetByID(t *testing.T) {
	db := openTestDB(t)
	repo := NewProductRepository(db)

	weight := 2.5
	product := &models.Product{
		Title:      "Silla",
		PriceCents: 150000,
		WeightKg:   &weight,
		IsActive:   true,
	}
	require.NoError(t, db.Create(product).Error)

	loaded, err := repo.GetByID(context.Background(), product.ID)
	require.NoError(t, err)
	require.Equal(t, "Silla", loaded.Title)
	require.NotNil(t, loaded.WeightKg)

	_, err = repo.GetByID(context.Background(), uuid.New())
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
