// Package seed loads demo data for local development. Production never runs
// this; main gates the call on the environment.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"catalog-api/internal/helpers"
	"catalog-api/internal/models"
)

// Run inserts a demo admin account and a small product catalog when the
// respective collections are empty. Existing data is left untouched so a
// restart never clobbers local changes.
func Run(ctx context.Context, repo *models.MongodbRepo, logger *slog.Logger) error {
	if err := seedUsers(ctx, repo, logger); err != nil {
		return err
	}
	return seedProducts(ctx, repo, logger)
}

func seedUsers(ctx context.Context, repo *models.MongodbRepo, logger *slog.Logger) error {
	count, err := repo.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("error counting users: %v", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := helpers.HashPassword("123456")
	if err != nil {
		return err
	}

	now := time.Now()
	admin := &models.User{
		UserID:      1001,
		UserName:    "eli",
		FirstName:   "Eli",
		LastName:    "Test",
		Email:       "eli@test.com",
		BirthDate:   time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Password:    hash,
		Status:      true,
		IsAdmin:     true,
		Preferences: models.Preferences{PageSize: models.DefaultPageSize},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := repo.InsertUser(ctx, admin); err != nil {
		return err
	}
	logger.Info("seeded admin user", "user_name", admin.UserName)
	return nil
}

func seedProducts(ctx context.Context, repo *models.MongodbRepo, logger *slog.Logger) error {
	count, err := repo.CountProducts(ctx)
	if err != nil {
		return fmt.Errorf("error counting products: %v", err)
	}
	if count > 0 {
		return nil
	}

	demo := []struct {
		id          int64
		name        string
		description string
		stock       int
	}{
		{1001, "מחשב נייד HP", "מחשב נייד HP עם מעבד Intel i7, 16GB RAM, 512GB SSD", 15},
		{1002, "טלפון חכם Samsung", "טלפון חכם Samsung Galaxy S21 עם מסך 6.2 אינץ', 128GB אחסון", 20},
		{1003, "מצלמה דיגיטלית Canon", "מצלמה דיגיטלית Canon EOS R6 עם חיישן 20.1MP", 8},
		{1004, "אוזניות Bluetooth Sony", "אוזניות אלחוטיות Sony WH-1000XM4 עם ביטול רעשים", 25},
		{1005, "טאבלט iPad", "טאבלט Apple iPad Pro 12.9 עם מסך Liquid Retina XDR", 12},
	}

	now := time.Now()
	products := make([]*models.Product, 0, len(demo))
	for i, d := range demo {
		// Staggered creation dates keep the newest-first listing order
		// deterministic.
		created := now.Add(-time.Duration(len(demo)-i) * time.Minute)
		products = append(products, &models.Product{
			ProductID:          d.id,
			ProductName:        d.name,
			ProductDescription: d.description,
			ProductImage:       models.PlaceholderImage,
			CurrentStockLevel:  d.stock,
			State:              models.ProductActive,
			CreationDate:       created,
			CreatedAt:          created,
			UpdatedAt:          created,
		})
	}

	if err := repo.InsertProducts(ctx, products); err != nil {
		return err
	}
	logger.Info("seeded demo products", "count", len(products))
	return nil
}
