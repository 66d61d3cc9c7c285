package main

import (
	"context"
	"time"

	"github.com/pgvector/pgvector-go"

	"github.com/artisy/storefront/internal/catalog/domain"
	"github.com/artisy/storefront/internal/config"
	"github.com/artisy/storefront/internal/embedding"
	"github.com/artisy/storefront/pkg/database"
	"github.com/artisy/storefront/pkg/logger"
)

const batchSize = 50

// Backfills the embedding column for products that do not have one yet.
// Safe to re-run; it only touches rows where embedding IS NULL.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init("storefront-embeddings", true)
		logger.Logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init("storefront-embeddings", cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)

	if err := cfg.RequireOpenAI(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Embedding backfill needs an OpenAI key")
	}

	db, err := database.NewGormConnection(cfg.DB)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	client := embedding.NewClient(cfg.OpenAIAPIKey)
	ctx := context.Background()

	var processed, failed int
	for {
		var products []domain.Product
		err := db.Where("embedding IS NULL").
			Order("id").
			Limit(batchSize).
			Find(&products).Error
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to list products")
		}
		if len(products) == 0 {
			break
		}

		batchProcessed := 0
		for _, product := range products {
			text := product.Name + " " + product.Description
			vector, err := client.Embed(ctx, text)
			if err != nil {
				failed++
				logger.Logger.Error().Err(err).Uint("product_id", product.ID).Msg("Failed to embed product")
				continue
			}

			v := pgvector.NewVector(vector)
			err = db.Model(&domain.Product{}).
				Where("id = ?", product.ID).
				Update("embedding", v).Error
			if err != nil {
				failed++
				logger.Logger.Error().Err(err).Uint("product_id", product.ID).Msg("Failed to store embedding")
				continue
			}

			processed++
			batchProcessed++
			logger.Logger.Info().Uint("product_id", product.ID).Str("name", product.Name).Msg("Product embedded")

			// Stay well under the API rate limit
			time.Sleep(200 * time.Millisecond)
		}

		// A fully failed batch would repeat forever
		if batchProcessed == 0 {
			logger.Logger.Fatal().Int("failed", failed).Msg("Entire batch failed, aborting")
		}
	}

	logger.Logger.Info().Int("processed", processed).Int("failed", failed).Msg("Embedding backfill complete")
}
