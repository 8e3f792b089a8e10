package main

import (
	"flag"
	"os"

	"github.com/ckobasti77/alati-sub000/internal/domain/catalog"
	"github.com/ckobasti77/alati-sub000/internal/domain/partner"
	"github.com/ckobasti77/alati-sub000/internal/domain/shared"
	"github.com/ckobasti77/alati-sub000/internal/infrastructure/config"
	"github.com/ckobasti77/alati-sub000/internal/infrastructure/logger"
	"github.com/ckobasti77/alati-sub000/internal/infrastructure/persistence"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	var (
		seed     bool
		logLevel string
	)
	flag.BoolVar(&seed, "seed", false, "Insert demo catalog data after migrating (skipped when products already exist)")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	log := logger.New(logLevel, "console", "stdout")
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(logLevel))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}
	log.Info("Schema migrated")

	if seed {
		if err := seedCatalog(db, log); err != nil {
			log.Error("Seeding failed", zap.Error(err))
			os.Exit(1)
		}
	}
}

// seedCatalog inserts a small demo catalog into each scope. It is a no-op
// when any products already exist, so running it twice is safe.
func seedCatalog(db *persistence.Database, log *zap.Logger) error {
	var count int64
	if err := db.DB.Model(&catalog.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info("Catalog already populated, skipping seed", zap.Int64("products", count))
		return nil
	}

	for _, scope := range shared.AllScopes() {
		supplier, err := partner.NewSupplier(scope, "Veleprodaja Jug")
		if err != nil {
			return err
		}
		supplier.Phone = "+381641234567"
		if err := db.DB.Create(supplier).Error; err != nil {
			return err
		}

		product, err := catalog.NewProduct(scope, "Brusilica 125mm",
			decimal.NewFromInt(900), decimal.NewFromInt(1500))
		if err != nil {
			return err
		}
		salePrice := decimal.NewFromInt(2200)
		if _, err := product.AddVariant("750W", nil, &salePrice); err != nil {
			return err
		}
		if _, err := product.AddOffer(supplier.ID, nil, decimal.NewFromInt(900)); err != nil {
			return err
		}
		if err := db.DB.Create(product).Error; err != nil {
			return err
		}

		log.Info("Seeded demo catalog",
			zap.String("scope", string(scope)),
			zap.String("supplier", supplier.Name),
			zap.String("product", product.Name))
	}
	return nil
}
