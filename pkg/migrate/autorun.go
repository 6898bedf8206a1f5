package migrate

import (
	"context"
	"fmt"

	"github.com/angelmondragon/skuexport/pkg/config"
	"github.com/angelmondragon/skuexport/pkg/db"
	"github.com/angelmondragon/skuexport/pkg/db/models"
	"github.com/angelmondragon/skuexport/pkg/logger"
)

// MaybeRunDev prepares the catalog schema automatically when the app is running in dev
// mode and the feature flag is enabled. SQLite catalogs are migrated through GORM.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.App.IsDev() || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}

	if client.Dialect() == db.DialectSQLite {
		ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "dialect": db.DialectSQLite})
		logg.Info(ctx, "running catalog auto-migrate (dev auto-run)")
		if err := AutoMigrateCatalog(ctx, client); err != nil {
			return err
		}
		logg.Info(ctx, "catalog auto-migrate completed")
		return nil
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	meta := map[string]any{"env": cfg.App.Env, "dir": DefaultDir}
	ctx = logg.WithFields(ctx, meta)
	logg.Info(ctx, "running Goose migrations (dev auto-run)")

	if err := Run(ctx, sqlDB, DefaultDir, "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(ctx, "Goose migrations completed")
	return nil
}

// AutoMigrateCatalog creates the catalog tables through GORM.
func AutoMigrateCatalog(ctx context.Context, client *db.Client) error {
	if err := client.DB().WithContext(ctx).AutoMigrate(models.CatalogModels()...); err != nil {
		return fmt.Errorf("auto-migrating catalog: %w", err)
	}
	return nil
}
