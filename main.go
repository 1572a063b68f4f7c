package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/TeamPaintbrush/thejerktracker/configs"
	"github.com/TeamPaintbrush/thejerktracker/middlewares"
	"github.com/TeamPaintbrush/thejerktracker/migration"
	"github.com/TeamPaintbrush/thejerktracker/routes"
	"github.com/TeamPaintbrush/thejerktracker/store"
	"github.com/TeamPaintbrush/thejerktracker/store/boltstore"
	"github.com/TeamPaintbrush/thejerktracker/store/gormstore"
	"github.com/TeamPaintbrush/thejerktracker/store/legacy"
)

func main() {
	cfg := configs.LoadConfig()

	log, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Sprintf("cannot build logger: %v", err))
	}
	defer func() { _ = log.Sync() }()

	st, err := openStore(cfg)
	if err != nil {
		log.Fatal("cannot open store", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}
	defer func() { _ = st.Close() }()

	ctx := context.Background()
	if err := configs.SeedAdmin(ctx, st, cfg, log); err != nil {
		log.Fatal("seed admin failed", zap.Error(err))
	}

	engine := migration.NewEngine(st, legacy.NewFileSource(cfg.LegacyDataFile), cfg.BackupDir, log)

	r := gin.Default()
	r.Use(middlewares.CORSMiddleware())
	routes.RegisterRoutes(r, cfg, st, engine, log)

	addr := ":" + cfg.Port
	log.Info("server starting", zap.String("addr", addr), zap.String("driver", cfg.DBDriver))
	if err := r.Run(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

// openStore picks the persistence backend. Both expose the same store.Store
// contract, so everything above this line is backend-agnostic.
func openStore(cfg *configs.Config) (store.Store, error) {
	switch cfg.DBDriver {
	case "bolt":
		return boltstore.Open(cfg.DBSource)
	default:
		return gormstore.Open(cfg.DBDriver, cfg.DBSource)
	}
}
