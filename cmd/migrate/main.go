package main

import (
	"flag"
	"os"

	"github.com/smeops/backend/internal/infrastructure/config"
	"github.com/smeops/backend/internal/infrastructure/logger"
	"github.com/smeops/backend/internal/infrastructure/migration"
	"go.uber.org/zap"
)

func main() {
	command := flag.String("command", "up", "migration command: up, down, version")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(cfg.Log)
	defer log.Sync()

	migrator, err := migration.New(cfg.Database.URL(), log)
	if err != nil {
		log.Fatal("failed to create migrator", zap.Error(err))
	}
	defer migrator.Close()

	switch *command {
	case "up":
		err = migrator.Up()
	case "down":
		err = migrator.Down()
	case "version":
		var (
			v     uint
			dirty bool
		)
		v, dirty, err = migrator.Version()
		if err == nil {
			log.Info("schema version", zap.Uint("version", v), zap.Bool("dirty", dirty))
		}
	default:
		log.Fatal("unknown command", zap.String("command", *command))
	}

	if err != nil {
		log.Fatal("migration failed", zap.String("command", *command), zap.Error(err))
	}
}
