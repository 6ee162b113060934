package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"

	"github.com/richxcame/ridematch/pkg/config"
	"github.com/richxcame/ridematch/pkg/logger"
)

const serviceName = "ridematch-migrate"

func main() {
	path := flag.String("path", "file://db/migrations", "migration source URL")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: migrate [-path url] up|down|steps N|version|force V\n")
	}
	flag.Parse()

	cfg, err := config.Load(serviceName)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	if err := logger.Init(cfg.Server.Environment, zap.String("service", serviceName)); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	m, err := migrate.New(*path, cfg.Database.URL())
	if err != nil {
		logger.Fatal("Failed to initialize migrations", zap.Error(err))
	}
	defer m.Close()

	if err := run(m, args); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("No migrations to apply")
			return
		}
		logger.Fatal("Migration failed", zap.String("command", args[0]), zap.Error(err))
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		logger.Warn("Failed to read schema version", zap.Error(err))
		return
	}
	logger.Info("Migration complete",
		zap.String("command", args[0]),
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
	)
}

func run(m *migrate.Migrate, args []string) error {
	switch args[0] {
	case "up":
		return m.Up()
	case "down":
		return m.Down()
	case "steps":
		n, err := intArg(args)
		if err != nil {
			return err
		}
		return m.Steps(n)
	case "force":
		v, err := intArg(args)
		if err != nil {
			return err
		}
		return m.Force(v)
	case "version":
		return nil
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func intArg(args []string) (int, error) {
	if len(args) < 2 {
		return 0, fmt.Errorf("%s requires a numeric argument", args[0])
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, fmt.Errorf("invalid %s argument %q: %w", args[0], args[1], err)
	}
	return n, nil
}
