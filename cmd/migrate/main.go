package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/erp/warehouse-bot/internal/infrastructure/config"
	"github.com/erp/warehouse-bot/internal/infrastructure/logger"
	"github.com/erp/warehouse-bot/internal/infrastructure/migration"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const usage = `Warehouse receiving schema migration tool

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up               apply all pending migrations
  down             roll back everything
  step <n>         apply n migrations (negative rolls back)
  version          show the current schema version
  force <version>  overwrite the recorded version (dirty-state recovery)

Flags:
  -path string       migrations directory (default: ./migrations)
  -log-level string  debug, info, warn, error (default: info)
`

func main() {
	var (
		migrationsPath string
		logLevel       string
	)
	flag.StringVar(&migrationsPath, "path", "migrations", "migrations directory")
	flag.StringVar(&logLevel, "log-level", "info", "log level")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	if err := run(args, migrationsPath, log); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}
}

func run(args []string, migrationsPath string, log *zap.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	absPath, err := filepath.Abs(migrationsPath)
	if err != nil {
		return fmt.Errorf("resolve migrations path: %w", err)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	mg, err := migration.New(db, absPath, log)
	if err != nil {
		return err
	}
	defer mg.Close()

	command := args[0]
	log.Info("running migration command",
		zap.String("command", command),
		zap.String("migrations_path", absPath),
	)

	switch command {
	case "up":
		return mg.Up()

	case "down":
		return mg.Down()

	case "step":
		n, err := intArg(args, "step count")
		if err != nil {
			return err
		}
		return mg.Steps(n)

	case "version":
		version, dirty, err := mg.Version()
		if err != nil {
			return err
		}
		if version == 0 {
			log.Info("no migrations applied yet")
		} else {
			log.Info("current schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		}
		return nil

	case "force":
		version, err := intArg(args, "target version")
		if err != nil {
			return err
		}
		return mg.Force(version)

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func intArg(args []string, what string) (int, error) {
	if len(args) < 2 {
		return 0, fmt.Errorf("%s required", what)
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", what, args[1])
	}
	return n, nil
}
