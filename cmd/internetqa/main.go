package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	internalcli "github.com/internetqa/internetqa/internal/cli"
	"github.com/internetqa/internetqa/internal/config"
	"github.com/internetqa/internetqa/internal/database"
	"github.com/internetqa/internetqa/internal/logging"
	"github.com/internetqa/internetqa/internal/repository"
	"github.com/internetqa/internetqa/internal/services"
)

var version = "0.1.0"

// flagEnv maps command line flags onto the environment variables they override
var flagEnv = map[string]string{
	"base-url":    "BASE_URL",
	"driver":      "BROWSER_DRIVER",
	"headless":    "HEADLESS",
	"port":        "PORT",
	"screenshots": "SCREENSHOT_DIR",
}

// getenvWithFlags reads configuration from the environment, preferring
// flags that were set explicitly on c
func getenvWithFlags(c *cli.Context) func(string) string {
	overrides := make(map[string]string)
	for flag, key := range flagEnv {
		if c.IsSet(flag) {
			overrides[key] = c.String(flag)
		}
	}
	return func(key string) string {
		if v, ok := overrides[key]; ok {
			return v
		}
		return os.Getenv(key)
	}
}

func newLogger(getenv func(string) string) (*zap.Logger, error) {
	return logging.New(config.LoadLogConfig(getenv))
}

// openUploadRepository picks postgres when POSTGRES_* is configured
func openUploadRepository(getenv func(string) string, logger *zap.Logger) (services.UploadRepository, func(), error) {
	pgConfig, err := config.LoadPostgresConfig(getenv)
	if errors.Is(err, config.ErrPostgresNotConfigured) {
		logger.Info("No database configured, keeping uploads in memory.")
		return repository.NewMemoryUploadRepository(), func() {}, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load postgres config: %w", err)
	}

	db, err := database.Open(pgConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	logger.Info("Connected to database.", zap.String("host", pgConfig.Host), zap.String("database", pgConfig.Database))

	if err := database.RunMigrations(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run database migrations: %w", err)
	}
	return repository.NewUploadRepository(db), func() { db.Close() }, nil
}

// ServeCommand returns the serve command
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve a local replica of the pages under test",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "port", Usage: "listen port (PORT)"},
			&cli.StringFlag{Name: "templates", Value: "templates", Usage: "directory holding the page templates"},
		},
		Action: func(c *cli.Context) error {
			getenv := getenvWithFlags(c)
			logger, err := newLogger(getenv)
			if err != nil {
				return err
			}
			defer logger.Sync()

			site, err := config.LoadSiteConfig(getenv)
			if err != nil {
				return err
			}

			uploadRepo, closeRepo, err := openUploadRepository(getenv, logger)
			if err != nil {
				return err
			}
			defer closeRepo()

			deps, err := internalcli.BuildServerDependencies(config.LoadServerConfig(getenv), site, uploadRepo, c.String("templates"), logger)
			if err != nil {
				return err
			}

			return internalcli.RunServe(deps)
		},
	}
}

// SmokeCommand returns the smoke command
func SmokeCommand() *cli.Command {
	return &cli.Command{
		Name:  "smoke",
		Usage: "Run the smoke scenarios against BASE_URL",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "base-url", Usage: "site under test (BASE_URL)"},
			&cli.StringFlag{Name: "driver", Usage: "playwright or chromedp (BROWSER_DRIVER)"},
			&cli.StringFlag{Name: "headless", Usage: "run the browser headless (HEADLESS)"},
			&cli.StringFlag{Name: "screenshots", Usage: "directory for screenshots of failed scenarios (SCREENSHOT_DIR)"},
		},
		Action: func(c *cli.Context) error {
			getenv := getenvWithFlags(c)
			logger, err := newLogger(getenv)
			if err != nil {
				return err
			}
			defer logger.Sync()

			site, err := config.LoadSiteConfig(getenv)
			if err != nil {
				return err
			}
			browserCfg, err := config.LoadBrowserConfig(getenv)
			if err != nil {
				return err
			}

			logger.Info("Running smoke scenarios.", zap.String("base_url", site.BaseURL), zap.String("driver", browserCfg.Driver))
			return internalcli.RunSmoke(c.Context, internalcli.SmokeOptions{
				Site:    site,
				Browser: browserCfg,
				Logger:  logger,
				Out:     c.App.Writer,
			})
		},
	}
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	app := &cli.App{
		Name:    "internetqa",
		Usage:   "Browser checks for the-internet demo site",
		Version: version,
		Commands: []*cli.Command{
			ServeCommand(),
			SmokeCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
